package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/config"
	"resourcehub/internal/client/models"
	"resourcehub/internal/client/services"
	"resourcehub/internal/client/store"
	"resourcehub/internal/client/upload"
	"resourcehub/internal/logging"
)

// App wires the configuration, the local store, the HTTP gateway, and the
// services behind the interactive commands.
type App struct {
	config    *config.Config
	log       logging.Logger
	store     *store.Bolt
	client    api.Client
	auth      services.AuthService
	resources services.ResourceService
	uploader  *upload.Uploader
	reader    *bufio.Reader
	out       io.Writer

	userName   string
	lastUpload *models.FileDescriptor
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(cfg.CacheFile)
	if err != nil {
		log.Error(context.Background(), "error opening local store", "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(cfg.ServerBaseURL, st, log,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))

	return &App{
		config:    cfg,
		log:       log,
		store:     st,
		client:    client,
		auth:      services.NewAuthService(client, st),
		resources: services.NewResourceService(client),
		uploader: upload.NewUploader(client, log,
			upload.WithChunkSize(cfg.ChunkSize),
			upload.WithSimpleThreshold(cfg.SimpleUploadThreshold),
			upload.WithConcurrency(cfg.UploadConcurrency)),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	fmt.Fprintln(a.out, "ResourceHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// isLoggedIn checks the persisted token, so a fresh run of the CLI picks up
// the session from the previous one.
func (a *App) isLoggedIn() bool {
	token, err := a.store.Token()
	return err == nil && token != ""
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}
