package cli

import (
	"context"
	"fmt"

	"github.com/gookit/color"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/models"
	"resourcehub/internal/filex"
)

// Upload sends the file at path, letting the uploader pick the simple or
// chunked strategy by size. The returned descriptor is remembered so a
// following 'create' can reference the file.
func (a *App) Upload(ctx context.Context, path string) error {
	progress := func(p models.UploadProgress) {
		fmt.Fprintf(a.out, "\r%s / %s",
			filex.HumanBytes(p.BytesSent), filex.HumanBytes(p.BytesTotal))
	}

	fd, err := a.uploader.UploadFile(ctx, path, progress)
	fmt.Fprintln(a.out)
	if err != nil {
		if api.IsAbort(err) {
			fmt.Fprintln(a.out, "Upload canceled")
			return err
		}
		fmt.Fprintln(a.out, color.Red.Render("Upload failed: "+err.Error()))
		return err
	}

	a.lastUpload = fd
	fmt.Fprintln(a.out, color.Green.Render(
		fmt.Sprintf("Uploaded %s (%s)", fd.Name, filex.HumanBytes(fd.Size))))
	fmt.Fprintln(a.out, "Run 'create' to publish it as a resource.")
	return nil
}
