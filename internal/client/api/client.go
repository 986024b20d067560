// Package api implements the HTTP gateway to the ResourceHub backend. It
// owns request construction, auth-header injection, error classification,
// and decoding of the backend's response shapes into canonical models.
package api

import (
	"context"
	"io"

	"resourcehub/internal/client/models"
)

// Client is the full backend surface the rest of the client programs
// against. The concrete implementation is HTTPClient; tests use handwritten
// fakes.
//
// All methods honor context cancellation: an aborted call returns the
// context's error unwrapped so callers can classify it with errors.Is and
// must not surface it as a user-facing failure.
type Client interface {
	// Login exchanges credentials for a token session.
	Login(ctx context.Context, email, password string) (*models.Session, error)

	// CurrentUser fetches the profile of the token's owner.
	CurrentUser(ctx context.Context) (*models.User, error)

	// SearchResources runs one typeahead query capped at limit results.
	SearchResources(ctx context.Context, query string, limit int) ([]models.SearchResult, error)

	// CreateResource publishes a resource built from uploaded files.
	CreateResource(ctx context.Context, draft models.ResourceDraft) (*models.Resource, error)

	// UploadSimple sends the whole file in a single multipart request.
	UploadSimple(ctx context.Context, filename, mimeType string, size int64, r io.Reader, progress models.ProgressFunc) (*models.FileDescriptor, error)

	// InitiateUpload opens a chunked upload session and returns its id.
	InitiateUpload(ctx context.Context, filename, mimeType string, size int64, chunkSize int64) (string, error)

	// UploadChunk sends one slice. Sequencing and retries are the caller's
	// concern; this call is not internally ordered.
	UploadChunk(ctx context.Context, uploadID string, chunk io.Reader, size int64, index, totalChunks int, progress models.ProgressFunc) error

	// CompleteUpload finalizes the session and returns the stored file.
	CompleteUpload(ctx context.Context, uploadID string) (*models.FileDescriptor, error)
}

// TokenProvider supplies the stored credential token for outbound requests.
// An empty token means anonymous: the auth header is omitted rather than
// failing client-side.
type TokenProvider interface {
	Token() (string, error)
}

// StaticToken is a TokenProvider returning itself. Used in tests and for
// one-off scripted calls.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }
