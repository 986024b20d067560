// Package upload implements the file-upload client: a single-request path
// for small files and a three-phase chunked path (initiate, N chunk
// uploads, complete) for large ones, with progress reporting and
// cooperative cancellation. Nothing here retries or resumes; any failed
// step fails the whole upload.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/models"
	"resourcehub/internal/filex"
	"resourcehub/internal/logging"
)

const (
	// DefaultChunkSize matches the backend's default slice size.
	DefaultChunkSize = 5 << 20

	// DefaultSimpleThreshold is the size at or below which the
	// single-request path is used.
	DefaultSimpleThreshold = 10 << 20

	// DefaultConcurrency bounds how many chunks are in flight at once.
	DefaultConcurrency = 3
)

// Backend is the slice of the API surface the uploader needs.
type Backend interface {
	UploadSimple(ctx context.Context, filename, mimeType string, size int64, r io.Reader, progress models.ProgressFunc) (*models.FileDescriptor, error)
	InitiateUpload(ctx context.Context, filename, mimeType string, size int64, chunkSize int64) (string, error)
	UploadChunk(ctx context.Context, uploadID string, chunk io.Reader, size int64, index, totalChunks int, progress models.ProgressFunc) error
	CompleteUpload(ctx context.Context, uploadID string) (*models.FileDescriptor, error)
}

// File is what the uploader reads from. *os.File satisfies it; tests use
// in-memory readers.
type File interface {
	io.Reader
	io.ReaderAt
}

// Option customizes an Uploader.
type Option func(*Uploader)

func WithChunkSize(n int64) Option {
	return func(u *Uploader) { u.chunkSize = n }
}

func WithSimpleThreshold(n int64) Option {
	return func(u *Uploader) { u.simpleThreshold = n }
}

func WithConcurrency(n int) Option {
	return func(u *Uploader) { u.concurrency = n }
}

// Uploader orchestrates uploads against a Backend. It keeps no state
// between uploads; concurrent uploads of different files are independent.
type Uploader struct {
	backend         Backend
	log             logging.Logger
	chunkSize       int64
	simpleThreshold int64
	concurrency     int
}

func NewUploader(backend Backend, log logging.Logger, opts ...Option) *Uploader {
	u := &Uploader{
		backend:         backend,
		log:             log,
		chunkSize:       DefaultChunkSize,
		simpleThreshold: DefaultSimpleThreshold,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadFile opens path, sniffs the MIME type from content, and uploads it
// with the strategy appropriate to its size.
func (u *Uploader) UploadFile(ctx context.Context, path string, progress models.ProgressFunc) (*models.FileDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}

	return u.Upload(ctx, filepath.Base(path), mtype.String(), fi.Size(), f, progress)
}

// Upload chooses between the single-request path and the chunked path by
// size and runs it to completion.
func (u *Uploader) Upload(ctx context.Context, filename, mimeType string, size int64, r File, progress models.ProgressFunc) (*models.FileDescriptor, error) {
	if size <= u.simpleThreshold {
		u.log.Debug(ctx, "simple upload", "file", filename, "size", size)
		fd, err := u.backend.UploadSimple(ctx, filename, mimeType, size, r, progress)
		if err != nil {
			return nil, err
		}
		return fd, nil
	}

	fd, _, err := u.UploadChunked(ctx, filename, mimeType, size, r, progress)
	return fd, err
}

// UploadChunked runs the three-phase protocol: initiate, upload every chunk
// with bounded concurrency, then complete once every chunk has been
// acknowledged. Any chunk failure fails the whole upload; chunks already
// accepted server-side are not rolled back. The returned session reflects
// the final state even on failure; it is nil when initiate itself failed.
//
// Progress events are emitted once per acknowledged chunk, with BytesSent
// aggregated across chunks.
func (u *Uploader) UploadChunked(ctx context.Context, filename, mimeType string, size int64, r io.ReaderAt, progress models.ProgressFunc) (*models.FileDescriptor, *models.UploadSession, error) {
	totalChunks := filex.NumChunks(size, u.chunkSize)
	if totalChunks == 0 {
		return nil, nil, fmt.Errorf("invalid chunk size %d", u.chunkSize)
	}

	uploadID, err := u.backend.InitiateUpload(ctx, filename, mimeType, size, u.chunkSize)
	if err != nil {
		return nil, nil, fmt.Errorf("initiate upload: %w", err)
	}

	session := models.NewUploadSession(uploadID, filename, mimeType, size, u.chunkSize, totalChunks)
	if err := session.Start(); err != nil {
		return nil, session, err
	}

	u.log.Info(ctx, "chunked upload started",
		"file", filename, "upload_id", uploadID, "chunks", totalChunks)

	var mu sync.Mutex // guards session
	var sent atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for i := 0; i < totalChunks; i++ {
		i := i
		g.Go(func() error {
			offset, length := filex.ChunkRange(i, size, u.chunkSize)
			chunk := io.NewSectionReader(r, offset, length)

			if err := u.backend.UploadChunk(gctx, uploadID, chunk, length, i, totalChunks, nil); err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}

			mu.Lock()
			ackErr := session.Acknowledge(i)
			mu.Unlock()
			if ackErr != nil {
				return ackErr
			}

			if progress != nil {
				progress(models.UploadProgress{
					UploadID:   uploadID,
					BytesSent:  sent.Add(length),
					BytesTotal: size,
					ChunkIndex: i,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		session.Fail()
		if !api.IsAbort(err) {
			u.log.Error(ctx, "chunked upload failed", "upload_id", uploadID, "error", err)
		}
		return nil, session, err
	}

	if err := session.BeginComplete(); err != nil {
		session.Fail()
		return nil, session, err
	}

	fd, err := u.backend.CompleteUpload(ctx, uploadID)
	if err != nil {
		session.Fail()
		return nil, session, fmt.Errorf("complete upload: %w", err)
	}
	session.Finish()

	u.log.Info(ctx, "chunked upload finished", "upload_id", uploadID, "file_url", fd.FileURL)
	return fd, session, nil
}
