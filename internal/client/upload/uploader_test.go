package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/internal/client/models"
	"resourcehub/internal/logging"
)

// ---- fake backend ----

type chunkCall struct {
	index int
	total int
	size  int64
	body  []byte
}

type fakeBackend struct {
	mu sync.Mutex

	simpleCalls   int
	simpleErr     error
	lastSimpleArg struct {
		filename string
		mimeType string
		size     int64
		body     []byte
	}

	initiateCalls int
	initiateErr   error
	uploadID      string
	lastInitiate  struct {
		filename  string
		mimeType  string
		size      int64
		chunkSize int64
	}

	chunks       []chunkCall
	chunkErrOn   map[int]error
	chunkBlockOn map[int]chan struct{} // blocks honoring ctx

	completeCalls int
	completeErr   error
	descriptor    *models.FileDescriptor
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		uploadID:     "u1",
		chunkErrOn:   make(map[int]error),
		chunkBlockOn: make(map[int]chan struct{}),
		descriptor:   &models.FileDescriptor{Success: true, FileURL: "https://files.example/u1"},
	}
}

func (f *fakeBackend) UploadSimple(ctx context.Context, filename, mimeType string, size int64, r io.Reader, progress models.ProgressFunc) (*models.FileDescriptor, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.simpleCalls++
	f.lastSimpleArg.filename = filename
	f.lastSimpleArg.mimeType = mimeType
	f.lastSimpleArg.size = size
	f.lastSimpleArg.body = body
	simpleErr := f.simpleErr
	f.mu.Unlock()
	if simpleErr != nil {
		return nil, simpleErr
	}
	if progress != nil {
		progress(models.UploadProgress{BytesSent: size, BytesTotal: size, ChunkIndex: -1})
	}
	return f.descriptor, nil
}

func (f *fakeBackend) InitiateUpload(ctx context.Context, filename, mimeType string, size int64, chunkSize int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initiateCalls++
	f.lastInitiate.filename = filename
	f.lastInitiate.mimeType = mimeType
	f.lastInitiate.size = size
	f.lastInitiate.chunkSize = chunkSize
	if f.initiateErr != nil {
		return "", f.initiateErr
	}
	return f.uploadID, nil
}

func (f *fakeBackend) UploadChunk(ctx context.Context, uploadID string, chunk io.Reader, size int64, index, totalChunks int, progress models.ProgressFunc) error {
	f.mu.Lock()
	block := f.chunkBlockOn[index]
	chunkErr := f.chunkErrOn[index]
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if chunkErr != nil {
		return chunkErr
	}

	body, err := io.ReadAll(chunk)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.chunks = append(f.chunks, chunkCall{index: index, total: totalChunks, size: size, body: body})
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) CompleteUpload(ctx context.Context, uploadID string) (*models.FileDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completeCalls++
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return f.descriptor, nil
}

func (f *fakeBackend) chunkIndices() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.chunks))
	for i, c := range f.chunks {
		out[i] = c.index
	}
	return out
}

func (f *fakeBackend) completeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completeCalls
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// ---- tests ----

func TestUploader_ChunkedHappyPath(t *testing.T) {
	backend := newFakeBackend()
	u := NewUploader(backend, testLogger(), WithChunkSize(10), WithConcurrency(2))

	content := []byte("0123456789abcdefghijABCDE") // 25 bytes -> chunks of 10,10,5
	var mu sync.Mutex
	var events []models.UploadProgress
	progress := func(p models.UploadProgress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	}

	fd, session, err := u.UploadChunked(context.Background(), "big.bin", "application/octet-stream", int64(len(content)), bytes.NewReader(content), progress)
	require.NoError(t, err)
	require.NotNil(t, fd)
	assert.True(t, fd.Success)
	assert.Equal(t, "https://files.example/u1", fd.FileURL)

	require.NotNil(t, session)
	assert.Equal(t, models.UploadCompleted, session.Status)
	assert.True(t, session.AllAcknowledged())

	indices := backend.chunkIndices()
	sort.Ints(indices)
	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.Equal(t, 1, backend.completeCount())

	// every chunk call carried the full total
	backend.mu.Lock()
	for _, c := range backend.chunks {
		assert.Equal(t, 3, c.total)
	}
	backend.mu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 3)
	var maxSent int64
	for _, e := range events {
		assert.Equal(t, "u1", e.UploadID)
		assert.Equal(t, int64(25), e.BytesTotal)
		if e.BytesSent > maxSent {
			maxSent = e.BytesSent
		}
	}
	assert.Equal(t, int64(25), maxSent, "aggregated bytes cover the whole file")
}

func TestUploader_ChunkBodiesMatchOffsets(t *testing.T) {
	backend := newFakeBackend()
	// concurrency 1 keeps delivery order deterministic
	u := NewUploader(backend, testLogger(), WithChunkSize(4), WithConcurrency(1))

	content := []byte("aaaabbbbcc")
	_, _, err := u.UploadChunked(context.Background(), "f", "", int64(len(content)), bytes.NewReader(content), nil)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2}, backend.chunkIndices())
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, "aaaa", string(backend.chunks[0].body))
	assert.Equal(t, "bbbb", string(backend.chunks[1].body))
	assert.Equal(t, "cc", string(backend.chunks[2].body))
}

// A chunk failure must prevent complete from ever being invoked and leave
// the session failed.
func TestUploader_ChunkFailurePreventsComplete(t *testing.T) {
	backend := newFakeBackend()
	backend.chunkErrOn[1] = errors.New("disk full")

	u := NewUploader(backend, testLogger(), WithChunkSize(10), WithConcurrency(1))

	content := bytes.Repeat([]byte("x"), 25)
	fd, session, err := u.UploadChunked(context.Background(), "f", "", 25, bytes.NewReader(content), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 1")
	assert.Nil(t, fd)

	require.NotNil(t, session)
	assert.Equal(t, models.UploadFailed, session.Status)
	assert.Zero(t, backend.completeCount(), "complete must never run after a chunk rejection")
}

func TestUploader_InitiateFailureAbortsEverything(t *testing.T) {
	backend := newFakeBackend()
	backend.initiateErr = errors.New("quota exceeded")

	u := NewUploader(backend, testLogger(), WithChunkSize(10))

	fd, session, err := u.UploadChunked(context.Background(), "f", "", 25, bytes.NewReader(make([]byte, 25)), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initiate upload")
	assert.Nil(t, fd)
	assert.Nil(t, session, "no session exists before a successful initiate")
	assert.Empty(t, backend.chunkIndices())
	assert.Zero(t, backend.completeCount())
}

func TestUploader_CompleteFailureFailsSession(t *testing.T) {
	backend := newFakeBackend()
	backend.completeErr = errors.New("assembly failed")

	u := NewUploader(backend, testLogger(), WithChunkSize(10))

	fd, session, err := u.UploadChunked(context.Background(), "f", "", 25, bytes.NewReader(make([]byte, 25)), nil)
	require.Error(t, err)
	assert.Nil(t, fd)
	assert.Equal(t, models.UploadFailed, session.Status)
}

func TestUploader_SmallFileTakesSimplePath(t *testing.T) {
	backend := newFakeBackend()
	u := NewUploader(backend, testLogger(), WithSimpleThreshold(100), WithChunkSize(10))

	content := []byte("tiny")
	fd, err := u.Upload(context.Background(), "t.txt", "text/plain", int64(len(content)), bytes.NewReader(content), nil)
	require.NoError(t, err)
	assert.True(t, fd.Success)

	assert.Equal(t, 1, backend.simpleCalls)
	assert.Zero(t, backend.initiateCalls)
	assert.Equal(t, "t.txt", backend.lastSimpleArg.filename)
	assert.Equal(t, "tiny", string(backend.lastSimpleArg.body))
}

func TestUploader_LargeFileTakesChunkedPath(t *testing.T) {
	backend := newFakeBackend()
	u := NewUploader(backend, testLogger(), WithSimpleThreshold(10), WithChunkSize(10))

	content := make([]byte, 25)
	fd, err := u.Upload(context.Background(), "big.bin", "", 25, bytes.NewReader(content), nil)
	require.NoError(t, err)
	assert.True(t, fd.Success)

	assert.Zero(t, backend.simpleCalls)
	assert.Equal(t, 1, backend.initiateCalls)
	assert.Len(t, backend.chunkIndices(), 3)
}

func TestUploader_CancellationAbortsChunks(t *testing.T) {
	backend := newFakeBackend()
	backend.chunkBlockOn[0] = make(chan struct{})
	t.Cleanup(func() { close(backend.chunkBlockOn[0]) })

	u := NewUploader(backend, testLogger(), WithChunkSize(10), WithConcurrency(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var session *models.UploadSession
	var err error
	go func() {
		defer close(done)
		_, session, err = u.UploadChunked(ctx, "f", "", 25, bytes.NewReader(make([]byte, 25)), nil)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not abort")
	}

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.UploadFailed, session.Status)
	assert.Zero(t, backend.completeCount())
}

func TestUploader_UploadFileSniffsMime(t *testing.T) {
	backend := newFakeBackend()
	u := NewUploader(backend, testLogger(), WithSimpleThreshold(1<<20))

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%fake pdf body"), 0o600))

	fd, err := u.UploadFile(context.Background(), path, nil)
	require.NoError(t, err)
	assert.True(t, fd.Success)

	assert.Equal(t, "doc.pdf", backend.lastSimpleArg.filename)
	assert.Equal(t, "application/pdf", backend.lastSimpleArg.mimeType)
}

func TestUploader_UploadFileMissing(t *testing.T) {
	u := NewUploader(newFakeBackend(), testLogger())
	_, err := u.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.bin"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestUploader_ZeroByteFileStillUploadsOneChunk(t *testing.T) {
	backend := newFakeBackend()
	u := NewUploader(backend, testLogger(), WithChunkSize(10))

	fd, session, err := u.UploadChunked(context.Background(), "empty", "", 0, bytes.NewReader(nil), nil)
	require.NoError(t, err)
	assert.True(t, fd.Success)
	assert.Equal(t, models.UploadCompleted, session.Status)
	require.Equal(t, []int{0}, backend.chunkIndices())
	assert.Equal(t, int64(0), backend.chunks[0].size)
}
