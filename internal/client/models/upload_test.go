package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/internal/common"
)

func newSession(t *testing.T) *UploadSession {
	t.Helper()
	return NewUploadSession("u1", "slides.pdf", "application/pdf", 2500, 1000, 3)
}

func TestUploadSession_HappyPath(t *testing.T) {
	s := newSession(t)
	require.Equal(t, UploadInitiated, s.Status)

	require.NoError(t, s.Start())
	require.Equal(t, UploadUploading, s.Status)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Acknowledge(i))
	}
	require.True(t, s.AllAcknowledged())
	require.Equal(t, 3, s.AckedChunks())

	require.NoError(t, s.BeginComplete())
	require.Equal(t, UploadCompleting, s.Status)

	s.Finish()
	require.Equal(t, UploadCompleted, s.Status)
}

func TestUploadSession_CompleteBeforeAllChunksIsCallerError(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Acknowledge(0))

	err := s.BeginComplete()
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrUploadFailed)
	assert.Equal(t, UploadUploading, s.Status)
}

func TestUploadSession_AcknowledgeOutOfRange(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())

	require.ErrorIs(t, s.Acknowledge(-1), common.ErrChunkOutOfRange)
	require.ErrorIs(t, s.Acknowledge(3), common.ErrChunkOutOfRange)
}

func TestUploadSession_DuplicateAckIsHarmless(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Acknowledge(1))
	require.NoError(t, s.Acknowledge(1))
	assert.Equal(t, 1, s.AckedChunks())
}

func TestUploadSession_TerminalStates(t *testing.T) {
	s := newSession(t)
	s.Fail()
	require.Equal(t, UploadFailed, s.Status)

	// failed is terminal
	require.ErrorIs(t, s.Start(), common.ErrSessionCompleted)
	require.ErrorIs(t, s.Acknowledge(0), common.ErrSessionCompleted)
	require.ErrorIs(t, s.BeginComplete(), common.ErrSessionCompleted)
	s.Finish()
	require.Equal(t, UploadFailed, s.Status)

	s2 := newSession(t)
	require.NoError(t, s2.Start())
	for i := 0; i < 3; i++ {
		require.NoError(t, s2.Acknowledge(i))
	}
	require.NoError(t, s2.BeginComplete())
	s2.Finish()
	s2.Fail()
	require.Equal(t, UploadCompleted, s2.Status)
}

func TestFileDescriptor_PermissiveDecode(t *testing.T) {
	body := `{"success": true, "fileId": 9, "fileUrl": "https://f/9",
		"name": "a.pdf", "size": 10, "mime_type": "application/pdf",
		"sha256": "deadbeef", "pages": 4, "unknown": "dropped"}`

	var fd FileDescriptor
	require.NoError(t, json.Unmarshal([]byte(body), &fd))
	assert.True(t, fd.Success)
	assert.Equal(t, "9", fd.FileID)
	assert.Equal(t, "https://f/9", fd.FileURL)
	assert.Equal(t, "application/pdf", fd.MimeType)
}
