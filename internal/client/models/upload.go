package models

import (
	"encoding/json"
	"fmt"

	"resourcehub/internal/common"
)

// UploadStatus is the lifecycle state of an upload session.
type UploadStatus string

const (
	UploadInitiated  UploadStatus = "initiated"
	UploadUploading  UploadStatus = "uploading"
	UploadCompleting UploadStatus = "completing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// terminal reports whether no further transition is allowed from s.
func (s UploadStatus) terminal() bool {
	return s == UploadCompleted || s == UploadFailed
}

// UploadSession tracks one chunked upload on the client side. It is created
// from a successful initiate call and mutated by each acknowledged chunk.
// Completed and failed are terminal; there is no resume from failed.
type UploadSession struct {
	UploadID    string
	Filename    string
	MimeType    string
	TotalSize   int64
	ChunkSize   int64
	TotalChunks int
	Status      UploadStatus

	acked map[int]struct{}
}

// NewUploadSession builds a session in the initiated state. totalChunks must
// already be agreed with the server via the initiate call.
func NewUploadSession(uploadID, filename, mimeType string, totalSize, chunkSize int64, totalChunks int) *UploadSession {
	return &UploadSession{
		UploadID:    uploadID,
		Filename:    filename,
		MimeType:    mimeType,
		TotalSize:   totalSize,
		ChunkSize:   chunkSize,
		TotalChunks: totalChunks,
		Status:      UploadInitiated,
		acked:       make(map[int]struct{}, totalChunks),
	}
}

// Start moves the session to uploading when the first chunk call is sent.
func (s *UploadSession) Start() error {
	if s.Status.terminal() {
		return common.ErrSessionCompleted
	}
	s.Status = UploadUploading
	return nil
}

// Acknowledge records a successful chunk upload. Out-of-range indices are
// rejected; acknowledging the same index twice is harmless.
func (s *UploadSession) Acknowledge(index int) error {
	if s.Status.terminal() {
		return common.ErrSessionCompleted
	}
	if index < 0 || index >= s.TotalChunks {
		return fmt.Errorf("%w: %d of %d", common.ErrChunkOutOfRange, index, s.TotalChunks)
	}
	s.acked[index] = struct{}{}
	return nil
}

// AckedChunks returns how many distinct chunks have been acknowledged.
func (s *UploadSession) AckedChunks() int {
	return len(s.acked)
}

// AllAcknowledged reports whether every chunk has been acknowledged.
func (s *UploadSession) AllAcknowledged() bool {
	return len(s.acked) == s.TotalChunks
}

// BeginComplete moves the session to completing. It is a caller error to
// finalize before every chunk is acknowledged.
func (s *UploadSession) BeginComplete() error {
	if s.Status.terminal() {
		return common.ErrSessionCompleted
	}
	if !s.AllAcknowledged() {
		return fmt.Errorf("%w: %d of %d chunks acknowledged",
			common.ErrUploadFailed, len(s.acked), s.TotalChunks)
	}
	s.Status = UploadCompleting
	return nil
}

// Finish marks the session completed.
func (s *UploadSession) Finish() {
	if !s.Status.terminal() {
		s.Status = UploadCompleted
	}
}

// Fail marks the session failed. Terminal states are left untouched.
func (s *UploadSession) Fail() {
	if !s.Status.terminal() {
		s.Status = UploadFailed
	}
}

// UploadProgress is one ephemeral progress event forwarded to the caller's
// observer. ChunkIndex is -1 for single-request uploads.
type UploadProgress struct {
	UploadID   string
	BytesSent  int64
	BytesTotal int64
	ChunkIndex int
}

// ProgressFunc receives progress events. Implementations must be fast; they
// are called from the uploading goroutines.
type ProgressFunc func(UploadProgress)

// FileDescriptor is the backend's description of a stored file, returned by
// both the simple-upload and the complete call. Decoding is permissive:
// unknown fields are dropped and missing fields stay zero.
type FileDescriptor struct {
	Success  bool
	FileID   string
	FileURL  string
	Name     string
	Size     int64
	MimeType string
	SHA256   string
}

func (d *FileDescriptor) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success  bool       `json:"success"`
		FileID   flexString `json:"fileId"`
		FileURL  string     `json:"fileUrl"`
		Name     string     `json:"name"`
		Size     int64      `json:"size"`
		MimeType string     `json:"mime_type"`
		SHA256   string     `json:"sha256"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = FileDescriptor{
		Success:  raw.Success,
		FileID:   string(raw.FileID),
		FileURL:  raw.FileURL,
		Name:     raw.Name,
		Size:     raw.Size,
		MimeType: raw.MimeType,
		SHA256:   raw.SHA256,
	}
	return nil
}
