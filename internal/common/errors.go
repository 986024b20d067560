// Package common defines shared constants and sentinel errors used across
// the ResourceHub client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Gateway-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// Upload lifecycle errors.
	ErrUploadFailed     = errors.New("upload failed")
	ErrSessionCompleted = errors.New("upload session already finished")
	ErrChunkOutOfRange  = errors.New("chunk index out of range")
)
