package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"resourcehub/internal/common"
)

// HTTPError is a non-2xx response from the backend. Detail carries the
// human-readable message from the body's "detail" field when present.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// mapError classifies a call failure.
//
// Context cancellation passes through untouched: it is the cooperative abort
// path, never a user-facing error. Auth and not-found statuses map onto the
// shared sentinels; other HTTP errors keep their status and detail. Anything
// else is a transport failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, httpErr.Detail)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", common.ErrNotFound, httpErr.Detail)
		}
		return err
	}

	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

// IsAbort reports whether err is the cooperative-cancellation outcome of a
// request rather than a real failure.
func IsAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
