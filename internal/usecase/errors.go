package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNetwork        = errors.New("network failure")
	ErrUpstreamStatus = errors.New("upstream status")
	ErrFormat         = errors.New("unexpected payload format")
	ErrProcessing     = errors.New("processing failure")
	ErrConfiguration  = errors.New("configuration error")
)

// StatusError reports a non-2xx upstream response. It matches
// ErrUpstreamStatus via errors.Is so callers can branch on the class without
// losing the code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
