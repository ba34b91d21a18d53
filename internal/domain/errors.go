package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTransport          = errors.New("transport failure")
	ErrTransitionRejected = errors.New("state transition rejected")
)

// APIError is a non-success answer from a remote service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Service, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Service, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps the status code onto the error taxonomy. Anything that is not a
// missing resource or a credential problem counts as a transport failure.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrTransport:
		return e.StatusCode != http.StatusNotFound &&
			e.StatusCode != http.StatusUnauthorized &&
			e.StatusCode != http.StatusForbidden
	}
	return false
}

// TransitionError is returned when the tracker refuses a state change.
type TransitionError struct {
	StoryID int64
	State   StoryState
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("story %d -> %s rejected: %s", e.StoryID, e.State, e.Message)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrTransitionRejected
}
