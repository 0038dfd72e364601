package freesound

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrPlayerNotFound indicates that the page has no embedded audio player element.
	ErrPlayerNotFound = errors.New("player element not found")
	// ErrNoAudioURLs indicates that the player element exposes neither an MP3 nor an OGG stream.
	ErrNoAudioURLs = errors.New("no audio URLs found")
)

// StatusError carries the status code of a failed response.
// It matches ErrUnexpectedHTTPStatus with errors.Is.
type StatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedHTTPStatus, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap returns ErrUnexpectedHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedHTTPStatus
}

// IsClientError reports whether the status is a 4xx, which no retry can fix.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}
