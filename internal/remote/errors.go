package remote

import (
	"errors"
	"fmt"
)

// Common HTTP failures.
var (
	// ErrNotFound is returned when the server has no such resource.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned for 401 and 403 responses.
	ErrForbidden = errors.New("access denied")
	// ErrUnsupportedScheme is returned for URLs that are not http(s).
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// StatusError is any other non-2xx response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.Status, e.Body)
}
