package client

import "fmt"

// TransportError captures a failure that happened before any HTTP response
// arrived: connection refused, timeout, DNS failure. It is always delivered
// inside a failure Result, never raised past the client boundary.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError captures a non-2xx HTTP response, carrying the status and the
// decoded error body when the server sent JSON.
type APIError struct {
	URL        string
	StatusCode int
	Status     string
	Body       map[string]any
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error from %s (status %d): %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s (status %d)", e.URL, e.StatusCode)
}
