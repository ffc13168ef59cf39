package domain

import "fmt"

// SearchError is a failure reported by the search service inside a response body.
// It points at the request itself (bad query, missing index) and is never retried
type SearchError struct {
	Type   string
	Reason string
}

func (e *SearchError) Error() string {
	if e.Reason == "" {
		return "search error: " + e.Type
	}
	return fmt.Sprintf("search error: %s: %s", e.Type, e.Reason)
}

// StatusError is a non-success HTTP status from the search endpoint
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search endpoint returned status %d", e.Status)
	}
	return fmt.Sprintf("search endpoint returned status %d: %s", e.Status, e.Body)
}

// HTTPStatus returns the upstream status code
func (e *StatusError) HTTPStatus() int { return e.Status }

// FaultError is a connection, DNS or protocol level failure talking to the endpoint
type FaultError struct {
	Err error
}

func (e *FaultError) Error() string { return "search transport fault: " + e.Err.Error() }

// Unwrap returns the underlying fault
func (e *FaultError) Unwrap() error { return e.Err }

// UnsplittableWindowError means a single-millisecond window still matches more
// documents than the pagination cap lets us read
type UnsplittableWindowError struct {
	Window TimeWindow
	Total  int64
	Cap    int
}

func (e *UnsplittableWindowError) Error() string {
	return fmt.Sprintf("window %s reports %d matches, above the cap of %d, and cannot be split further",
		e.Window, e.Total, e.Cap)
}
