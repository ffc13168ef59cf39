package errors

import "net/http"

// ErrorCode classifies an error for callers and for the wire.
// Values are part of the API, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic marks a recovered panic
	ErrorCodePanic
	// ErrorCodeUnavailable is a transport fault, the only retryable code
	ErrorCodeUnavailable
	ErrorCodeUnauthorized
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is a request body that failed struct validation
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	// ErrorCodeSearch is an error the search service reported inside a 200 body
	ErrorCodeSearch
	// ErrorCodeUpstream is a non-200 status from the search endpoint
	ErrorCodeUpstream
	// ErrorCodeUnsplittable is a window over the cap that can no longer be halved
	ErrorCodeUnsplittable
	// ErrorCodeCanceled is work abandoned because the caller's context ended
	ErrorCodeCanceled
)

var codes = map[ErrorCode]struct {
	label  string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeUnauthorized:    {"unauthorized", http.StatusUnauthorized},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeSearch:          {"search", http.StatusUnprocessableEntity},
	ErrorCodeUpstream:        {"upstream", http.StatusBadGateway},
	ErrorCodeUnsplittable:    {"unsplittable", http.StatusUnprocessableEntity},
	ErrorCodeCanceled:        {"canceled", http.StatusGatewayTimeout},
}

// HTTPStatusCode maps c to a response status, 500 for unknown codes
func HTTPStatusCode(c ErrorCode) int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// String is the log label of c
func (c ErrorCode) String() string {
	if info, ok := codes[c]; ok {
		return info.label
	}
	return "unknown"
}

// Retryable reports whether err is worth another attempt.
// Only transport faults qualify, search errors and bad statuses are final
func Retryable(err error) bool {
	return err != nil && IsCode(err, ErrorCodeUnavailable)
}
