// Package domain holds DTOs for the query http and service contracts
package domain

import "github.com/go-json-experiment/json/jsontext"

// QueryInput is the body of POST /query and POST /query/count. Start and End
// accept RFC3339, a bare UTC date or epoch milliseconds
type QueryInput struct {
	Query  string `json:"query" validate:"required,max=4096"`
	Start  string `json:"start" validate:"required,timespec"`
	End    string `json:"end" validate:"required,timespec"`
	Window string `json:"window,omitempty" validate:"omitempty,duration"`
}

// QueryResult carries every matching document in window order
type QueryResult struct {
	Count     int              `json:"count"`
	Documents []jsontext.Value `json:"documents"`
}

// CountResult carries the summed per window totals
type CountResult struct {
	Total int64 `json:"total"`
}
