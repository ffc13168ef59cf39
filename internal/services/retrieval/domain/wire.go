package domain

import (
	"bytes"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// MultiSearchResponse is the decoded _msearch body
type MultiSearchResponse struct {
	Responses []SearchResponse `json:"responses"`
}

// SearchResponse is one sub-response; Error is set when the search itself failed
type SearchResponse struct {
	Status int            `json:"status"`
	Hits   Hits           `json:"hits"`
	Error  *SearchFailure `json:"error"`
}

// Hits carries the reported total and the page of hits
type Hits struct {
	Total HitsTotal `json:"total"`
	Hits  []Hit     `json:"hits"`
}

// Hit is one search hit
type Hit struct {
	Index  string         `json:"_index"`
	ID     string         `json:"_id"`
	Source jsontext.Value `json:"_source"`
}

// HitsTotal accepts both the bare number of 5.x and the {"value", "relation"}
// object of 7.x. A "gte" relation means Value is only a lower bound
type HitsTotal struct {
	Value    int64
	Relation string
}

// LowerBound reports whether the service stopped counting at Value
func (t HitsTotal) LowerBound() bool { return t.Relation == "gte" }

// UnmarshalJSON implements json.Unmarshaler
func (t *HitsTotal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*t = HitsTotal{Value: obj.Value, Relation: obj.Relation}
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = HitsTotal{Value: n, Relation: "eq"}
	return nil
}

// SearchFailure is the error object of a failed sub-search
type SearchFailure struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// UnmarshalJSON implements json.Unmarshaler; a bare string becomes the Type
func (f *SearchFailure) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = SearchFailure{Type: s}
		return nil
	}
	type plain SearchFailure
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = SearchFailure(p)
	return nil
}
