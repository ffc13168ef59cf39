package service

import (
	"bytes"

	"logzq/internal/services/retrieval/domain"

	"github.com/go-json-experiment/json"
)

// timestampField is the document time field used for sorting and range filtering
const timestampField = "@timestamp"

type msearchHeader struct {
	Index             []string `json:"index"`
	IgnoreUnavailable bool     `json:"ignore_unavailable"`
}

type sortOrder struct {
	Order        string `json:"order"`
	UnmappedType string `json:"unmapped_type"`
}

type queryString struct {
	Query           string `json:"query"`
	AnalyzeWildcard bool   `json:"analyze_wildcard"`
}

type queryStringClause struct {
	QueryString queryString `json:"query_string"`
}

type epochRange struct {
	Gte int64 `json:"gte"`
	Lte int64 `json:"lte"`
}

type rangeClause struct {
	Range map[string]epochRange `json:"range"`
}

type boolClause struct {
	Must    []any `json:"must"`
	MustNot []any `json:"must_not"`
}

type boolQuery struct {
	Bool boolClause `json:"bool"`
}

type sourceFilter struct {
	Excludes []string `json:"excludes"`
}

type searchBody struct {
	Version        bool                   `json:"version"`
	From           int                    `json:"from"`
	Size           int                    `json:"size"`
	Sort           []map[string]sortOrder `json:"sort"`
	Query          boolQuery              `json:"query"`
	Source         sourceFilter           `json:"_source"`
	Aggs           struct{}               `json:"aggs"`
	StoredFields   []string               `json:"stored_fields"`
	ScriptFields   struct{}               `json:"script_fields"`
	DocvalueFields []string               `json:"docvalue_fields"`
	Highlight      struct{}               `json:"highlight"`
}

// BuildRequest renders req as a two-line NDJSON _msearch body: the index
// header, the search body, each newline terminated
func BuildRequest(req domain.PageRequest) ([]byte, error) {
	indices := req.Indices
	if indices == nil {
		indices = domain.IndexSet{}
	}
	head := msearchHeader{Index: indices, IgnoreUnavailable: true}
	body := searchBody{
		Version: true,
		From:    req.Offset,
		Size:    req.Size,
		Sort: []map[string]sortOrder{
			{timestampField: {Order: "desc", UnmappedType: "boolean"}},
		},
		Query: boolQuery{Bool: boolClause{
			Must: []any{
				queryStringClause{QueryString: queryString{Query: req.Query, AnalyzeWildcard: true}},
				rangeClause{Range: map[string]epochRange{
					timestampField: {Gte: req.Window.Start, Lte: req.Window.End},
				}},
			},
			MustNot: []any{},
		}},
		Source:         sourceFilter{Excludes: []string{}},
		StoredFields:   []string{"*"},
		DocvalueFields: []string{timestampField},
	}

	hb, err := json.Marshal(head)
	if err != nil {
		return nil, err
	}
	bb, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(hb) + len(bb) + 2)
	buf.Write(hb)
	buf.WriteByte('\n')
	buf.Write(bb)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
