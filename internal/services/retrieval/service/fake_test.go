package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	perr "logzq/internal/platform/errors"
	"logzq/internal/services/retrieval/domain"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// seenRequest is what the fake decoded from one NDJSON body
type seenRequest struct {
	Indices []string
	Query   string
	From    int
	Size    int
	Gte     int64
	Lte     int64
}

type fakeHeader struct {
	Index             []string `json:"index"`
	IgnoreUnavailable bool     `json:"ignore_unavailable"`
}

type fakeBody struct {
	From  int `json:"from"`
	Size  int `json:"size"`
	Query struct {
		Bool struct {
			Must []struct {
				QueryString *struct {
					Query string `json:"query"`
				} `json:"query_string"`
				Range *struct {
					Timestamp struct {
						Gte int64 `json:"gte"`
						Lte int64 `json:"lte"`
					} `json:"@timestamp"`
				} `json:"range"`
			} `json:"must"`
		} `json:"bool"`
	} `json:"query"`
}

// fakeSearch serves a synthetic corpus the way the search endpoint does:
// matches sorted newest first, exact totals, and a refusal past the cap
type fakeSearch struct {
	mu     sync.Mutex
	stamps []int64 // ascending
	cap    int
	// trackTotal caps the reported total with a "gte" relation, as newer
	// releases do; 0 reports exact totals
	trackTotal int
	// totalFor overrides the reported total of the nth request when it returns >= 0
	totalFor func(n int, exact int) int
	failWith func(n int, req seenRequest) error
	reject   map[string]domain.SearchFailure
	seen     []seenRequest
}

func newFake(stamps ...int64) *fakeSearch {
	s := append([]int64(nil), stamps...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return &fakeSearch{stamps: s, cap: DefaultHardCap}
}

func (f *fakeSearch) Execute(ctx context.Context, body []byte) (domain.MultiSearchResponse, error) {
	req, err := decodeFakeRequest(body)
	if err != nil {
		return domain.MultiSearchResponse{}, err
	}

	f.mu.Lock()
	n := len(f.seen)
	f.seen = append(f.seen, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.MultiSearchResponse{}, err
	}
	if f.failWith != nil {
		if err := f.failWith(n, req); err != nil {
			return domain.MultiSearchResponse{}, err
		}
	}
	if sf, ok := f.reject[req.Query]; ok {
		return domain.MultiSearchResponse{Responses: []domain.SearchResponse{{Status: 400, Error: &sf}}}, nil
	}
	if req.From+req.Size > f.cap {
		return domain.MultiSearchResponse{Responses: []domain.SearchResponse{{
			Status: 500,
			Error:  &domain.SearchFailure{Type: "query_phase_execution_exception", Reason: "Result window is too large"},
		}}}, nil
	}

	var matched []int
	for i := len(f.stamps) - 1; i >= 0; i-- {
		if ts := f.stamps[i]; ts >= req.Gte && ts <= req.Lte {
			matched = append(matched, i)
		}
	}

	var hits []domain.Hit
	for k := req.From; k < len(matched) && k < req.From+req.Size; k++ {
		i := matched[k]
		src := fmt.Sprintf(`{"@timestamp":%d,"seq":%d}`, f.stamps[i], i)
		hits = append(hits, domain.Hit{Index: "idx", ID: fmt.Sprint(i), Source: jsontext.Value(src)})
	}

	total := domain.HitsTotal{Value: int64(len(matched)), Relation: "eq"}
	if f.totalFor != nil {
		if v := f.totalFor(n, len(matched)); v >= 0 {
			total.Value = int64(v)
		}
	}
	if f.trackTotal > 0 && total.Value > int64(f.trackTotal) {
		total = domain.HitsTotal{Value: int64(f.trackTotal), Relation: "gte"}
	}

	return domain.MultiSearchResponse{Responses: []domain.SearchResponse{{
		Status: 200,
		Hits:   domain.Hits{Total: total, Hits: hits},
	}}}, nil
}

func (f *fakeSearch) requests() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenRequest(nil), f.seen...)
}

func decodeFakeRequest(body []byte) (seenRequest, error) {
	lines := bytes.Split(body, []byte("\n"))
	if len(lines) != 3 || len(lines[2]) != 0 {
		return seenRequest{}, perr.JSONErrf("want two newline terminated lines, got %q", body)
	}
	var h fakeHeader
	if err := json.Unmarshal(lines[0], &h); err != nil {
		return seenRequest{}, err
	}
	if !h.IgnoreUnavailable {
		return seenRequest{}, perr.JSONErrf("ignore_unavailable not set")
	}
	var b fakeBody
	if err := json.Unmarshal(lines[1], &b); err != nil {
		return seenRequest{}, err
	}
	req := seenRequest{Indices: h.Index, From: b.From, Size: b.Size}
	for _, m := range b.Query.Bool.Must {
		if m.QueryString != nil {
			req.Query = m.QueryString.Query
		}
		if m.Range != nil {
			req.Gte, req.Lte = m.Range.Timestamp.Gte, m.Range.Timestamp.Lte
		}
	}
	return req, nil
}

type stampedDoc struct {
	Timestamp int64 `json:"@timestamp"`
	Seq       int   `json:"seq"`
}

func decodeDocs(docs []domain.Document) ([]stampedDoc, error) {
	out := make([]stampedDoc, 0, len(docs))
	for _, d := range docs {
		var sd stampedDoc
		if err := json.Unmarshal(d, &sd); err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, nil
}
