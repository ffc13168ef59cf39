package service

import (
	"context"
	"errors"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/logger"
	"logzq/internal/services/retrieval/domain"
)

// fetch runs one page request through the transport and decodes the first sub-response
func (s *Service) fetch(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PageResult{}, canceled(err)
	}

	body, err := BuildRequest(req)
	if err != nil {
		return domain.PageResult{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode search request")
	}

	resp, err := s.transport.Execute(ctx, body)
	if err != nil {
		if ctx.Err() != nil && !perr.IsCode(err, perr.ErrorCodeCanceled) {
			return domain.PageResult{}, canceled(ctx.Err())
		}
		return domain.PageResult{}, err
	}
	if len(resp.Responses) == 0 {
		return domain.PageResult{}, perr.JSONErrf("search response carried no sub-responses")
	}

	r := resp.Responses[0]
	if r.Error != nil {
		se := &domain.SearchError{Type: r.Error.Type, Reason: r.Error.Reason}
		return domain.PageResult{}, perr.Wrap(se, perr.ErrorCodeSearch, "search rejected the request")
	}

	docs := make([]domain.Document, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		docs = append(docs, sourceOf(h))
	}
	return domain.PageResult{
		Total:      r.Hits.Total.Value,
		LowerBound: r.Hits.Total.LowerBound(),
		Documents:  docs,
	}, nil
}

var nullDoc = domain.Document("null")

// sourceOf returns the hit's _source, or a JSON null when the hit carried none
func sourceOf(h domain.Hit) domain.Document {
	if len(h.Source) == 0 {
		return nullDoc
	}
	return h.Source
}

// drain pages through w until the reported total is exhausted. When the total
// is above the hard cap, or only a lower bound, it returns early with split set
// and no documents so the caller can bisect
func (s *Service) drain(ctx context.Context, query string, w domain.TimeWindow, idx domain.IndexSet) (docs []domain.Document, total int64, split bool, err error) {
	var (
		offset int
		hard   = int64(s.cfg.HardCap)
		log    = logger.C(ctx)
	)
	total = int64(s.cfg.PageSize)

	for int64(offset) < total {
		size := min(s.cfg.PageSize, s.cfg.HardCap-offset)
		if size <= 0 {
			break
		}

		log.Debug().
			Int64("window_start", w.Start).
			Int64("window_end", w.End).
			Int("offset", offset).
			Int64("total", total).
			Msg("retrieval: fetching page")

		page, err := s.fetch(ctx, domain.PageRequest{
			Query:   query,
			Window:  w,
			Offset:  offset,
			Size:    size,
			Indices: idx,
		})
		if err != nil {
			return nil, 0, false, err
		}

		total = page.Total
		if total > hard || page.LowerBound {
			log.Warn().
				Int64("total", total).
				Bool("lower_bound", page.LowerBound).
				Int("hard_cap", s.cfg.HardCap).
				Str("window", w.String()).
				Msg("retrieval: total above hard cap, splitting window")
			return nil, total, true, nil
		}

		docs = append(docs, page.Documents...)
		offset += size
	}

	return docs, total, false, nil
}

// collect retrieves every document of root, bisecting windows whose total is
// above the hard cap. Pending windows live on an explicit stack; the later half
// is pushed first so output keeps the earlier half ahead of it
func (s *Service) collect(ctx context.Context, query string, root domain.TimeWindow, idx domain.IndexSet) ([]domain.Document, error) {
	var out []domain.Document
	stack := []domain.TimeWindow{root}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		docs, total, split, err := s.drain(ctx, query, w, idx)
		if err != nil {
			return nil, err
		}
		if !split {
			out = append(out, docs...)
			continue
		}

		if !w.Splittable() {
			ue := &domain.UnsplittableWindowError{Window: w, Total: total, Cap: s.cfg.HardCap}
			return nil, perr.Wrap(ue, perr.ErrorCodeUnsplittable, "window cannot be split")
		}
		lo, hi := w.Bisect()
		stack = append(stack, hi, lo)
	}

	return out, nil
}

func canceled(err error) error {
	msg := "retrieval canceled"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "retrieval deadline exceeded"
	}
	return perr.Wrap(err, perr.ErrorCodeCanceled, msg)
}
