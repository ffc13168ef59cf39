// Package service implements exhaustive retrieval against the search endpoint
package service

import (
	"context"
	"time"

	"logzq/internal/platform/clock"
	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/logger"
	"logzq/internal/services/retrieval/domain"

	"github.com/google/uuid"
)

// Service implements domain.RetrieverPort. It holds no per-call state and is
// safe for concurrent use
type Service struct {
	transport domain.Transport
	cfg       Config
}

var _ domain.RetrieverPort = (*Service)(nil)

// New constructs the retrieval service
func New(t domain.Transport, cfg Config) (*Service, error) {
	if t == nil {
		panic("retrieval.Service requires a non nil Transport")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{transport: t, cfg: cfg}, nil
}

// Config returns the settings the service was built with
func (s *Service) Config() Config { return s.cfg }

// Query returns every document matching spec.Query stamped within
// [spec.Start, spec.End], in window order. The first error aborts the call and
// no partial result is returned
func (s *Service) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Document, error) {
	spec, err := s.normalize(spec)
	if err != nil {
		return nil, err
	}
	ctx = withRequestID(ctx)
	log := logger.C(ctx)

	idx := ResolveIndices(s.cfg.IndexPrefix, spec.Start, spec.End)
	windows := Windows(clock.Millis(spec.Start), clock.Millis(spec.End), clock.DurationMillis(spec.WindowSize))

	log.Info().
		Str("query", spec.Query).
		Time("start", spec.Start).
		Time("end", spec.End).
		Int("windows", len(windows)).
		Int("indices", len(idx)).
		Msg("retrieval: query started")

	began := time.Now()
	var out []domain.Document
	for _, w := range windows {
		docs, err := s.collect(ctx, spec.Query, w, idx)
		if err != nil {
			log.Error().Err(err).Str("window", w.String()).Msg("retrieval: query failed")
			return nil, perr.WithOp(err, "retrieval.Query")
		}
		out = append(out, docs...)
		log.Debug().Str("window", w.String()).Int("docs", len(docs)).Msg("retrieval: window done")
	}

	log.Info().
		Int("docs", len(out)).
		Dur("took", time.Since(began)).
		Msg("retrieval: query finished")
	return out, nil
}

// Count sums the reported totals of each top-level window with size-0 searches.
// It never splits, so it costs one request per window
func (s *Service) Count(ctx context.Context, spec domain.QuerySpec) (int64, error) {
	spec, err := s.normalize(spec)
	if err != nil {
		return 0, err
	}
	ctx = withRequestID(ctx)

	idx := ResolveIndices(s.cfg.IndexPrefix, spec.Start, spec.End)
	var n int64
	for _, w := range Windows(clock.Millis(spec.Start), clock.Millis(spec.End), clock.DurationMillis(spec.WindowSize)) {
		page, err := s.fetch(ctx, domain.PageRequest{Query: spec.Query, Window: w, Indices: idx})
		if err != nil {
			return 0, perr.WithOp(err, "retrieval.Count")
		}
		n += page.Total
	}

	logger.C(ctx).Info().Str("query", spec.Query).Int64("total", n).Msg("retrieval: count finished")
	return n, nil
}

// Windows partitions [start, end] into consecutive closed windows of step
// milliseconds; the last one is clipped to end. start == end yields none
func Windows(start, end, step int64) []domain.TimeWindow {
	var out []domain.TimeWindow
	for t0 := start; t0 < end; t0 += step {
		t1 := t0 + step - 1
		if t0+step >= end {
			t1 = end
		}
		out = append(out, domain.TimeWindow{Start: t0, End: t1})
	}
	return out
}

func (s *Service) normalize(spec domain.QuerySpec) (domain.QuerySpec, error) {
	if spec.Start.IsZero() || spec.End.IsZero() {
		return spec, perr.InvalidArgf("start and end are required")
	}
	if spec.End.Before(spec.Start) {
		return spec, perr.WithField(perr.InvalidArgf("end %s is before start %s",
			spec.End.Format(time.RFC3339), spec.Start.Format(time.RFC3339)), "end")
	}
	switch {
	case spec.WindowSize == 0:
		spec.WindowSize = s.cfg.DefaultWindowSize
	case spec.WindowSize < 0:
		return spec, perr.WithField(perr.InvalidArgf("window size must be positive"), "window")
	}
	spec.Start, spec.End = spec.Start.UTC(), spec.End.UTC()
	return spec, nil
}

func withRequestID(ctx context.Context) context.Context {
	if logger.RequestID(ctx) != "" {
		return ctx
	}
	return logger.WithRequest(ctx, uuid.NewString())
}
