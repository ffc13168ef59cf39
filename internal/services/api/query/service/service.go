// Package service turns query DTOs into retrieval calls
package service

import (
	"context"
	"time"

	"logzq/internal/platform/clock"
	perr "logzq/internal/platform/errors"
	"logzq/internal/services/api/query/domain"
	rdomain "logzq/internal/services/retrieval/domain"
)

// Service defines the query service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the query service on top of a retriever
type Svc struct {
	retriever rdomain.RetrieverPort
	maxRange  time.Duration
}

// New constructs a query service. maxRange <= 0 disables the range guard
func New(r rdomain.RetrieverPort, maxRange time.Duration) *Svc {
	if r == nil {
		panic("query.Service requires a non nil RetrieverPort")
	}
	return &Svc{retriever: r, maxRange: maxRange}
}

// Query retrieves every matching document
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.QueryResult, error) {
	spec, err := s.spec(in)
	if err != nil {
		return domain.QueryResult{}, err
	}
	docs, err := s.retriever.Query(ctx, spec)
	if err != nil {
		return domain.QueryResult{}, err
	}
	return domain.QueryResult{Count: len(docs), Documents: docs}, nil
}

// Count sums the reported totals without fetching documents
func (s *Svc) Count(ctx context.Context, in domain.QueryInput) (domain.CountResult, error) {
	spec, err := s.spec(in)
	if err != nil {
		return domain.CountResult{}, err
	}
	n, err := s.retriever.Count(ctx, spec)
	if err != nil {
		return domain.CountResult{}, err
	}
	return domain.CountResult{Total: n}, nil
}

func (s *Svc) spec(in domain.QueryInput) (rdomain.QuerySpec, error) {
	start, err := clock.Parse(in.Start)
	if err != nil {
		return rdomain.QuerySpec{}, perr.WithField(perr.InvalidArgf("invalid start: %v", err), "start")
	}
	end, err := clock.Parse(in.End)
	if err != nil {
		return rdomain.QuerySpec{}, perr.WithField(perr.InvalidArgf("invalid end: %v", err), "end")
	}
	if s.maxRange > 0 && end.Sub(start) > s.maxRange {
		return rdomain.QuerySpec{}, perr.WithField(
			perr.InvalidArgf("range %s exceeds the allowed %s", end.Sub(start), s.maxRange), "end")
	}

	var window time.Duration
	if in.Window != "" {
		if window, err = time.ParseDuration(in.Window); err != nil {
			return rdomain.QuerySpec{}, perr.WithField(perr.InvalidArgf("invalid window: %v", err), "window")
		}
	}
	return rdomain.QuerySpec{Query: in.Query, Start: start, End: end, WindowSize: window}, nil
}
