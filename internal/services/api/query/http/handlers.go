// Package http provides http transport for query
package http

import (
	stdhttp "net/http"

	"logzq/internal/modkit/httpkit"
	"logzq/internal/services/api/query/domain"
	svc "logzq/internal/services/api/query/service"
)

// Register mounts query endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// every matching document
	httpkit.PostJSON[domain.QueryInput](r, "/", h.query)

	// summed totals only
	httpkit.PostJSON[domain.QueryInput](r, "/count", h.count)
}

type handlers struct{ svc svc.Service }

func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}

func (h *handlers) count(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Count(r.Context(), in)
}
