// Package http serves liveness, build and process information for the API
package http

import (
	"net/http"
	"time"

	"logzq/internal/core/version"
	"logzq/internal/modkit/httpkit"
)

// Deps feeds the meta routes. Modules lists the mounted modules at request time
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Now         func() time.Time
	Modules     func() []string
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Now     string `json:"now"`
}

// ServiceResponse is the body of GET /service. Uptime is in seconds
type ServiceResponse struct {
	Name    string   `json:"name"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Modules []string `json:"modules"`
}

// Register mounts GET /health, /version and /service
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Modules == nil {
		d.Modules = func() []string { return nil }
	}

	httpkit.Get(r, "/health", func(*http.Request) (any, error) {
		return HealthResponse{OK: true, Service: d.ServiceName, Now: d.Now().UTC().Format(time.RFC3339)}, nil
	})
	httpkit.Get(r, "/version", func(*http.Request) (any, error) {
		return version.Info(d.ServiceName), nil
	})
	httpkit.Get(r, "/service", func(*http.Request) (any, error) {
		return ServiceResponse{
			Name:    d.ServiceName,
			Started: d.StartedAt.UTC().Format(time.RFC3339),
			Uptime:  int64(d.Now().Sub(d.StartedAt) / time.Second),
			Modules: d.Modules(),
		}, nil
	})
}
