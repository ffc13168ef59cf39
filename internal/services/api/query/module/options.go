package module

import (
	"time"

	"logzq/internal/modkit/httpkit"
	"logzq/internal/platform/config"
	"logzq/internal/platform/net/middleware"
	rdomain "logzq/internal/services/retrieval/domain"
)

// Ports are the ports the query module consumes
type Ports struct {
	Retriever rdomain.RetrieverPort
}

// Options configures the query module
type Options struct {
	// MaxRange rejects requests spanning more than this, 0 disables the guard
	MaxRange time.Duration
	// Auth guards the routes, nil leaves them open
	Auth middleware.AuthPort
}

// FromConfig reads Options from c, which should already be scoped to LOGZQ_API_
func FromConfig(c config.Conf) Options {
	return Options{
		MaxRange: c.MayDuration("MAX_RANGE", 0),
		Auth:     httpkit.NewKeyPort(c.MayCSV("KEY", nil)...),
	}
}
