package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "logzq/internal/platform/net/http"
	"logzq/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Timeout bounds each request, 0 means 10m
	Timeout time.Duration
	// Slow marks access log lines at warn, 0 means 30s
	Slow time.Duration
	// MaxInFlight caps concurrent requests, 0 means no cap
	MaxInFlight int
	// CORS is passed through to the cors middleware
	CORS middleware.CORSOptions
}

// CommonStack returns the baseline middleware for API scopes
func CommonStack(opts ...StackOptions) Middlewares {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Minute
	}
	if o.Slow <= 0 {
		o.Slow = 30 * time.Second
	}
	stack := Middlewares{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return stack
}

// JSONOnly answers 415 to bodies that are not application/json
func JSONOnly() func(http.Handler) http.Handler {
	return middleware.AllowContentType("application/json")
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
