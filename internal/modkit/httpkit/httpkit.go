// Package httpkit is the routing surface modules build on. Modules import it
// instead of the platform http package
package httpkit

import (
	"net/http"

	phttp "logzq/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

func OK(data any) Response     { return phttp.OK(data) }
func NoContent() Response      { return phttp.NoContent() }
func Error(err error) Response { return phttp.Error(err) }

// Call wraps a bodiless handler in the envelope. A returned Response is sent as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// PostJSON binds and validates a T from the body before calling fn
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, fn)
}

// Get mounts a bodiless GET handler with the response envelope
func Get(r Router, path string, fn func(*http.Request) (any, error)) { phttp.GetJSON(r, path, fn) }
