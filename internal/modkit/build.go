package modkit

import (
	"net/http"

	"logzq/internal/modkit/httpkit"
)

// Built is the resolved wiring of one module
type Built struct {
	Name   string
	Prefix string
	Mw     httpkit.Middlewares
	Ports  any

	// Subrouter may wrap the module router before routes register
	Subrouter func(httpkit.Router) httpkit.Router
	// Register adds routes after the module's own
	Register func(httpkit.Router)
}

// Option sets one field of Built
type Option func(*Built)

func WithName(name string) Option     { return func(b *Built) { b.Name = name } }
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from another module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}

// Mount routes a module under its prefix: middleware, then Subrouter, then
// register, then the Register hook
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(rr httpkit.Router) {
		rr = b.Subrouter(rr)
		register(rr)
		b.Register(rr)
	})
}
