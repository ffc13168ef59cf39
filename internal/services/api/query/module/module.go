// Package module wires query into the API using modkit
package module

import (
	"net/http"

	modkit "logzq/internal/modkit"
	"logzq/internal/modkit/httpkit"
	str "logzq/internal/platform/strings"
	queryhttp "logzq/internal/services/api/query/http"
	querysvc "logzq/internal/services/api/query/service"
)

// Module implements the query module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc querysvc.Service
}

// New constructs the query module. It needs Ports injected with modkit.WithPorts
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("query"),
		modkit.WithPrefix("/query"),
		modkit.WithMiddlewares(httpkit.JSONOnly()),
	}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Retriever == nil {
		panic("query module requires Ports with a Retriever")
	}
	svc := querysvc.New(p.Retriever, o.MaxRange)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     p,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	deps.Logger().Debug().
		Str("module", b.Name).
		Dur("max_range", o.MaxRange).
		Bool("guarded", o.Auth != nil).
		Msg("query module ready")

	external := b.Register
	m.register = func(r httpkit.Router) {
		httpkit.Protected(r, o.Auth, func(pr httpkit.Router) {
			queryhttp.Register(pr, m.svc)
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the ports the module was built with
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
