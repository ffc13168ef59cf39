// Package module wires the logz.io adapter and the retrieval service using modkit
package module

import (
	"logzq/internal/adapters/search/logzio"
	modkit "logzq/internal/modkit"
	"logzq/internal/modkit/httpkit"
	perr "logzq/internal/platform/errors"
	str "logzq/internal/platform/strings"
	"logzq/internal/services/retrieval/domain"
	"logzq/internal/services/retrieval/service"
)

// Ports is the port set other modules consume
type Ports struct {
	Retriever domain.RetrieverPort
}

// Module implements the retrieval module. It owns no routes, the query API
// module mounts them on top of Ports
type Module struct {
	deps  modkit.Deps
	name  string
	svc   *service.Service
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New builds the module from LOGZQ_ settings in deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	return NewWithOptions(deps, FromConfig(deps.Cfg.Prefix("LOGZQ_")), opts...)
}

// NewWithOptions builds the module from explicit options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("retrieval")}, opts...)...)

	client, err := logzio.NewClient(o.Client)
	if err != nil {
		return nil, perr.WithOp(err, "retrieval.module")
	}
	svc, err := service.New(client, o.Service)
	if err != nil {
		return nil, perr.WithOp(err, "retrieval.module")
	}

	deps.Logger().Debug().
		Str("module", b.Name).
		Int("page_size", o.Service.PageSize).
		Int("hard_cap", o.Service.HardCap).
		Dur("window", o.Service.DefaultWindowSize).
		Bool("pinned", o.Client.PinAddr != "").
		Msg("retrieval module ready")

	return &Module{
		deps:  deps,
		name:  b.Name,
		svc:   svc,
		ports: Ports{Retriever: svc},
	}, nil
}

// MountRoutes is a no-op
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Service exposes the concrete service for callers outside the HTTP surface
func (m *Module) Service() *service.Service { return m.svc }
