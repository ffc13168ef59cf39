// Package api provides the HTTP API for the application
package api

import (
	"logzq/internal/platform/config"
	"logzq/internal/platform/logger"
	phttp "logzq/internal/platform/net/http"

	"logzq/internal/core/version"
	"logzq/internal/modkit"
	"logzq/internal/modkit/httpkit"
	"logzq/internal/modkit/module"
	"logzq/internal/modkit/swaggerkit"

	metamod "logzq/internal/services/api/meta/module"
	querymod "logzq/internal/services/api/query/module"
	retrievalmod "logzq/internal/services/retrieval/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger

	// Retrieval overrides the module built from LOGZQ_ settings
	Retrieval module.Module
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: opt.Logger,
	}

	// retrieval owns the RetrieverPort the query module consumes
	retrieval := opt.Retrieval
	if retrieval == nil {
		m, err := retrievalmod.New(deps)
		if err != nil {
			return err
		}
		retrieval = m
	}
	rp := module.MustPortsOf[retrievalmod.Ports](retrieval)

	query := querymod.New(
		deps,
		querymod.FromConfig(deps.Cfg.Prefix("LOGZQ_API_")),
		modkit.WithPorts(querymod.Ports{Retriever: rp.Retriever}),
	)

	mods := []module.Module{
		metamod.New(deps),
		retrieval,
		query,
	}

	api := deps.Cfg.Prefix("LOGZQ_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     api.MayDuration("REQUEST_TIMEOUT", 0),
		Slow:        api.MayDuration("SLOW", 0),
		MaxInFlight: api.MayInt("MAX_IN_FLIGHT", 8),
	})

	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})

	// documents under /api/docs, LOGZQ_API_DOCS=false hides them
	swaggerkit.Reset()
	swaggerkit.Register(swaggerkit.Version(version.Info("logzq-api").Version))
	if len(api.MayCSV("KEY", nil)) > 0 {
		swaggerkit.Register(swaggerkit.APIKeySecurity("/query"))
	}
	swaggerkit.Mount(r, api.MayBool("DOCS", true))

	deps.Logger().Info().Strs("modules", module.Names()).Msg("api mounted")
	return nil
}
