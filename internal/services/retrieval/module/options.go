package module

import (
	"logzq/internal/adapters/search/logzio"
	"logzq/internal/platform/config"
	"logzq/internal/services/retrieval/service"
)

// Options is everything the retrieval module needs to build its adapter and service
type Options struct {
	Client  logzio.Options
	Service service.Config
}

// FromConfig reads Options from c, which should already be scoped to LOGZQ_
// Unset keys keep the adapter and service defaults
func FromConfig(c config.Conf) Options {
	def := service.DefaultConfig()
	return Options{
		Client: logzio.Options{
			BaseURL:       c.MayURL("BASE_URL", ""),
			Path:          c.MayString("PATH", ""),
			Token:         c.MayString("TOKEN", ""),
			KibanaVersion: c.MayString("KIBANA_VERSION", ""),
			PinAddr:       c.MayString("PIN_ADDR", ""),
			Timeout:       c.MayDuration("HTTP_TIMEOUT", 0),
			MaxRetries:    c.MayInt("RETRIES", 0),
			RetryBase:     c.MayDuration("RETRY_BASE", 0),
		},
		Service: service.Config{
			PageSize:          c.MayInt("PAGE_SIZE", def.PageSize),
			HardCap:           c.MayInt("HARD_CAP", def.HardCap),
			DefaultWindowSize: c.MayDuration("WINDOW", def.DefaultWindowSize),
			IndexPrefix:       c.MayString("INDEX_PREFIX", def.IndexPrefix),
		},
	}
}
