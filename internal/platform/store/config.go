package store

import (
	"time"

	"logzq/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping, 0 means 6
	ConnectRetries int
	// PingTimeout bounds each boot ping, 0 means 3s
	PingTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string
}

// FromConfig reads backend settings from c, scoped like LOGZQ_SINK_.
// A backend is enabled when its URL is set
func FromConfig(c config.Conf) Config {
	pgURL := c.MayString("PG_URL", "")
	chURL := c.MayString("CH_URL", "")
	return Config{
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(c.MayInt("PG_MAX_CONNS", 4)),
			LogSQL:         c.MayBool("LOG_SQL", false),
			SlowQueryMs:    c.MayInt("SLOW_MS", 500),
			ConnectRetries: c.MayInt("PG_CONNECT_RETRIES", 0),
			PingTimeout:    c.MayDuration("PG_PING_TIMEOUT", 0),
		},
		CH: CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    "sink",
		},
	}
}
