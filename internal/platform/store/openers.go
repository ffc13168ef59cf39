package store

import (
	"context"
	"fmt"
	"time"

	chx "logzq/internal/platform/store/ch"
	"logzq/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 3 * time.Second
)

// openPG opens the pool and publishes the adapter only once a ping succeeds
func openPG(ctx context.Context, cfg PGConfig, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 150 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	policy.MaxElapsedTime = 0

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	notify := func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not ready")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
	if err := backoff.RetryNotify(ping, b, notify); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, Role: cfg.Role})
	if err != nil {
		return nil, err
	}
	a := newCHAdapter(c)
	if err := a.Ping(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("clickhouse ping failed: %w", err)
	}
	return a, nil
}
