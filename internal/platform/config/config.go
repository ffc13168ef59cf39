// Package config reads settings from environment variables under a prefix
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"logzq/internal/platform/logger"
)

// Conf is a view over the environment scoped to a prefix such as LOGZQ_ or LOGZQ_API_
type Conf struct{ prefix string }

// New is the unscoped root view
func New() Conf { return Conf{} }

// Prefix narrows c, New().Prefix("LOGZQ_").Prefix("API_") reads LOGZQ_API_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string    { return c.prefix + k }
func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// may parses key with parse. Unset keys yield def, unparsable ones log and yield def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Str("default", fmt.Sprint(def)).
			Err(err).
			Msg("invalid config value, using default")
		return def
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go duration syntax such as 250ms or 12h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayURL accepts absolute URLs only and drops a trailing slash
func (c Conf) MayURL(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if !u.IsAbs() {
			return "", fmt.Errorf("%q is not absolute", s)
		}
		return strings.TrimRight(s, "/"), nil
	})
}

// MayCSV splits on commas and drops blanks. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Overlay exports values, keyed relative to c, into the environment so
// FromConfig readers see them. Variables already set win. Returns how many were set.
// It does not log, so it can run before the logger is built
func (c Conf) Overlay(values map[string]string) (int, error) {
	var (
		n    int
		errs []error
	)
	for k, v := range values {
		full := c.key(k)
		if strings.TrimSpace(os.Getenv(full)) != "" {
			continue
		}
		if err := os.Setenv(full, v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", full, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
