package service

import (
	"time"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/net/http/bind"
)

const (
	// DefaultPageSize is the number of hits requested per page
	DefaultPageSize = 500

	// DefaultHardCap is the deepest offset+size the search service will serve
	DefaultHardCap = 10000

	// DefaultWindowSize is the width of the driver's top-level windows
	DefaultWindowSize = 12 * time.Hour

	// DefaultIndexPrefix is the shared prefix of the daily customer indices
	DefaultIndexPrefix = "logzioCustomerIndex"
)

// Config holds the pagination and windowing knobs of the retrieval service
type Config struct {
	PageSize          int           `json:"page_size" validate:"gt=0"`
	HardCap           int           `json:"hard_cap" validate:"gtefield=PageSize"`
	DefaultWindowSize time.Duration `json:"window" validate:"gt=0"`
	IndexPrefix       string        `json:"index_prefix" validate:"required"`
}

// DefaultConfig returns the settings the search service is known to accept
func DefaultConfig() Config {
	return Config{
		PageSize:          DefaultPageSize,
		HardCap:           DefaultHardCap,
		DefaultWindowSize: DefaultWindowSize,
		IndexPrefix:       DefaultIndexPrefix,
	}
}

// Validate checks the invariants between the knobs
func (c Config) Validate() error {
	if err := bind.Get().Validator.Struct(c); err != nil {
		field, msg := bind.ValidationFieldAndMessage(err)
		return perr.WithField(perr.Newf(perr.ErrorCodeInvalidArgument, "retrieval config: %s", msg), field)
	}
	return nil
}
