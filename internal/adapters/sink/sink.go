// Package sink writes retrieved documents to an export destination
package sink

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/store"
	"logzq/internal/services/retrieval/domain"
)

// Run identifies one retrieval whose documents are being exported
type Run struct {
	ID        string
	Query     string
	FetchedAt time.Time
}

// Sink accepts the documents of one run
type Sink interface {
	// Write stores docs in order and reports how many were written
	Write(ctx context.Context, run Run, docs []domain.Document) (int, error)
	Close(ctx context.Context) error
}

// Kinds lists the accepted --sink values
var Kinds = []string{"ndjson", "postgres", "clickhouse"}

// DefaultTable is used when no table name is given
const DefaultTable = "logzq_documents"

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkTable rejects names that are not plain sql identifiers.
// The name is interpolated into DDL and cannot be bound
func checkTable(name string) (string, error) {
	if name == "" {
		return DefaultTable, nil
	}
	if !tableRe.MatchString(name) {
		return "", perr.WithField(perr.InvalidArgf("invalid table name %q", name), "table")
	}
	return name, nil
}

// text renders d for storage; an empty document is stored as JSON null
func text(d domain.Document) string {
	if len(d) == 0 {
		return "null"
	}
	return string(d)
}

func chunks[T any](xs []T, n int, fn func(part []T, offset int) error) error {
	for off := 0; off < len(xs); off += n {
		end := min(off+n, len(xs))
		if err := fn(xs[off:end], off); err != nil {
			return fmt.Errorf("chunk at %d: %w", off, err)
		}
	}
	return nil
}

// Target carries what each kind of sink needs
type Target struct {
	Kind  string
	Table string
	Store *store.Store
	Out   io.Writer
	// OwnsOut makes the ndjson sink close Out
	OwnsOut bool
}

// New builds the sink named by t.Kind
func New(t Target) (Sink, error) {
	switch t.Kind {
	case "", "ndjson":
		if t.Out == nil {
			return nil, perr.InvalidArgf("ndjson sink needs an output")
		}
		return NewNDJSON(t.Out, t.OwnsOut), nil
	case "postgres":
		if t.Store == nil {
			return nil, perr.InvalidArgf("postgres sink needs a store")
		}
		return NewPostgres(t.Store.PG, t.Table)
	case "clickhouse":
		if t.Store == nil {
			return nil, perr.InvalidArgf("clickhouse sink needs a store")
		}
		return NewClickHouse(t.Store.CH, t.Table)
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown sink %q, want one of %v", t.Kind, Kinds), "sink")
	}
}
