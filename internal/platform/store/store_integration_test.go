//go:build integration_pg

package store

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"logzq/internal/platform/testkit/containers"

	"github.com/rs/zerolog"
)

func TestOpen_PostgresTxAndGuard_Integration(t *testing.T) {
	dsn := containers.Postgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := Open(ctx, Config{PG: PGConfig{Enabled: true, URL: dsn, MaxConns: 2, LogSQL: true}},
		WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close(ctx) }()

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}

	if _, err := s.PG.Exec(ctx, `create table kv (k text primary key, v int)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		ct, err := q.Exec(ctx, `insert into kv (k, v) values ($1, $2), ($3, $4)`, "a", 1, "b", 2)
		if err != nil {
			return err
		}
		if ct.RowsAffected() != 2 {
			t.Errorf("rows affected = %d", ct.RowsAffected())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	// a failing callback rolls back
	boom := errors.New("boom")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into kv (k, v) values ($1, $2)`, "c", 3); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx error = %v", err)
	}

	rs, err := s.PG.Query(ctx, `select k, v from kv order by k`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()
	if cols := rs.Columns(); len(cols) != 2 || cols[0] != "k" {
		t.Fatalf("columns = %v", cols)
	}
	var keys []string
	for rs.Next() {
		var (
			k string
			v int
		)
		if err := rs.Scan(&k, &v); err != nil {
			t.Fatalf("scan: %v", err)
		}
		keys = append(keys, k)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, rolled back row must be absent", keys)
	}

	var n int
	if err := s.PG.QueryRow(ctx, `select count(*) from kv`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("count = %d err = %v", n, err)
	}
}
