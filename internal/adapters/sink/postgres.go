package sink

import (
	"context"
	"fmt"
	"strings"
	"sync"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/store"
	"logzq/internal/services/retrieval/domain"
)

const pgBatch = 200

// Postgres appends documents to a jsonb table
type Postgres struct {
	db    store.TxRunner
	table string
	batch int

	once    sync.Once
	initErr error
}

// NewPostgres writes into table on db, DefaultTable when empty
func NewPostgres(db store.TxRunner, table string) (*Postgres, error) {
	if db == nil {
		return nil, perr.InvalidArgf("postgres sink needs LOGZQ_SINK_PG_URL")
	}
	t, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	return &Postgres{db: db, table: t, batch: pgBatch}, nil
}

func (p *Postgres) ensure(ctx context.Context) error {
	p.once.Do(func() {
		_, p.initErr = p.db.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id     text        NOT NULL,
	query      text        NOT NULL,
	seq        bigint      NOT NULL,
	doc        jsonb       NOT NULL,
	fetched_at timestamptz NOT NULL,
	PRIMARY KEY (run_id, seq)
)`, p.table))
	})
	return p.initErr
}

// Write inserts docs in one transaction so a failed run leaves no partial rows
func (p *Postgres) Write(ctx context.Context, run Run, docs []domain.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	if err := p.ensure(ctx); err != nil {
		return 0, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnknown, "creating table %s", p.table), "sink.postgres")
	}

	written := 0
	err := p.db.Tx(ctx, func(q store.RowQuerier) error {
		return chunks(docs, p.batch, func(part []domain.Document, off int) error {
			sql, args := p.insert(run, part, off)
			ct, err := q.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
			written += int(ct.RowsAffected())
			return nil
		})
	})
	if err != nil {
		return 0, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnknown, "writing to %s", p.table), "sink.postgres")
	}
	return written, nil
}

func (p *Postgres) insert(run Run, part []domain.Document, off int) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (run_id, query, seq, doc, fetched_at) VALUES ", p.table)

	args := make([]any, 0, len(part)*5)
	for i, d := range part {
		if i > 0 {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d::jsonb, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, run.ID, run.Query, int64(off+i), text(d), run.FetchedAt)
	}
	return b.String(), args
}

// Close leaves the pool open, the store owns it
func (p *Postgres) Close(context.Context) error { return nil }
