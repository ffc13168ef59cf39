package sink

import (
	"context"
	"fmt"
	"sync"

	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/store"
	"logzq/internal/services/retrieval/domain"
)

const chBatch = 5000

// ClickHouse appends documents to a MergeTree table
type ClickHouse struct {
	db    store.Clickhouse
	table string
	batch int

	once    sync.Once
	initErr error
}

// NewClickHouse writes into table on db, DefaultTable when empty
func NewClickHouse(db store.Clickhouse, table string) (*ClickHouse, error) {
	if db == nil {
		return nil, perr.InvalidArgf("clickhouse sink needs LOGZQ_SINK_CH_URL")
	}
	t, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	return &ClickHouse{db: db, table: t, batch: chBatch}, nil
}

func (c *ClickHouse) ensure(ctx context.Context) error {
	c.once.Do(func() {
		c.initErr = c.db.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id     String,
	query      String,
	seq        UInt64,
	doc        String,
	fetched_at DateTime64(3, 'UTC')
) ENGINE = MergeTree ORDER BY (run_id, seq)`, c.table))
	})
	return c.initErr
}

func (c *ClickHouse) Write(ctx context.Context, run Run, docs []domain.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	if err := c.ensure(ctx); err != nil {
		return 0, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnknown, "creating table %s", c.table), "sink.clickhouse")
	}

	written := 0
	err := chunks(docs, c.batch, func(part []domain.Document, off int) error {
		rows := make([][]any, len(part))
		for i, d := range part {
			rows[i] = []any{run.ID, run.Query, uint64(off + i), text(d), run.FetchedAt}
		}
		if err := c.db.Insert(ctx, c.table, rows); err != nil {
			return err
		}
		written += len(rows)
		return nil
	})
	if err != nil {
		return written, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnknown, "writing to %s", c.table), "sink.clickhouse")
	}
	return written, nil
}

// Close leaves the connection open, the store owns it
func (c *ClickHouse) Close(context.Context) error { return nil }
