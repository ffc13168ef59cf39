package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"logzq/internal/adapters/sink"
	modkit "logzq/internal/modkit"
	"logzq/internal/platform/clock"
	"logzq/internal/platform/config"
	perr "logzq/internal/platform/errors"
	"logzq/internal/platform/logger"
	"logzq/internal/platform/store"
	"logzq/internal/services/retrieval/domain"
	retrievalmod "logzq/internal/services/retrieval/module"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

// newRetriever builds the retriever from LOGZQ_ settings, swapped in tests
var newRetriever = func() (domain.RetrieverPort, error) {
	m, err := retrievalmod.New(modkit.Deps{Cfg: config.New(), Log: logger.Named("cli")})
	if err != nil {
		return nil, err
	}
	return m.Service(), nil
}

func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "query",
			Aliases:  []string{"q"},
			Usage:    "Lucene query string",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "start",
			Usage:    "Range start, RFC3339, YYYY-MM-DD or epoch milliseconds",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "end",
			Usage:    "Range end (inclusive), same formats as --start",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "window",
			Usage: "Window size the range is walked in, 0 uses LOGZQ_WINDOW or 12h",
		},
	}
}

func specFrom(c *cli.Command) (domain.QuerySpec, error) {
	start, err := clock.Parse(c.String("start"))
	if err != nil {
		return domain.QuerySpec{}, perr.WithField(perr.InvalidArgf("invalid --start: %v", err), "start")
	}
	end, err := clock.Parse(c.String("end"))
	if err != nil {
		return domain.QuerySpec{}, perr.WithField(perr.InvalidArgf("invalid --end: %v", err), "end")
	}
	return domain.QuerySpec{
		Query:      c.String("query"),
		Start:      start,
		End:        end,
		WindowSize: c.Duration("window"),
	}, nil
}

// withCLIRequest stamps a request id so every log line of one run correlates
func withCLIRequest(ctx context.Context) context.Context {
	return logger.WithRequest(ctx, uuid.NewString())
}

// openStore connects the database sinks from LOGZQ_SINK_ settings, swapped in tests
var openStore = func(ctx context.Context) (*store.Store, error) {
	cfg := store.FromConfig(config.New().Prefix("LOGZQ_SINK_"))
	return store.Open(ctx, cfg, store.WithLogger(*logger.Named("sink")))
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Fetch every matching document and export it",
		Flags: append(rangeFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write documents to this file instead of stdout (ndjson sink)",
			},
			&cli.StringFlag{
				Name:  "sink",
				Usage: "Destination: ndjson, postgres or clickhouse",
				Value: "ndjson",
			},
			&cli.StringFlag{
				Name:  "table",
				Usage: "Table the database sinks write into",
				Value: sink.DefaultTable,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			spec, err := specFrom(c)
			if err != nil {
				return err
			}
			r, err := newRetriever()
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			ctx = logger.WithRequest(ctx, runID)

			out, err := openSink(ctx, c)
			if err != nil {
				return err
			}
			defer func() { _ = out.Close(ctx) }()

			began := time.Now()
			docs, err := r.Query(ctx, spec)
			if err != nil {
				return err
			}

			run := sink.Run{ID: runID, Query: spec.Query, FetchedAt: time.Now().UTC()}
			n, err := out.Write(ctx, run, docs)
			if err != nil {
				return err
			}

			logger.C(ctx).Info().
				Int("documents", n).
				Str("sink", c.String("sink")).
				Dur("elapsed", time.Since(began)).
				Msg("query finished")
			return nil
		},
	}
}

// openSink resolves --sink before any fetching so bad settings fail fast
func openSink(ctx context.Context, c *cli.Command) (sink.Sink, error) {
	t := sink.Target{Kind: c.String("sink"), Table: c.String("table")}

	switch t.Kind {
	case "postgres", "clickhouse":
		st, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		t.Store = st
		s, err := sink.New(t)
		if err != nil {
			_ = st.Close(ctx)
			return nil, err
		}
		return storeSink{Sink: s, st: st}, nil
	}

	t.Out = c.Root().Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}
		t.Out, t.OwnsOut = f, true
	}
	if t.Out == nil {
		t.Out = os.Stdout
	}
	return sink.New(t)
}

// storeSink closes the store along with the sink
type storeSink struct {
	sink.Sink
	st *store.Store
}

func (s storeSink) Close(ctx context.Context) error {
	return errors.Join(s.Sink.Close(ctx), s.st.Close(ctx))
}
