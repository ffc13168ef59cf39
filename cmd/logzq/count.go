package main

import (
	"context"
	"fmt"

	"logzq/internal/platform/logger"

	"github.com/urfave/cli/v3"
)

func countCommand() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Print the summed per window totals without fetching documents",
		Flags: rangeFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			spec, err := specFrom(c)
			if err != nil {
				return err
			}
			r, err := newRetriever()
			if err != nil {
				return err
			}

			ctx = withCLIRequest(ctx)
			n, err := r.Count(ctx, spec)
			if err != nil {
				return err
			}
			logger.C(ctx).Debug().Int64("total", n).Msg("count finished")

			_, err = fmt.Fprintln(c.Root().Writer, n)
			return err
		},
	}
}
