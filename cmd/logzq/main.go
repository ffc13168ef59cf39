// Command logzq retrieves every log document matching a query from Logz.io
package main

import (
	"context"
	"fmt"
	"os"

	"logzq/internal/core/version"
	"logzq/internal/platform/config"
	"logzq/internal/platform/logger"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signalContext()
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "logzq:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "logzq",
		Usage:   "Exhaustive retrieval from the Logz.io search API",
		Version: version.Info("logzq").Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML file whose [logzq] table fills unset LOGZQ_ variables",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			queryCommand(),
			countCommand(),
		},
	}
}

var initLogger = logger.Init

// setup overlays the config file onto the environment, then initializes
// logging so LOG_ keys from the file apply
func setup(ctx context.Context, c *cli.Command) (context.Context, error) {
	path := c.String("config")
	applied := 0
	if path != "" {
		values, err := config.LoadFile(path)
		if err != nil {
			return ctx, err
		}
		if applied, err = config.New().Overlay(values); err != nil {
			return ctx, err
		}
	}

	opt := logger.FromEnv()
	if c.Bool("debug") {
		opt.Level = "debug"
	}
	opt.Fields = map[string]string{"version": version.Info("logzq").Version}
	initLogger(opt)

	if path != "" {
		logger.Get().Debug().Str("path", path).Int("applied", applied).Msg("config file loaded")
	}
	return ctx, nil
}
