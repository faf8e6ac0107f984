package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	logLevelKey   = "log-level"
	fileKey       = "file"
	componentsKey = "components"
	updatesKey    = "updates"
	itersKey      = "iters"
)

func main() {
	cmd := &cli.Command{
		Name:  "rerender",
		Usage: "Inspect node identity decisions and benchmark update batching",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "debug, info, warn or error",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "identity",
				Usage: "Print whether each prev/next descriptor pair updates in place",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  fileKey,
						Usage: "YAML or JSON list of {name, prev, next}; built-in cases when empty",
					},
				},
				Action: identity,
			},
			{
				Name:  "bench",
				Usage: "Compare batched and unbatched enqueueing of updates",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  componentsKey,
						Usage: "Number of distinct components",
						Value: 100,
					},
					&cli.UintFlag{
						Name:  updatesKey,
						Usage: "Updates enqueued per iteration",
						Value: 1_000,
					},
					&cli.UintFlag{
						Name:  itersKey,
						Usage: "Iterations per scenario",
						Value: 100,
					},
				},
				Action: bench,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log := setupLogger("error")
		log.Fatal().Err(err).Msg("rerender failed")
	}
}

func setupLogger(level string) zerolog.Logger {
	var logLevel zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(logLevel).
		With().
		Timestamp().
		Logger()
}

func loggerFor(cmd *cli.Command) zerolog.Logger {
	return setupLogger(cmd.Root().String(logLevelKey))
}
