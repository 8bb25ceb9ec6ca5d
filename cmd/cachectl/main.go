// Command cachectl runs administrative operations against the results cache.
package main

import (
	"context"
	"database/sql"
	"os"
	"strings"

	fxmodules "archery-results/internal/fx"
	applogger "archery-results/internal/logger"
	"archery-results/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		reportFailure(applogger.New(), os.Args[1:], err)
		os.Exit(1)
	}
}

// reportFailure logs at fatal level without exiting so callers control the
// exit code.
func reportFailure(l zerolog.Logger, args []string, err error) {
	l.WithLevel(zerolog.FatalLevel).Err(err).Str("command", strings.Join(args, " ")).Msg("cachectl failed")
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cachectl",
		Usage: "manage the archery results cache",
		Commands: []*cli.Command{
			{
				Name:  "flush",
				Usage: "delete every cached payload",
				Action: func(c *cli.Context) error {
					return run(func(ctx context.Context, results *service.ResultsService, logger zerolog.Logger) error {
						n, err := results.Flush(ctx)
						if err != nil {
							return err
						}
						logger.Info().Int64("deleted", n).Msg("cache flush complete")
						return nil
					})(c.Context)
				},
			},
			{
				Name:  "purge",
				Usage: "delete expired cache entries",
				Action: func(c *cli.Context) error {
					return run(func(ctx context.Context, results *service.ResultsService, logger zerolog.Logger) error {
						_, err := results.PurgeExpired(ctx)
						return err
					})(c.Context)
				},
			},
			{
				Name:  "warm",
				Usage: "fetch and assemble the configured tournaments into the cache",
				Action: func(c *cli.Context) error {
					return run(func(ctx context.Context, results *service.ResultsService, logger zerolog.Logger) error {
						db, err := results.GetArcheryDB(ctx)
						if err != nil {
							return err
						}
						logger.Info().
							Str("build_id", db.BuildID).
							Int("archers", len(db.Archers)).
							Msg("cache warmed")
						return nil
					})(c.Context)
				},
			},
		},
	}
}

type operation func(ctx context.Context, results *service.ResultsService, logger zerolog.Logger) error

// run builds the dependency graph once, runs op and closes the database.
func run(op operation) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var opErr error
		app := fx.New(
			fxmodules.Module,
			fx.NopLogger,
			fx.Invoke(func(results *service.ResultsService, db *sql.DB, logger zerolog.Logger) {
				defer db.Close()
				opErr = op(ctx, results, logger)
			}),
		)
		if err := app.Err(); err != nil {
			return err
		}
		return opErr
	}
}
