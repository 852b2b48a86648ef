package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"devtoolshub/internal/app"
	"devtoolshub/internal/content"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tutorials over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lib, err := content.Load()
			if err != nil {
				return err
			}

			prefs, err := app.OpenPreferences(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer closePrefs(prefs, opts.logger)

			srv, err := app.NewServer(opts.cfg, app.Deps{
				Library: lib,
				Prefs:   prefs,
				Logger:  opts.logger,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	f := cmd.Flags()
	f.String("port", "8080", "port to listen on")
	f.String("base-url", "http://localhost:8080", "public base URL used for canonical links")
	f.String("mysql-dsn", "", "MySQL DSN or mysql:// URL for visitor preferences")
	f.Bool("metrics", true, "expose Prometheus metrics on /metrics")
	f.Float64("api-rate", 20, "sustained /api requests per second")
	f.Int("api-burst", 40, "burst size for /api requests")
	return cmd
}
