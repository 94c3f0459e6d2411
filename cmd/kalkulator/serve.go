package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: "Serves the calculator API. Settings come from the environment and an optional .env file:\n" +
			"APP_PORT, APP_ENV, LOG_LEVEL, CORS_ALLOWED_ORIGINS, RATES_FILE.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var envFiles []string
			if envFile != "" {
				envFiles = append(envFiles, envFile)
			}
			cfg, err := config.LoadServerConfig(envFiles...)
			if err != nil {
				return err
			}

			ratesFile := opts.ratesFile
			if ratesFile == "" {
				ratesFile = cfg.RatesFile
			}
			engine, err := opts.newEngineWithRates(ratesFile)
			if err != nil {
				return err
			}

			server.Version = version
			logger := server.NewLogger(cfg)
			router := server.NewRouter(cfg, server.NewHandler(engine, logger), logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.WithField("addr", cfg.Addr()).Info("starting server")
			return server.Run(ctx, cfg, router, logger)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Environment file (default .env)")
	return cmd
}
