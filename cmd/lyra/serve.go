package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lyra/internal/analysis"
	"lyra/internal/config"
	"lyra/internal/gemini"
	"lyra/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis server",
	Long: `serve runs the HTTP analysis server. It validates incoming lyrics,
invokes the configured Gemini model, repairs malformed output where
possible, and returns the finished analysis as JSON.

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		model := gemini.NewClient(gemini.Config{
			APIKey:          cfg.Model.APIKey,
			BaseURL:         cfg.Model.BaseURL,
			Model:           cfg.Model.Model,
			Timeout:         cfg.ModelTimeout(),
			MaxOutputTokens: cfg.Model.MaxOutputTokens,
			Temperature:     cfg.Model.Temperature,
			TopP:            cfg.Model.TopP,
		}, logger)

		analyzer := analysis.NewAnalyzer(model, logger)
		srv := server.New(cfg.Server.Addr, analyzer, logger, cfg.ShutdownTimeout())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("starting analysis server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("model", cfg.Model.Model))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "listen", "", "listen address (overrides config)")
}
