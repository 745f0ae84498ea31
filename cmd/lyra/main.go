// Package main is the lyra CLI: an HTTP server exposing the lyric analysis
// pipeline, an interactive terminal client for it, and a one-shot analyze
// command for scripting.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lyra/cmd/lyra/tui"
	"lyra/internal/client"
	"lyra/internal/config"
)

var (
	configPath string
	verbose    bool
	serverURL  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lyra",
	Short: "lyra - literary analysis of song lyrics",
	Long: `lyra submits song lyrics to a generative analysis engine and renders a
structured close reading: thesis, mood arc, motifs, craft highlights, and
takeaway.

Run without arguments to start the interactive client. Run "lyra serve"
to start the analysis server it talks to.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Client.ServerURL = serverURL
	}

	transport := client.New(cfg.Client.ServerURL, cfg.ClientTimeout())
	program := tea.NewProgram(tui.New(transport), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "lyra.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "addr", "", "analysis server URL (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
