package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyra/internal/client"
	"lyra/internal/config"
	"lyra/internal/schema"
)

var analyzeArtist string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze lyrics from a file or stdin and print JSON",
	Long: `analyze submits lyrics to the analysis server non-interactively and
prints the structured result as JSON on stdout. Lyrics are read from the
given file, or from stdin when no file is specified.

Exit codes: 0 on success, 1 when the input is rejected, 2 on server or
transport failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if serverURL != "" {
			cfg.Client.ServerURL = serverURL
		}

		var raw []byte
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read lyrics: %w", err)
		}

		lyrics := strings.TrimSpace(string(raw))
		transport := client.New(cfg.Client.ServerURL, cfg.ClientTimeout())

		result, err := transport.Analyze(cmd.Context(), schema.AnalysisRequest{
			Lyrics: lyrics,
			Artist: analyzeArtist,
		})
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				fmt.Fprintf(os.Stderr, "analysis failed: %s (%s)\n", apiErr.Message, apiErr.Code)
				if apiErr.Rejection() {
					os.Exit(1)
				}
			} else {
				fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
			}
			os.Exit(2)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeArtist, "artist", "", "artist name for contextual analysis")
}
