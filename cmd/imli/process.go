package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/imli-ai/imli/internal/api"
	"github.com/imli-ai/imli/internal/pipeline"
)

var (
	processCaseID  string
	processRefresh bool
	processVerbose bool
)

var processCmd = &cobra.Command{
	Use:   "process <url>",
	Short: "Analyze a decision PDF by URL",
	Long: `Fetch a USCIS/AAO decision PDF, extract its text, and produce a
structured case record. Results are cached by URL: running the same URL
again returns the stored record without any network or model calls.

Examples:
  imli process https://www.uscis.gov/sites/default/files/err/.../DECISION.pdf
  imli process --case-id MAR122025_01B5203 https://example.org/decision.pdf
  imli process --refresh https://example.org/decision.pdf   # re-analyze`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if processVerbose {
			level = slog.LevelDebug
		}
		logger := newLogger(level)

		processor, _, err := buildProcessor(logger)
		if err != nil {
			return err
		}

		rec, err := processor.ProcessRequest(cmd.Context(), pipeline.Request{
			URL:            args[0],
			FallbackCaseID: processCaseID,
			Refresh:        processRefresh,
		})
		if err != nil {
			return err
		}

		return api.Output(rec)
	},
}

func init() {
	processCmd.Flags().StringVar(&processCaseID, "case-id", "", "fallback case id when the decision has no explicit case number")
	processCmd.Flags().BoolVar(&processRefresh, "refresh", false, "skip the cache read and re-analyze the document")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(processCmd)
}
