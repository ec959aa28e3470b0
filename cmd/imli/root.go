package main

import (
	"github.com/spf13/cobra"

	"github.com/imli-ai/imli/internal/api"
	"github.com/imli-ai/imli/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "imli",
	Short: "USCIS/AAO decision analyzer with LLM-powered structured extraction",
	Long: `Imli fetches a USCIS or AAO decision PDF by URL, extracts its text,
and produces a strictly-validated structured record describing the case
(visa type, outcome, citations, risk factors).

Records are cached locally by URL, so the same decision is never fetched
or analyzed twice.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.imli/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "imli home directory (default: ~/.imli)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
