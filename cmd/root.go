package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maturiz",
	Short: "Procurement maturity diagnostic",
	Long: "Maturiz runs an adaptive procurement maturity diagnostic in the terminal, " +
		"scores it by category and suggests follow-on diagnostics.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnostic(cmd, runFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATURIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a maturiz.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides MATURIZ_LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
