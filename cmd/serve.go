package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/mcpserver"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve diagnostics as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		noAI, _ := cmd.Flags().GetBool("no-ai")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		deps := mcpserver.Deps{
			Recorder: runner.New(questionbank.Default(), e.store.EventRepo(), e.store.RunRepo(), e.logger),
			Logger:   e.logger,
		}
		if !noAI {
			if svc := e.enrichmentService(cmd.Context(), e.logger); svc != nil {
				defer svc.Close()
				deps.Enrichment = svc
			}
		}

		e.logger.Info("serving MCP over stdio", zap.String("version", version))
		return mcpserver.Serve(mcpserver.New(version, deps))
	},
}

func init() {
	serveCmd.Flags().Bool("no-ai", false, "Disable enrichment in diag_result")
}
