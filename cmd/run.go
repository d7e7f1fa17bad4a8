package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/app"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/runner"
)

type runFlags struct {
	focus        []string
	organisation string
	noAI         bool
	plain        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a maturity diagnostic",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f runFlags
		f.focus, _ = cmd.Flags().GetStringSlice("focus")
		f.organisation, _ = cmd.Flags().GetString("organisation")
		f.noAI, _ = cmd.Flags().GetBool("no-ai")
		f.plain, _ = cmd.Flags().GetBool("plain")
		return runDiagnostic(cmd, f)
	},
}

// runDiagnostic opens the store, builds dependencies, and runs either the
// TUI or the plain line mode.
func runDiagnostic(cmd *cobra.Command, f runFlags) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	logger := e.logger
	if !f.plain {
		// stderr shares the terminal with the TUI.
		logger = zap.NewNop()
	}

	recorder := runner.New(questionbank.Default(), e.store.EventRepo(), e.store.RunRepo(), logger)
	deps := app.Deps{
		Recorder: recorder,
		Options:  runner.Options{Organisation: f.organisation, Focus: f.focus},
		Logger:   logger,
	}

	// Reject a bad --focus before any prompt is shown.
	if _, err := recorder.Start(deps.Options); err != nil {
		return err
	}

	if !f.noAI {
		if svc := e.enrichmentService(cmd.Context(), logger); svc != nil {
			defer svc.Close()
			deps.Enrichment = svc
		}
	}

	if f.plain {
		return app.RunPlain(cmd.Context(), deps, os.Stdin, os.Stdout)
	}
	return app.Run(deps)
}

func init() {
	runCmd.Flags().StringSlice("focus", nil, "Category to cover first (repeatable)")
	runCmd.Flags().String("organisation", "", "Organisation name stored with the run")
	runCmd.Flags().Bool("no-ai", false, "Skip the AI analysis")
	runCmd.Flags().Bool("plain", false, "Use numbered prompts instead of the full-screen interface")
}
