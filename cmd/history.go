package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/store"
	"github.com/abhisek/maturiz/internal/ui/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored diagnostic runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		runs, err := e.store.RunRepo().ListRuns(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs found.")
			return nil
		}

		current := questionbank.Default().Version()
		fmt.Printf("%-8s  %-16s  %-24s  %4s  %5s  %-14s  %s\n",
			"ID", "Completed", "Organisation", "Ans", "Score", "Level", "Bank")
		fmt.Println(strings.Repeat("─", 96))

		stale := 0
		for _, r := range runs {
			bank := r.CatalogVersion
			if outdated(r.CatalogVersion, current) {
				bank += " *"
				stale++
			}
			fmt.Printf("%-8s  %-16s  %-24s  %4d  %4d%%  %-14s  %s\n",
				truncate(r.ID, 8),
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Organisation, 24),
				r.Answered,
				r.OverallPercentage,
				r.OverallLevel,
				bank,
			)
		}
		if stale > 0 {
			fmt.Printf("\n* scored with a question bank older than %s\n", current)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the report of a stored run (the ID may be a unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		ctx := context.Background()
		r, err := findRun(ctx, e.store.RunRepo(), args[0])
		if err != nil {
			return err
		}

		var res diagnostic.Result
		if err := json.Unmarshal(r.Result, &res); err != nil {
			return fmt.Errorf("decode result of run %s: %w", r.ID, err)
		}

		fmt.Printf("ID:        %s\n", r.ID)
		fmt.Printf("Started:   %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Completed: %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Answered:  %d\n", r.Answered)
		if len(r.Focus) > 0 {
			fmt.Printf("Focus:     %s\n", strings.Join(r.Focus, ", "))
		}
		current := questionbank.Default().Version()
		if outdated(r.CatalogVersion, current) {
			fmt.Printf("Bank:      %s (current is %s)\n", r.CatalogVersion, current)
		} else {
			fmt.Printf("Bank:      %s\n", r.CatalogVersion)
		}
		fmt.Println()
		fmt.Print(report.Render(r.Organisation, &res, 80))

		if len(r.Enrichment) > 0 {
			var rep enrichment.Report
			if err := json.Unmarshal(r.Enrichment, &rep); err != nil {
				return fmt.Errorf("decode enrichment of run %s: %w", r.ID, err)
			}
			fmt.Println()
			fmt.Print(report.RenderEnrichment(&rep, 80))
		}

		answers, err := e.store.EventRepo().AnswersForRun(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("load answers: %w", err)
		}
		if len(answers) > 0 {
			fmt.Println()
			fmt.Println("Answers")
			fmt.Println(strings.Repeat("─", 60))
			for _, a := range answers {
				fmt.Printf("%-12s  option %d  score %d\n", a.QuestionID, a.OptionIndex+1, a.Score)
			}
		}
		return nil
	},
}

// findRun looks a run up by ID, then by unique ID prefix.
func findRun(ctx context.Context, repo store.RunRepo, id string) (*store.RunRecord, error) {
	r, err := repo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if r != nil {
		return r, nil
	}

	runs, err := repo.ListRuns(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var matches []store.RunRecord
	for _, run := range runs {
		if strings.HasPrefix(run.ID, id) {
			matches = append(matches, run)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("run %q not found", id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("run prefix %q is ambiguous (%d matches)", id, len(matches))
	}
}

// outdated reports whether a run's bank version is older than current.
// Versions are stored without the "v" semver prefix or with it.
func outdated(version, current string) bool {
	return semver.Compare(canonical(version), canonical(current)) < 0
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
