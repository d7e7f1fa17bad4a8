package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/maturiz/internal/questionbank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		catalog := questionbank.Default()

		categories := catalog.Categories()
		if category != "" {
			match := ""
			for _, c := range categories {
				if strings.EqualFold(c, category) {
					match = c
				}
			}
			if match == "" {
				return fmt.Errorf("unknown category %q (known: %s)", category, strings.Join(categories, ", "))
			}
			categories = []string{match}
		}

		fmt.Printf("Question bank %s, %d questions\n", catalog.Version(), catalog.Len())
		for _, c := range categories {
			fmt.Println()
			fmt.Println(c)
			fmt.Println(strings.Repeat("─", 72))
			for _, q := range catalog.ByCategory(c) {
				indent := strings.Repeat("  ", q.FollowUpLevel)
				label := string(q.Priority)
				if q.IsFollowUp {
					label = fmt.Sprintf("L%d", q.FollowUpLevel)
				}
				fmt.Printf("%s%-12s  %-6s  %s\n", indent, q.ID, label, q.Text)
			}
		}
		return nil
	},
}

func init() {
	questionsListCmd.Flags().StringP("category", "c", "", "Only list this category")
	questionsCmd.AddCommand(questionsListCmd)
}
