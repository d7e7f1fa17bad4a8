// Package report renders diagnostic results for the terminal. The TUI and
// the plain line mode share it.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/ui/components"
	"github.com/abhisek/maturiz/internal/ui/theme"
)

// Render renders the scores, strengths, weaknesses and recommended
// modules of result.
func Render(organisation string, result *diagnostic.Result, width int) string {
	var b strings.Builder

	title := "Diagnostic de maturité achats"
	if organisation != "" {
		title += " · " + organisation
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n\n")

	overall := result.Overall
	b.WriteString(theme.Body.Render("Score global  "))
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.LevelColor(string(overall.Level))).
		Render(fmt.Sprintf("%d%%  %s", overall.Percentage, overall.Level)))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  (%d/%d)", overall.Score, overall.MaxScore)))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Par catégorie"))
	b.WriteString("\n")
	b.WriteString(renderCategories(result.Categories, width))

	if len(result.Strengths) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Points forts"))
		b.WriteString("\n")
		b.WriteString(bullets(result.Strengths, theme.Body, width))
	}
	if len(result.Weaknesses) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Axes d'amélioration"))
		b.WriteString("\n")
		b.WriteString(bullets(result.Weaknesses, theme.Body, width))
	}
	if len(result.RecommendedDiagnostics) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Diagnostics recommandés"))
		b.WriteString("\n")
		for _, rec := range result.RecommendedDiagnostics {
			tag := lipgloss.NewStyle().Bold(true).Foreground(theme.PriorityColor(string(rec.Priority))).
				Render(fmt.Sprintf("[%s]", rec.Priority))
			b.WriteString("  " + tag + " " + theme.Body.Render(rec.Name) + "\n")
			b.WriteString(wrap(rec.Reason, width-4, "    ", theme.Subtitle))
		}
	}
	return b.String()
}

func renderCategories(categories []diagnostic.CategoryScore, width int) string {
	labelWidth := 0
	for _, c := range categories {
		labelWidth = max(labelWidth, lipgloss.Width(c.Category))
	}

	var b strings.Builder
	for _, c := range categories {
		label := c.Category + strings.Repeat(" ", labelWidth-lipgloss.Width(c.Category))
		barWidth := min(width-20, labelWidth+40)
		bar := components.NewProgressBar("  "+label, c.Percentage, true, barWidth)
		b.WriteString(bar.View())
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.LevelColor(string(c.Level))).Render(string(c.Level)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderEnrichment renders the narrative returned by the model.
func RenderEnrichment(r *enrichment.Report, width int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Analyse"))
	b.WriteString("\n")
	b.WriteString(wrap(r.Insights, width-2, "  ", theme.Body))

	if len(r.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Recommandations"))
		b.WriteString("\n")
		b.WriteString(bullets(r.Recommendations, theme.Body, width))
	}
	if len(r.NextSteps) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Prochaines étapes"))
		b.WriteString("\n")
		for i, step := range r.NextSteps {
			b.WriteString(wrap(fmt.Sprintf("%d. %s", i+1, step), width-2, "  ", theme.Body))
		}
	}
	return b.String()
}

func bullets(items []string, style lipgloss.Style, width int) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(wrap("• "+it, width-2, "  ", style))
	}
	return b.String()
}

// wrap renders s at most width cells wide, each line prefixed by indent.
func wrap(s string, width int, indent string, style lipgloss.Style) string {
	if width < 20 {
		width = 20
	}
	block := style.Width(width - lipgloss.Width(indent)).Render(s)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = indent + strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}
