package report

import (
	"strings"
	"testing"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/questionbank"
)

func TestRender(t *testing.T) {
	catalog := questionbank.Default()
	var answers []diagnostic.Answer
	for _, q := range catalog.MainQuestions()[:6] {
		answers = append(answers, diagnostic.Answer{QuestionID: q.ID, OptionIndex: 0, Score: q.Options[0].Score})
	}
	res := diagnostic.Score(catalog, answers)

	out := Render("Acme", res, 80)
	for _, want := range []string{"Acme", "Par catégorie", "Axes d'amélioration", "Diagnostics recommandés", string(res.Overall.Level)} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
	if strings.Contains(out, "Points forts") {
		t.Error("no strengths expected for all-lowest answers")
	}
}

func TestRenderEnrichment(t *testing.T) {
	out := RenderEnrichment(&enrichment.Report{
		Insights:        "Synthèse",
		Recommendations: []string{"Structurer"},
		NextSteps:       []string{"Planifier", "Mesurer"},
	}, 80)
	for _, want := range []string{"Synthèse", "Structurer", "1. Planifier", "2. Mesurer"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderEnrichment output missing %q", want)
		}
	}
}
