package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/abhisek/maturiz/internal/llm"
)

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Enrich call. Zero leaves the caller's deadline.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		Timeout:     45 * time.Second,
	}
}

// Report is the narrative returned by the model.
type Report struct {
	Insights        string   `json:"insights"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"nextSteps"`
}

// Enricher asks an LLM to comment on a diagnostic.
type Enricher struct {
	provider llm.Provider
	cfg      Config
}

// New creates an Enricher.
func New(provider llm.Provider, cfg Config) *Enricher {
	return &Enricher{provider: provider, cfg: cfg}
}

// Enrich generates a report for in.
func (e *Enricher) Enrich(ctx context.Context, in Input) (*Report, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEnrichment)
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildMessage(in)
	if err != nil {
		return nil, fmt.Errorf("build enrichment prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      ReportSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM enrichment failed: %w", err)
	}

	var r Report
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment response: %w", err)
	}
	r.Insights = strings.TrimSpace(r.Insights)
	r.Recommendations = compact(r.Recommendations)
	r.NextSteps = compact(r.NextSteps)
	return &r, nil
}

// compact trims entries and drops empty ones. The result is never nil.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

const systemPrompt = `You are a senior procurement consultant reviewing the result of a procurement maturity self-assessment.

Instructions:
- Answer in French, in a professional and encouraging tone.
- Base every statement on the scores and answers provided. Do not invent figures.
- Maturity levels are: débutant (<50%), intermédiaire (50-69%), avancé (70-84%), expert (>=85%).
- Focus recommendations on the weakest categories first.
- Keep each recommendation and next step to one sentence.`

var userTemplate = template.Must(template.New("enrichment").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Overall: {{.In.OverallScore.Percentage}}% ({{.In.OverallScore.Level}})

Categories:
{{range .In.CategoryScores}}- {{.Category}}: {{.Percentage}}% ({{.Level}}, {{.Answered}} answers)
{{end}}
Strengths: {{if .In.Strengths}}{{join .In.Strengths ", "}}{{else}}none{{end}}
Weaknesses: {{if .In.Weaknesses}}{{join .In.Weaknesses ", "}}{{else}}none{{end}}

Full data:
{{.JSON}}`))

func buildMessage(in Input) (string, error) {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, struct {
		In   Input
		JSON string
	}{in, string(data)}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
