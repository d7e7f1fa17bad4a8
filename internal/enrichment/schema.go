package enrichment

import "github.com/abhisek/maturiz/internal/llm"

// ReportSchema defines the JSON schema of enrichment responses.
var ReportSchema = &llm.Schema{
	Name:        "maturity-enrichment",
	Description: "Narrative analysis of a procurement maturity diagnostic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"insights": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Two or three paragraphs interpreting the scores, strengths and weaknesses",
			},
			"recommendations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    6,
				"description": "Concrete improvement actions, most important first",
			},
			"nextSteps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    5,
				"description": "Steps to take in the next 90 days",
			},
		},
		"required":             []any{"insights", "recommendations", "nextSteps"},
		"additionalProperties": false,
	},
}
