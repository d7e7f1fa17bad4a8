package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A category assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"score": map[string]any{"type": "integer", "minimum": 0},
				"level": map[string]any{"type": "string", "enum": []string{"débutant", "intermédiaire", "avancé", "expert"}},
			},
			"required": []string{"name"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Gestion Fournisseurs","score":12,"level":"avancé"}`, false},
		{"optional fields omitted", `{"name":"Gestion Fournisseurs"}`, false},
		{"missing required", `{"score":3}`, true},
		{"wrong type", `{"name":"x","score":"douze"}`, true},
		{"below minimum", `{"name":"x","score":-1}`, true},
		{"invalid enum", `{"name":"x","level":"maître"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("content = %q, want %q", inv.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"recommendations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":       "object",
						"properties": map[string]any{"title": map[string]any{"type": "string"}},
						"required":   []string{"title"},
					},
				},
			},
			"required": []string{"recommendations"},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"recommendations":[{"title":"Cartographier les risques"}]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"recommendations":[{"detail":"x"}]}`)); err == nil {
		t.Fatal("expected error for item missing title")
	}
}
