package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/llm"
	"github.com/abhisek/maturiz/internal/questionbank"
)

// completed answers every presented question with option pick and
// returns the finished session.
func completed(t *testing.T, pick int) *diagnostic.Session {
	t.Helper()
	s := diagnostic.New(questionbank.Default())
	for {
		q, ok := s.CurrentQuestion()
		if !ok {
			break
		}
		if err := s.Answer(q.ID, pick); err != nil {
			t.Fatalf("Answer(%s): %v", q.ID, err)
		}
	}
	if s.State() != diagnostic.StateCompleted {
		t.Fatalf("state = %s, want completed", s.State())
	}
	return s
}

func validReport() llm.MockResponse {
	return llm.MockJSON(map[string]any{
		"insights":        "  Vos achats sont structurés.  ",
		"recommendations": []string{"Formaliser la politique achats", " ", "Suivre les KPI"},
		"nextSteps":       []string{"Lancer un comité achats"},
	})
}

func TestInputFromSession(t *testing.T) {
	s := completed(t, 4)
	in, err := InputFromSession(s)
	if err != nil {
		t.Fatalf("InputFromSession: %v", err)
	}
	if len(in.Answers) != s.AnsweredCount() {
		t.Fatalf("got %d answers, want %d", len(in.Answers), s.AnsweredCount())
	}
	first := in.Answers[0]
	if first.QuestionID != "strat-1" || first.Score != 5 || first.MaxScore != 5 || first.Choice == "" {
		t.Errorf("first answer = %+v", first)
	}
	if in.OverallScore.Percentage != 100 {
		t.Errorf("overall = %d%%, want 100%%", in.OverallScore.Percentage)
	}
	if len(in.Strengths) != 6 || len(in.Weaknesses) != 0 {
		t.Errorf("strengths %v weaknesses %v", in.Strengths, in.Weaknesses)
	}
}

func TestInputFromSession_NotCompleted(t *testing.T) {
	s := diagnostic.New(questionbank.Default())
	if _, err := InputFromSession(s); !errors.Is(err, diagnostic.ErrNotCompleted) {
		t.Fatalf("got %v, want ErrNotCompleted", err)
	}
}

func TestNewInput_SkipsUnknownAnswers(t *testing.T) {
	cat := questionbank.Default()
	answers := []diagnostic.Answer{
		{QuestionID: "strat-1", OptionIndex: 0, Score: 1},
		{QuestionID: "nope", OptionIndex: 0, Score: 1},
		{QuestionID: "risk-1", OptionIndex: 9, Score: 1},
	}
	in := NewInput(cat, answers, diagnostic.Score(cat, answers))
	if len(in.Answers) != 1 {
		t.Fatalf("got %d answers, want 1", len(in.Answers))
	}
}

func TestEnrich(t *testing.T) {
	mock := llm.NewMockProvider(validReport())
	e := New(mock, DefaultConfig())

	in, err := InputFromSession(completed(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	r, err := e.Enrich(context.Background(), in)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if r.Insights != "Vos achats sont structurés." {
		t.Errorf("insights = %q", r.Insights)
	}
	if len(r.Recommendations) != 2 {
		t.Errorf("recommendations = %q, want blanks dropped", r.Recommendations)
	}

	req := mock.Calls[0]
	if req.Schema != ReportSchema {
		t.Error("request did not carry the report schema")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Overall: 20% (débutant)", questionbank.CategoryRisk, `"answers"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEnrich_Failures(t *testing.T) {
	in, err := InputFromSession(completed(t, 4))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}},
		{"schema mismatch", llm.MockJSON(map[string]any{"insights": "ok"})},
		{"empty insights", llm.MockJSON(map[string]any{"insights": "", "recommendations": []string{}, "nextSteps": []string{}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			if _, err := e.Enrich(context.Background(), in); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
