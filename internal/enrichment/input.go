// Package enrichment turns a scored diagnostic into narrative advice using
// an LLM. The output is advisory: it never feeds back into scoring.
package enrichment

import (
	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/questionbank"
)

// AnswerDetail is one answer with the wording the respondent saw.
type AnswerDetail struct {
	QuestionID string `json:"questionId"`
	Category   string `json:"category"`
	Question   string `json:"question"`
	Choice     string `json:"choice"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	FollowUp   bool   `json:"followUp,omitempty"`
}

// Input is the data handed to the model.
type Input struct {
	Answers        []AnswerDetail             `json:"answers"`
	CategoryScores []diagnostic.CategoryScore `json:"categoryScores"`
	OverallScore   diagnostic.OverallScore    `json:"overallScore"`
	Strengths      []string                   `json:"strengths"`
	Weaknesses     []string                   `json:"weaknesses"`
}

// NewInput resolves answers against catalog and pairs them with result.
// Answers naming unknown questions or options are left out.
func NewInput(catalog *questionbank.Catalog, answers []diagnostic.Answer, result *diagnostic.Result) Input {
	in := Input{
		Answers:        make([]AnswerDetail, 0, len(answers)),
		CategoryScores: result.Categories,
		OverallScore:   result.Overall,
		Strengths:      result.Strengths,
		Weaknesses:     result.Weaknesses,
	}
	for _, a := range answers {
		q, ok := catalog.FindByID(a.QuestionID)
		if !ok || a.OptionIndex < 0 || a.OptionIndex >= len(q.Options) {
			continue
		}
		in.Answers = append(in.Answers, AnswerDetail{
			QuestionID: q.ID,
			Category:   q.Category,
			Question:   q.Text,
			Choice:     q.Options[a.OptionIndex].Text,
			Score:      a.Score,
			MaxScore:   q.MaxScore(),
			FollowUp:   q.IsFollowUp,
		})
	}
	return in
}

// InputFromSession builds the input of a completed session.
func InputFromSession(s *diagnostic.Session) (Input, error) {
	result, err := s.Result()
	if err != nil {
		return Input{}, err
	}
	return NewInput(s.Catalog(), s.Answers(), result), nil
}
