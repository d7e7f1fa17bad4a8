package diagnostic

import (
	"math"
	"sort"

	"github.com/abhisek/maturiz/internal/questionbank"
)

// Classification thresholds, in percent.
const (
	strengthThreshold = 70
	weaknessThreshold = 60
)

// Level is a maturity classification.
type Level string

const (
	LevelBeginner     Level = "débutant"
	LevelIntermediate Level = "intermédiaire"
	LevelAdvanced     Level = "avancé"
	LevelExpert       Level = "expert"
)

// LevelFor classifies a percentage.
func LevelFor(pct int) Level {
	switch {
	case pct < 50:
		return LevelBeginner
	case pct < 70:
		return LevelIntermediate
	case pct < 85:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// CategoryScore aggregates the answers of one category.
type CategoryScore struct {
	Category   string `json:"category"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Percentage int    `json:"percentage"`
	Level      Level  `json:"level"`
	Answered   int    `json:"answered"`
}

// OverallScore aggregates every answered category.
type OverallScore struct {
	Score      int   `json:"score"`
	MaxScore   int   `json:"maxScore"`
	Percentage int   `json:"percentage"`
	Level      Level `json:"level"`
}

// Result is the scored outcome of a completed run.
type Result struct {
	// Categories lists answered categories in catalog order.
	Categories             []CategoryScore  `json:"categories"`
	Overall                OverallScore     `json:"overall"`
	Strengths              []string         `json:"strengths"`
	Weaknesses             []string         `json:"weaknesses"`
	RecommendedDiagnostics []Recommendation `json:"recommendedDiagnostics"`
}

// Category returns the score of one category, if it was answered.
func (r *Result) Category(name string) (CategoryScore, bool) {
	for _, c := range r.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Score computes the result for answers against catalog. Answers naming
// unknown questions are ignored. It is pure: the same input yields an
// identical result.
func Score(catalog *questionbank.Catalog, answers []Answer) *Result {
	type acc struct{ score, max, n int }
	byCategory := make(map[string]*acc)
	for _, a := range answers {
		q, ok := catalog.FindByID(a.QuestionID)
		if !ok {
			continue
		}
		c := byCategory[q.Category]
		if c == nil {
			c = &acc{}
			byCategory[q.Category] = c
		}
		c.score += a.Score
		c.max += 5
		c.n++
	}

	res := &Result{
		Strengths:              []string{},
		Weaknesses:             []string{},
		RecommendedDiagnostics: []Recommendation{},
	}
	var weak []CategoryScore
	for _, name := range catalog.Categories() {
		c, ok := byCategory[name]
		if !ok {
			continue
		}
		pct := percentage(c.score, c.max)
		cs := CategoryScore{
			Category:   name,
			Score:      c.score,
			MaxScore:   c.max,
			Percentage: pct,
			Level:      LevelFor(pct),
			Answered:   c.n,
		}
		res.Categories = append(res.Categories, cs)
		res.Overall.Score += c.score
		res.Overall.MaxScore += c.max

		if pct >= strengthThreshold {
			res.Strengths = append(res.Strengths, name)
		}
		if pct < weaknessThreshold {
			weak = append(weak, cs)
		}
	}

	res.Overall.Percentage = percentage(res.Overall.Score, res.Overall.MaxScore)
	res.Overall.Level = LevelFor(res.Overall.Percentage)

	// Stable: equal percentages keep catalog order.
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Percentage < weak[j].Percentage
	})
	for _, w := range weak {
		res.Weaknesses = append(res.Weaknesses, w.Category)
	}
	res.RecommendedDiagnostics = recommend(weak)
	return res
}

func percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}
