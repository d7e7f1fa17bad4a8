package diagnostic

import "github.com/abhisek/maturiz/internal/questionbank"

// maxRecommendations caps RecommendedDiagnostics.
const maxRecommendations = 5

// RecommendationPriority expresses how urgently a follow-on module applies.
type RecommendationPriority string

const (
	PriorityUrgent    RecommendationPriority = "urgent"
	PriorityImportant RecommendationPriority = "important"
	PriorityMedium    RecommendationPriority = "medium"
)

// Recommendation is a follow-on diagnostic module for a weak category.
type Recommendation struct {
	Name     string                 `json:"name"`
	Reason   string                 `json:"reason"`
	Priority RecommendationPriority `json:"priority"`
	Category string                 `json:"category"`
}

type module struct {
	name   string
	reason string
}

// modules maps a category to its follow-on diagnostic.
var modules = map[string]module{
	questionbank.CategoryStrategy: {
		name:   "Diagnostic Stratégie & Segmentation",
		reason: "Formaliser la stratégie achats et la décliner par catégorie",
	},
	questionbank.CategoryRisk: {
		name:   "Diagnostic Résilience Fournisseurs",
		reason: "Cartographier les risques fournisseurs et sécuriser la continuité",
	},
	questionbank.CategoryInternal: {
		name:   "Diagnostic Collaboration Interne",
		reason: "Renforcer l'implication des achats auprès des prescripteurs",
	},
	questionbank.CategorySuppliers: {
		name:   "Diagnostic Performance Fournisseurs",
		reason: "Structurer le panel et l'évaluation des fournisseurs",
	},
	questionbank.CategoryDigital: {
		name:   "Diagnostic Maturité Digitale Achats",
		reason: "Outiller le processus achats et fiabiliser les données",
	},
	questionbank.CategoryPerformance: {
		name:   "Diagnostic Pilotage & KPIs",
		reason: "Mettre en place des indicateurs de performance partagés",
	},
}

func priorityFor(pct int) RecommendationPriority {
	switch {
	case pct < 30:
		return PriorityUrgent
	case pct < 45:
		return PriorityImportant
	default:
		return PriorityMedium
	}
}

// recommend maps weak categories, already ordered weakest first, to
// modules. Categories without a module are left out.
func recommend(weak []CategoryScore) []Recommendation {
	out := []Recommendation{}
	for _, w := range weak {
		if len(out) == maxRecommendations {
			break
		}
		m, ok := modules[w.Category]
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			Name:     m.name,
			Reason:   m.reason,
			Priority: priorityFor(w.Percentage),
			Category: w.Category,
		})
	}
	return out
}
