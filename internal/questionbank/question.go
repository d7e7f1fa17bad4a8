package questionbank

import "slices"

// Priority orders main questions when a session builds its initial list.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank returns the sort position of a priority (lower is asked first).
// Unknown priorities sort last.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the declared priorities.
func (p Priority) Valid() bool {
	return p.rank() < 3
}

// Action tells the traversal what to do after an option is chosen.
type Action string

const (
	ActionContinue     Action = "continue"
	ActionSkipCategory Action = "skip_category"
	ActionDeepDive     Action = "deep_dive"
)

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	switch a {
	case ActionContinue, ActionSkipCategory, ActionDeepDive:
		return true
	}
	return false
}

// Option is one selectable answer of a question.
type Option struct {
	Text   string `json:"text"`
	Score  int    `json:"score"`
	Action Action `json:"action"`

	// Triggers names questions to insert after this one when the option is
	// chosen, whatever the action.
	Triggers []string `json:"triggers,omitempty"`
}

// Question is a single entry of the bank.
type Question struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
	Options  []Option `json:"options"`

	IsFollowUp bool   `json:"isFollowUp"`
	ParentID   string `json:"parentId,omitempty"`

	// FollowUpLevel is 1–3 for follow-ups. Zero means absent, which
	// FollowUpsOf treats like level 1.
	FollowUpLevel int `json:"followUpLevel,omitempty"`
}

// MaxScore returns the highest option score of the question.
func (q Question) MaxScore() int {
	best := 0
	for _, o := range q.Options {
		if o.Score > best {
			best = o.Score
		}
	}
	return best
}

// level returns the effective follow-up depth: 0 for main questions,
// 1 for a follow-up without an explicit level.
func (q Question) level() int {
	if !q.IsFollowUp {
		return 0
	}
	if q.FollowUpLevel == 0 {
		return 1
	}
	return q.FollowUpLevel
}

// clone returns a copy that shares no slices with q.
func (q Question) clone() Question {
	opts := make([]Option, len(q.Options))
	for i, o := range q.Options {
		o.Triggers = slices.Clone(o.Triggers)
		opts[i] = o
	}
	q.Options = opts
	return q
}
