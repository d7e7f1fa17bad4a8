package diagnostic

import "math"

const (
	// seedEstimate is the total shown before enough answers exist to size
	// the run from the active list.
	seedEstimate = 12

	// seedAnswers is the answer count from which the estimate follows the
	// active list.
	seedAnswers = 3

	// minTail is the smallest number of further questions an open run
	// projects.
	minTail = 2
)

// Progress is a display estimate for an open or completed run.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Progress returns the current estimate. It has no side effects.
// Once completed, Current and Total both equal the answer count.
func (s *Session) Progress() Progress {
	answered := len(s.answers)
	if s.state == StateCompleted {
		return Progress{Current: answered, Total: answered, Percentage: 100}
	}

	current := answered + 1
	total := max(s.estimate, current)
	pct := int(math.Round(100 * float64(answered) / float64(total)))
	return Progress{Current: current, Total: total, Percentage: min(pct, 100)}
}

// ratchetEstimate folds the latest draft into the stored total. The total
// never decreases while the run is open.
func (s *Session) ratchetEstimate() {
	s.estimate = max(s.estimate, s.draftEstimate(), len(s.answers)+1)
}

// draftEstimate sizes the run from the current active list.
func (s *Session) draftEstimate() int {
	answered := len(s.answers)
	if answered < seedAnswers {
		return seedEstimate
	}
	tail := max(s.remaining()-len(s.skipOrder), minTail)
	return min(MaxAnswers, max(answered+1, answered+tail))
}
