package diagnostic

import (
	"container/list"
	"fmt"

	"github.com/abhisek/maturiz/internal/questionbank"
)

// Session is one adaptive run over a catalog. It is not safe for
// concurrent use; callers serialize access per session.
type Session struct {
	catalog *questionbank.Catalog

	// active holds questionbank.Question values in presentation order.
	// Elements before cursor have been answered or passed over.
	active   *list.List
	cursor   *list.Element
	elems    map[string]*list.Element
	consumed map[string]bool

	answers   []Answer
	answered  map[string]bool
	skipped   map[string]bool
	skipOrder []string

	state    State
	estimate int
	result   *Result
}

// New starts a session over catalog with every main question queued in
// priority order.
func New(catalog *questionbank.Catalog) *Session {
	s := &Session{
		catalog:  catalog,
		active:   list.New(),
		elems:    make(map[string]*list.Element),
		consumed: make(map[string]bool),
		answered: make(map[string]bool),
		skipped:  make(map[string]bool),
		estimate: seedEstimate,
	}
	for _, q := range catalog.MainQuestions() {
		s.elems[q.ID] = s.active.PushBack(q)
	}
	s.cursor = s.active.Front()
	return s
}

// Catalog returns the catalog this session runs over.
func (s *Session) Catalog() *questionbank.Catalog {
	return s.catalog
}

// State returns the lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// CurrentQuestion returns the question to present next. Main questions of
// skipped categories are passed over. It returns false once the session is
// completed or when nothing is left to present.
func (s *Session) CurrentQuestion() (questionbank.Question, bool) {
	if s.state == StateCompleted {
		return questionbank.Question{}, false
	}
	e := s.peek()
	if e == nil {
		return questionbank.Question{}, false
	}
	s.advanceTo(e)
	if s.state == StateNotStarted {
		s.state = StateInProgress
	}
	return e.Value.(questionbank.Question), true
}

// Answer records the chosen option for the current question and applies
// its action and triggers. On error the session is unchanged.
func (s *Session) Answer(questionID string, optionIndex int) error {
	if s.state == StateCompleted {
		return ErrAlreadyCompleted
	}
	e := s.peek()
	if e == nil {
		return fmt.Errorf("%w: no question is pending", ErrInvalidQuestionReference)
	}
	q := e.Value.(questionbank.Question)
	if q.ID != questionID {
		return fmt.Errorf("%w: %q is not the current question %q", ErrInvalidQuestionReference, questionID, q.ID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidOptionIndex, optionIndex, len(q.Options))
	}

	s.advanceTo(e)
	s.state = StateInProgress

	opt := q.Options[optionIndex]
	s.answers = append(s.answers, Answer{QuestionID: q.ID, OptionIndex: optionIndex, Score: opt.Score})
	s.answered[q.ID] = true

	mark := e
	switch opt.Action {
	case questionbank.ActionSkipCategory:
		if !s.skipped[q.Category] {
			s.skipped[q.Category] = true
			s.skipOrder = append(s.skipOrder, q.Category)
		}
	case questionbank.ActionDeepDive:
		mark = s.spliceAfter(mark, s.catalog.FollowUpsOf(q.ID, 0))
	}

	var triggered []questionbank.Question
	for _, id := range opt.Triggers {
		if t, ok := s.catalog.FindByID(id); ok {
			triggered = append(triggered, t)
		}
	}
	s.spliceAfter(mark, triggered)

	s.consumed[q.ID] = true
	s.cursor = e.Next()

	if s.shouldComplete() {
		s.state = StateCompleted
		return nil
	}
	s.ratchetEstimate()
	return nil
}

// HasNext reports whether another question can be presented.
func (s *Session) HasNext() bool {
	return s.state != StateCompleted && s.peek() != nil
}

// Exhausted reports whether the session is still open but has nothing left
// to present. A validated catalog cannot reach this state.
func (s *Session) Exhausted() bool {
	return s.state != StateCompleted && s.peek() == nil
}

// AnsweredCount returns the number of recorded answers.
func (s *Session) AnsweredCount() int {
	return len(s.answers)
}

// Answers returns the recorded answers in answer order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// SkippedCategories returns categories closed by a skip action, in the
// order they were skipped.
func (s *Session) SkippedCategories() []string {
	out := make([]string, len(s.skipOrder))
	copy(out, s.skipOrder)
	return out
}

// Result returns the scored outcome. It is computed on first call after
// completion and cached.
func (s *Session) Result() (*Result, error) {
	if s.state != StateCompleted {
		return nil, ErrNotCompleted
	}
	if s.result == nil {
		s.result = Score(s.catalog, s.answers)
	}
	return s.result, nil
}

// peek returns the next presentable element from the cursor without
// moving it.
func (s *Session) peek() *list.Element {
	for e := s.cursor; e != nil; e = e.Next() {
		if s.presentable(e.Value.(questionbank.Question)) {
			return e
		}
	}
	return nil
}

func (s *Session) presentable(q questionbank.Question) bool {
	if s.answered[q.ID] {
		return false
	}
	if !q.IsFollowUp && s.skipped[q.Category] {
		return false
	}
	return true
}

// advanceTo moves the cursor to target, marking everything passed over as
// consumed.
func (s *Session) advanceTo(target *list.Element) {
	for e := s.cursor; e != nil && e != target; e = e.Next() {
		s.consumed[e.Value.(questionbank.Question).ID] = true
	}
	s.cursor = target
}

// spliceAfter places qs after mark in order and returns the last placed
// element. Answered or passed-over questions are ignored; a question still
// pending further down the list moves up instead of being duplicated.
func (s *Session) spliceAfter(mark *list.Element, qs []questionbank.Question) *list.Element {
	for _, q := range qs {
		if s.answered[q.ID] || s.consumed[q.ID] {
			continue
		}
		if e, ok := s.elems[q.ID]; ok {
			if e != mark {
				s.active.MoveAfter(e, mark)
			}
			mark = e
			continue
		}
		e := s.active.InsertAfter(q, mark)
		s.elems[q.ID] = e
		mark = e
	}
	return mark
}

func (s *Session) shouldComplete() bool {
	n := len(s.answers)
	if n >= MaxAnswers {
		return true
	}
	return n >= MinAnswers && s.peek() == nil
}

// remaining counts active entries from the cursor to the end, including
// ones that will be passed over.
func (s *Session) remaining() int {
	n := 0
	for e := s.cursor; e != nil; e = e.Next() {
		n++
	}
	return n
}
