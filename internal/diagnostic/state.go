package diagnostic

import (
	"errors"

	"github.com/abhisek/maturiz/internal/questionbank"
)

// Answer bounds of a run.
const (
	// MinAnswers is the answer floor below which a run never completes.
	MinAnswers = questionbank.MinCategories

	// MaxAnswers is the answer ceiling at which a run completes.
	MaxAnswers = 15
)

// State is the lifecycle phase of a session.
type State int

const (
	StateNotStarted State = iota // No question presented yet
	StateInProgress              // At least one question presented
	StateCompleted               // Terminal; no further answers accepted
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Answer is one recorded response. Score is copied from the chosen option.
type Answer struct {
	QuestionID  string `json:"questionId"`
	OptionIndex int    `json:"optionIndex"`
	Score       int    `json:"score"`
}

var (
	// ErrAlreadyCompleted is returned when answering a completed session.
	ErrAlreadyCompleted = errors.New("diagnostic already completed")

	// ErrInvalidQuestionReference is returned when the answered question is
	// not the one currently presented.
	ErrInvalidQuestionReference = errors.New("invalid question reference")

	// ErrInvalidOptionIndex is returned when the option index is out of range.
	ErrInvalidOptionIndex = errors.New("invalid option index")

	// ErrNotCompleted is returned when a result is requested before completion.
	ErrNotCompleted = errors.New("diagnostic not completed")
)
