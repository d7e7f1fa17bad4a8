package questionnaire

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/router"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "report" }
func (s *stubScreen) Title() string                           { return "Report" }

func newTestScreen(t *testing.T) (*QuestionnaireScreen, *int) {
	t.Helper()
	rec := runner.New(questionbank.Default(), nil, nil, nil)
	run, err := rec.Start(runner.Options{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	calls := 0
	s := New(rec, run, func(*runner.Run) screen.Screen {
		calls++
		return &stubScreen{}
	})
	return s, &calls
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestFirstQuestion(t *testing.T) {
	s, _ := newTestScreen(t)
	if s.question.ID != "strat-1" {
		t.Errorf("expected strat-1, got %q", s.question.ID)
	}
	if got := s.Status(); got != "Question 1/12" {
		t.Errorf("Status() = %q, want %q", got, "Question 1/12")
	}
}

func TestArrowThenEnter(t *testing.T) {
	s, _ := newTestScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	answers := s.run.Session.Answers()
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
	if answers[0].QuestionID != "strat-1" || answers[0].OptionIndex != 1 {
		t.Errorf("unexpected answer %+v", answers[0])
	}
	if s.question.ID == "strat-1" {
		t.Error("expected the next question to be loaded")
	}
}

func TestCompletesAndReplaces(t *testing.T) {
	s, calls := newTestScreen(t)

	var cmd tea.Cmd
	for i := 0; i < diagnostic.MinAnswers; i++ {
		if cmd != nil {
			t.Fatalf("unexpected command after answer %d", i)
		}
		_, cmd = s.Update(key('5'))
	}
	if cmd == nil {
		t.Fatal("expected a command once the run completes")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if *calls != 1 {
		t.Errorf("next should be called once, got %d", *calls)
	}
	if s.run.Session.State() != diagnostic.StateCompleted {
		t.Errorf("expected completed, got %v", s.run.Session.State())
	}

	// Further keys are ignored.
	if _, cmd := s.Update(key('5')); cmd != nil {
		t.Error("expected no command after completion")
	}
}

func TestOutOfRangeDigitIgnored(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(key('9'))
	if n := s.run.Session.AnsweredCount(); n != 0 {
		t.Errorf("expected no answer, got %d", n)
	}
}
