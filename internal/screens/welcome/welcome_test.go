package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/router"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "questions" }
func (s *stubScreen) Title() string                           { return "Questions" }

func newTestWelcome(t *testing.T, opts runner.Options) (*WelcomeScreen, *[]*runner.Run) {
	t.Helper()
	rec := runner.New(questionbank.Default(), nil, nil, nil)
	var runs []*runner.Run
	w := New(rec, opts, func(r *runner.Run) screen.Screen {
		runs = append(runs, r)
		return &stubScreen{}
	})
	return w, &runs
}

func typeText(w *WelcomeScreen, s string) {
	for _, r := range s {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestEnterStartsRun(t *testing.T) {
	w, runs := newTestWelcome(t, runner.Options{})
	typeText(w, "Acme")

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if len(*runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(*runs))
	}
	if got := (*runs)[0].Organisation; got != "Acme" {
		t.Errorf("organisation = %q, want %q", got, "Acme")
	}
}

func TestPrefilledOrganisation(t *testing.T) {
	w, runs := newTestWelcome(t, runner.Options{Organisation: "Globex"})

	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(*runs) != 1 || (*runs)[0].Organisation != "Globex" {
		t.Fatalf("expected run for Globex, got %+v", *runs)
	}
}

func TestStartsOnce(t *testing.T) {
	w, runs := newTestWelcome(t, runner.Options{})

	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("second enter should not produce a command")
	}
	if len(*runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(*runs))
	}
}

func TestUnknownFocusShowsError(t *testing.T) {
	w, runs := newTestWelcome(t, runner.Options{Focus: []string{"Marketing"}})

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when the run cannot start")
	}
	if len(*runs) != 0 {
		t.Errorf("expected no run, got %d", len(*runs))
	}
	if view := w.View(100, 30); !strings.Contains(view, "unknown category") {
		t.Error("expected the error in the view")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome(t, runner.Options{})
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
