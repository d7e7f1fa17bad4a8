// Package questionnaire is the screen that presents one question at a time
// and records the answers of a run.
package questionnaire

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/router"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
	"github.com/abhisek/maturiz/internal/ui/components"
	"github.com/abhisek/maturiz/internal/ui/layout"
	"github.com/abhisek/maturiz/internal/ui/theme"
)

// QuestionnaireScreen implements screen.Screen for an active run.
type QuestionnaireScreen struct {
	recorder *runner.Recorder
	run      *runner.Run
	next     func(*runner.Run) screen.Screen

	question    questionbank.Question
	hasQuestion bool
	choices     components.ChoiceList
	errMsg      string
	finished    bool
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.StatusProvider = (*QuestionnaireScreen)(nil)

// New creates the screen for run. next builds the screen shown once the
// run completes.
func New(recorder *runner.Recorder, run *runner.Run, next func(*runner.Run) screen.Screen) *QuestionnaireScreen {
	s := &QuestionnaireScreen{
		recorder: recorder,
		run:      run,
		next:     next,
	}
	s.loadQuestion()
	return s
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionnaireScreen) Title() string {
	if s.hasQuestion {
		return s.question.Category
	}
	return "Questionnaire"
}

func (s *QuestionnaireScreen) Status() string {
	p := s.run.Session.Progress()
	return fmt.Sprintf("Question %d/%d", p.Current, p.Total)
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choisir"},
		{Key: "1-5", Description: "Répondre"},
		{Key: "Enter", Description: "Valider"},
		{Key: "Ctrl+C", Description: "Quitter"},
	}
}

func (s *QuestionnaireScreen) loadQuestion() {
	q, ok := s.run.Session.CurrentQuestion()
	s.question, s.hasQuestion = q, ok
	if !ok {
		return
	}
	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.Text
	}
	s.choices = components.NewChoiceList(q.Text, options)
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok || s.finished || !s.hasQuestion {
		return s, nil
	}

	s.choices, _ = s.choices.Update(msg)
	if !s.choices.Submitted {
		return s, nil
	}
	return s, s.submit(s.choices.Selected)
}

func (s *QuestionnaireScreen) submit(optionIndex int) tea.Cmd {
	before := s.run.Session.AnsweredCount()
	err := s.recorder.Answer(context.Background(), s.run, s.question.ID, optionIndex)
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.errMsg = ""
	}

	// A rejected answer leaves the session untouched; re-arm the choice list.
	if s.run.Session.AnsweredCount() == before {
		s.choices.Submitted = false
		return nil
	}

	if s.run.Session.State() == diagnostic.StateCompleted {
		s.finished = true
		next := s.next(s.run)
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}
	s.loadQuestion()
	return nil
}

func (s *QuestionnaireScreen) View(width, height int) string {
	contentWidth := layout.ContentWidth(width)

	if !s.hasQuestion {
		msg := "Plus aucune question disponible."
		if s.run.Session.Exhausted() {
			msg += fmt.Sprintf(" Au moins %d réponses sont nécessaires.", diagnostic.MinAnswers)
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Warning.Render(msg))
	}

	var b strings.Builder
	b.WriteString("\n")

	p := s.run.Session.Progress()
	bar := components.NewProgressBar("Progression", p.Percentage, true, contentWidth)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n\n")

	label := s.question.Category
	if s.question.IsFollowUp {
		label += " · approfondissement"
	}
	b.WriteString(theme.Heading.Render(label))
	b.WriteString("\n\n")

	s.choices.Width = contentWidth
	b.WriteString(s.choices.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Failure.Render(s.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
