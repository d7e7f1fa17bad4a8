// Package result is the closing screen: scores, recommended modules and the
// optional AI analysis fetched in the background.
package result

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
	"github.com/abhisek/maturiz/internal/ui/layout"
	"github.com/abhisek/maturiz/internal/ui/report"
	"github.com/abhisek/maturiz/internal/ui/theme"
)

var errQueueFull = errors.New("file d'attente pleine")

// enrichedMsg carries the outcome of a background enrichment.
type enrichedMsg struct {
	Report    *enrichment.Report
	Err       error
	AttachErr error
}

// ResultScreen implements screen.Screen for a completed run.
type ResultScreen struct {
	recorder *runner.Recorder
	run      *runner.Run
	service  *enrichment.Service

	result     *diagnostic.Result
	err        error
	enrichment *enrichment.Report
	enrichErr  error
	attachErr  error
	pending    bool

	offset    int
	maxOffset int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the screen for a completed run. A nil service disables the
// AI analysis.
func New(recorder *runner.Recorder, run *runner.Run, service *enrichment.Service) *ResultScreen {
	s := &ResultScreen{
		recorder: recorder,
		run:      run,
		service:  service,
	}
	s.result, s.err = run.Session.Result()
	return s
}

func (s *ResultScreen) Title() string {
	return "Résultats"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Défiler"},
		{Key: "Q", Description: "Quitter"},
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.service == nil || s.err != nil {
		return nil
	}
	in, err := enrichment.InputFromSession(s.run.Session)
	if err != nil {
		s.enrichErr = err
		return nil
	}

	ch := make(chan enrichedMsg, 1)
	ctx := context.Background()
	runID, saved := s.run.ID, s.run.Saved()
	accepted := s.service.Submit(ctx, in, func(r *enrichment.Report, err error) {
		msg := enrichedMsg{Report: r, Err: err}
		if err == nil && saved {
			msg.AttachErr = s.recorder.AttachEnrichment(ctx, runID, r)
		}
		ch <- msg
	})
	if !accepted {
		s.enrichErr = errQueueFull
		return nil
	}
	s.pending = true
	return func() tea.Msg { return <-ch }
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case enrichedMsg:
		s.pending = false
		s.enrichment, s.enrichErr, s.attachErr = msg.Report, msg.Err, msg.AttachErr
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset = min(s.offset+1, s.maxOffset)
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	contentWidth := layout.ContentWidth(width)
	if s.err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Failure.Render(s.err.Error()))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(report.Render(s.run.Organisation, s.result, contentWidth))

	b.WriteString("\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Analyse IA en cours..."))
		b.WriteString("\n")
	case s.enrichment != nil:
		b.WriteString(report.RenderEnrichment(s.enrichment, contentWidth))
	case s.enrichErr != nil:
		b.WriteString(theme.Warning.Render("Analyse IA indisponible : " + s.enrichErr.Error()))
		b.WriteString("\n")
	}

	if !s.run.Saved() {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Ce diagnostic n'a pas été enregistré."))
		b.WriteString("\n")
	} else if s.attachErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Analyse non enregistrée : " + s.attachErr.Error()))
		b.WriteString("\n")
	}

	lines := strings.Split(b.String(), "\n")
	s.maxOffset = max(len(lines)-height, 0)
	s.offset = min(s.offset, s.maxOffset)
	visible := lines[s.offset:min(s.offset+height, len(lines))]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(visible, "\n"))
}
