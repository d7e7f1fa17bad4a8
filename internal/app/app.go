// Package app wires the diagnostic screens into the Bubble Tea program and
// provides the plain line mode used when no TUI is wanted.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/router"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
	"github.com/abhisek/maturiz/internal/screens/questionnaire"
	"github.com/abhisek/maturiz/internal/screens/result"
	"github.com/abhisek/maturiz/internal/screens/welcome"
	"github.com/abhisek/maturiz/internal/ui/layout"
)

// Deps bundles what the hosts need to run a diagnostic.
type Deps struct {
	Recorder *runner.Recorder

	// Enrichment runs the AI analysis. Nil disables it.
	Enrichment *enrichment.Service

	Options runner.Options
	Logger  *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(deps Deps) AppModel {
	showResult := func(run *runner.Run) screen.Screen {
		return result.New(deps.Recorder, run, deps.Enrichment)
	}
	showQuestions := func(run *runner.Run) screen.Screen {
		return questionnaire.New(deps.Recorder, run, showResult)
	}
	return AppModel{
		router: router.New(welcome.New(deps.Recorder, deps.Options, showQuestions)),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render composes the frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quitter"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
