package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maturiz/internal/router"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/screen"
	"github.com/abhisek/maturiz/internal/ui/components"
	"github.com/abhisek/maturiz/internal/ui/layout"
	"github.com/abhisek/maturiz/internal/ui/theme"
)

const organisationLimit = 80

// WelcomeScreen asks for the organisation name, then starts the run and
// hands it to the questionnaire.
type WelcomeScreen struct {
	recorder *runner.Recorder
	opts     runner.Options
	next     func(*runner.Run) screen.Screen
	input    components.TextInput
	errMsg   string
	started  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. opts.Organisation prefills the input; next
// builds the screen that runs the started diagnostic.
func New(recorder *runner.Recorder, opts runner.Options, next func(*runner.Run) screen.Screen) *WelcomeScreen {
	input := components.NewTextInput("Nom de l'organisation (facultatif)", organisationLimit)
	if opts.Organisation != "" {
		input.Model.SetValue(opts.Organisation)
	}
	return &WelcomeScreen{
		recorder: recorder,
		opts:     opts,
		next:     next,
		input:    input,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Commencer"},
		{Key: "Ctrl+C", Description: "Quitter"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return w, w.start()
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) start() tea.Cmd {
	if w.started {
		return nil
	}
	opts := w.opts
	opts.Organisation = w.input.Value()

	run, err := w.recorder.Start(opts)
	if err != nil {
		w.errMsg = err.Error()
		return nil
	}
	w.started = true
	w.errMsg = ""

	next := w.next(run)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Diagnostic de maturité de la fonction achats"))
	sections = append(sections, theme.Subtitle.Render(
		"Entre 6 et 15 questions, adaptées à vos réponses."))

	if len(w.opts.Focus) > 0 {
		sections = append(sections, theme.Hint.Render("Priorité : "+strings.Join(w.opts.Focus, ", ")))
	}

	sections = append(sections, "")
	sections = append(sections, theme.Card.Width(min(60, width-4)).Render(w.input.View()))

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, theme.Failure.Render(w.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
