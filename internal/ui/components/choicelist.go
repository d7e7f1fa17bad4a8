package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/maturiz/internal/ui/theme"
)

// ChoiceList is a single-choice selector over answer options. Digits 1-9
// pick an option directly.
type ChoiceList struct {
	Prompt    string
	Options   []string
	Selected  int
	Submitted bool
	Width     int
}

// NewChoiceList creates a selector with the first option highlighted.
func NewChoiceList(prompt string, options []string) ChoiceList {
	return ChoiceList{Prompt: prompt, Options: options}
}

// Update handles keyboard navigation and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
				c.Submitted = true
			}
		}
	}
	return c, nil
}

// View renders the prompt and the options.
func (c ChoiceList) View() string {
	var b strings.Builder

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if c.Width > 0 {
		prompt = prompt.Width(c.Width)
	}
	b.WriteString(prompt.Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		style := theme.Unselected
		if i == c.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d.  %s", prefix, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
