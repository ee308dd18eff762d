package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question. The default answer is no.
type ConfirmModel struct {
	prompt   string
	keys     keyMap
	help     help.Model
	answered bool
	accepted bool
}

// NewConfirmModel creates a ConfirmModel for prompt.
func NewConfirmModel(prompt string) ConfirmModel {
	return ConfirmModel{
		prompt: prompt,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the model.
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Update handles key presses.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.yes):
			m.answered, m.accepted = true, true
			return m, tea.Quit
		case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
			m.answered, m.accepted = true, false
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the prompt.
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(m.prompt))
	b.WriteString(" ")
	switch {
	case !m.answered:
		b.WriteString(dimStyle.Render("[y/N]"))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	case m.accepted:
		b.WriteString(successStyle.Render("yes"))
	default:
		b.WriteString(errorStyle.Render("no"))
	}
	b.WriteString("\n")
	return b.String()
}

// Accepted reports whether the user answered yes.
func (m ConfirmModel) Accepted() bool { return m.accepted }

// Confirm runs a ConfirmModel on in and out and reports the answer.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, prompt string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Accepted(), nil
}
