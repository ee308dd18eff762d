package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message types
type (
	// ProgressMsg reports finished work units.
	ProgressMsg struct {
		Done  int
		Total int
	}

	// DoneMsg is sent when the work finishes.
	DoneMsg struct {
		Err error
	}
)

// ProgressModel shows a spinner and a progress bar while work runs in the
// background.
type ProgressModel struct {
	title    string
	spinner  spinner.Model
	progress progress.Model
	keys     keyMap

	done  int
	total int
	err   error

	finished  bool
	cancelled bool
	cancel    context.CancelFunc
}

// NewProgressModel creates a ProgressModel. cancel is invoked when the
// user interrupts.
func NewProgressModel(title string, cancel context.CancelFunc) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return ProgressModel{
		title:    title,
		spinner:  sp,
		progress: prog,
		keys:     newKeyMap(),
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.done, m.total = msg.Done, msg.Total
		return m, m.progress.SetPercent(m.Percent())

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// Percent returns the finished fraction in [0, 1].
func (m ProgressModel) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// View renders the UI.
func (m ProgressModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.total > 0 {
		b.WriteString(m.progress.ViewAs(m.Percent()))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Lookups: %d/%d", m.done, m.total)))
		b.WriteString("\n")
	}
	if m.cancelled {
		b.WriteString(warningStyle.Render("cancelling..."))
		b.WriteString("\n")
	}
	return b.String()
}

// RunWithProgress runs work while drawing a ProgressModel on out, reading
// keys from in. work
// receives a report function that is safe to call from any goroutine.
// Interrupting cancels the context passed to work. The error returned by
// work is returned.
func RunWithProgress(ctx context.Context, in io.Reader, out io.Writer, title string, work func(ctx context.Context, report func(done, total int)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, cancel),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(in),
	)

	result := make(chan error, 1)
	go func() {
		err := work(ctx, func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		result <- err
		p.Send(DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		<-result
		return err
	}
	return <-result
}
