package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"discipline/internal/engine"
)

// RunFocus runs a countdown for one task and logs the completion for today
// when the timer runs out.
func RunFocus(ctx context.Context, svc *engine.Service, task engine.Task, seconds int, out io.Writer) error {
	m := focusModel{
		ctx:       ctx,
		svc:       svc,
		task:      task,
		total:     time.Duration(seconds) * time.Second,
		remaining: time.Duration(seconds) * time.Second,
	}
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

type focusModel struct {
	ctx  context.Context
	svc  *engine.Service
	task engine.Task

	total     time.Duration
	remaining time.Duration

	done    bool
	logged  bool
	aborted bool
	err     error
}

type focusTickMsg time.Time

type focusLoggedMsg struct {
	added bool
	err   error
}

func focusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return focusTickMsg(t)
	})
}

func (m focusModel) Init() tea.Cmd {
	return focusTick()
}

func (m focusModel) logCmd() tea.Cmd {
	return func() tea.Msg {
		added, err := m.svc.Toggle(m.ctx, engine.Today(time.Now()), m.task.ID)
		return focusLoggedMsg{added: added, err: err}
	}
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		if m.done || m.aborted {
			return m, nil
		}
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			m.done = true
			return m, m.logCmd()
		}
		return m, focusTick()
	case focusLoggedMsg:
		m.err = msg.err
		// A re-run on an already logged day toggles it back off; flip it
		// once more so the session still counts.
		if msg.err == nil && !msg.added {
			return m, m.logCmd()
		}
		m.logged = msg.err == nil
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.done {
				m.aborted = true
			}
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

func (m focusModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Focus: %s\n\n", m.task.Name)

	elapsed := m.total - m.remaining
	fmt.Fprintf(&b, "  %s %s\n\n", formatClock(m.remaining), progressBar(int(elapsed.Seconds()), int(m.total.Seconds()), 30))

	switch {
	case m.aborted:
		b.WriteString("Aborted. Nothing logged.\n")
	case m.done && m.err != nil:
		fmt.Fprintf(&b, "Session finished but logging failed: %v\n", m.err)
		b.WriteString("Press q to quit.\n")
	case m.done && m.logged:
		b.WriteString("Session complete. Logged for today.\n")
		b.WriteString("Press enter to quit.\n")
	case m.done:
		b.WriteString("Wrapping up…\n")
	default:
		b.WriteString("Press q to abort.\n")
	}
	return b.String()
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
