package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"discipline/internal/engine"
)

// boardModel renders the tracked habits against the last seven days as a
// toggle grid, with derived stats in a sidebar.
type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	days      []string // week window, oldest first, ending today
	rows      []engine.Task
	campaigns []engine.Task
	log       []engine.DayLog
	stats     engine.UserStats
	title     engine.Title

	row int
	col int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	rows      []engine.Task
	campaigns []engine.Task
	log       []engine.DayLog
	stats     engine.UserStats
	title     engine.Title
	err       error
}

type toggledMsg struct {
	date  string
	id    string
	added bool
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		days:    weekEnding(engine.Today(time.Now())),
		loading: true,
		lastLog: "Loading…",
	}
}

// weekEnding returns the seven calendar-day keys ending at today, oldest
// first.
func weekEnding(today string) []string {
	end, err := time.Parse(engine.DateLayout, today)
	if err != nil {
		end = time.Now()
	}
	days := make([]string, 7)
	for i := 0; i < 7; i++ {
		days[i] = end.AddDate(0, 0, i-6).Format(engine.DateLayout)
	}
	return days
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		catalog, err := m.svc.Catalog(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		log, err := m.svc.Log(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}

		// Campaigns have dated stages and do not belong on a daily grid;
		// they show as progress lines in the sidebar instead.
		var rows, campaigns []engine.Task
		for _, t := range catalog {
			if t.Type == engine.TaskTemporary {
				campaigns = append(campaigns, t)
				continue
			}
			rows = append(rows, t)
		}
		return loadedMsg{rows: rows, campaigns: campaigns, log: log, stats: stats, title: engine.ResolveTitle(stats)}
	}
}

func (m boardModel) toggleCmd(date, id string) tea.Cmd {
	return func() tea.Msg {
		added, err := m.svc.Toggle(m.ctx, date, id)
		return toggledMsg{date: date, id: id, added: added, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.rows = msg.rows
		m.campaigns = msg.campaigns
		m.log = msg.log
		m.stats = msg.stats
		m.title = msg.title
		if m.row >= len(m.rows) {
			m.row = len(m.rows) - 1
		}
		if m.row < 0 {
			m.row = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		verb := "Unlogged"
		if msg.added {
			verb = "Logged"
		}
		m.lastLog = fmt.Sprintf("%s %s on %s.", verb, msg.id, msg.date)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
			return m, nil
		case "down", "j":
			if m.row < len(m.rows)-1 {
				m.row++
			}
			return m, nil
		case "left", "h":
			if m.col > 0 {
				m.col--
			}
			return m, nil
		case "right", "l":
			if m.col < len(m.days)-1 {
				m.col++
			}
			return m, nil
		case "t":
			m.col = len(m.days) - 1
			return m, nil
		case "enter", " ":
			if m.row < 0 || m.row >= len(m.rows) || m.col < 0 || m.col >= len(m.days) {
				return m, nil
			}
			t := m.rows[m.row]
			date := m.days[m.col]
			m.lastLog = fmt.Sprintf("Toggling %s on %s…", t.ID, date)
			return m, m.toggleCmd(date, t.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderGrid()
	footer := "\n" + m.lastLog

	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Discipline — loading…"
	}
	cur, span := engine.LevelProgress(m.stats.XP)
	bar := progressBar(cur, span, 30)
	return fmt.Sprintf("Discipline | %s | Level %d | XP %d %s", m.title, m.stats.Level, m.stats.XP, bar)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Attributes"}
	for _, c := range engine.Categories {
		lines = append(lines, renderAttr(string(c), m.stats.Score(c)))
	}
	if len(m.campaigns) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Campaigns")
		for i := range m.campaigns {
			t := &m.campaigns[i]
			if len(t.Stages) == 0 {
				continue
			}
			p := engine.StageProgress(t, m.log)
			lines = append(lines, fmt.Sprintf("- %s %d%%", t.Name, p.Percent))
		}
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- arrows or hjkl: move")
	lines = append(lines, "- enter/space: toggle")
	lines = append(lines, "- t: jump to today")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderGrid() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.rows) == 0 {
		return "(no tasks)"
	}

	const nameW = 22
	var out []string

	head := padRight("Week", nameW)
	for i, d := range m.days {
		label := d[5:] // MM-DD
		if i == len(m.days)-1 {
			label = "today"
		}
		head += " " + padRight(label, 5)
	}
	out = append(out, head)

	for ri, t := range m.rows {
		mark := "  "
		if ri == m.row {
			mark = "> "
		}
		name := t.Name
		if t.Type == engine.TaskNegative {
			name = "! " + name
		}
		line := mark + padRight(name, nameW-2)
		for ci, d := range m.days {
			cell := "·"
			if done := engine.CompletedOn(m.log, d); done[t.ID] {
				if t.Type == engine.TaskNegative {
					cell = "x"
				} else {
					cell = "✓"
				}
			}
			if ri == m.row && ci == m.col {
				cell = "[" + cell + "]"
			}
			line += " " + padRight(cell, 5)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func renderAttr(label string, score int) string {
	bar := progressBar(score, 100, 14)
	return fmt.Sprintf("- %-12s %3d %s", label, score, bar)
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
