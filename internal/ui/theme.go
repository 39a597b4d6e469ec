package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Discipline theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconHero    = "🛡️"
	IconSword   = "⚔️"
	IconBrain   = "🧠"
	IconHeart   = "❤️"
	IconWork    = "💼"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconSkull   = "💀"
	IconLock    = "🔒"
	IconMap     = "🗺️"
	IconScroll  = "📜"
	IconCrystal = "🔮"
	IconTimer   = "⏳"
	IconWarn    = "⚠️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeBroken  = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("BROKEN")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon maps an attribute name to its emblem.
func CategoryIcon(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "physical":
		return IconSword
	case "intellect":
		return IconBrain
	case "health":
		return IconHeart
	case "professional":
		return IconWork
	default:
		return IconScroll
	}
}

// StageStatusText colors a stage state for list output.
func StageStatusText(state string) string {
	s := strings.ToLower(strings.TrimSpace(state))
	switch s {
	case "completed":
		return Good.Render(s)
	case "unlockable":
		return H2.Render(s)
	case "scheduled":
		return Warn.Render(s)
	case "overdue":
		return Bad.Render(s)
	case "locked":
		return Muted.Render(IconLock + " " + s)
	default:
		return Muted.Render(state)
	}
}

// ChallengeStatusText colors a challenge status for list output.
func ChallengeStatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Gold.Render(s)
	case "active":
		return H2.Render(s)
	case "available":
		return Muted.Render(s)
	default:
		return Muted.Render(status)
	}
}

// XPBar renders a fixed-width progress bar, e.g. [████░░░░░░] 40/100.
func XPBar(current, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}
	filled := current * width / max
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d/%d", Gold.Render(bar), current, max)
}
