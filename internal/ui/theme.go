package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// taskmate theme (CLI + TUI).
// Two palettes, picked by the session theme.

const (
	IconTasks     = "📋"
	IconToday     = "📅"
	IconImportant = "⭐"
	IconPlanned   = "🗓️"
	IconAssigned  = "👤"
	IconDone      = "✅"
	IconPlus      = "➕"
	IconTrash     = "🗑️"
	IconWave      = "👋"
	IconMoon      = "🌙"
	IconSun       = "☀️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
)

type palette struct {
	primary, accent, good, warn, bad, muted, text, selBg lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("25"),  // blue
		accent:  lipgloss.Color("127"), // magenta
		good:    lipgloss.Color("28"),  // green
		warn:    lipgloss.Color("166"), // orange
		bad:     lipgloss.Color("160"), // red
		muted:   lipgloss.Color("243"), // gray
		text:    lipgloss.Color("235"),
		selBg:   lipgloss.Color("254"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("63"),
		accent:  lipgloss.Color("205"),
		good:    lipgloss.Color("42"),
		warn:    lipgloss.Color("214"),
		bad:     lipgloss.Color("196"),
		muted:   lipgloss.Color("244"),
		text:    lipgloss.Color("252"),
		selBg:   lipgloss.Color("237"),
	}
)

// Styles is the set of styles for one theme.
type Styles struct {
	Dark bool

	Title lipgloss.Style
	H2    lipgloss.Style
	Text  lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style

	Panel       lipgloss.Style
	SelectedRow lipgloss.Style
	ActiveView  lipgloss.Style
}

// NewStyles returns the dark palette when dark is set, the light one otherwise.
func NewStyles(dark bool) Styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return Styles{
		Dark:  dark,
		Title: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		H2:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Text:  lipgloss.NewStyle().Foreground(p.text),
		Muted: lipgloss.NewStyle().Foreground(p.muted),
		Key:   lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Good:  lipgloss.NewStyle().Bold(true).Foreground(p.good),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(p.warn),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(p.bad),

		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1),
		SelectedRow: lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.selBg),
		ActiveView:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
	}
}

// PrefersDark reports whether the terminal background is dark.
func PrefersDark() bool {
	return termenv.HasDarkBackground()
}

func (s Styles) Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return s.Title.Render(icon + title)
}

func (s Styles) LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", s.Key.Render(label+":"), value)
}

func (s Styles) PriorityText(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return s.Bad.Render("high")
	case "medium":
		return s.Warn.Render("medium")
	case "low":
		return s.Good.Render("low")
	default:
		return s.Muted.Render(priority)
	}
}

func (s Styles) Checkbox(done bool) string {
	if done {
		return s.Good.Render("[x]")
	}
	return s.Muted.Render("[ ]")
}

func ThemeIcon(dark bool) string {
	if dark {
		return IconMoon
	}
	return IconSun
}

// ViewIcon returns the icon for a view name.
func ViewIcon(view string) string {
	switch view {
	case "today":
		return IconToday
	case "important":
		return IconImportant
	case "planned":
		return IconPlanned
	case "assigned":
		return IconAssigned
	default:
		return IconTasks
	}
}

// ProgressBar renders value/total as a fixed-width bar.
func ProgressBar(value int, total int, width int) string {
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
