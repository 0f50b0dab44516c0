package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcovidal/horario/internal/tui/theme"
)

// Card width for the day view; recomputed from the terminal width.
const defaultCardWidth = 44

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg        lipgloss.Color
	colorCard      lipgloss.Color
	colorSelection lipgloss.Color
	colorFg        lipgloss.Color
	colorFgMuted   lipgloss.Color
	colorAccent    lipgloss.Color
	colorPause     lipgloss.Color
	colorActive    lipgloss.Color
	colorWarning   lipgloss.Color

	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Clock       lipgloss.Style

	DayHeader lipgloss.Style

	Card         lipgloss.Style // one merged cell in the day view
	CardSelected lipgloss.Style
	CardActive   lipgloss.Style // the period happening right now
	CardPause    lipgloss.Style
	CardFree     lipgloss.Style

	PeriodNum lipgloss.Style
	TimeRange lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style

	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style

	Status  lipgloss.Style
	Warning lipgloss.Style
	Hint    lipgloss.Style

	ListSelected lipgloss.Style
	FormLabel    lipgloss.Style
	FormFocused  lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBg:        theme.Color(t.Bg),
		colorCard:      theme.Color(t.BgCard),
		colorSelection: theme.Color(t.BgSelection),
		colorFg:        theme.Color(t.Fg),
		colorFgMuted:   theme.Color(t.FgMuted),
		colorAccent:    theme.Color(t.Accent),
		colorPause:     theme.Color(t.Pause),
		colorActive:    theme.Color(t.Active),
		colorWarning:   theme.Color(t.Warning),
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.TabActive = lipgloss.NewStyle().Bold(true).
		Foreground(s.colorBg).Background(s.colorAccent).Padding(0, 1)
	s.TabInactive = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).Padding(0, 1)
	s.Clock = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.DayHeader = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		Padding(0, 1)
	s.Card = card
	s.CardSelected = card.BorderForeground(s.colorAccent).
		Background(s.colorSelection)
	s.CardActive = card.BorderForeground(s.colorActive)
	s.CardPause = card.BorderForeground(s.colorPause).
		Foreground(s.colorPause)
	s.CardFree = card.Foreground(s.colorFgMuted)

	s.PeriodNum = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.TimeRange = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.Label = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg)
	s.Muted = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.ProgressFill = lipgloss.NewStyle().Foreground(s.colorActive)
	s.ProgressEmpty = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.Status = lipgloss.NewStyle().Foreground(s.colorFg)
	s.Warning = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.Hint = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.ListSelected = lipgloss.NewStyle().Bold(true).
		Foreground(s.colorBg).Background(s.colorAccent)
	s.FormLabel = lipgloss.NewStyle().Foreground(s.colorFgMuted).Width(10)
	s.FormFocused = lipgloss.NewStyle().Foreground(s.colorAccent)

	return s
}
