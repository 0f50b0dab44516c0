package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcovidal/horario/internal/app"
	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
)

// Run starts the TUI and blocks until the user quits.
func Run(a *app.App, svc *sync.Service, times []timetable.SlotTime, themeName string) error {
	m, err := New(a, svc, times, themeName)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
