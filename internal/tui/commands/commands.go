// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
)

// ErrMsg is sent when a remote operation fails. The local grid is never
// touched by a failure; the model turns the error into a transient hint.
type ErrMsg struct {
	Err error
}

// StatusMsg carries a transient status line.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg clears an expired status line.
type ClearStatusMsg struct {
	ID int
}

// ProfileLoadedMsg is sent when the remote profile arrives. Profile is nil
// when the user has none yet.
type ProfileLoadedMsg struct {
	Profile *sync.Profile
}

// ProfileSavedMsg is sent after a successful profile save.
type ProfileSavedMsg struct {
	Profile sync.Profile
}

// PersonalSavedMsg is sent after the personal timetable is stored remotely.
type PersonalSavedMsg struct{}

// RowsLoadedMsg is sent when a remote timetable arrives. Found is false
// when no usable document exists; the grid stays as it is.
type RowsLoadedMsg struct {
	Rows   [][]string
	Found  bool
	Source string // "personal" or the class key
}

// ClassPublishedMsg is sent after a successful class publish.
type ClassPublishedMsg struct {
	Key string
}

// PublishedListMsg carries the explore listing.
type PublishedListMsg struct {
	Items []sync.Published
}

// StudentsMsg carries the per-class student directory.
type StudentsMsg struct {
	Items []sync.Student
}

// ExpireStatus schedules the removal of a status line.
func ExpireStatus(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

// LoadProfile fetches the remote profile.
func LoadProfile(svc *sync.Service) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.LoadProfile(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: p}
	}
}

// SaveProfile validates and stores the profile, reserving the username.
func SaveProfile(svc *sync.Service, p sync.Profile) tea.Cmd {
	return func() tea.Msg {
		stored, err := svc.SaveProfile(context.Background(), p)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ProfileSavedMsg{Profile: stored}
	}
}

// SavePersonal stores a snapshot of the grid as the personal timetable.
// Rows is a copy taken on the UI loop so the goroutine never races an edit.
func SavePersonal(svc *sync.Service, rows [][]string) tea.Cmd {
	return func() tea.Msg {
		g := timetable.FromRows(rows)
		if g == nil {
			return nil
		}
		if err := svc.SavePersonal(context.Background(), g); err != nil {
			return ErrMsg{Err: err}
		}
		return PersonalSavedMsg{}
	}
}

// LoadPersonal fetches the personal timetable.
func LoadPersonal(svc *sync.Service) tea.Cmd {
	return func() tea.Msg {
		rows, found, err := svc.LoadPersonal(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RowsLoadedMsg{Rows: rows, Found: found, Source: "personal"}
	}
}

// PublishClass stores a snapshot of the grid under the profile's class key.
func PublishClass(svc *sync.Service, rows [][]string, p *sync.Profile) tea.Cmd {
	return func() tea.Msg {
		g := timetable.FromRows(rows)
		if g == nil {
			return nil
		}
		if err := svc.PublishClass(context.Background(), g, p); err != nil {
			return ErrMsg{Err: err}
		}
		return ClassPublishedMsg{Key: p.ClassKey()}
	}
}

// LoadClass fetches the published timetable for a class key.
func LoadClass(svc *sync.Service, key string) tea.Cmd {
	return func() tea.Msg {
		rows, found, err := svc.LoadClass(context.Background(), key)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RowsLoadedMsg{Rows: rows, Found: found, Source: key}
	}
}

// ListPublished fetches every published class timetable.
func ListPublished(svc *sync.Service) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.ListPublished(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		sync.SortPublished(items, "recent")
		return PublishedListMsg{Items: items}
	}
}

// LoadStudents fetches the student directory for a class.
func LoadStudents(svc *sync.Service, classKey string) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.Students(context.Background(), classKey)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StudentsMsg{Items: items}
	}
}
