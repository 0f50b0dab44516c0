package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/marcovidal/horario/internal/app"
	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/store"
	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
)

func pinColorProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	a, err := app.New(store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	svc := sync.NewService(nil, a.UserID())
	m, err := New(a, svc, timetable.DefaultSlotTimes[:], "light")
	if err != nil {
		t.Fatal(err)
	}
	m.width = 80
	m.height = 40
	return m
}

func TestViewRendersHomeTab(t *testing.T) {
	pinColorProfile(t)
	m := newTestModel(t)
	m.viewDay = 0

	out := m.View()
	if !strings.Contains(out, "horario") {
		t.Error("title missing")
	}
	if !strings.Contains(out, "Monday") {
		t.Error("day header missing")
	}
	// The built-in Monday starts with DVAT.
	if !strings.Contains(out, "DVAT") {
		t.Error("first period label missing")
	}
	if !strings.Contains(out, "Lunch") {
		t.Error("lunch cell missing")
	}
}

func TestViewShowsActivePeriodProgress(t *testing.T) {
	pinColorProfile(t)
	m := newTestModel(t)

	// Monday 09:25, halfway through slot 0.
	at := time.Date(2026, 8, 24, 9, 25, 0, 0, time.Local)
	m.refreshClock(at)
	m.viewDay = m.status.Day

	if !m.status.InSession || m.status.Slot != 0 {
		t.Fatalf("status = %+v", m.status)
	}
	out := m.View()
	if !strings.Contains(out, "█") {
		t.Error("active period progress bar missing")
	}
	if !strings.Contains(out, "Period 1") {
		t.Errorf("header period text missing:\n%s", out)
	}
}

func TestViewOutsideSession(t *testing.T) {
	pinColorProfile(t)
	m := newTestModel(t)

	// Sunday: no class regardless of slot.
	at := time.Date(2026, 8, 23, 10, 0, 0, 0, time.Local)
	m.refreshClock(at)

	if m.status.InSession {
		t.Fatalf("in session on Sunday: %+v", m.status)
	}
	if strings.Contains(m.View(), "█") {
		t.Error("progress bar rendered with no active period")
	}
}

func TestPeriodText(t *testing.T) {
	m := newTestModel(t)

	m.status = clock.Status{}
	if got := m.periodText(); got != "No class now" {
		t.Errorf("periodText = %q", got)
	}

	m.status = clock.Status{
		InSession:    true,
		Label:        "NLP",
		SlotTime:     timetable.SlotTime{Start: "10:55", End: "11:45"},
		PeriodNumber: 3,
		HasNext:      true,
		NextLabel:    "FCA",
		NextStart:    "11:45",
	}
	got := m.periodText()
	for _, want := range []string{"Period 3", "NLP", "10:55 AM", "next FCA at 11:45 AM"} {
		if !strings.Contains(got, want) {
			t.Errorf("periodText = %q, missing %q", got, want)
		}
	}
}

func TestWeekTextCoversEveryDay(t *testing.T) {
	m := newTestModel(t)
	text := m.weekText()

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 1+timetable.NumDays {
		t.Fatalf("week text has %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Mon") || !strings.HasPrefix(lines[6], "Sat") {
		t.Errorf("day rows out of order:\n%s", text)
	}
	if !strings.Contains(lines[0], "Break") || !strings.Contains(lines[0], "Lunch") {
		t.Errorf("pause headers missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], "DVAT") {
		t.Errorf("Monday content missing: %q", lines[1])
	}
}

func TestExploreTabWithoutSync(t *testing.T) {
	pinColorProfile(t)
	m := newTestModel(t)
	m.tab = TabExplore

	out := m.View()
	if !strings.Contains(out, "Sync is off") {
		t.Error("explore tab should explain that sync is off")
	}
}

func TestSettingsOverlay(t *testing.T) {
	pinColorProfile(t)
	m := newTestModel(t)
	m.mode = ModeSettings

	out := m.View()
	for _, want := range []string{"Settings", "theme", "editing", "notify", "vibrate"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings overlay missing %q", want)
		}
	}
}
