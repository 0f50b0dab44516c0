package ui

import (
	"strings"
	"testing"

	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/timetable"
)

func TestPad(t *testing.T) {
	if got := pad("NLP", 6); got != "NLP   " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("MINI PROJECT", 6); len([]rune(got)) != 6 {
		t.Errorf("pad did not truncate to width: %q", got)
	}
	if !strings.HasSuffix(pad("MINI PROJECT", 6), "… ") {
		t.Errorf("truncation marker missing: %q", pad("MINI PROJECT", 6))
	}
}

func TestWeekColWidth(t *testing.T) {
	if w := weekColWidth(80); w < 5 || w > 14 {
		t.Errorf("width 80 -> %d", w)
	}
	if w := weekColWidth(20); w != 5 {
		t.Errorf("narrow terminal -> %d, want minimum 5", w)
	}
	if w := weekColWidth(400); w != 14 {
		t.Errorf("wide terminal -> %d, want cap 14", w)
	}
}

func TestNowText(t *testing.T) {
	DisableColor()

	if got := nowText(clock.Status{}); got != "No class right now." {
		t.Errorf("out of session text = %q", got)
	}

	got := nowText(clock.Status{
		InSession:    true,
		Label:        "DVAT",
		PeriodNumber: 1,
		SlotTime:     timetable.SlotTime{Start: "09:00", End: "09:50"},
		Progress:     clock.Progress{Elapsed: 25, Total: 50, Percent: 50},
		HasNext:      true,
		NextLabel:    "IS",
		NextStart:    "09:50",
	})
	for _, want := range []string{"Period 1 · DVAT", "9:00 AM - 9:50 AM", "50% in", "Next: IS at 9:50 AM"} {
		if !strings.Contains(got, want) {
			t.Errorf("nowText missing %q in %q", want, got)
		}
	}

	got = nowText(clock.Status{InSession: true, Label: "Lunch", Pause: true,
		SlotTime: timetable.SlotTime{Start: "12:35", End: "13:15"}})
	if strings.Contains(got, "Period") {
		t.Errorf("pause rendered with a period number: %q", got)
	}
}
