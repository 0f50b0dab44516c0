package clock

import (
	"testing"
	"time"

	"github.com/marcovidal/horario/internal/timetable"
)

var twoSlots = []timetable.SlotTime{
	{Start: "09:00", End: "09:50"},
	{Start: "09:50", End: "10:40"},
}

func minutes(h, m int) float64 {
	return float64(h*60 + m)
}

func TestCurrentSlot(t *testing.T) {
	tests := []struct {
		name string
		now  float64
		want int
	}{
		{name: "inside first slot", now: minutes(9, 45), want: 0},
		{name: "boundary belongs to next slot", now: minutes(9, 50), want: 1},
		{name: "start of first slot", now: minutes(9, 0), want: 0},
		{name: "before schedule", now: minutes(8, 0), want: -1},
		{name: "after schedule", now: minutes(10, 40), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentSlot(twoSlots, tt.now); got != tt.want {
				t.Errorf("CurrentSlot(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestCurrentSlotGap(t *testing.T) {
	gapped := []timetable.SlotTime{
		{Start: "09:00", End: "09:50"},
		{Start: "10:00", End: "10:40"},
	}
	if got := CurrentSlot(gapped, minutes(9, 55)); got != -1 {
		t.Errorf("CurrentSlot in gap = %d, want -1", got)
	}
}

func TestSlotProgress(t *testing.T) {
	tests := []struct {
		name        string
		now         float64
		wantElapsed float64
		wantPercent float64
	}{
		{name: "halfway", now: minutes(9, 25), wantElapsed: 25, wantPercent: 50},
		{name: "clamped below", now: minutes(8, 0), wantElapsed: 0, wantPercent: 0},
		{name: "clamped above", now: minutes(11, 0), wantElapsed: 50, wantPercent: 100},
		{name: "at start", now: minutes(9, 0), wantElapsed: 0, wantPercent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SlotProgress("09:00", "09:50", tt.now)
			if p.Total != 50 {
				t.Errorf("Total = %v, want 50", p.Total)
			}
			if p.Elapsed != tt.wantElapsed {
				t.Errorf("Elapsed = %v, want %v", p.Elapsed, tt.wantElapsed)
			}
			if p.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", p.Percent, tt.wantPercent)
			}
		})
	}
}

func TestSlotProgressZeroTotal(t *testing.T) {
	p := SlotProgress("09:00", "09:00", minutes(9, 0))
	if p.Percent != 0 {
		t.Errorf("Percent with zero-length slot = %v, want 0", p.Percent)
	}
}

func TestNextBoundary(t *testing.T) {
	d, ok := NextBoundary(twoSlots, minutes(9, 45))
	if !ok {
		t.Fatal("expected a boundary after 09:45")
	}
	if d != 5*time.Minute {
		t.Errorf("delay = %v, want 5m", d)
	}

	// At an end instant the boundary is the next strictly greater end.
	d, ok = NextBoundary(twoSlots, minutes(9, 50))
	if !ok || d != 50*time.Minute {
		t.Errorf("delay at 09:50 = %v (ok=%v), want 50m", d, ok)
	}

	// After the last end no wake is scheduled.
	if _, ok := NextBoundary(twoSlots, minutes(10, 40)); ok {
		t.Error("expected no boundary after the last slot end")
	}
}

func TestDayIndex(t *testing.T) {
	// 2025-01-06 is a Monday.
	monday := time.Date(2025, 1, 6, 10, 0, 0, 0, time.Local)
	if got := DayIndex(monday); got != 0 {
		t.Errorf("DayIndex(Monday) = %d, want 0", got)
	}
	saturday := monday.AddDate(0, 0, 5)
	if got := DayIndex(saturday); got != 5 {
		t.Errorf("DayIndex(Saturday) = %d, want 5", got)
	}
	sunday := monday.AddDate(0, 0, 6)
	if got := DayIndex(sunday); got != -1 {
		t.Errorf("DayIndex(Sunday) = %d, want -1", got)
	}
}

func TestNextUp(t *testing.T) {
	g := timetable.Blank()
	if err := g.Set(0, 4, "FCA"); err != nil {
		t.Fatal(err)
	}

	// From slot 0: slots 1 is empty, 2 is Break, 3 empty, 4 has FCA... the
	// first non-empty normalized label is the Break at slot 2.
	label, start, ok := NextUp(g, timetable.DefaultSlotTimes[:], 0, 0)
	if !ok || label != "Break" || start != timetable.DefaultSlotTimes[2].Start {
		t.Errorf("NextUp from slot 0 = (%q, %q, %v)", label, start, ok)
	}

	// From slot 2 the next non-empty is FCA at slot 4.
	label, start, ok = NextUp(g, timetable.DefaultSlotTimes[:], 0, 2)
	if !ok || label != "FCA" || start != timetable.DefaultSlotTimes[4].Start {
		t.Errorf("NextUp from slot 2 = (%q, %q, %v)", label, start, ok)
	}

	// Nothing after the last content slot on an otherwise blank day.
	if _, _, ok := NextUp(g, timetable.DefaultSlotTimes[:], 1, timetable.AfternoonBreak); ok {
		t.Error("expected no next-up after the last non-empty slot")
	}
}

func TestCurrentStatus(t *testing.T) {
	g := timetable.Blank()
	if err := g.Set(0, 0, "DVAT"); err != nil {
		t.Fatal(err)
	}

	// Monday 09:25, inside slot 0.
	now := time.Date(2025, 1, 6, 9, 25, 0, 0, time.Local)
	s := Current(g, timetable.DefaultSlotTimes[:], now)
	if !s.InSession {
		t.Fatal("expected an in-session status")
	}
	if s.Slot != 0 || s.Label != "DVAT" || s.Pause {
		t.Errorf("status = %+v, want slot 0 label DVAT", s)
	}
	if s.PeriodNumber != 1 {
		t.Errorf("PeriodNumber = %d, want 1", s.PeriodNumber)
	}
	if s.Progress.Percent != 50 {
		t.Errorf("Percent = %v, want 50", s.Progress.Percent)
	}

	// Sunday means no class even during slot hours.
	sunday := time.Date(2025, 1, 5, 9, 25, 0, 0, time.Local)
	if s := Current(g, timetable.DefaultSlotTimes[:], sunday); s.InSession {
		t.Error("Sunday must never be in session")
	}

	// Pause periods keep the period number of the preceding content slots.
	lunch := time.Date(2025, 1, 6, 12, 40, 0, 0, time.Local)
	s = Current(g, timetable.DefaultSlotTimes[:], lunch)
	if !s.InSession || !s.Pause || s.Label != "Lunch" {
		t.Errorf("lunch status = %+v", s)
	}
}

func TestWakerReschedulesCancelPending(t *testing.T) {
	var w Waker
	fired := make(chan string, 2)

	w.WakeAfter(5*time.Millisecond, func() { fired <- "first" })
	w.WakeAfter(20*time.Millisecond, func() { fired <- "second" })

	select {
	case got := <-fired:
		if got != "second" {
			t.Errorf("wrong wake fired: %s", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no wake fired")
	}

	select {
	case got := <-fired:
		t.Errorf("extra wake fired: %s", got)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestWakerCancel(t *testing.T) {
	var w Waker
	fired := make(chan struct{}, 1)

	w.WakeAfter(10*time.Millisecond, func() { fired <- struct{}{} })
	w.Cancel()

	select {
	case <-fired:
		t.Error("cancelled wake still fired")
	case <-time.After(40 * time.Millisecond):
	}
}
