// Package clock tracks the current period against the slot schedule and
// computes boundary wake-ups.
package clock

import (
	"time"

	"github.com/marcovidal/horario/internal/timetable"
)

// MinuteOfDay returns the wall-clock position as fractional minutes since
// midnight. Seconds contribute so progress moves smoothly between ticks.
func MinuteOfDay(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}

// DayIndex maps a wall-clock instant to a grid row: Monday is 0 through
// Saturday 5. Sunday yields -1, which means no class regardless of slot.
func DayIndex(t time.Time) int {
	return int(t.Weekday()) - 1
}

// CurrentSlot returns the index of the slot whose [start, end) interval
// contains nowMin: start-inclusive, end-exclusive. Returns -1 when nowMin
// falls in a gap or outside the schedule entirely.
func CurrentSlot(times []timetable.SlotTime, nowMin float64) int {
	for i, st := range times {
		start := float64(timetable.TimeToMinutes(st.Start))
		end := float64(timetable.TimeToMinutes(st.End))
		if nowMin >= start && nowMin < end {
			return i
		}
	}
	return -1
}

// Progress describes elapsed position within one slot.
type Progress struct {
	Elapsed float64 // minutes, clamped to [0, Total]
	Total   float64 // minutes
	Percent float64 // 0-100, 0 when Total is 0
}

// SlotProgress computes clamped progress through the [start, end) interval.
// Elapsed never goes negative and never exceeds the slot length, even when
// nowMin lies outside the interval.
func SlotProgress(start, end string, nowMin float64) Progress {
	total := float64(timetable.TimeToMinutes(end) - timetable.TimeToMinutes(start))
	elapsed := nowMin - float64(timetable.TimeToMinutes(start))
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	percent := 0.0
	if total > 0 {
		percent = elapsed / total * 100
	}
	return Progress{Elapsed: elapsed, Total: total, Percent: percent}
}

// NextBoundary returns the delay until the smallest slot end strictly
// greater than nowMin. ok is false once the day's last slot has ended; no
// wake should be scheduled until an external re-trigger.
func NextBoundary(times []timetable.SlotTime, nowMin float64) (time.Duration, bool) {
	for _, st := range times {
		end := float64(timetable.TimeToMinutes(st.End))
		if end > nowMin {
			return time.Duration((end - nowMin) * float64(time.Minute)), true
		}
	}
	return 0, false
}

// NextUp scans forward from the given slot and returns the first subsequent
// slot with a non-empty normalized label, paired with its start time.
func NextUp(g *timetable.Grid, times []timetable.SlotTime, day, slot int) (label, start string, ok bool) {
	for i := slot + 1; i < len(times) && i < timetable.NumSlots; i++ {
		l := timetable.Normalize(i, g.Label(day, i))
		if l == "" {
			continue
		}
		return l, times[i].Start, true
	}
	return "", "", false
}

// Status is the full "now" snapshot the UI renders from.
type Status struct {
	InSession bool // false outside class hours or on Sunday

	Day          int
	Slot         int
	Label        string // normalized current label, "" for a free period
	Pause        bool
	SlotTime     timetable.SlotTime
	Progress     Progress
	PeriodNumber int // 1-based count of content periods up to the current slot

	NextLabel string
	NextStart string
	HasNext   bool
}

// Current computes the full period status for the given instant.
func Current(g *timetable.Grid, times []timetable.SlotTime, t time.Time) Status {
	day := DayIndex(t)
	nowMin := MinuteOfDay(t)
	slot := CurrentSlot(times, nowMin)

	if day < 0 || day >= timetable.NumDays || slot == -1 {
		return Status{Day: day, Slot: -1}
	}

	label := timetable.Normalize(slot, g.Label(day, slot))
	st := times[slot]

	period := 0
	for i := 0; i <= slot; i++ {
		if !timetable.IsPause(timetable.Normalize(i, g.Label(day, i))) {
			period++
		}
	}

	s := Status{
		InSession:    true,
		Day:          day,
		Slot:         slot,
		Label:        label,
		Pause:        timetable.IsPause(label),
		SlotTime:     st,
		Progress:     SlotProgress(st.Start, st.End, nowMin),
		PeriodNumber: period,
	}
	s.NextLabel, s.NextStart, s.HasNext = NextUp(g, times, day, slot)
	return s
}
