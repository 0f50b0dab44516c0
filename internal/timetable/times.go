package timetable

import "fmt"

// SlotTime is the fixed wall-clock boundary of one slot, "HH:MM" 24h form.
type SlotTime struct {
	Start string
	End   string
}

// DefaultSlotTimes is the canonical slot schedule, one entry per slot index.
// Entries are strictly increasing and non-overlapping.
var DefaultSlotTimes = [NumSlots]SlotTime{
	{"09:00", "09:50"},
	{"09:50", "10:40"},
	{"10:40", "10:55"},
	{"10:55", "11:45"},
	{"11:45", "12:35"},
	{"12:35", "13:15"},
	{"13:15", "14:05"},
	{"14:05", "14:55"},
	{"14:55", "15:10"},
	{"15:10", "16:00"},
	{"16:00", "16:50"},
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatTime12 renders "HH:MM" 24h input as a 12-hour clock string,
// e.g. "13:15" -> "1:15 PM".
func FormatTime12(t string) string {
	m := TimeToMinutes(t)
	h := m / 60
	h12 := (h+11)%12 + 1
	ap := "AM"
	if h >= 12 {
		ap = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h12, m%60, ap)
}

// FormatRange renders a slot boundary pair as "9:00 AM - 9:50 AM".
func FormatRange(st SlotTime) string {
	return FormatTime12(st.Start) + " - " + FormatTime12(st.End)
}

// DurationText renders the slot length as minutes, e.g. "50m".
func DurationText(st SlotTime) string {
	return fmt.Sprintf("%dm", TimeToMinutes(st.End)-TimeToMinutes(st.Start))
}
