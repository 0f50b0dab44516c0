package timetable

import "strings"

// Normalize canonicalizes a raw cell value into its display label.
// Any value containing "break" (case-insensitive) maps to "Lunch" at the
// lunch slot and "Break" everywhere else; all other values pass through
// trimmed, with their case preserved.
func Normalize(slot int, raw string) string {
	v := strings.TrimSpace(raw)
	if !strings.Contains(strings.ToLower(v), "break") {
		return v
	}
	if slot == LunchSlot {
		return "Lunch"
	}
	return "Break"
}

// IsPause reports whether a label marks a break or lunch slot.
func IsPause(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "break", "lunch":
		return true
	}
	return false
}

// IsEditable reports whether a cell holding this label may be edited.
// Pause cells are never editable.
func IsEditable(label string) bool {
	return !IsPause(label)
}
