package timetable

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "first slot start", input: "09:00", want: 540},
		{name: "lunch start", input: "12:35", want: 755},
		{name: "last slot end", input: "16:50", want: 1010},
		{name: "invalid short", input: "9:00", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeToMinutes(tt.input); got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "morning", input: 540, want: "09:00"},
		{name: "negative clamps", input: -5, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesToTime(tt.input); got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTime12(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"09:00", "9:00 AM"},
		{"12:35", "12:35 PM"},
		{"13:15", "1:15 PM"},
		{"00:05", "12:05 AM"},
		{"16:50", "4:50 PM"},
	}

	for _, tt := range tests {
		if got := FormatTime12(tt.input); got != tt.want {
			t.Errorf("FormatTime12(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatRangeAndDuration(t *testing.T) {
	st := SlotTime{Start: "09:00", End: "09:50"}
	if got := FormatRange(st); got != "9:00 AM - 9:50 AM" {
		t.Errorf("FormatRange = %q", got)
	}
	if got := DurationText(st); got != "50m" {
		t.Errorf("DurationText = %q, want 50m", got)
	}
}
