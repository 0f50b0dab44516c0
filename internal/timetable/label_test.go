package timetable

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		slot int
		raw  string
		want string
	}{
		{name: "break at lunch slot", slot: LunchSlot, raw: "Break", want: "Lunch"},
		{name: "break at morning slot", slot: MorningBreak, raw: "Break", want: "Break"},
		{name: "break substring", slot: 0, raw: "short BREAK!", want: "Break"},
		{name: "lowercase break at lunch", slot: LunchSlot, raw: "  break ", want: "Lunch"},
		{name: "subject passes through", slot: 3, raw: "NLP", want: "NLP"},
		{name: "subject trimmed", slot: 3, raw: "  CNAP LAB / IS LAB  ", want: "CNAP LAB / IS LAB"},
		{name: "case preserved", slot: 3, raw: "Mini Project", want: "Mini Project"},
		{name: "empty", slot: 0, raw: "", want: ""},
		{name: "whitespace only", slot: 0, raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.slot, tt.raw)
			if got != tt.want {
				t.Errorf("Normalize(%d, %q) = %q, want %q", tt.slot, tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []string{"Break", "lunch break", "NLP", "  DVAT ", "", "Free"}
	for slot := 0; slot < NumSlots; slot++ {
		for _, raw := range raws {
			once := Normalize(slot, raw)
			twice := Normalize(slot, once)
			if once != twice {
				t.Errorf("Normalize(%d, %q) not idempotent: %q then %q", slot, raw, once, twice)
			}
		}
	}
}

func TestIsPause(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Break", true},
		{"Lunch", true},
		{"break", true},
		{"LUNCH ", true},
		{"Lunch Break", false}, // only exact pause labels count
		{"NLP", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPause(tt.label); got != tt.want {
			t.Errorf("IsPause(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestIsEditable(t *testing.T) {
	if IsEditable("Break") || IsEditable("Lunch") {
		t.Error("pause labels must not be editable")
	}
	if !IsEditable("NLP") || !IsEditable("") {
		t.Error("content and empty labels must be editable")
	}
}
