// Package timetable defines the weekly class timetable grid and its
// canonical slot schedule.
package timetable

import "errors"

// Grid dimensions. The shape is fixed: six teaching days of eleven slots.
const (
	NumDays  = 6
	NumSlots = 11
)

// Positional pause slots. These are invariants of the slot schedule itself,
// not something inferred from cell contents.
const (
	LunchSlot      = 5
	MorningBreak   = 2
	AfternoonBreak = 8
)

// ErrIndexOutOfRange is returned by Get and Set for invalid day or slot indices.
var ErrIndexOutOfRange = errors.New("timetable: day or slot index out of range")

// DayNames holds the display names for the six grid rows.
var DayNames = [NumDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Grid is the weekly timetable: a fixed table of subject labels.
// The shape never changes after construction; only cells are overwritten.
type Grid struct {
	cells [NumDays][NumSlots]string
}

// Blank returns a grid holding the stock template: Lunch at the lunch slot,
// Break at the two positional break slots, every other cell empty.
func Blank() *Grid {
	g := &Grid{}
	for d := 0; d < NumDays; d++ {
		for s := 0; s < NumSlots; s++ {
			switch s {
			case LunchSlot:
				g.cells[d][s] = "Lunch"
			case MorningBreak, AfternoonBreak:
				g.cells[d][s] = "Break"
			}
		}
	}
	return g
}

// Default returns the built-in timetable the app ships with. The pause
// columns store "Break" everywhere; Normalize turns the lunch column into
// "Lunch" at render time.
func Default() *Grid {
	return FromRows([][]string{
		{"DVAT", "IS", "Break", "NLP", "FCA", "Break", "BS", "NLP", "Break", "Free", "DM"},
		{"CNAP", "FCA", "Break", "DVAT", "NLP", "Break", "IS", "BS", "Break", "BS", "DM"},
		{"IS", "FCA", "Break", "DVAT", "FCA", "Break", "CNAP", "CNAP LAB / IS LAB", "Break", "CNAP LAB / IS LAB", "CNAP LAB / IS LAB"},
		{"NLP", "FCA", "Break", "CNAP", "IS", "Break", "BS", "IS LAB / CNAP LAB", "Break", "IS LAB / CNAP LAB", "IS LAB / CNAP LAB"},
		{"NLP", "DM", "Break", "NLP", "DVAT", "Break", "IS", "MINI PROJECT", "Break", "MINI PROJECT", "MINI PROJECT"},
		{"DVAT", "CNAP", "Break", "BS", "DM", "Break", "Free", "GE", "Break", "Free", "CLUB"},
	})
}

// FromRows builds a grid from a nested row form. Returns nil if the shape
// does not match NumDays x NumSlots.
func FromRows(rows [][]string) *Grid {
	g := &Grid{}
	if !g.LoadFrom(rows) {
		return nil
	}
	return g
}

// Get returns the raw label at (day, slot).
func (g *Grid) Get(day, slot int) (string, error) {
	if !inRange(day, slot) {
		return "", ErrIndexOutOfRange
	}
	return g.cells[day][slot], nil
}

// Set overwrites the raw label at (day, slot).
func (g *Grid) Set(day, slot int, label string) error {
	if !inRange(day, slot) {
		return ErrIndexOutOfRange
	}
	g.cells[day][slot] = label
	return nil
}

// Label returns the raw label at (day, slot), or "" when out of range.
// Convenience accessor for render and clock loops that iterate valid indices.
func (g *Grid) Label(day, slot int) string {
	if !inRange(day, slot) {
		return ""
	}
	return g.cells[day][slot]
}

// LoadFrom replaces every cell with the given rows, but only when the shape
// matches exactly. A shape mismatch is silently rejected and the previous
// contents stay active; the return value reports whether the load happened.
func (g *Grid) LoadFrom(rows [][]string) bool {
	if len(rows) != NumDays {
		return false
	}
	for _, row := range rows {
		if len(row) != NumSlots {
			return false
		}
	}
	for d := 0; d < NumDays; d++ {
		for s := 0; s < NumSlots; s++ {
			g.cells[d][s] = rows[d][s]
		}
	}
	return true
}

// Rows returns a copy of the grid contents in nested row form.
func (g *Grid) Rows() [][]string {
	rows := make([][]string, NumDays)
	for d := 0; d < NumDays; d++ {
		row := make([]string, NumSlots)
		copy(row, g.cells[d][:])
		rows[d] = row
	}
	return rows
}

// Normalized returns the grid contents with every cell passed through
// Normalize. This is the form the merge planner and the clock consume.
func (g *Grid) Normalized() [][]string {
	rows := make([][]string, NumDays)
	for d := 0; d < NumDays; d++ {
		row := make([]string, NumSlots)
		for s := 0; s < NumSlots; s++ {
			row[s] = Normalize(s, g.cells[d][s])
		}
		rows[d] = row
	}
	return rows
}

// Equal reports whether two grids hold identical raw contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	return g.cells == other.cells
}

func inRange(day, slot int) bool {
	return day >= 0 && day < NumDays && slot >= 0 && slot < NumSlots
}
