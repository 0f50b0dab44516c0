// Package layout computes the merged-cell rendering plan for a timetable grid.
package layout

import (
	"strconv"

	"github.com/marcovidal/horario/internal/timetable"
)

// Cell is one merged rendering unit: a horizontal run of identical labels
// within a day, or a full-column pause cell spanning every day.
type Cell struct {
	Day        int
	Slot       int
	Span       int
	Label      string
	Pause      bool
	FullColumn bool
}

// Plan is the derived layout for one grid snapshot. It is recomputed on
// every rebuild and never persisted.
type Plan struct {
	Cells []Cell

	owner [timetable.NumDays][timetable.NumSlots]int
}

// Compute derives the merge plan from the grid's normalized contents.
//
// Two passes, in order: full-column pause detection (a slot where all six
// days carry the identical pause label collapses into one tall cell owned
// by day 0), then a greedy left-to-right run merge within each day. Runs
// require exact label equality after normalization, never extend through a
// full-column slot, and never extend an empty label: free slots always
// render individually.
func Compute(g *timetable.Grid) *Plan {
	normalized := g.Normalized()
	fullCols := fullColumnSlots(normalized)

	p := &Plan{}
	for d := range p.owner {
		for s := range p.owner[d] {
			p.owner[d][s] = -1
		}
	}

	for day := 0; day < timetable.NumDays; day++ {
		row := normalized[day]
		s := 0
		for s < timetable.NumSlots {
			if day != 0 && fullCols[s] {
				s++
				continue
			}

			label := row[s]
			span := 1
			for label != "" && s+span < timetable.NumSlots &&
				row[s+span] == label && !fullCols[s+span] {
				span++
			}

			cell := Cell{
				Day:        day,
				Slot:       s,
				Span:       span,
				Label:      label,
				Pause:      timetable.IsPause(label),
				FullColumn: day == 0 && fullCols[s],
			}
			idx := len(p.Cells)
			p.Cells = append(p.Cells, cell)

			if cell.FullColumn {
				for d := 0; d < timetable.NumDays; d++ {
					p.owner[d][s] = idx
				}
				for k := 1; k < span; k++ {
					p.owner[0][s+k] = idx
				}
			} else {
				for k := 0; k < span; k++ {
					p.owner[day][s+k] = idx
				}
			}

			s += span
		}
	}

	return p
}

// CellAt returns the merged cell that renders (day, slot), or nil when the
// indices are out of range.
func (p *Plan) CellAt(day, slot int) *Cell {
	if day < 0 || day >= timetable.NumDays || slot < 0 || slot >= timetable.NumSlots {
		return nil
	}
	idx := p.owner[day][slot]
	if idx < 0 {
		return nil
	}
	return &p.Cells[idx]
}

// HeaderLabels returns the column header for each slot: pause columns keep
// their label, content columns are numbered 1..n in order. Sampled from day
// 0, which always renders every column.
func HeaderLabels(g *timetable.Grid) [timetable.NumSlots]string {
	var out [timetable.NumSlots]string
	period := 0
	for s := 0; s < timetable.NumSlots; s++ {
		sample := timetable.Normalize(s, g.Label(0, s))
		if timetable.IsPause(sample) {
			out[s] = sample
			continue
		}
		period++
		out[s] = strconv.Itoa(period)
	}
	return out
}

// fullColumnSlots marks every slot whose normalized label is the identical
// pause label on all six days.
func fullColumnSlots(normalized [][]string) [timetable.NumSlots]bool {
	var full [timetable.NumSlots]bool
	for s := 0; s < timetable.NumSlots; s++ {
		first := normalized[0][s]
		if !timetable.IsPause(first) {
			continue
		}
		same := true
		for d := 1; d < timetable.NumDays; d++ {
			if normalized[d][s] != first {
				same = false
				break
			}
		}
		full[s] = same
	}
	return full
}
