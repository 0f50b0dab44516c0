// Package edit implements the single-cell edit transaction.
//
// A session is a small state machine: Begin captures the target and its
// original label, UpdatePending accumulates text, and Commit either writes
// the validated label through the originating merge span or restores the
// original (an implicit cancel, not an error). At most one session is live
// at a time; ownership and the auto-commit-on-switch rule live in the app
// layer.
package edit

import (
	"strings"

	"github.com/marcovidal/horario/internal/timetable"
)

// Session is one in-flight cell edit.
type Session struct {
	day      int
	slot     int
	span     int
	original string
	pending  string
}

// Begin starts an edit transaction on (day, slot) with the merge span the
// cell was rendered with. Returns nil - silently, per the editing contract -
// when the indices are out of bounds or the target is a pause cell.
func Begin(g *timetable.Grid, day, slot, span int) *Session {
	raw, err := g.Get(day, slot)
	if err != nil {
		return nil
	}
	current := timetable.Normalize(slot, raw)
	if !timetable.IsEditable(current) {
		return nil
	}
	if span < 1 {
		span = 1
	}
	return &Session{
		day:      day,
		slot:     slot,
		span:     span,
		original: current,
		pending:  current,
	}
}

// Day returns the target day index.
func (s *Session) Day() int { return s.day }

// Slot returns the target slot index.
func (s *Session) Slot() int { return s.slot }

// Span returns the merge span captured at Begin.
func (s *Session) Span() int { return s.span }

// Original returns the label captured at Begin, for display on cancel.
func (s *Session) Original() string { return s.original }

// Pending returns the current uncommitted text.
func (s *Session) Pending() string { return s.pending }

// UpdatePending replaces the uncommitted text. No validation happens here;
// validation is Commit's job.
func (s *Session) UpdatePending(text string) {
	s.pending = text
}

// Commit validates the pending text and writes it back through the merge
// span. Internal whitespace runs collapse to single spaces; an empty result
// or one that normalizes to a pause label rejects the commit and leaves the
// grid untouched (the caller restores the original for display).
//
// Sub-slots whose current normalized label is itself a pause are skipped:
// a break that drifted inside a stale span after a concurrent grid change
// must never be overwritten. Eligibility is decided for the whole span
// before the first write, so a commit is all-or-nothing per eligible slot.
func (s *Session) Commit(g *timetable.Grid) bool {
	next := CollapseWhitespace(s.pending)
	if next == "" || timetable.IsPause(timetable.Normalize(s.slot, next)) {
		return false
	}

	var eligible []int
	for k := 0; k < s.span; k++ {
		idx := s.slot + k
		raw, err := g.Get(s.day, idx)
		if err != nil {
			continue
		}
		if timetable.IsPause(timetable.Normalize(idx, raw)) {
			continue
		}
		eligible = append(eligible, idx)
	}

	for _, idx := range eligible {
		_ = g.Set(s.day, idx, next)
	}
	return true
}

// CollapseWhitespace trims the text and collapses internal whitespace runs
// to single spaces.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
