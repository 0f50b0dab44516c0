// Package app owns the running application state: the timetable grid, the
// derived merge plan, the single live edit session and the locally persisted
// preferences. There are no package-level singletons; everything hangs off
// one App value.
package app

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/marcovidal/horario/internal/edit"
	"github.com/marcovidal/horario/internal/layout"
	"github.com/marcovidal/horario/internal/store"
	"github.com/marcovidal/horario/internal/timetable"
)

// Local store keys.
const (
	keySettings  = "tt_settings"
	keyTimetable = "tt_timetable"
	keyUserID    = "tt_user_id"
)

// App is the application context the UI layers drive. It enforces the
// single-session rule: starting an edit or rebuilding the layout commits any
// session already in flight.
type App struct {
	kv       store.KV
	grid     *timetable.Grid
	plan     *layout.Plan
	session  *edit.Session
	settings Settings
	userID   string

	committing bool
}

// New loads persisted state from the local store and builds the context.
// A first run seeds the built-in timetable and a fresh user id; a stored
// timetable with the wrong shape is discarded for the blank template.
func New(kv store.KV) (*App, error) {
	a := &App{kv: kv}

	raw, _, err := kv.Get(keySettings)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	a.settings = DecodeSettings(raw)

	if err := a.loadTimetable(); err != nil {
		return nil, err
	}
	if err := a.loadUserID(); err != nil {
		return nil, err
	}

	a.plan = layout.Compute(a.grid)
	return a, nil
}

func (a *App) loadTimetable() error {
	raw, ok, err := a.kv.Get(keyTimetable)
	if err != nil {
		return fmt.Errorf("loading timetable: %w", err)
	}
	if !ok {
		a.grid = timetable.Default()
		return a.saveTimetable()
	}

	a.grid = timetable.Blank()
	var rows [][]string
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	a.grid.LoadFrom(rows)
	return nil
}

func (a *App) loadUserID() error {
	id, ok, err := a.kv.Get(keyUserID)
	if err != nil {
		return fmt.Errorf("loading user id: %w", err)
	}
	if ok && id != "" {
		a.userID = id
		return nil
	}
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	a.userID = ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	if err := a.kv.Set(keyUserID, a.userID); err != nil {
		return fmt.Errorf("saving user id: %w", err)
	}
	return nil
}

func (a *App) saveTimetable() error {
	data, err := json.Marshal(a.grid.Rows())
	if err != nil {
		return fmt.Errorf("encoding timetable: %w", err)
	}
	if err := a.kv.Set(keyTimetable, string(data)); err != nil {
		return fmt.Errorf("saving timetable: %w", err)
	}
	return nil
}

// Grid returns the live grid. Callers must not hold the pointer across a
// remote apply; read it fresh after every rebuild message.
func (a *App) Grid() *timetable.Grid { return a.grid }

// Plan returns the merge plan for the current grid contents.
func (a *App) Plan() *layout.Plan { return a.plan }

// UserID is the locally generated identity remote documents are keyed by.
func (a *App) UserID() string { return a.userID }

// Settings returns the current preferences.
func (a *App) Settings() Settings { return a.settings }

// SetSettings persists new preferences.
func (a *App) SetSettings(s Settings) error {
	a.settings = s
	if err := a.kv.Set(keySettings, EncodeSettings(s)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Session returns the live edit session, or nil.
func (a *App) Session() *edit.Session { return a.session }

// BeginEdit starts an edit on the merged cell covering (day, slot). A live
// session elsewhere is committed first. Returns false when the target is a
// pause cell or out of bounds; callers gate on the edit preference.
func (a *App) BeginEdit(day, slot int) bool {
	if a.session != nil {
		a.CommitEdit()
	}
	span := 1
	if c := a.plan.CellAt(day, slot); c != nil {
		day, slot, span = c.Day, c.Slot, c.Span
	}
	a.session = edit.Begin(a.grid, day, slot, span)
	return a.session != nil
}

// UpdatePending replaces the in-flight text of the live session.
func (a *App) UpdatePending(text string) {
	if a.session != nil {
		a.session.UpdatePending(text)
	}
}

// CommitEdit writes the live session back through its merge span and
// discards it. Returns true when the grid changed; the timetable is saved
// and the plan recomputed in that case.
func (a *App) CommitEdit() bool {
	if a.session == nil {
		return false
	}
	s := a.session
	a.session = nil
	if !s.Commit(a.grid) {
		return false
	}
	a.committing = true
	defer func() { a.committing = false }()
	_ = a.saveTimetable()
	a.plan = layout.Compute(a.grid)
	return true
}

// CancelEdit discards the live session without touching the grid and
// returns the original label for the caller to restore on screen.
func (a *App) CancelEdit() string {
	if a.session == nil {
		return ""
	}
	original := a.session.Original()
	a.session = nil
	return original
}

// Rebuild recomputes the merge plan. A live edit session is committed
// first so a rebuild never silently drops typed text.
func (a *App) Rebuild() {
	if a.session != nil && !a.committing {
		a.CommitEdit()
	}
	a.plan = layout.Compute(a.grid)
}

// ApplyRemote adopts rows fetched from the document store. The shape is
// validated first; a mismatch leaves the grid untouched and returns false.
// On success the timetable is saved locally and the plan rebuilt.
func (a *App) ApplyRemote(rows [][]string) bool {
	probe := timetable.FromRows(rows)
	if probe == nil {
		return false
	}
	a.Rebuild() // commits any live session against the old grid
	a.grid = probe
	_ = a.saveTimetable()
	a.plan = layout.Compute(a.grid)
	return true
}

// ResetBlank replaces the grid with the stock template and persists it.
func (a *App) ResetBlank() error {
	if a.session != nil {
		a.CommitEdit()
	}
	a.grid = timetable.Blank()
	a.plan = layout.Compute(a.grid)
	return a.saveTimetable()
}
