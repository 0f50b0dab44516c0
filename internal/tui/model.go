// Package tui provides the terminal user interface for horario.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcovidal/horario/internal/app"
	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
	"github.com/marcovidal/horario/internal/tui/theme"
)

// Tab identifies the visible screen.
type Tab int

const (
	TabHome Tab = iota
	TabExplore
	TabProfile
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit     // inline cell editor focused
	ModeSearch   // explore filter input focused
	ModeForm     // profile form focused
	ModeSettings // settings overlay open
)

// How long a transient status line stays visible.
const statusTTL = 3 * time.Second

// Progress re-render cadence between slot boundaries.
const progressTick = 2 * time.Second

// tickMsg drives the in-slot progress refresh.
type tickMsg time.Time

// boundaryMsg fires at a slot boundary. Gen guards against a stale tick
// scheduled before a reload or schedule change.
type boundaryMsg struct {
	Gen int
}

// profileField indexes the profile form inputs.
type profileField int

const (
	fieldUsername profileField = iota
	fieldDept
	fieldYear
	fieldSem
	fieldRole // toggled, not typed
	fieldCount
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	app   *app.App
	svc   *sync.Service
	times []timetable.SlotTime

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Terminal
	width  int
	height int

	// Interaction state
	tab  Tab
	mode Mode

	// Clock state
	now         time.Time
	status      clock.Status
	boundaryGen int

	// Home: cursor over merged cells of the selected day
	viewDay    int
	cursorSlot int
	input      textinput.Model

	// Explore
	published []sync.Published
	filtered  []sync.Published
	search    textinput.Model
	sortMode  string
	selected  int

	// Profile
	profile   *sync.Profile
	form      [4]textinput.Model
	formRole  sync.Role
	formFocus profileField
	students  []sync.Student

	// Transient status line
	statusLine string
	statusWarn bool
	statusID   int
	bell       bool
}

// New builds the TUI model. svc may be backed by a nil store; every sync
// action then degrades to a hint.
func New(a *app.App, svc *sync.Service, times []timetable.SlotTime, themeName string) (*Model, error) {
	if themeName == "" || themeName == "auto" {
		// The persisted preference wins over terminal detection.
		if saved := a.Settings().Theme; saved != "" {
			themeName = saved
		}
	}
	th, err := theme.Load(themeName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	day := clock.DayIndex(now)
	if day < 0 || day >= timetable.NumDays {
		day = 0
	}

	input := textinput.New()
	input.CharLimit = 40
	input.Prompt = ""

	search := textinput.New()
	search.Placeholder = "filter by dept, year, sem"
	search.CharLimit = 30
	search.Prompt = "/"

	m := &Model{
		app:      a,
		svc:      svc,
		times:    times,
		theme:    th,
		styles:   NewStyles(th),
		tab:      TabHome,
		mode:     ModeNormal,
		now:      now,
		status:   clock.Current(a.Grid(), times, now),
		viewDay:  day,
		input:    input,
		search:   search,
		sortMode: "recent",
		formRole: sync.RoleStudent,
	}
	m.cursorSlot = m.initialCursor()
	m.initForm()
	return m, nil
}

func (m *Model) initForm() {
	placeholders := [4]string{"username", "dept", "year", "sem"}
	limits := [4]int{20, 10, 4, 4}
	for i := range m.form {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Prompt = ""
		m.form[i] = in
	}
}

// initialCursor puts the home cursor on the current period when the clock
// is in session today, otherwise on the first slot.
func (m *Model) initialCursor() int {
	if m.status.InSession && m.status.Day == m.viewDay {
		return m.status.Slot
	}
	return 0
}

// Init schedules the progress tick, the first boundary wake and the initial
// profile fetch.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scheduleTick(), m.scheduleBoundary()}
	if m.svc.Available() {
		cmds = append(cmds, m.loadProfileCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(progressTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// scheduleBoundary arms a one-shot wake at the next slot boundary. Nothing
// is scheduled after the last slot of the day ends; the progress tick picks
// the chain back up after midnight.
func (m *Model) scheduleBoundary() tea.Cmd {
	delay, ok := clock.NextBoundary(m.times, clock.MinuteOfDay(m.now))
	if !ok {
		return nil
	}
	gen := m.boundaryGen
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return boundaryMsg{Gen: gen}
	})
}

// refreshClock recomputes the "now" snapshot.
func (m *Model) refreshClock(t time.Time) {
	m.now = t
	m.status = clock.Current(m.app.Grid(), m.times, t)
}
