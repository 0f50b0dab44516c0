package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
	"github.com/marcovidal/horario/internal/tui/commands"
	"github.com/marcovidal/horario/internal/tui/theme"
)

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refreshClock(time.Time(msg))
		cmds := []tea.Cmd{m.scheduleTick()}
		// Crossing midnight invalidates the boundary chain; re-arm it.
		if clock.MinuteOfDay(m.now) < 1 {
			m.boundaryGen++
			cmds = append(cmds, m.scheduleBoundary())
		}
		return m, tea.Batch(cmds...)

	case boundaryMsg:
		if msg.Gen != m.boundaryGen {
			return m, nil // stale wake from before a reload
		}
		m.refreshClock(time.Now())
		var cmds []tea.Cmd
		if cmd := m.scheduleBoundary(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.status.InSession {
			// The terminal bell stands in for vibration.
			m.bell = m.app.Settings().Vibrate
			if m.app.Settings().Notify {
				cmds = append(cmds, m.setStatus("Period change: "+m.periodText()))
			}
		}
		return m, tea.Batch(cmds...)

	case commands.ErrMsg:
		return m, m.setWarning(m.hintFor(msg.Err))

	case commands.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.statusLine = ""
		}
		return m, nil

	case commands.ProfileLoadedMsg:
		m.profile = msg.Profile
		if msg.Profile != nil {
			m.fillForm(*msg.Profile)
		}
		return m, nil

	case commands.ProfileSavedMsg:
		p := msg.Profile
		m.profile = &p
		m.mode = ModeNormal
		return m, m.setStatus("Profile saved • " + p.ClassKey())

	case commands.PersonalSavedMsg:
		return m, m.setStatus("Personal timetable saved")

	case commands.RowsLoadedMsg:
		if !msg.Found {
			return m, m.setStatus("No timetable found for " + msg.Source)
		}
		if !m.app.ApplyRemote(msg.Rows) {
			return m, m.setWarning("Received timetable has the wrong shape")
		}
		m.boundaryGen++
		m.refreshClock(time.Now())
		return m, tea.Batch(m.scheduleBoundary(), m.setStatus("Loaded "+msg.Source))

	case commands.ClassPublishedMsg:
		return m, m.setStatus("Published to class • " + msg.Key)

	case commands.PublishedListMsg:
		m.published = msg.Items
		m.applyExploreFilter()
		return m, nil

	case commands.StudentsMsg:
		m.students = msg.Items
		return m, m.setStatus(strconv.Itoa(len(msg.Items)) + " students in class")

	case tea.KeyMsg:
		m.bell = false
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeForm:
		return m.handleFormKey(msg)
	case ModeSettings:
		return m.handleSettingsKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.app.CommitEdit()
		return m, tea.Quit

	case "1":
		m.tab = TabHome
		return m, nil
	case "2":
		m.tab = TabExplore
		if len(m.published) == 0 && m.svc.Available() {
			return m, commands.ListPublished(m.svc)
		}
		return m, nil
	case "3":
		m.tab = TabProfile
		return m, nil
	case "tab":
		m.tab = (m.tab + 1) % 3
		return m, nil

	case "S":
		m.mode = ModeSettings
		return m, nil
	}

	switch m.tab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabExplore:
		return m.handleExploreKey(msg)
	case TabProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.viewDay = (m.viewDay + timetable.NumDays - 1) % timetable.NumDays
		m.cursorSlot = 0
	case "right", "l":
		m.viewDay = (m.viewDay + 1) % timetable.NumDays
		m.cursorSlot = 0
	case "t":
		if d := clock.DayIndex(m.now); d >= 0 && d < timetable.NumDays {
			m.viewDay = d
			m.cursorSlot = m.initialCursor()
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "enter", "e":
		return m, m.beginEdit()

	case "y":
		text := m.weekText()
		if err := clipboard.WriteAll(text); err != nil {
			return m, m.setStatus("Clipboard unavailable")
		}
		return m, m.setStatus("Week copied to clipboard")

	case "u":
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.SavePersonal(m.svc, m.app.Grid().Rows())
	case "U":
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.LoadPersonal(m.svc)
	case "p":
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.PublishClass(m.svc, m.app.Grid().Rows(), m.profile)
	}
	return m, nil
}

// moveCursor steps the home cursor across merged cells, one cell per press.
// The cursor always lands on a cell's starting slot, so a span counts once.
func (m *Model) moveCursor(dir int) {
	plan := m.app.Plan()
	cur := plan.CellAt(m.viewDay, m.cursorSlot)
	for s := m.cursorSlot + dir; s >= 0 && s < timetable.NumSlots; s += dir {
		c := plan.CellAt(m.viewDay, s)
		if c == nil || c == cur {
			continue
		}
		m.cursorSlot = c.Slot
		return
	}
}

func (m *Model) beginEdit() tea.Cmd {
	if !m.app.Settings().Edit {
		return m.setStatus("Enable editing in settings (S)")
	}
	if !m.app.BeginEdit(m.viewDay, m.cursorSlot) {
		return m.setStatus("Break and Lunch cannot be edited")
	}
	s := m.app.Session()
	m.cursorSlot = s.Slot()
	m.input.SetValue(s.Original())
	m.input.CursorEnd()
	m.input.Focus()
	m.mode = ModeEdit
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.app.UpdatePending(m.input.Value())
		changed := m.app.CommitEdit()
		m.mode = ModeNormal
		m.input.Blur()
		if changed {
			m.refreshClock(m.now)
			return m, m.setStatus("Saved")
		}
		return m, m.setStatus("Unchanged")
	case "esc":
		m.app.CancelEdit()
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.app.UpdatePending(m.input.Value())
	return m, cmd
}

func (m *Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
	case "/":
		m.mode = ModeSearch
		m.search.Focus()
		return m, nil
	case "s":
		m.cycleSort()
		m.applyExploreFilter()
	case "r":
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.ListPublished(m.svc)
	case "enter":
		if m.selected >= 0 && m.selected < len(m.filtered) {
			it := m.filtered[m.selected]
			if !m.app.ApplyRemote(it.Rows) {
				return m, m.setStatus("Timetable has the wrong shape")
			}
			m.boundaryGen++
			m.refreshClock(time.Now())
			return m, tea.Batch(m.scheduleBoundary(), m.setStatus("Applied "+it.ID))
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = ModeNormal
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyExploreFilter()
	return m, cmd
}

func (m *Model) cycleSort() {
	order := []string{"recent", "dept", "year", "sem"}
	for i, mode := range order {
		if mode == m.sortMode {
			m.sortMode = order[(i+1)%len(order)]
			return
		}
	}
	m.sortMode = "recent"
}

func (m *Model) applyExploreFilter() {
	m.filtered = sync.FilterPublished(m.published, m.search.Value())
	sync.SortPublished(m.filtered, m.sortMode)
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "e":
		m.mode = ModeForm
		m.formFocus = fieldUsername
		m.focusForm()
		return m, nil
	case "d":
		if m.profile == nil || m.profile.Role != sync.RoleTeacher {
			return m, m.setStatus("Only teachers can list students")
		}
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.LoadStudents(m.svc, m.profile.ClassKey())
	case "r":
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, m.loadProfileCmd()
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.blurForm()
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % fieldCount
		m.focusForm()
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + fieldCount - 1) % fieldCount
		m.focusForm()
		return m, nil
	case "enter":
		if m.formFocus == fieldRole {
			m.toggleRole()
			return m, nil
		}
		if !m.svc.Available() {
			return m, m.setStatus("Sync is off")
		}
		return m, commands.SaveProfile(m.svc, m.formProfile())
	case " ":
		if m.formFocus == fieldRole {
			m.toggleRole()
			return m, nil
		}
	}
	if m.formFocus < fieldRole {
		var cmd tea.Cmd
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) toggleRole() {
	if m.formRole == sync.RoleTeacher {
		m.formRole = sync.RoleStudent
	} else {
		m.formRole = sync.RoleTeacher
	}
}

func (m *Model) focusForm() {
	for i := range m.form {
		if profileField(i) == m.formFocus {
			m.form[i].Focus()
		} else {
			m.form[i].Blur()
		}
	}
}

func (m *Model) blurForm() {
	for i := range m.form {
		m.form[i].Blur()
	}
}

func (m *Model) fillForm(p sync.Profile) {
	m.form[fieldUsername].SetValue(p.Username)
	m.form[fieldDept].SetValue(p.Dept)
	m.form[fieldYear].SetValue(p.Year)
	m.form[fieldSem].SetValue(p.Sem)
	m.formRole = p.Role
}

func (m *Model) formProfile() sync.Profile {
	return sync.Profile{
		Username: m.form[fieldUsername].Value(),
		Dept:     m.form[fieldDept].Value(),
		Year:     m.form[fieldYear].Value(),
		Sem:      m.form[fieldSem].Value(),
		Role:     m.formRole,
	}
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.app.Settings()
	switch msg.String() {
	case "esc", "S", "q":
		m.mode = ModeNormal
		return m, nil
	case "t":
		if s.Theme == "dark" {
			s.Theme = "light"
		} else {
			s.Theme = "dark"
		}
		if th, err := theme.Load(s.Theme); err == nil {
			m.theme = th
			m.styles = NewStyles(th)
		}
	case "v":
		s.Vibrate = !s.Vibrate
	case "n":
		s.Notify = !s.Notify
	case "e":
		s.Edit = !s.Edit
		if !s.Edit {
			m.app.CancelEdit()
		}
	default:
		return m, nil
	}
	if err := m.app.SetSettings(s); err != nil {
		return m, m.setWarning("Could not save settings")
	}
	return m, nil
}

// setStatus swaps in a transient status line and schedules its expiry.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.statusLine = text
	m.statusWarn = false
	return commands.ExpireStatus(m.statusID, statusTTL)
}

// setWarning is setStatus for failures; the footer renders it highlighted.
func (m *Model) setWarning(text string) tea.Cmd {
	cmd := m.setStatus(text)
	m.statusWarn = true
	return cmd
}

func (m *Model) loadProfileCmd() tea.Cmd {
	return commands.LoadProfile(m.svc)
}

// hintFor maps operation failures to the short hints the status line shows.
func (m *Model) hintFor(err error) string {
	switch {
	case errors.Is(err, sync.ErrUnavailable):
		return "Sync is off"
	case errors.Is(err, sync.ErrInvalidUsername):
		return "Username: 3-20 lowercase letters, digits, dots or underscores"
	case errors.Is(err, sync.ErrIncompleteProfile):
		return "Fill in dept, year and sem first"
	case errors.Is(err, sync.ErrUsernameTaken):
		return "That username is taken"
	case errors.Is(err, sync.ErrPermissionDenied):
		return "Only teachers can do that"
	}
	return err.Error()
}
