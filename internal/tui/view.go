package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcovidal/horario/internal/layout"
	"github.com/marcovidal/horario/internal/timetable"
)

// View renders the full screen for the current tab and mode.
func (m *Model) View() string {
	var b strings.Builder
	if m.bell {
		b.WriteString("\a")
	}

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.tab {
	case TabHome:
		b.WriteString(m.renderHome())
	case TabExplore:
		b.WriteString(m.renderExplore())
	case TabProfile:
		b.WriteString(m.renderProfile())
	}

	if m.mode == ModeSettings {
		b.WriteString("\n")
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("horario")

	tabs := make([]string, 0, 3)
	for i, name := range []string{"Home", "Explore", "Profile"} {
		style := m.styles.TabInactive
		if Tab(i) == m.tab {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(name))
	}

	clockText := m.styles.Clock.Render(m.now.Format("Mon 2 Jan 15:04"))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", strings.Join(tabs, " "), "  ", clockText)
}

func (m *Model) renderHome() string {
	var b strings.Builder

	day := m.viewDay
	header := timetable.DayNames[day]
	if m.status.InSession && m.status.Day == day {
		header += "  ·  " + m.periodText()
	}
	b.WriteString(m.styles.DayHeader.Render(header))
	b.WriteString("\n")

	plan := m.app.Plan()
	s := 0
	for s < timetable.NumSlots {
		c := plan.CellAt(day, s)
		if c == nil {
			s++
			continue
		}
		b.WriteString(m.renderCard(c, s))
		b.WriteString("\n")
		if c.FullColumn && day != 0 {
			// The tall cell belongs to day 0; only this column is covered.
			s++
		} else {
			s = c.Slot + c.Span
		}
	}
	return b.String()
}

// renderCard draws one merged cell of the selected day.
func (m *Model) renderCard(c *layout.Cell, slot int) string {
	width := m.cardWidth()

	label := c.Label
	if label == "" {
		label = "Free"
	}

	times := timetable.FormatRange(timetable.SlotTime{
		Start: m.times[slot].Start,
		End:   m.times[minInt(slot+c.Span-1, timetable.NumSlots-1)].End,
	})
	if c.FullColumn {
		times = timetable.FormatRange(m.times[slot])
	}

	head := m.styles.TimeRange.Render(times)
	if !c.Pause {
		head = m.styles.PeriodNum.Render(fmt.Sprintf("%d", m.periodNumberAt(slot))) + "  " + head
	}
	if c.Span > 1 {
		head += m.styles.Muted.Render(fmt.Sprintf("  ×%d", c.Span))
	}

	body := m.styles.Label.Render(ansi.Truncate(label, width-4, "…"))
	lines := head + "\n" + body

	active := m.status.InSession && m.status.Day == m.viewDay &&
		m.status.Slot >= slot && m.status.Slot < slot+c.Span
	if c.FullColumn {
		active = m.status.InSession && m.status.Day == m.viewDay && m.status.Slot == slot
	}
	if active {
		lines += "\n" + m.renderProgress(width-4)
	}

	style := m.styles.Card
	switch {
	case m.mode == ModeEdit && m.editTargets(c):
		return style.BorderForeground(m.styles.colorAccent).Width(width).
			Render(head + "\n" + m.input.View())
	case slot == m.cursorSlot && m.tab == TabHome:
		style = m.styles.CardSelected
	case active:
		style = m.styles.CardActive
	case c.Pause:
		style = m.styles.CardPause
	case c.Label == "":
		style = m.styles.CardFree
	}
	return style.Width(width).Render(lines)
}

func (m *Model) editTargets(c *layout.Cell) bool {
	s := m.app.Session()
	return s != nil && s.Day() == c.Day && s.Slot() == c.Slot
}

// periodNumberAt counts content periods up to and including the slot.
func (m *Model) periodNumberAt(slot int) int {
	n := 0
	for s := 0; s <= slot && s < timetable.NumSlots; s++ {
		l := timetable.Normalize(s, m.app.Grid().Label(m.viewDay, s))
		if !timetable.IsPause(l) {
			n++
		}
	}
	return n
}

func (m *Model) renderProgress(width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 7
	p := m.status.Progress
	filled := 0
	if p.Total > 0 {
		filled = int(float64(barWidth) * p.Elapsed / p.Total)
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := m.styles.ProgressFill.Render(strings.Repeat("█", filled)) +
		m.styles.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled))
	return bar + m.styles.Muted.Render(fmt.Sprintf(" %3.0f%%", p.Percent))
}

func (m *Model) renderExplore() string {
	var b strings.Builder
	b.WriteString(m.styles.DayHeader.Render("Published timetables"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render("sort: " + m.sortMode))
	b.WriteString("\n")

	if m.mode == ModeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if !m.svc.Available() {
		b.WriteString(m.styles.Hint.Render("Sync is off; set sync.path in the config to browse."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.filtered) == 0 {
		b.WriteString(m.styles.Hint.Render("Nothing published yet. Press r to refresh."))
		b.WriteString("\n")
		return b.String()
	}

	for i, it := range m.filtered {
		line := fmt.Sprintf("%-12s  dept %-6s year %-3s sem %-3s", it.ID, it.Dept, it.Year, it.Sem)
		if !it.UpdatedAt.IsZero() {
			line += "  " + it.UpdatedAt.Format("2 Jan 15:04")
		}
		if i == m.selected {
			b.WriteString(m.styles.ListSelected.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.Status.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderProfile() string {
	var b strings.Builder
	b.WriteString(m.styles.DayHeader.Render("Profile"))
	b.WriteString("\n")

	if !m.svc.Available() {
		b.WriteString(m.styles.Hint.Render("Sync is off; the profile lives on the shared store."))
		b.WriteString("\n")
		return b.String()
	}

	names := [fieldCount]string{"username", "dept", "year", "sem", "role"}
	for i := 0; i < int(fieldRole); i++ {
		label := m.styles.FormLabel.Render(names[i])
		if m.mode == ModeForm && m.formFocus == profileField(i) {
			label = m.styles.FormFocused.Render(names[i] + strings.Repeat(" ", maxInt(1, 10-len(names[i]))))
		}
		b.WriteString(label)
		b.WriteString(m.form[i].View())
		b.WriteString("\n")
	}

	roleLabel := m.styles.FormLabel.Render(names[fieldRole])
	if m.mode == ModeForm && m.formFocus == fieldRole {
		roleLabel = m.styles.FormFocused.Render("role      ")
	}
	b.WriteString(roleLabel)
	b.WriteString(m.styles.Status.Render(string(m.formRole)))
	b.WriteString("\n")

	if m.profile != nil {
		b.WriteString(m.styles.Muted.Render("class key: " + m.profile.ClassKey()))
		b.WriteString("\n")
	}

	if len(m.students) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DayHeader.Render("Students"))
		b.WriteString("\n")
		for _, st := range m.students {
			b.WriteString(m.styles.Status.Render("  " + st.Username))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderSettings() string {
	s := m.app.Settings()
	onOff := func(v bool) string {
		if v {
			return m.styles.ProgressFill.Render("on")
		}
		return m.styles.Muted.Render("off")
	}
	lines := []string{
		m.styles.DayHeader.Render("Settings"),
		"  t  theme    " + m.styles.Status.Render(s.Theme),
		"  e  editing  " + onOff(s.Edit),
		"  n  notify   " + onOff(s.Notify),
		"  v  vibrate  " + onOff(s.Vibrate),
		m.styles.Hint.Render("  esc closes"),
	}
	return m.styles.Card.Width(m.cardWidth()).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	if m.statusLine != "" {
		if m.statusWarn {
			return m.styles.Warning.Render(m.statusLine)
		}
		return m.styles.Status.Render(m.statusLine)
	}
	var hint string
	switch m.mode {
	case ModeEdit:
		hint = "enter save · esc cancel"
	case ModeSearch:
		hint = "type to filter · enter done"
	case ModeForm:
		hint = "tab next field · enter save · esc back"
	case ModeSettings:
		hint = "t/e/n/v toggle · esc close"
	default:
		switch m.tab {
		case TabHome:
			hint = "←/→ day · ↑/↓ cell · e edit · y copy · u/U sync · p publish · S settings · q quit"
		case TabExplore:
			hint = "↑/↓ select · enter apply · / filter · s sort · r refresh"
		case TabProfile:
			hint = "e edit profile · d students · r reload"
		}
	}
	return m.styles.Hint.Render(hint)
}

// periodText is the compact "now" summary for the header and boundary hint.
func (m *Model) periodText() string {
	st := m.status
	if !st.InSession {
		return "No class now"
	}
	label := st.Label
	if label == "" {
		label = "Free"
	}
	text := fmt.Sprintf("%s · %s", label, timetable.FormatRange(st.SlotTime))
	if !st.Pause && st.Label != "" {
		text = fmt.Sprintf("Period %d · %s", st.PeriodNumber, text)
	}
	if st.HasNext {
		text += fmt.Sprintf(" · next %s at %s", st.NextLabel, timetable.FormatTime12(st.NextStart))
	}
	return text
}

// weekText renders the whole week as plain text for the clipboard.
func (m *Model) weekText() string {
	var b strings.Builder
	g := m.app.Grid()
	headers := layout.HeaderLabels(g)
	b.WriteString("        ")
	for s := 0; s < timetable.NumSlots; s++ {
		fmt.Fprintf(&b, "%-10s", headers[s])
	}
	b.WriteString("\n")
	for d := 0; d < timetable.NumDays; d++ {
		fmt.Fprintf(&b, "%-8s", timetable.DayNames[d][:3])
		for s := 0; s < timetable.NumSlots; s++ {
			label := timetable.Normalize(s, g.Label(d, s))
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(&b, "%-10s", ansi.Truncate(label, 9, "…"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) cardWidth() int {
	if m.width > 10 && m.width < defaultCardWidth+4 {
		return m.width - 4
	}
	return defaultCardWidth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
