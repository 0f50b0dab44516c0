package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/layout"
	"github.com/marcovidal/horario/internal/timetable"
)

func (a *App) weekCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the whole week as a table",
		Long: `Display the weekly timetable in a table: one row per day, one
column per slot. Pause columns keep their label, content columns are
numbered. The current period is highlighted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			application, closeApp, err := a.openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			times, err := a.slotTimes()
			if err != nil {
				return err
			}

			printWeek(application.Grid(), times, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printWeek(g *timetable.Grid, times []timetable.SlotTime, now time.Time) {
	colWidth := weekColWidth(termWidth())
	st := clock.Current(g, times, now)
	headers := layout.HeaderLabels(g)

	// Header row: period numbers and pause labels.
	fmt.Print(pad("", 4))
	for s := 0; s < timetable.NumSlots; s++ {
		fmt.Print(colorHeader.Sprint(pad(headers[s], colWidth)))
	}
	fmt.Println()

	// Time row.
	fmt.Print(pad("", 4))
	for s := 0; s < timetable.NumSlots; s++ {
		fmt.Print(colorMuted.Sprint(pad(times[s].Start, colWidth)))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 4+colWidth*timetable.NumSlots))

	for d := 0; d < timetable.NumDays; d++ {
		fmt.Print(colorHeader.Sprint(pad(timetable.DayNames[d][:3], 4)))
		for s := 0; s < timetable.NumSlots; s++ {
			label := timetable.Normalize(s, g.Label(d, s))
			if label == "" {
				label = "·"
			}
			cell := pad(label, colWidth)
			switch {
			case st.InSession && st.Day == d && st.Slot == s:
				fmt.Print(colorCurrent.Sprint(cell))
			case timetable.IsPause(label):
				fmt.Print(colorPause.Sprint(cell))
			default:
				fmt.Print(cell)
			}
		}
		fmt.Println()
	}

	if st.InSession {
		fmt.Println()
		fmt.Println(nowText(st))
	}
}

// weekColWidth spreads the slot columns over the terminal width.
func weekColWidth(width int) int {
	w := (width - 4) / timetable.NumSlots
	if w < 5 {
		return 5
	}
	if w > 14 {
		return 14
	}
	return w
}

// pad truncates or right-pads a label to the column width, keeping one
// space of separation.
func pad(s string, width int) string {
	if width < 2 {
		width = 2
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-2]) + "… "
	}
	return s + strings.Repeat(" ", width-len(runes))
}
