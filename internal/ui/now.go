package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcovidal/horario/internal/clock"
	"github.com/marcovidal/horario/internal/timetable"
)

func (a *App) nowCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current period",
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

			fmt.Println(nowText(clock.Current(application.Grid(), times, time.Now())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// nowText renders one status snapshot as a short report.
func nowText(st clock.Status) string {
	if !st.InSession {
		return colorMuted.Sprint("No class right now.")
	}

	label := st.Label
	if label == "" {
		label = "Free period"
	}

	var head string
	if st.Pause {
		head = colorPause.Sprint(label)
	} else {
		head = colorCurrent.Sprintf("Period %d · %s", st.PeriodNumber, label)
	}

	out := fmt.Sprintf("%s  %s  %s",
		head,
		colorMuted.Sprint(timetable.FormatRange(st.SlotTime)),
		colorMuted.Sprintf("%.0f%% in", st.Progress.Percent))

	if st.HasNext {
		out += "\n" + colorNext.Sprintf("Next: %s at %s", st.NextLabel, timetable.FormatTime12(st.NextStart))
	}
	return out
}
