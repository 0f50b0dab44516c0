package ui

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcovidal/horario/internal/clock"
)

func (a *App) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow period changes until interrupted",
		Long: `Print the current period, then wake at every slot boundary and
print the new one. Exits after the last slot of the day or on Ctrl-C.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			application, closeApp, err := a.openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			times, err := a.slotTimes()
			if err != nil {
				return err
			}

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			defer signal.Stop(interrupt)

			wake := make(chan struct{}, 1)
			var waker clock.Waker
			defer waker.Cancel()

			for {
				now := time.Now()
				fmt.Printf("%s  %s\n",
					colorMuted.Sprint(now.Format("15:04")),
					nowText(clock.Current(application.Grid(), times, now)))

				delay, ok := clock.NextBoundary(times, clock.MinuteOfDay(now))
				if !ok {
					fmt.Println(colorMuted.Sprint("Done for today."))
					return nil
				}
				waker.WakeAfter(delay, func() {
					wake <- struct{}{}
				})

				select {
				case <-wake:
				case <-interrupt:
					return nil
				}
			}
		},
	}
}
