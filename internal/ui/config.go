package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcovidal/horario/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var initFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration",
		Long: `Print the effective configuration and where it comes from.

With --init, write a config file with the default values if none exists.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			fmt.Printf("Config file: %s\n", path)

			if initFlag {
				if _, err := os.Stat(path); os.IsNotExist(err) {
					if err := config.Default().SaveTo(path); err != nil {
						return fmt.Errorf("writing config: %w", err)
					}
					fmt.Println("Created with default values.")
				} else {
					fmt.Println("Already exists; left untouched.")
				}
			}

			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			printConfig(cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFlag, "init", false, "Create the config file if missing")
	return cmd
}

func printConfig(cfg *config.Config) {
	fmt.Println()
	fmt.Printf("  %s %s\n", colorHeader.Sprint("db_path:  "), cfg.Storage.DBPath)
	syncPath := cfg.Sync.Path
	if syncPath == "" {
		syncPath = colorMuted.Sprint("(sync off)")
	}
	fmt.Printf("  %s %s\n", colorHeader.Sprint("sync.path:"), syncPath)
	fmt.Printf("  %s %s\n", colorHeader.Sprint("ui.theme: "), cfg.UI.Theme)
	if len(cfg.Schedule.Slots) > 0 {
		fmt.Printf("  %s %d custom slots\n", colorHeader.Sprint("schedule: "), len(cfg.Schedule.Slots))
	} else {
		fmt.Printf("  %s built-in\n", colorHeader.Sprint("schedule: "))
	}
}
