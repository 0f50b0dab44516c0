// Package ui implements the horario command line interface.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcovidal/horario/internal/app"
	"github.com/marcovidal/horario/internal/config"
	"github.com/marcovidal/horario/internal/docstore"
	"github.com/marcovidal/horario/internal/store"
	"github.com/marcovidal/horario/internal/sync"
	"github.com/marcovidal/horario/internal/timetable"
	"github.com/marcovidal/horario/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "horario",
		Short: "A weekly class timetable for the terminal",
		Long: `Horario keeps your weekly class timetable in the terminal.

It tracks the current period in real time, supports inline editing,
and can share timetables across a class through a shared store.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.nowCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.watchCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("horario %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// openApp opens the local store and builds the application context. The
// returned close function also closes the store.
func (a *App) openApp() (*app.App, func(), error) {
	if a.config.Storage.DBPath == "" {
		return nil, nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(a.config.Storage.DBPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}
	kv, err := store.NewSQLite(a.config.Storage.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local store: %w", err)
	}
	application, err := app.New(kv)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	return application, func() { kv.Close() }, nil
}

// openSync builds the sync service. Without a configured sync path the
// service exists but reports unavailable.
func (a *App) openSync(userID string) (*sync.Service, func(), error) {
	if !a.config.SyncEnabled() {
		return sync.NewService(nil, userID), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(a.config.Sync.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating sync directory: %w", err)
	}
	ds, err := docstore.NewSQLite(a.config.Sync.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening sync store: %w", err)
	}
	return sync.NewService(ds, userID), func() { ds.Close() }, nil
}

func (a *App) slotTimes() ([]timetable.SlotTime, error) {
	return a.config.SlotTimes()
}

func (a *App) runTUI() error {
	application, closeApp, err := a.openApp()
	if err != nil {
		return err
	}
	defer closeApp()

	svc, closeSync, err := a.openSync(application.UserID())
	if err != nil {
		return err
	}
	defer closeSync()

	times, err := a.slotTimes()
	if err != nil {
		return err
	}
	return tui.Run(application, svc, times, a.config.UI.Theme)
}
