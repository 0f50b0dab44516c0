// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgCard      string `toml:"bg_card"`      // Period cards
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Past periods, hints
	Accent      string `toml:"accent"`       // Title, borders, tabs
	Pause       string `toml:"pause"`        // Break and Lunch cells
	Active      string `toml:"active"`       // Current period border and progress
	Warning     string `toml:"warning"`      // Error hints
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to light if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" || name == "auto" {
		name = Detect()
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "light" {
			return Load("light")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}

// Detect picks light or dark from the terminal background.
func Detect() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"light", "dark"}
}
