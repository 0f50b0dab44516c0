package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Current period: bold green
	colorCurrent = color.New(color.FgGreen, color.Bold)

	// Pause cells: dim
	colorPause = color.New(color.FgWhite, color.Faint)

	// Headers and day names: bold
	colorHeader = color.New(color.Bold)

	// Next-up hints: yellow
	colorNext = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}
