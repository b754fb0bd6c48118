package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// Color definitions for consistent styling across the UI.
var (
	colorMorning   = color.New(color.FgCyan)
	colorAfternoon = color.New(color.FgMagenta)

	// Double bookings: bold red so they cannot be missed
	colorConflict = color.New(color.FgRed, color.Bold)

	colorWarning = color.New(color.FgYellow)
	colorHeader  = color.New(color.Bold)
	colorStats   = color.New(color.FgGreen)
	colorMuted   = color.New(color.FgWhite, color.Faint)
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

// formatBlock colors text by block.
func formatBlock(b event.Block, s string) string {
	if b == event.BlockAfternoon {
		return colorAfternoon.Sprint(s)
	}
	return colorMorning.Sprint(s)
}

func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
