// Package tui provides terminal styling helpers shared by CLI commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// HeaderStyle is the style applied to table headers.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"})
}

// DimStyle is the style applied to secondary information.
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
}

// PassColor is the adaptive color for passing results.
func PassColor() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00D700"}
}

// FailColor is the adaptive color for failing results.
func FailColor() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
}

// CheckNoColor disables lipgloss colors when the terminal does not support them.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// ColorOffset returns the width difference between a styled string and its
// plain form. Used to keep fixed-width columns aligned when ANSI escape
// sequences are present.
func ColorOffset(rendered, plain string) int {
	return len(rendered) - len(plain)
}
