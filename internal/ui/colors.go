// Package ui holds ANSI styling helpers for terminal output.
package ui

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
)

// Bold wraps s in bold styling.
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Success renders s in green.
func Success(s string) string {
	return ColorGreen + s + ColorReset
}

// Info renders s dimmed yellow.
func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

// Error renders s in red.
func Error(s string) string {
	return ColorRed + s + ColorReset
}
