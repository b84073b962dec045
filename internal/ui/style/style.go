// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Amber  = lipgloss.Color("#F59E0B")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#EAB308")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Text styles for the report printer.
var (
	Module   = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	Active   = lipgloss.NewStyle().Foreground(Green)
	Inactive = lipgloss.NewStyle().Foreground(Slate)
	Problem  = lipgloss.NewStyle().Foreground(Red)
	Notice   = lipgloss.NewStyle().Foreground(Yellow)
)
