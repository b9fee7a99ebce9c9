package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, tuned for dark terminals.
var (
	Primary = lipgloss.Color("#38BDF8") // Sky
	Normal  = lipgloss.Color("#22C55E") // Green
	High    = lipgloss.Color("#F43F5E") // Rose
	Low     = lipgloss.Color("#F59E0B") // Amber
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Value = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Metric cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1).
		Width(22)

	DeltaZero = lipgloss.NewStyle().
			Foreground(Normal)

	DeltaUp = lipgloss.NewStyle().
		Foreground(High).
		Bold(true)

	DeltaDown = lipgloss.NewStyle().
			Foreground(Low).
			Bold(true)
)

// Diagnosis banner
var (
	Diagnosis = lipgloss.NewStyle().
			Foreground(High).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(High).
			PaddingLeft(1)

	Healthy = lipgloss.NewStyle().
		Foreground(Normal).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Normal).
		PaddingLeft(1)
)
