package ui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the console report
var (
	Surface1 = lipgloss.Color("#45475a")
	Subtext0 = lipgloss.Color("#a6adc8") // Muted text
	Text     = lipgloss.Color("#cdd6f4") // Main text

	Sky    = lipgloss.Color("#89dceb") // Banner, RX
	Green  = lipgloss.Color("#a6e3a1") // Success
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387") // TX
	Red    = lipgloss.Color("#f38ba8") // Errors
	Mauve  = lipgloss.Color("#cba6f7")
)
