package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	CurrentStyle = lipgloss.NewStyle().Bold(true)
	LoadedStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	MissingStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	FailedStyle  = lipgloss.NewStyle().Foreground(ColorError)
	HelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
)

const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolSkip   = "○"
	SymbolArrow  = "→"
	SymbolBullet = "•"
)
