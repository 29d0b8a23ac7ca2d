package core

// Color represents a foreground color for a screen cell.
// The terminal platform maps these to ANSI 256-color codes.
type Color uint8

// Colors used by the ASCII view.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorGray
)
