package core

// Color is a foreground color for a screen cell.
// The terminal host maps it to ANSI 256-color codes.
type Color uint8

// Palette used by the runner scenes.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightWhite
	ColorGray
)
