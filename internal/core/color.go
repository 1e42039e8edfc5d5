package core

import "strconv"

// Color represents a foreground color for a screen cell.
// Values map onto the ANSI 256-color palette via ANSI.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Named roles shared by the games so the palette stays consistent.
const (
	ColorPlayer  = ColorBrightCyan
	ColorTerrain = ColorGray
	ColorPickup  = ColorBrightYellow
	ColorGoal    = ColorGreen
	ColorHazard  = ColorBrightRed
	ColorEffect  = ColorOrange
)

// ANSI returns the 256-color palette index for c, or "" for the terminal default.
func (c Color) ANSI() string {
	switch {
	case c == ColorDefault:
		return ""
	case c <= ColorWhite:
		return strconv.Itoa(int(c))
	case c <= ColorBrightWhite:
		// Bright variants start at 9; 8 is skipped as too dark on most themes.
		return strconv.Itoa(int(c-ColorBrightRed) + 9)
	case c == ColorOrange:
		return "208"
	case c == ColorGray:
		return "245"
	}
	return ""
}
