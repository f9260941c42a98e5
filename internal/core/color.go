package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for scene elements.
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

// ParseColor converts a scene color name to a Color.
// Returns ColorDefault and false for unknown names.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "magenta", "purple":
		return ColorMagenta, true
	case "cyan":
		return ColorCyan, true
	case "white":
		return ColorWhite, true
	case "orange":
		return ColorOrange, true
	case "gray", "grey":
		return ColorGray, true
	default:
		return ColorDefault, false
	}
}

// Palette is the cycle used for bodies without an explicit color.
var Palette = []Color{
	ColorBrightCyan,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorBrightMagenta,
	ColorBrightRed,
	ColorBrightBlue,
	ColorOrange,
}
