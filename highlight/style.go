package highlight

import "fmt"

// A Style describes the appearance of a chunk of text.
// The zero Style means non-bold, non-italic, non-underline text with the
// default colors for the output device.
type Style struct {
	Foreground, Background  Color
	Bold, Italic, Underline bool
}

// Color describes a 8-bit-per-channel RGB color.
// The zero Color is the default color for the output device.
type Color struct {
	R, G, B uint8
	Alpha   bool // Set when the color overrides the device default.
}

// String returns the hex color code for c.
func (c Color) String() string {
	if !c.Alpha {
		return "#DEFAULT"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGB returns an opaque color with the given channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Alpha: true} }
