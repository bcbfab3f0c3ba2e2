// Package sgr builds ANSI SGR escape sequences for terminal text styling.
package sgr

import "strconv"

const csi = "\x1B["

// Reset clears all graphic attributes.
const Reset = csi + "0m"

type GraphicFlag int

// Constants for non-color graphic attributes.
const (
	StyleNone      GraphicFlag = 0
	StyleBold      GraphicFlag = 1
	StyleItalic    GraphicFlag = 3
	StyleUnderline GraphicFlag = 4
)

func (c GraphicFlag) forEachSGRCode(f func(int)) { f(int(c)) }

// TrueColor is a 24-bit foreground or background color attribute.
type TrueColor struct {
	R, G, B    uint8
	Background bool
}

func (c TrueColor) forEachSGRCode(f func(int)) {
	if c.Background {
		f(48)
	} else {
		f(38)
	}
	f(2)
	f(int(c.R))
	f(int(c.G))
	f(int(c.B))
}

type GraphicAttribute interface {
	forEachSGRCode(func(int))
}

// SetGraphicAttributes returns the escape sequence that sets the given
// attributes.
func SetGraphicAttributes(attrs ...GraphicAttribute) string {
	b := make([]byte, len(csi), 64)
	copy(b, csi)
	for _, attr := range attrs {
		attr.forEachSGRCode(func(x int) {
			if len(b) > len(csi) {
				b = append(b, ';')
			}
			b = strconv.AppendInt(b, int64(x), 10)
		})
	}
	return string(append(b, 'm'))
}
