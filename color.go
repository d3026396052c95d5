// Package gridui renders a fixed-size character grid inside a native window
// and reports user input back to an application goroutine.
//
// This package contains:
//   - The glyph codec and bitmap atlas part mapping
//   - Color, Glyph and Screen snapshot types
//   - The closed InputEvent set
//   - The render-thread Frame shared by every backend
//   - The GridUI facade that wires screens and events across goroutines
//
// Platform packages (gtk, qt, tcell, cli) provide the Backend
// implementations that own the native window and its event loop.
package gridui

import "strconv"

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Predefined colors
var (
	DefaultForeground = Color{R: 212, G: 212, B: 212}
	DefaultBackground = Color{R: 30, G: 30, B: 30}

	// FillerColor paints the window area not covered by the current screen.
	FillerColor = Color{R: 212, G: 208, B: 200}
)

// RGB24 creates a color from a 0xRRGGBB word. Bits above 24 are ignored.
func RGB24(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Uint32 returns the color as a 0xRRGGBB word
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Floats returns the components scaled to 0..1 (for cairo)
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// ToSGRCode returns the true color SGR parameters (foreground if isFg=true)
func (c Color) ToSGRCode(isFg bool) string {
	prefix := "48;2;"
	if isFg {
		prefix = "38;2;"
	}
	return prefix + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}

// ToHex returns the color as a hex string like "#RRGGBB"
func (c Color) ToHex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// ParseHexColor parses a hex color string in "#RRGGBB" or "#RGB" format
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	s = s[1:]
	for i := 0; i < len(s); i++ {
		if _, ok := parseHexNibble(s[i]); !ok {
			return Color{}, false
		}
	}
	nib := func(i int) uint8 {
		v, _ := parseHexNibble(s[i])
		return v
	}
	switch len(s) {
	case 3:
		return Color{R: nib(0) * 17, G: nib(1) * 17, B: nib(2) * 17}, true
	case 6:
		return Color{R: nib(0)<<4 | nib(1), G: nib(2)<<4 | nib(3), B: nib(4)<<4 | nib(5)}, true
	}
	return Color{}, false
}

func parseHexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
