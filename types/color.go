package types

// Color is a 32-bit ARGB8888 pixel value, alpha in the top byte.
type Color uint32

const (
	ColorBlack   Color = 0xFF000000
	ColorWhite   Color = 0xFFFFFFFF
	ColorRed     Color = 0xFFFF0000
	ColorGreen   Color = 0xFF00FF00
	ColorBlue    Color = 0xFF0000FF
	ColorYellow  Color = 0xFFFFFF00
	ColorCyan    Color = 0xFF00FFFF
	ColorMagenta Color = 0xFFFF00FF
)

// RGBA decomposes c into channel bytes.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// ColorFromRGBA packs channel bytes into a Color.
func ColorFromRGBA(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// NamedColor resolves the small fixed palette by name.
func NamedColor(name string) (Color, bool) {
	switch name {
	case "black":
		return ColorBlack, true
	case "white":
		return ColorWhite, true
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "blue":
		return ColorBlue, true
	case "yellow":
		return ColorYellow, true
	case "cyan":
		return ColorCyan, true
	case "magenta":
		return ColorMagenta, true
	}
	return 0, false
}
