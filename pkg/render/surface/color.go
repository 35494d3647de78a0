package surface

import (
	"strings"

	"github.com/gogpu/gg"
)

// namedColors covers the CSS color keywords compilers put on CFG edges.
var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"grey":   "#808080",
	"gray":   "#808080",
	"purple": "#800080",
	"cyan":   "#00ffff",
}

// ParseColor converts a CSS hex color or a basic color keyword to a gg
// color. Unknown values fall back to white, the default edge color.
func ParseColor(s string) gg.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		return gg.Hex(hex)
	}
	if strings.HasPrefix(s, "#") && isHex(s[1:]) {
		switch len(s) - 1 {
		case 3, 4, 6, 8:
			return gg.Hex(s)
		}
	}
	return gg.Hex("#ffffff")
}

// CSSColor normalizes a color for SVG output, keeping keywords and valid
// hex values and replacing anything else with white.
func CSSColor(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if _, ok := namedColors[t]; ok {
		return t
	}
	if strings.HasPrefix(t, "#") && isHex(t[1:]) {
		switch len(t) - 1 {
		case 3, 4, 6, 8:
			return t
		}
	}
	return "#ffffff"
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return s != ""
}
