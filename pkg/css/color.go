package css

import (
	"math"
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
	A       float64
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{255, 255, 255, 1}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA returns the components scaled to [0,1], the form gg expects.
func (c Color) RGBA() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, c.A
}

func (c Color) IsTransparent() bool { return c.A <= 0 }

func ParseColor(colorStr string) (Color, bool) {
	s := strings.ToLower(strings.TrimSpace(colorStr))
	if s == "transparent" {
		return Transparent, true
	}
	if hex, ok := namedColors[s]; ok {
		return parseHex(hex)
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	}
	return Color{}, false
}

func parseHex(h string) (Color, bool) {
	switch len(h) {
	case 3, 4:
		expanded := make([]byte, 0, len(h)*2)
		for i := 0; i < len(h); i++ {
			expanded = append(expanded, h[i], h[i])
		}
		h = string(expanded)
	case 6, 8:
	default:
		return Color{}, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(h) == 6 {
		return Color{uint8(n >> 16), uint8(n >> 8), uint8(n), 1}, true
	}
	return Color{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), float64(uint8(n)) / 255}, true
}

// functionArgs splits "name(a, b, c)" or "name(a b c / d)" into its arguments.
func functionArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	closing := strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return nil, false
	}
	inner := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : closing])
	return strings.Fields(inner), true
}

// channel parses an rgb component. Percentages scale to 255 and values
// above 1 are taken as already on the 0-255 scale.
func channel(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampByte(n / 100 * 255), true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if n <= 1 {
		n *= 255
	}
	return clampByte(n), true
}

func alpha(s string) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		n /= 100
	}
	return math.Max(0, math.Min(1, n)), true
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func parseRGB(s string) (Color, bool) {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 {
		return Color{}, false
	}
	var c Color
	var okR, okG, okB bool
	c.R, okR = channel(args[0])
	c.G, okG = channel(args[1])
	c.B, okB = channel(args[2])
	if !okR || !okG || !okB {
		return Color{}, false
	}
	c.A = 1
	if len(args) > 3 {
		a, ok := alpha(args[3])
		if !ok {
			return Color{}, false
		}
		c.A = a
	}
	return c, true
}

func parseHSL(s string) (Color, bool) {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 {
		return Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, false
	}
	sat, okS := alpha(args[1])
	light, okL := alpha(args[2])
	if !okS || !okL {
		return Color{}, false
	}
	a := 1.0
	if len(args) > 3 {
		if a, ok = alpha(args[3]); !ok {
			return Color{}, false
		}
	}

	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	hue := func(t float64) float64 {
		q := light * (1 + sat)
		if light >= 0.5 {
			q = light + sat - light*sat
		}
		p := 2*light - q
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 0.5:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		}
		return p
	}
	return Color{
		R: clampByte(hue(h+1.0/3) * 255),
		G: clampByte(hue(h) * 255),
		B: clampByte(hue(h-1.0/3) * 255),
		A: a,
	}, true
}

var namedColors = map[string]string{
	"aliceblue": "f0f8ff", "antiquewhite": "faebd7", "aqua": "00ffff", "aquamarine": "7fffd4",
	"azure": "f0ffff", "beige": "f5f5dc", "bisque": "ffe4c4", "black": "000000",
	"blanchedalmond": "ffebcd", "blue": "0000ff", "blueviolet": "8a2be2", "brown": "a52a2a",
	"burlywood": "deb887", "cadetblue": "5f9ea0", "chartreuse": "7fff00", "chocolate": "d2691e",
	"coral": "ff7f50", "cornflowerblue": "6495ed", "cornsilk": "fff8dc", "crimson": "dc143c",
	"cyan": "00ffff", "darkblue": "00008b", "darkcyan": "008b8b", "darkgoldenrod": "b8860b",
	"darkgray": "a9a9a9", "darkgreen": "006400", "darkgrey": "a9a9a9", "darkkhaki": "bdb76b",
	"darkmagenta": "8b008b", "darkolivegreen": "556b2f", "darkorange": "ff8c00", "darkorchid": "9932cc",
	"darkred": "8b0000", "darksalmon": "e9967a", "darkseagreen": "8fbc8f", "darkslateblue": "483d8b",
	"darkslategray": "2f4f4f", "darkslategrey": "2f4f4f", "darkturquoise": "00ced1", "darkviolet": "9400d3",
	"deeppink": "ff1493", "deepskyblue": "00bfff", "dimgray": "696969", "dimgrey": "696969",
	"dodgerblue": "1e90ff", "firebrick": "b22222", "floralwhite": "fffaf0", "forestgreen": "228b22",
	"fuchsia": "ff00ff", "gainsboro": "dcdcdc", "ghostwhite": "f8f8ff", "gold": "ffd700",
	"goldenrod": "daa520", "gray": "808080", "green": "008000", "greenyellow": "adff2f",
	"grey": "808080", "honeydew": "f0fff0", "hotpink": "ff69b4", "indianred": "cd5c5c",
	"indigo": "4b0082", "ivory": "fffff0", "khaki": "f0e68c", "lavender": "e6e6fa",
	"lavenderblush": "fff0f5", "lawngreen": "7cfc00", "lemonchiffon": "fffacd", "lightblue": "add8e6",
	"lightcoral": "f08080", "lightcyan": "e0ffff", "lightgoldenrodyellow": "fafad2", "lightgray": "d3d3d3",
	"lightgreen": "90ee90", "lightgrey": "d3d3d3", "lightpink": "ffb6c1", "lightsalmon": "ffa07a",
	"lightseagreen": "20b2aa", "lightskyblue": "87cefa", "lightslategray": "778899", "lightslategrey": "778899",
	"lightsteelblue": "b0c4de", "lightyellow": "ffffe0", "lime": "00ff00", "limegreen": "32cd32",
	"linen": "faf0e6", "magenta": "ff00ff", "maroon": "800000", "mediumaquamarine": "66cdaa",
	"mediumblue": "0000cd", "mediumorchid": "ba55d3", "mediumpurple": "9370db", "mediumseagreen": "3cb371",
	"mediumslateblue": "7b68ee", "mediumspringgreen": "00fa9a", "mediumturquoise": "48d1cc", "mediumvioletred": "c71585",
	"midnightblue": "191970", "mintcream": "f5fffa", "mistyrose": "ffe4e1", "moccasin": "ffe4b5",
	"navajowhite": "ffdead", "navy": "000080", "oldlace": "fdf5e6", "olive": "808000",
	"olivedrab": "6b8e23", "orange": "ffa500", "orangered": "ff4500", "orchid": "da70d6",
	"palegoldenrod": "eee8aa", "palegreen": "98fb98", "paleturquoise": "afeeee", "palevioletred": "db7093",
	"papayawhip": "ffefd5", "peachpuff": "ffdab9", "peru": "cd853f", "pink": "ffc0cb",
	"plum": "dda0dd", "powderblue": "b0e0e6", "purple": "800080", "rebeccapurple": "663399",
	"red": "ff0000", "rosybrown": "bc8f8f", "royalblue": "4169e1", "saddlebrown": "8b4513",
	"salmon": "fa8072", "sandybrown": "f4a460", "seagreen": "2e8b57", "seashell": "fff5ee",
	"sienna": "a0522d", "silver": "c0c0c0", "skyblue": "87ceeb", "slateblue": "6a5acd",
	"slategray": "708090", "slategrey": "708090", "snow": "fffafa", "springgreen": "00ff7f",
	"steelblue": "4682b4", "tan": "d2b48c", "teal": "008080", "thistle": "d8bfd8",
	"tomato": "ff6347", "turquoise": "40e0d0", "violet": "ee82ee", "wheat": "f5deb3",
	"white": "ffffff", "whitesmoke": "f5f5f5", "yellow": "ffff00", "yellowgreen": "9acd32",
}
