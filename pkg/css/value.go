package css

import (
	"strconv"
	"strings"
)

// Unit is the unit a length was written in.
type Unit int

const (
	Px Unit = iota
	Em
	Rem
	Percent
	Vw
	Vh
	Auto
	None
)

// Value is an unresolved length. Resolution to pixels needs the parent
// size, the element's font size and the viewport, which are only known
// during layout.
type Value struct {
	Amount float64
	Unit   Unit
}

var (
	AutoValue = Value{Unit: Auto}
	NoneValue = Value{Unit: None}
)

// PxValue returns a pixel length.
func PxValue(v float64) Value { return Value{Amount: v, Unit: Px} }

func (v Value) IsAuto() bool { return v.Unit == Auto }

// Viewport is the size of the initial containing block.
type Viewport struct {
	Width, Height float64
}

// DefaultViewport matches the initial window of the desktop viewer.
var DefaultViewport = Viewport{Width: 1024, Height: 768}

// ToPx resolves v to pixels. Auto resolves to -1, which callers treat as
// "not set"; None resolves to 0.
func (v Value) ToPx(parent, fontSize float64, vp Viewport) float64 {
	switch v.Unit {
	case Px:
		return v.Amount
	case Em:
		return v.Amount * fontSize
	case Rem:
		return v.Amount * 16
	case Percent:
		return v.Amount / 100 * parent
	case Vw:
		return v.Amount / 100 * vp.Width
	case Vh:
		return v.Amount / 100 * vp.Height
	case None:
		return 0
	}
	return -1
}

// ParseValue parses a CSS length. Unitless numbers are pixels; anything
// unparseable is auto.
func ParseValue(s string) Value {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "auto":
		return AutoValue
	case "none":
		return NoneValue
	case "0":
		return PxValue(0)
	}

	suffixes := []struct {
		suffix string
		unit   Unit
	}{
		{"rem", Rem},
		{"px", Px},
		{"em", Em},
		{"%", Percent},
		{"vw", Vw},
		{"vh", Vh},
	}
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.suffix) {
			if n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, sfx.suffix)), 64); err == nil {
				return Value{Amount: n, Unit: sfx.unit}
			}
			return AutoValue
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return PxValue(n)
	}
	return AutoValue
}

// ParseLength parses a pixel length (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	v := ParseValue(val)
	if v.Unit != Px {
		return 0, false
	}
	return v.Amount, true
}
