package text

import (
	"unicode/utf8"

	"boxwright/pkg/css"
)

// Face measures and hit-tests text at a given size. Offsets are byte
// offsets into the UTF-8 string and always fall on rune boundaries.
type Face interface {
	MeasureWidth(text string, fontSize float64) float64
	HitTestOffset(text string, localX, fontSize float64) int
	PositionAtOffset(text string, offset int, fontSize float64) float64
}

// Fonts resolves a style's font triple to a Face.
type Fonts interface {
	Font(family string, weight css.FontWeight, style css.FontStyle) Face
	Default() Face
}

// FontFor resolves the face for a computed style, falling back to the
// default face. It returns nil only when no font is available at all.
func FontFor(fonts Fonts, cs *css.ComputedStyle) Face {
	if fonts == nil {
		return nil
	}
	if f := fonts.Font(cs.FontFamily, cs.FontWeight, cs.FontStyle); f != nil {
		return f
	}
	return fonts.Default()
}

// advanceFunc returns the horizontal advance of one rune at fontSize.
type advanceFunc func(r rune, fontSize float64) float64

func measure(adv advanceFunc, s string, fontSize float64) float64 {
	w := 0.0
	for _, r := range s {
		if r < 0x20 {
			continue
		}
		w += adv(r, fontSize)
	}
	return w
}

// hitTest returns the offset of the first rune whose midpoint lies right
// of localX, or len(s) when localX is past the end.
func hitTest(adv advanceFunc, s string, localX, fontSize float64) int {
	if s == "" || localX <= 0 {
		return 0
	}
	x := 0.0
	for i, r := range s {
		w := 0.0
		if r >= 0x20 {
			w = adv(r, fontSize)
		}
		if localX < x+w/2 {
			return i
		}
		x += w
	}
	return len(s)
}

func positionAt(adv advanceFunc, s string, offset int, fontSize float64) float64 {
	if offset <= 0 {
		return 0
	}
	if offset > len(s) {
		offset = len(s)
	}
	for offset > 0 && offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return measure(adv, s[:offset], fontSize)
}

// FixedFace gives every printable rune the same advance. Advance is the
// width in pixels at a 16px font size and scales linearly with size.
type FixedFace struct {
	Advance float64
}

func (f FixedFace) advance(_ rune, fontSize float64) float64 {
	return f.Advance * fontSize / 16
}

func (f FixedFace) MeasureWidth(text string, fontSize float64) float64 {
	return measure(f.advance, text, fontSize)
}

func (f FixedFace) HitTestOffset(text string, localX, fontSize float64) int {
	return hitTest(f.advance, text, localX, fontSize)
}

func (f FixedFace) PositionAtOffset(text string, offset int, fontSize float64) float64 {
	return positionAt(f.advance, text, offset, fontSize)
}

// Uniform serves one face for every family. It is handy for headless
// measurement and tests.
type Uniform struct {
	Face Face
}

func (u Uniform) Font(string, css.FontWeight, css.FontStyle) Face { return u.Face }

func (u Uniform) Default() Face { return u.Face }
