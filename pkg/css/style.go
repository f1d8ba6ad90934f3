package css

import (
	"sort"
	"strings"
)

// Style is a block of longhand declarations. Shorthands are expanded as they
// are set, so a later "margin" overrides an earlier "margin-top" exactly as
// source order dictates.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Merge copies every declaration of other over s.
func (s *Style) Merge(other *Style) {
	for k, v := range other.Properties {
		s.Properties[k] = v
	}
}

// Keys returns the declared properties in sorted order.
func (s *Style) Keys() []string {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns Left+Right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top+Bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// ParseInlineStyle parses the body of a style attribute.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	parseDeclarationsInto(style, styleAttr)
	return style
}

func parseDeclarationsInto(style *Style, block string) {
	for _, decl := range strings.Split(block, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property == "" || value == "" {
			continue
		}
		expandShorthand(style, property, value)
	}
}

var sides = [4]string{"top", "right", "bottom", "left"}

var logicalSides = map[string]string{
	"block-start":  "top",
	"block-end":    "bottom",
	"inline-start": "left",
	"inline-end":   "right",
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property, "", value)
		return
	case "border-width":
		expandBoxProperty(style, "border", "-width", value)
		return
	case "border-color":
		expandBoxProperty(style, "border", "-color", value)
		return
	case "border-style":
		expandBoxProperty(style, "border", "-style", value)
		return
	case "border":
		for _, side := range sides {
			expandBorderSide(style, side, value)
		}
		return
	case "flex":
		expandFlex(style, value)
		return
	case "background":
		expandBackground(style, value)
		return
	case "overflow-y":
		style.Set("overflow", value)
		return
	}

	for _, side := range sides {
		if property == "border-"+side {
			expandBorderSide(style, side, value)
			return
		}
	}
	for _, prefix := range []string{"margin-", "padding-"} {
		if logical, ok := strings.CutPrefix(property, prefix); ok {
			if side, ok := logicalSides[logical]; ok {
				style.Set(prefix+side, value)
				return
			}
		}
	}
	style.Set(property, value)
}

// expandBoxProperty expands the 1-4 value side shorthand into
// prefix-<side>suffix longhands.
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top"+suffix, t)
	style.Set(prefix+"-right"+suffix, r)
	style.Set(prefix+"-bottom"+suffix, b)
	style.Set(prefix+"-left"+suffix, l)
}

func isBorderStyle(s string) bool {
	switch s {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

// expandBorderSide expands "1px solid black" (any order) for one side.
// A border without a positive width resolves to zero.
func expandBorderSide(style *Style, side, value string) {
	width := "0px"
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderStyle(part):
			style.Set("border-"+side+"-style", part)
		case ParseValue(part).Unit == Px:
			if w := ParseValue(part); w.Amount > 0 {
				width = part
			}
		default:
			style.Set("border-"+side+"-color", part)
		}
	}
	style.Set("border-"+side+"-width", width)
}

func expandFlex(style *Style, value string) {
	switch strings.TrimSpace(value) {
	case "auto":
		style.Set("flex-grow", "1")
		style.Set("flex-shrink", "1")
		style.Set("flex-basis", "auto")
		return
	case "none":
		style.Set("flex-grow", "0")
		style.Set("flex-shrink", "0")
		style.Set("flex-basis", "auto")
		return
	}
	parts := strings.Fields(value)
	if len(parts) == 0 {
		return
	}
	style.Set("flex-grow", parts[0])
	style.Set("flex-shrink", "1")
	style.Set("flex-basis", "0px")
	if len(parts) > 1 {
		style.Set("flex-shrink", parts[1])
	}
	if len(parts) > 2 {
		style.Set("flex-basis", parts[2])
	}
}

// expandBackground keeps the color component of the background shorthand.
func expandBackground(style *Style, value string) {
	if _, ok := ParseColor(value); ok {
		style.Set("background-color", value)
		return
	}
	for _, part := range strings.Fields(value) {
		if _, ok := ParseColor(part); ok {
			style.Set("background-color", part)
			return
		}
	}
}
