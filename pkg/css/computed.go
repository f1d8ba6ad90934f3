package css

import (
	"strconv"
	"strings"
)

type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayFlex        DisplayType = "flex"
	DisplayTable       DisplayType = "table"
	DisplayRowGroup    DisplayType = "table-row-group"
	DisplayTableRow    DisplayType = "table-row"
	DisplayTableCell   DisplayType = "table-cell"
	DisplayHidden      DisplayType = "none"
)

// IsInlineLevel reports whether the display participates in inline flow.
func (d DisplayType) IsInlineLevel() bool {
	return d == DisplayInline || d == DisplayInlineBlock
}

type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

type BoxSizing string

const (
	ContentBox BoxSizing = "content-box"
	BorderBox  BoxSizing = "border-box"
)

type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

type TextDecoration string

const (
	TextDecorationNone        TextDecoration = "none"
	TextDecorationUnderline   TextDecoration = "underline"
	TextDecorationOverline    TextDecoration = "overline"
	TextDecorationLineThrough TextDecoration = "line-through"
)

type TextAlign string

const (
	TextAlignLeft    TextAlign = "left"
	TextAlignCenter  TextAlign = "center"
	TextAlignRight   TextAlign = "right"
	TextAlignJustify TextAlign = "justify"
)

type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

type UserSelect string

const (
	UserSelectAuto UserSelect = "auto"
	UserSelectNone UserSelect = "none"
	UserSelectText UserSelect = "text"
	UserSelectAll  UserSelect = "all"
)

type VerticalAlign string

const (
	VerticalAlignBaseline   VerticalAlign = "baseline"
	VerticalAlignTop        VerticalAlign = "top"
	VerticalAlignTextTop    VerticalAlign = "text-top"
	VerticalAlignMiddle     VerticalAlign = "middle"
	VerticalAlignBottom     VerticalAlign = "bottom"
	VerticalAlignTextBottom VerticalAlign = "text-bottom"
	VerticalAlignSub        VerticalAlign = "sub"
	VerticalAlignSuper      VerticalAlign = "super"
)

// Edges holds an unresolved value per side.
type Edges struct {
	Top, Right, Bottom, Left Value
}

func uniformEdges(v Value) Edges { return Edges{v, v, v, v} }

// Resolve converts all four sides to pixels. Auto sides resolve to zero.
func (e Edges) Resolve(parent, fontSize float64, vp Viewport) BoxEdge {
	px := func(v Value) float64 {
		if p := v.ToPx(parent, fontSize, vp); p > 0 {
			return p
		}
		return 0
	}
	return BoxEdge{Top: px(e.Top), Right: px(e.Right), Bottom: px(e.Bottom), Left: px(e.Left)}
}

// ComputedStyle is the resolved presentation of one node. It is a plain
// value: copies never alias.
type ComputedStyle struct {
	Display   DisplayType
	Position  PositionType
	BoxSizing BoxSizing

	Width, Height       Value
	MinWidth, MinHeight Value
	MaxWidth, MaxHeight Value

	Margin      Edges
	Padding     Edges
	BorderWidth Edges
	BorderColor [4]Color

	Color           Color
	BackgroundColor Color

	FontSize       float64
	LineHeight     float64 // multiplier of FontSize
	FontFamily     string
	FontWeight     FontWeight
	FontStyle      FontStyle
	TextDecoration TextDecoration
	TextAlign      TextAlign

	Overflow Overflow
	ZIndex   int
	Opacity  float64

	FlexDirection  string
	FlexWrap       string
	JustifyContent string
	AlignItems     string
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      Value
	Gap            float64

	UserSelect    UserSelect
	VerticalAlign VerticalAlign
}

// DefaultStyle returns the initial values of every property.
func DefaultStyle() ComputedStyle {
	return ComputedStyle{
		Display:         DisplayBlock,
		Position:        PositionStatic,
		BoxSizing:       ContentBox,
		Width:           AutoValue,
		Height:          AutoValue,
		MinWidth:        PxValue(0),
		MinHeight:       PxValue(0),
		MaxWidth:        AutoValue,
		MaxHeight:       AutoValue,
		Margin:          uniformEdges(PxValue(0)),
		Padding:         uniformEdges(PxValue(0)),
		BorderWidth:     uniformEdges(PxValue(0)),
		BorderColor:     [4]Color{Black, Black, Black, Black},
		Color:           Black,
		BackgroundColor: Transparent,
		FontSize:        16,
		LineHeight:      1.2,
		FontFamily:      "serif",
		FontWeight:      FontWeightNormal,
		FontStyle:       FontStyleNormal,
		TextDecoration:  TextDecorationNone,
		TextAlign:       TextAlignLeft,
		Overflow:        OverflowVisible,
		Opacity:         1,
		FlexDirection:   "row",
		FlexWrap:        "nowrap",
		JustifyContent:  "flex-start",
		AlignItems:      "stretch",
		FlexShrink:      1,
		FlexBasis:       AutoValue,
		UserSelect:      UserSelectAuto,
		VerticalAlign:   VerticalAlignBaseline,
	}
}

// IsScrollContainer reports whether overflow clips and scrolls.
func (cs *ComputedStyle) IsScrollContainer() bool {
	return cs.Overflow == OverflowScroll || cs.Overflow == OverflowAuto
}

// IsMonospace reports whether the primary family is a monospace face.
func (cs *ComputedStyle) IsMonospace() bool {
	family := strings.ToLower(cs.FontFamily)
	return strings.Contains(family, "monospace") || strings.Contains(family, "mono") ||
		strings.Contains(family, "courier")
}

// Apply folds a declaration block into cs. Properties are applied in sorted
// order, so font-size is known before line-height is resolved.
func (cs *ComputedStyle) Apply(decls *Style) {
	for _, prop := range decls.Keys() {
		cs.applyProperty(prop, decls.Properties[prop])
	}
}

func sideIndex(side string) int {
	for i, s := range sides {
		if s == side {
			return i
		}
	}
	return -1
}

func setEdge(e *Edges, side string, v Value) {
	switch side {
	case "top":
		e.Top = v
	case "right":
		e.Right = v
	case "bottom":
		e.Bottom = v
	case "left":
		e.Left = v
	}
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}

func (cs *ComputedStyle) applyProperty(prop, value string) {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	if rest, ok := strings.CutPrefix(prop, "margin-"); ok {
		setEdge(&cs.Margin, rest, ParseValue(value))
		return
	}
	if rest, ok := strings.CutPrefix(prop, "padding-"); ok {
		setEdge(&cs.Padding, rest, ParseValue(value))
		return
	}
	if rest, ok := strings.CutPrefix(prop, "border-"); ok {
		if side, ok := strings.CutSuffix(rest, "-width"); ok {
			setEdge(&cs.BorderWidth, side, ParseValue(value))
		} else if side, ok := strings.CutSuffix(rest, "-color"); ok {
			if i := sideIndex(side); i >= 0 {
				if c, ok := ParseColor(value); ok {
					cs.BorderColor[i] = c
				}
			}
		}
		return
	}

	switch prop {
	case "width":
		cs.Width = ParseValue(value)
	case "height":
		cs.Height = ParseValue(value)
	case "min-width":
		cs.MinWidth = ParseValue(value)
	case "min-height":
		cs.MinHeight = ParseValue(value)
	case "max-width":
		cs.MaxWidth = ParseValue(value)
	case "max-height":
		cs.MaxHeight = ParseValue(value)
	case "color":
		if c, ok := ParseColor(value); ok {
			cs.Color = c
		}
	case "background-color":
		if c, ok := ParseColor(value); ok {
			cs.BackgroundColor = c
		}
	case "font-size":
		if px := ParseValue(value).ToPx(0, 16, DefaultViewport); px > 0 {
			cs.FontSize = px
		}
	case "line-height":
		v := ParseValue(value)
		switch {
		case lower == "normal":
			cs.LineHeight = 1.2
		case v.Unit == Em || (v.Unit == Px && strings.HasSuffix(lower, "px")):
			if cs.FontSize > 0 {
				cs.LineHeight = v.ToPx(0, cs.FontSize, DefaultViewport) / cs.FontSize
			}
		case v.Unit == Percent:
			cs.LineHeight = v.Amount / 100
		default:
			if n, ok := parseFloat(value); ok && n >= 0 {
				cs.LineHeight = n
			}
		}
	case "font-weight":
		switch lower {
		case "bold", "bolder", "600", "700", "800", "900":
			cs.FontWeight = FontWeightBold
		case "normal", "lighter", "100", "200", "300", "400", "500":
			cs.FontWeight = FontWeightNormal
		}
	case "font-style":
		switch lower {
		case "italic", "oblique":
			cs.FontStyle = FontStyleItalic
		case "normal":
			cs.FontStyle = FontStyleNormal
		}
	case "font-family":
		cs.FontFamily = strings.Trim(value, `"'`)
		if cs.IsMonospace() && cs.FontSize == 16 {
			cs.FontSize = 13
		}
	case "text-decoration", "text-decoration-line":
		switch {
		case strings.Contains(lower, "underline"):
			cs.TextDecoration = TextDecorationUnderline
		case strings.Contains(lower, "line-through"):
			cs.TextDecoration = TextDecorationLineThrough
		case strings.Contains(lower, "overline"):
			cs.TextDecoration = TextDecorationOverline
		case lower == "none":
			cs.TextDecoration = TextDecorationNone
		}
	case "text-align":
		switch lower {
		case "left", "start":
			cs.TextAlign = TextAlignLeft
		case "center":
			cs.TextAlign = TextAlignCenter
		case "right", "end":
			cs.TextAlign = TextAlignRight
		case "justify":
			cs.TextAlign = TextAlignJustify
		}
	case "display":
		switch lower {
		case "block", "list-item", "grid":
			cs.Display = DisplayBlock
		case "inline":
			cs.Display = DisplayInline
		case "inline-block":
			cs.Display = DisplayInlineBlock
		case "flex", "inline-flex":
			cs.Display = DisplayFlex
		case "table":
			cs.Display = DisplayTable
		case "table-row-group", "table-header-group", "table-footer-group":
			cs.Display = DisplayRowGroup
		case "table-row":
			cs.Display = DisplayTableRow
		case "table-cell":
			cs.Display = DisplayTableCell
		case "none":
			cs.Display = DisplayHidden
		}
	case "position":
		switch lower {
		case "relative":
			cs.Position = PositionRelative
		case "absolute":
			cs.Position = PositionAbsolute
		case "fixed":
			cs.Position = PositionFixed
		case "static":
			cs.Position = PositionStatic
		}
	case "box-sizing":
		if lower == "border-box" {
			cs.BoxSizing = BorderBox
		} else if lower == "content-box" {
			cs.BoxSizing = ContentBox
		}
	case "overflow":
		switch lower {
		case "visible", "hidden", "scroll", "auto":
			cs.Overflow = Overflow(lower)
		}
	case "z-index":
		if n, err := strconv.Atoi(value); err == nil {
			cs.ZIndex = n
		}
	case "opacity":
		if n, ok := parseFloat(value); ok {
			cs.Opacity = max(0, min(1, n))
		}
	case "flex-direction":
		cs.FlexDirection = lower
	case "flex-wrap":
		cs.FlexWrap = lower
	case "justify-content":
		cs.JustifyContent = lower
	case "align-items":
		cs.AlignItems = lower
	case "flex-grow":
		if n, ok := parseFloat(value); ok && n >= 0 {
			cs.FlexGrow = n
		}
	case "flex-shrink":
		if n, ok := parseFloat(value); ok && n >= 0 {
			cs.FlexShrink = n
		}
	case "flex-basis":
		cs.FlexBasis = ParseValue(value)
	case "gap", "column-gap":
		if px := ParseValue(value).ToPx(0, cs.FontSize, DefaultViewport); px > 0 {
			cs.Gap = px
		}
	case "user-select", "-webkit-user-select", "-moz-user-select", "-ms-user-select":
		switch lower {
		case "none", "auto", "text", "all":
			cs.UserSelect = UserSelect(lower)
		}
	case "vertical-align":
		switch VerticalAlign(lower) {
		case VerticalAlignBaseline, VerticalAlignTop, VerticalAlignTextTop, VerticalAlignMiddle,
			VerticalAlignBottom, VerticalAlignTextBottom, VerticalAlignSub, VerticalAlignSuper:
			cs.VerticalAlign = VerticalAlign(lower)
		}
	}
}
