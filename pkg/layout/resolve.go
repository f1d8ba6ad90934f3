package layout

import (
	"strconv"

	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
	"boxwright/pkg/text"
)

// styleFor computes the style of n and applies inheritance from the
// parent's resolved style. inherited is nil for the root.
func (p *pass) styleFor(n *html.Node, inherited *css.ComputedStyle) css.ComputedStyle {
	cs := p.cascade.ComputeStyle(n)
	if inherited == nil {
		return cs
	}
	switch n.Type {
	case html.TextNode:
		inheritText(&cs, inherited)
	case html.ElementNode:
		if !css.InlineStyleMentions(n, "color") && cs.Color == css.Black {
			cs.Color = inherited.Color
		}
		if !css.InlineStyleMentions(n, "text-align") {
			cs.TextAlign = inherited.TextAlign
		}
		if !css.InlineStyleMentions(n, "font-family") {
			cs.FontFamily = inherited.FontFamily
		}
		if !css.InlineStyleMentions(n, "line-height") {
			cs.LineHeight = inherited.LineHeight
		}
	}
	return cs
}

// inheritText copies the text properties a text run takes from its parent.
func inheritText(cs, parent *css.ComputedStyle) {
	cs.Color = parent.Color
	cs.FontSize = parent.FontSize
	cs.FontWeight = parent.FontWeight
	cs.FontStyle = parent.FontStyle
	cs.FontFamily = parent.FontFamily
	cs.TextDecoration = parent.TextDecoration
	cs.TextAlign = parent.TextAlign
	cs.LineHeight = parent.LineHeight
}

// Control classifies replaced elements and form controls, which size
// themselves instead of from their children.
type Control int

const (
	ControlNone Control = iota
	ControlCheckbox
	ControlRadio
	ControlInput
	ControlTextarea
	ControlSelect
	ControlImage
)

// ControlOf reports which control, if any, n renders as.
func ControlOf(n *html.Node) Control {
	if n.Type != html.ElementNode {
		return ControlNone
	}
	switch n.TagName {
	case "input":
		typ, _ := n.GetAttribute("type")
		switch typ {
		case "checkbox":
			return ControlCheckbox
		case "radio":
			return ControlRadio
		}
		return ControlInput
	case "textarea":
		return ControlTextarea
	case "select":
		return ControlSelect
	case "img":
		return ControlImage
	}
	return ControlNone
}

func attrInt(n *html.Node, name string, def int) int {
	if v, ok := n.GetAttribute(name); ok {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// attrFloat returns the attribute as a number. Absent attributes yield
// def; malformed ones yield prior.
func attrFloat(n *html.Node, name string, prior, def float64) float64 {
	v, ok := n.GetAttribute(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return prior
	}
	return f
}

// layout resolves the box model of id and lays out its subtree with the
// margin box's top-left at (x, y).
func (p *pass) layout(id BoxID, x, y, avail float64, inInlineFlow bool, inherited *css.ComputedStyle) {
	b := p.box(id)
	b.Style = p.styleFor(b.Node, inherited)
	b.Lines = b.Lines[:0]
	cs := &b.Style

	if cs.Display == css.DisplayHidden {
		b.Dims = BoxDimensions{Content: Rect{X: x, Y: y}}
		b.Frame = Rect{X: x, Y: y}
		b.ScrollableWidth, b.ScrollableHeight = 0, 0
		b.clampScroll()
		return
	}

	fs := cs.FontSize
	margin := cs.Margin.Resolve(avail, fs, p.vp)
	padding := cs.Padding.Resolve(avail, fs, p.vp)
	border := cs.BorderWidth.Resolve(avail, fs, p.vp)

	control := ControlOf(b.Node)
	if control == ControlCheckbox || control == ControlRadio {
		padding, border = css.BoxEdge{}, css.BoxEdge{}
		if control == ControlCheckbox {
			margin.Right += 4
		}
	}

	contentX := x + margin.Left + border.Left + padding.Left
	contentY := y + margin.Top + border.Top + padding.Top
	frameH := padding.Horizontal() + border.Horizontal()
	frameV := padding.Vertical() + border.Vertical()

	width := p.resolveWidth(b, avail, margin, frameH, inInlineFlow, inherited)

	var contentHeight float64
	switch {
	case b.IsText():
		contentHeight = p.layoutText(b, contentX, contentY, width)
	case cs.Display == css.DisplayFlex:
		contentHeight = p.layoutFlex(id, contentX, contentY, width)
	case cs.Display == css.DisplayTable:
		contentHeight = p.layoutTable(id, contentX, contentY, width)
	case cs.Display == css.DisplayBlock, cs.Display == css.DisplayRowGroup,
		cs.Display == css.DisplayTableRow, cs.Display == css.DisplayTableCell:
		contentHeight = p.layoutBlock(id, contentX, contentY, width)
	default:
		flow := width
		if cs.Display == css.DisplayInline && cs.Width.IsAuto() {
			flow = text.UnboundedWidth * 10
		}
		contentHeight = p.layoutInline(id, b.Children, contentX, contentY, flow)
	}
	height := contentHeight
	switch control {
	case ControlCheckbox, ControlRadio:
		if cs.Width.IsAuto() {
			width = 16
		}
		if cs.Height.IsAuto() {
			height = 16
		}
	case ControlInput:
		height = max(height, fs+4)
	case ControlTextarea:
		if cs.Width.IsAuto() {
			width = float64(attrInt(b.Node, "cols", 20)) * 0.6 * fs
		}
		if cs.Height.IsAuto() {
			height = float64(attrInt(b.Node, "rows", 2)) * 1.2 * fs
		}
	case ControlSelect:
		if cs.Width.IsAuto() {
			width = 150
		}
		if cs.Height.IsAuto() {
			height = fs + 8
		}
	case ControlImage:
		if cs.Width.IsAuto() {
			width = attrFloat(b.Node, "width", width, 150)
		}
		if cs.Height.IsAuto() {
			height = attrFloat(b.Node, "height", height, 150)
		}
	}

	if !cs.Height.IsAuto() && cs.Height.Unit != css.Percent {
		if h := cs.Height.ToPx(0, fs, p.vp); h >= 0 {
			height = h
			if cs.BoxSizing == css.BorderBox {
				height = max(0, height-frameV)
			}
		}
	}
	if mn := cs.MinHeight.ToPx(0, fs, p.vp); mn > 0 && height < mn {
		height = mn
	}
	if mx := cs.MaxHeight.ToPx(0, fs, p.vp); mx > 0 && height > mx {
		height = mx
	}

	b.Dims = BoxDimensions{
		Content: Rect{X: contentX, Y: contentY, Width: width, Height: height},
		Padding: padding,
		Border:  border,
		Margin:  margin,
	}
	b.Frame = b.Dims.BorderBox()

	if cs.IsScrollContainer() {
		b.ScrollableWidth = 0
		b.ScrollableHeight = max(0, contentHeight-height)
		if b.ScrollableHeight > 0 {
			p.log.Debug("scroll container",
				zap.String("tag", b.Node.TagName),
				zap.Float64("content_height", contentHeight),
				zap.Float64("visible_height", height))
		}
	} else {
		b.ScrollableWidth, b.ScrollableHeight = 0, 0
	}
	b.clampScroll()
}

// resolveWidth picks the content width of b: an explicit width, an
// intrinsic width for tables and inline-level boxes, or the space left in
// the container.
func (p *pass) resolveWidth(b *Box, avail float64, margin css.BoxEdge, frameH float64, inInlineFlow bool, inherited *css.ComputedStyle) float64 {
	cs := &b.Style
	fs := cs.FontSize
	width, explicit := 0.0, false
	if !cs.Width.IsAuto() {
		if w := cs.Width.ToPx(avail, fs, p.vp); w >= 0 {
			width, explicit = w, true
			if cs.BoxSizing == css.BorderBox {
				width -= frameH
			}
		}
	}
	if !explicit {
		switch {
		case cs.Display == css.DisplayTable:
			width = p.tableIntrinsicWidth(b.ID, inherited) - frameH
		case cs.Display.IsInlineLevel(), b.IsText() && inInlineFlow:
			width = p.intrinsicWidth(b.ID, inherited)
		default:
			width = avail - margin.Horizontal() - frameH
		}
	}
	width = max(0, width)
	if mn := cs.MinWidth.ToPx(avail, fs, p.vp); mn > 0 && width < mn {
		width = mn
	}
	if mx := cs.MaxWidth.ToPx(avail, fs, p.vp); mx > 0 && width > mx {
		width = mx
	}
	return width
}
