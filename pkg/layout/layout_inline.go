package layout

import (
	"strings"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
	"boxwright/pkg/text"
)

// lineCursor tracks the pen position of one inline formatting run.
type lineCursor struct {
	p           *pass
	left, width float64
	x, y        float64
	lineTop     float64
	lineHeight  float64
	placed      []BoxID // atomic inlines on the current line
}

func (c *lineCursor) right() float64 { return c.left + c.width }

// newLine finalizes the current line and moves the pen to the start of
// the next one. The new line starts at height next.
func (c *lineCursor) newLine(next float64) {
	c.p.alignLine(c.placed, c.lineTop, c.lineHeight)
	c.placed = c.placed[:0]
	c.x = c.left
	c.y += c.lineHeight
	c.lineTop = c.y
	c.lineHeight = next
}

// hasOwnFontSize lists the tags whose user agent font size survives inside
// an inline run.
func hasOwnFontSize(tag string) bool {
	switch tag {
	case "code", "pre", "kbd", "samp", "tt", "small", "sub", "sup",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// simpleInline reports whether n is an inline element wrapping exactly one
// text node. Such elements flow as styled text instead of an atomic box.
func (p *pass) simpleInline(id BoxID, st *css.ComputedStyle) bool {
	b := p.box(id)
	return b.Node.Type == html.ElementNode && st.Display == css.DisplayInline &&
		len(b.Children) == 1 && p.box(b.Children[0]).IsText()
}

// layoutInline flows children of parent left to right starting at (x, y),
// wrapping at width. It returns the height of all lines.
func (p *pass) layoutInline(parent BoxID, children []BoxID, x, y, width float64) float64 {
	ps := &p.box(parent).Style
	c := &lineCursor{p: p, left: x, width: width, x: x, y: y, lineTop: y, lineHeight: defaultLineHeight}

	for _, id := range children {
		b := p.box(id)
		n := b.Node
		switch {
		case n.IsElement("br"):
			b.Style = p.styleFor(n, ps)
			b.Lines = b.Lines[:0]
			b.Dims = BoxDimensions{Content: Rect{X: c.x, Y: c.y, Height: c.lineHeight}}
			b.Frame = b.Dims.Content
			c.newLine(defaultLineHeight)
			continue
		case b.IsText():
			b.Style = p.styleFor(n, ps)
			p.flowText(c, b, n.Text)
			continue
		}

		st := p.styleFor(n, ps)
		if st.Display == css.DisplayHidden {
			p.layout(id, c.x, c.y, 0, true, ps)
			continue
		}
		if p.simpleInline(id, &st) {
			p.flowSimpleInline(c, id, ps)
			continue
		}
		p.placeAtomic(c, id, &st, ps)
	}
	c.p.alignLine(c.placed, c.lineTop, c.lineHeight)
	return c.y - y + c.lineHeight
}

// flowSimpleInline flows an element's single text child and wraps the
// element's box model around the resulting text frame.
func (p *pass) flowSimpleInline(c *lineCursor, id BoxID, ps *css.ComputedStyle) {
	b := p.box(id)
	n := b.Node
	es := p.cascade.ComputeStyle(n)
	if !css.InlineStyleMentions(n, "text-align") {
		es.TextAlign = ps.TextAlign
	}
	if !hasOwnFontSize(n.TagName) {
		es.FontSize = ps.FontSize
	}
	es.LineHeight = ps.LineHeight
	b.Style = es
	b.Lines = b.Lines[:0]

	fs := es.FontSize
	margin := es.Margin.Resolve(0, fs, p.vp)
	padding := es.Padding.Resolve(0, fs, p.vp)
	border := es.BorderWidth.Resolve(0, fs, p.vp)

	tb := p.box(b.Children[0])
	tb.Style = p.cascade.ComputeStyle(tb.Node)
	inheritText(&tb.Style, &es)

	c.x += margin.Left + border.Left + padding.Left
	p.flowText(c, tb, tb.Node.Text)
	c.x += padding.Right + border.Right + margin.Right

	b.Dims = BoxDimensions{Content: tb.Frame, Padding: padding, Border: border, Margin: margin}
	b.Frame = b.Dims.BorderBox()
}

// placeAtomic lays out an inline-block style child as one unit, moving it
// to a new line when it does not fit.
func (p *pass) placeAtomic(c *lineCursor, id BoxID, st, ps *css.ComputedStyle) {
	ideal := p.intrinsicWidth(id, ps)
	margin := st.Margin.Resolve(c.width, st.FontSize, p.vp)
	border := st.BorderWidth.Resolve(c.width, st.FontSize, p.vp)
	ideal += margin.Horizontal() + border.Horizontal()
	if c.x > c.left && c.x+ideal > c.right() {
		c.newLine(defaultLineHeight)
	}

	p.layout(id, c.x, c.y, c.right()-c.x, true, ps)
	b := p.box(id)
	if c.x > c.left && b.Frame.Right()+b.Dims.Margin.Right > c.right() {
		c.newLine(defaultLineHeight)
		p.layout(id, c.x, c.y, c.width, true, ps)
	}
	c.x = b.Frame.Right() + b.Dims.Margin.Right
	c.lineHeight = max(c.lineHeight, b.Frame.Height)
	c.placed = append(c.placed, id)
}

// flowText places the words of s at the cursor, wrapping at the run's
// right edge. Closing punctuation never starts a line. The lines produced
// become tb.Lines and their union becomes tb's frame.
func (p *pass) flowText(c *lineCursor, tb *Box, s string) {
	cs := &tb.Style
	tb.Lines = tb.Lines[:0]
	face := p.face(cs)
	if face == nil {
		tb.Dims = BoxDimensions{Content: Rect{X: c.x, Y: c.y}}
		tb.Frame = tb.Dims.Content
		return
	}
	fs := cs.FontSize
	lh := fs * cs.LineHeight

	var line strings.Builder
	lineStart, lineOffset := c.x, 0
	emit := func() {
		trimmed := strings.TrimRight(line.String(), " ")
		if trimmed == "" {
			return
		}
		w := face.MeasureWidth(trimmed, fs)
		tb.Lines = append(tb.Lines, TextLine{
			Text:   trimmed,
			X:      alignInRun(cs.TextAlign, c, lineStart, w),
			Y:      c.y,
			Width:  w,
			Height: lh,
			Start:  lineOffset,
		})
	}

	offset := 0
	for _, tok := range text.Tokenize(s) {
		tw := face.MeasureWidth(tok, fs)
		if c.x+tw > c.right() && c.x > c.left && !text.IsPunctuationOnly(tok) {
			emit()
			line.Reset()
			c.newLine(lh)
			lineStart = c.x
			if tok == " " {
				offset += len(tok)
				continue
			}
		}
		if line.Len() == 0 {
			lineOffset = offset
			lineStart = c.x
		}
		line.WriteString(tok)
		c.x += tw
		c.lineHeight = max(c.lineHeight, lh)
		offset += len(tok)
	}
	emit()

	frame := Rect{X: c.x, Y: c.y}
	for i, l := range tb.Lines {
		if i == 0 {
			frame = l.Rect()
			continue
		}
		frame = frame.Union(l.Rect())
	}
	tb.Dims = BoxDimensions{Content: frame}
	tb.Frame = frame
}

// alignInRun positions a line of text within the run. Left-aligned text
// stays at the pen; centered and right-aligned text is placed against the
// run's full width.
func alignInRun(align css.TextAlign, c *lineCursor, pen, w float64) float64 {
	switch align {
	case css.TextAlignCenter, css.TextAlignRight:
		return lineX(align, c.left, c.width, w)
	}
	return pen
}
