package layout

import (
	"boxwright/pkg/css"
	"boxwright/pkg/text"
)

const defaultLineHeight = 20

// lineX places a line of width w inside [x, x+avail) per align.
func lineX(align css.TextAlign, x, avail, w float64) float64 {
	switch align {
	case css.TextAlignCenter:
		return x + (avail-w)/2
	case css.TextAlignRight:
		return x + avail - w
	}
	return x
}

// layoutText wraps a text box laid out on its own, outside an inline run.
func (p *pass) layoutText(b *Box, x, y, width float64) float64 {
	cs := &b.Style
	face := p.face(cs)
	if face == nil {
		return 0
	}
	lh := cs.FontSize * cs.LineHeight
	cy := y
	for _, seg := range text.Wrap(face, b.Node.Text, cs.FontSize, width) {
		b.Lines = append(b.Lines, TextLine{
			Text:   seg.Text,
			X:      lineX(cs.TextAlign, x, width, seg.Width),
			Y:      cy,
			Width:  seg.Width,
			Height: lh,
			Start:  seg.Start,
		})
		cy += lh
	}
	return cy - y
}
