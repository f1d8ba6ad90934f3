package layout

import (
	"math"

	"boxwright/pkg/css"
)

// verticalOffset returns where a box of height h should sit, relative to
// the top of a line of height lineHeight.
func verticalOffset(align css.VerticalAlign, lineHeight, h, fontSize float64) float64 {
	switch align {
	case css.VerticalAlignTop, css.VerticalAlignTextTop:
		return 0
	case css.VerticalAlignMiddle:
		return (lineHeight - h) / 2
	case css.VerticalAlignSub:
		return lineHeight - h + 0.2*fontSize
	case css.VerticalAlignSuper:
		return -0.4 * fontSize
	}
	// baseline, bottom and text-bottom all rest on the line's bottom.
	return lineHeight - h
}

// alignLine moves each atomic inline of a finished line to its
// vertical-align position, carrying its whole subtree along.
func (p *pass) alignLine(placed []BoxID, lineTop, lineHeight float64) {
	for _, id := range placed {
		b := p.box(id)
		want := verticalOffset(b.Style.VerticalAlign, lineHeight, b.Frame.Height, b.Style.FontSize)
		delta := want - (b.Frame.Y - lineTop)
		if math.Abs(delta) > 0.01 {
			p.tree.Shift(id, 0, delta)
		}
	}
}
