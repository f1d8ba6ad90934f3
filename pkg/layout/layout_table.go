package layout

import (
	"go.uber.org/zap"

	"boxwright/pkg/css"
)

// layoutTable sizes columns to their widest cell, scales them down to fit
// width when needed, then lays rows out top to bottom.
func (p *pass) layoutTable(id BoxID, x, y, width float64) float64 {
	tb := p.box(id)
	ts := &tb.Style

	rows := p.tableRows(id)
	if len(rows) == 0 {
		p.collapseChildren(id, x, y)
		return 0
	}
	cols := p.columnWidthsIn(id, ts)
	if len(cols) == 0 {
		p.collapseChildren(id, x, y)
		return 0
	}

	total := 0.0
	for _, w := range cols {
		total += w
	}
	if total > width && total > 0 {
		scale := width / total
		for i := range cols {
			cols[i] *= scale
		}
		p.log.Debug("table columns scaled",
			zap.Int("columns", len(cols)),
			zap.Float64("natural", total),
			zap.Float64("available", width))
	}

	for _, c := range p.box(id).Children {
		if p.box(c).Node.IsElement("tr") {
			continue
		}
		if !isRowGroup(p.box(c)) {
			p.collapse(c, x, y)
		}
	}

	cur := y
	for _, row := range rows {
		rb := p.box(row)
		parent := ts
		if rb.Parent != id {
			gb := p.box(rb.Parent)
			gb.Style = p.styleFor(gb.Node, ts)
			parent = &gb.Style
		}
		rb.Style = p.styleFor(rb.Node, parent)

		cx := x
		rowHeight := 0.0
		for ci, cell := range p.rowCells(row) {
			p.layout(cell, cx, cur, cols[ci], false, &rb.Style)
			rowHeight = max(rowHeight, p.box(cell).Frame.Height)
			cx += cols[ci]
		}
		rb.Dims = BoxDimensions{Content: Rect{X: x, Y: cur, Width: cx - x, Height: rowHeight}}
		rb.Frame = rb.Dims.Content
		cur += rowHeight
	}

	// A row group's frame covers exactly the rows it contains.
	for _, c := range p.box(id).Children {
		gb := p.box(c)
		if !isRowGroup(gb) {
			continue
		}
		var frame Rect
		first := true
		for _, r := range gb.Children {
			rb := p.box(r)
			if !rb.Node.IsElement("tr") {
				continue
			}
			if first {
				frame, first = rb.Frame, false
				continue
			}
			frame = frame.Union(rb.Frame)
		}
		if first {
			frame = Rect{X: x, Y: y}
			gb.Style = p.styleFor(gb.Node, ts)
		}
		gb.Dims = BoxDimensions{Content: frame}
		gb.Frame = frame
	}
	return cur - y
}

func isRowGroup(b *Box) bool {
	n := b.Node
	return n.IsElement("thead") || n.IsElement("tbody") || n.IsElement("tfoot")
}

// columnWidthsIn measures columns with the table's already resolved style
// as the starting context.
func (p *pass) columnWidthsIn(table BoxID, ts *css.ComputedStyle) []float64 {
	var cols []float64
	for _, row := range p.tableRows(table) {
		for ci, cell := range p.rowCells(row) {
			cs := p.chainBelow(table, cell, ts)
			pad := cs.Padding.Resolve(1000, cs.FontSize, p.vp)
			border := cs.BorderWidth.Resolve(1000, cs.FontSize, p.vp)
			w := p.cellContentWidth(cell, &cs) + pad.Horizontal() + border.Horizontal()
			for len(cols) <= ci {
				cols = append(cols, 0)
			}
			cols[ci] = max(cols[ci], w)
		}
	}
	return cols
}

// chainBelow is chain for a table whose style is already resolved.
func (p *pass) chainBelow(table, id BoxID, ts *css.ComputedStyle) css.ComputedStyle {
	var path []BoxID
	for cur := id; cur != table && cur != NoBox; cur = p.box(cur).Parent {
		path = append(path, cur)
	}
	st := *ts
	for i := len(path) - 1; i >= 0; i-- {
		st = p.styleFor(p.box(path[i]).Node, &st)
	}
	return st
}

// collapse gives a subtree that takes no part in layout a zero-size frame
// at (x, y).
func (p *pass) collapse(id BoxID, x, y float64) {
	p.tree.PostOrder(id, func(b *Box) {
		b.Lines = b.Lines[:0]
		b.Dims = BoxDimensions{Content: Rect{X: x, Y: y}}
		b.Frame = b.Dims.Content
	})
}

func (p *pass) collapseChildren(id BoxID, x, y float64) {
	for _, c := range p.box(id).Children {
		p.collapse(c, x, y)
	}
}
