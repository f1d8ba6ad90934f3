package layout

import (
	"boxwright/pkg/css"
	"boxwright/pkg/html"
)

// intrinsicWidth measures the preferred width of id without laying it out.
// Styles are computed fresh from the cascade and the inherited context;
// nothing in the tree is modified.
func (p *pass) intrinsicWidth(id BoxID, inherited *css.ComputedStyle) float64 {
	b := p.box(id)
	n := b.Node
	st := p.styleFor(n, inherited)
	if n.Type == html.TextNode {
		face := p.face(&st)
		if face == nil {
			return 0
		}
		return face.MeasureWidth(n.Text, st.FontSize)
	}
	if st.Display == css.DisplayHidden {
		return 0
	}

	switch ControlOf(n) {
	case ControlCheckbox, ControlRadio:
		return 20
	case ControlInput, ControlSelect:
		return 150
	case ControlImage:
		return attrFloat(n, "width", 150, 150)
	case ControlTextarea:
		return float64(attrInt(n, "cols", 20)) * st.FontSize * 0.6
	}

	if n.TagName == "button" {
		w := 0.0
		for _, c := range b.Children {
			w += p.intrinsicWidth(c, &st)
		}
		return max(w, 40)
	}

	pad := st.Padding.Resolve(0, st.FontSize, p.vp)
	w := 0.0
	switch st.Display {
	case css.DisplayBlock, css.DisplayFlex, css.DisplayTableRow, css.DisplayTable:
		for _, c := range b.Children {
			w = max(w, p.intrinsicWidth(c, &st))
		}
	default:
		for _, c := range b.Children {
			w += p.intrinsicWidth(c, &st)
		}
	}
	return w + pad.Horizontal()
}

// tableRows collects the rows of a table, looking through row groups.
func (p *pass) tableRows(table BoxID) []BoxID {
	var rows []BoxID
	for _, c := range p.box(table).Children {
		n := p.box(c).Node
		switch {
		case n.IsElement("tr"):
			rows = append(rows, c)
		case n.IsElement("thead"), n.IsElement("tbody"), n.IsElement("tfoot"):
			for _, r := range p.box(c).Children {
				if p.box(r).Node.IsElement("tr") {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func (p *pass) rowCells(row BoxID) []BoxID {
	var cells []BoxID
	for _, c := range p.box(row).Children {
		if n := p.box(c).Node; n.IsElement("td") || n.IsElement("th") {
			cells = append(cells, c)
		}
	}
	return cells
}

// cellContentWidth sums the widths of the text directly inside a cell.
func (p *pass) cellContentWidth(cell BoxID, cs *css.ComputedStyle) float64 {
	w := 0.0
	for _, c := range p.box(cell).Children {
		if p.box(c).IsText() {
			w += p.intrinsicWidth(c, cs)
		}
	}
	return w
}

// tableIntrinsicWidth is the sum of the column widths plus the table's own
// padding and border.
func (p *pass) tableIntrinsicWidth(table BoxID, inherited *css.ComputedStyle) float64 {
	st := p.styleFor(p.box(table).Node, inherited)
	pad := st.Padding.Resolve(0, st.FontSize, p.vp)
	border := st.BorderWidth.Resolve(0, st.FontSize, p.vp)
	total := 0.0
	for _, w := range p.columnWidthsIn(table, &st) {
		total += w
	}
	return total + pad.Horizontal() + border.Horizontal()
}
