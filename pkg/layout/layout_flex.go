package layout

import (
	"boxwright/pkg/css"
)

type flexLine struct {
	items []BoxID
	sizes []float64
	main  float64 // item sizes plus gaps
	grow  float64
	cross float64
}

// flexBaseSize is the main-axis size an item asks for on a row. Growable
// items claim nothing up front.
func (p *pass) flexBaseSize(id BoxID, st, parent *css.ComputedStyle, width float64) float64 {
	if st.FlexGrow > 0 {
		return 0
	}
	fs := st.FontSize
	margin := st.Margin.Resolve(width, fs, p.vp)
	border := st.BorderWidth.Resolve(width, fs, p.vp)
	padding := st.Padding.Resolve(width, fs, p.vp)
	if !st.Width.IsAuto() {
		if w := st.Width.ToPx(width, fs, p.vp); w >= 0 {
			if st.BoxSizing != css.BorderBox {
				w += padding.Horizontal() + border.Horizontal()
			}
			return w + margin.Horizontal()
		}
	}
	return p.intrinsicWidth(id, parent) + border.Horizontal() + margin.Horizontal()
}

// layoutFlex packs the children of id into lines along the main axis,
// distributes free space by flex-grow and justify-content, and returns the
// content height.
func (p *pass) layoutFlex(id BoxID, x, y, width float64) float64 {
	b := p.box(id)
	cs := &b.Style
	row := cs.FlexDirection == "row" || cs.FlexDirection == "row-reverse"
	wrap := cs.FlexWrap == "wrap" || cs.FlexWrap == "wrap-reverse"
	gap := cs.Gap

	var items []BoxID
	var sizes []float64
	var grows []float64
	for _, c := range b.Children {
		st := p.styleFor(p.box(c).Node, cs)
		if st.Display == css.DisplayHidden {
			p.layout(c, x, y, 0, false, cs)
			continue
		}
		size := 0.0
		if row {
			size = p.flexBaseSize(c, &st, cs, width)
		}
		items = append(items, c)
		sizes = append(sizes, size)
		grows = append(grows, st.FlexGrow)
	}
	if len(items) == 0 {
		return 0
	}

	var lines []*flexLine
	if row && wrap {
		cur := &flexLine{}
		for i, it := range items {
			extra := sizes[i]
			if len(cur.items) > 0 {
				extra += gap
			}
			if len(cur.items) > 0 && cur.main+extra > width {
				lines = append(lines, cur)
				cur = &flexLine{}
				extra = sizes[i]
			}
			cur.items = append(cur.items, it)
			cur.sizes = append(cur.sizes, sizes[i])
			cur.main += extra
			cur.grow += grows[i]
		}
		lines = append(lines, cur)
	} else {
		line := &flexLine{items: items, sizes: sizes}
		for i := range items {
			line.main += sizes[i]
			if i > 0 {
				line.main += gap
			}
			line.grow += grows[i]
		}
		lines = []*flexLine{line}
	}

	lineY := y
	for _, line := range lines {
		free := max(0, width-line.main)
		growFree := 0.0
		if line.grow > 0 {
			growFree, free = free, 0
		}
		pos, lineGap := 0.0, gap
		n := len(line.items)
		switch cs.JustifyContent {
		case "center":
			pos = free / 2
		case "flex-end", "end", "right":
			pos = free
		case "space-between":
			if n > 1 {
				lineGap = gap + free/float64(n-1)
			}
		case "space-around":
			spacing := free / float64(n)
			pos = spacing / 2
			lineGap = gap + spacing
		case "space-evenly":
			spacing := free / float64(n+1)
			pos = spacing
			lineGap = gap + spacing
		}

		for i, it := range line.items {
			ib := p.box(it)
			if row {
				extra := 0.0
				if line.grow > 0 {
					extra = growFree * p.styleFor(ib.Node, cs).FlexGrow / line.grow
				}
				p.layout(it, x+pos, lineY, line.sizes[i]+extra, false, cs)
				mb := ib.Dims.MarginBox()
				pos = mb.Right() - x + lineGap
				line.cross = max(line.cross, mb.Height)
			} else {
				p.layout(it, x, lineY+pos, width, false, cs)
				mb := ib.Dims.MarginBox()
				pos = mb.Bottom() - lineY + lineGap
				line.cross = max(line.cross, ib.Frame.Width)
			}
		}
		if row {
			lineY += line.cross + gap
		}
	}

	if row {
		return lineY - y - gap
	}
	return lines[0].cross
}
