package selection

import (
	"math"
	"sort"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

// HitTester maps points to boxes and characters. Points are in document
// coordinates; scroll offsets of enclosing scroll containers are applied.
type HitTester struct {
	Tree  *layout.Tree
	Fonts text.Fonts
}

// lineRect returns where line i of box id is drawn.
func (h HitTester) lineRect(id layout.BoxID, i int) layout.Rect {
	b := h.Tree.Box(id)
	dx, dy := h.Tree.ScrollOffset(id)
	r := b.Lines[i].Rect()
	return layout.Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width, Height: r.Height}
}

// charAt runs the font hit test on line i at document x.
func (h HitTester) charAt(id layout.BoxID, i int, x float64) int {
	b := h.Tree.Box(id)
	face := text.FontFor(h.Fonts, &b.Style)
	if face == nil {
		return 0
	}
	r := h.lineRect(id, i)
	return face.HitTestOffset(b.Lines[i].Text, max(0, x-r.X), b.Style.FontSize)
}

func (h HitTester) lineLen(id layout.BoxID, i int) int {
	return len(h.Tree.Box(id).Lines[i].Text)
}

// BoxAt returns the deepest box whose border box contains (x, y). Later
// siblings win over earlier ones.
func (h HitTester) BoxAt(x, y float64) (layout.BoxID, bool) {
	id := h.boxAt(h.Tree.Root, x, y)
	return id, id != layout.NoBox
}

func (h HitTester) boxAt(id layout.BoxID, x, y float64) layout.BoxID {
	b := h.Tree.Box(id)
	if b == nil || b.Style.Display == css.DisplayHidden {
		return layout.NoBox
	}
	dx, dy := h.Tree.ScrollOffset(id)
	if !b.Frame.Contains(x+dx, y+dy) {
		return layout.NoBox
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if hit := h.boxAt(b.Children[i], x, y); hit != layout.NoBox {
			return hit
		}
	}
	return id
}

// Exact finds the text line strictly under (x, y).
func (h HitTester) Exact(x, y float64) (Point, bool) {
	return h.exact(h.Tree.Root, x, y)
}

func (h HitTester) exact(id layout.BoxID, x, y float64) (Point, bool) {
	b := h.Tree.Box(id)
	if b == nil || b.Style.Display == css.DisplayHidden {
		return noPoint, false
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if p, ok := h.exact(b.Children[i], x, y); ok {
			return p, true
		}
	}
	if !b.IsText() {
		return noPoint, false
	}
	for i := range b.Lines {
		if h.lineRect(id, i).Contains(x, y) {
			return Point{Box: id, Line: i, Char: h.charAt(id, i, x)}, true
		}
	}
	return noPoint, false
}

type candidate struct {
	box  layout.BoxID
	line int
	rect layout.Rect
}

func (h HitTester) lines(boxes []layout.BoxID) []candidate {
	var out []candidate
	for _, id := range boxes {
		for i := range h.Tree.Box(id).Lines {
			out = append(out, candidate{box: id, line: i, rect: h.lineRect(id, i)})
		}
	}
	return out
}

// Vertical resolves a drag position by its y coordinate first, so that
// dragging past either side of a line still selects within it. Among lines
// on that row, a point in the gap between two lines snaps to whichever is
// nearer.
func (h HitTester) Vertical(x, y float64, boxes []layout.BoxID) (Point, bool) {
	all := h.lines(boxes)
	if len(all) == 0 {
		return noPoint, false
	}

	var row []candidate
	for _, c := range all {
		if y >= c.rect.Y && y < c.rect.Bottom() {
			row = append(row, c)
		}
	}
	if len(row) > 0 {
		sort.SliceStable(row, func(i, j int) bool { return row[i].rect.X < row[j].rect.X })
		if first := row[0]; x < first.rect.X {
			return Point{Box: first.box, Line: first.line}, true
		}
		for i, c := range row {
			if x >= c.rect.X && x < c.rect.Right() {
				return Point{Box: c.box, Line: c.line, Char: h.charAt(c.box, c.line, x)}, true
			}
			if x < c.rect.X && i > 0 {
				prev := row[i-1]
				if x < (prev.rect.Right()+c.rect.X)/2 {
					return Point{Box: prev.box, Line: prev.line, Char: h.lineLen(prev.box, prev.line)}, true
				}
				return Point{Box: c.box, Line: c.line}, true
			}
		}
		last := row[len(row)-1]
		return Point{Box: last.box, Line: last.line, Char: h.lineLen(last.box, last.line)}, true
	}

	best, bestDist := -1, math.MaxFloat64
	for i, c := range all {
		mid := c.rect.Y + c.rect.Height/2
		if d := math.Abs(y - mid); d < bestDist {
			best, bestDist = i, d
		}
	}
	c := all[best]
	p := Point{Box: c.box, Line: c.line}
	switch {
	case y > c.rect.Bottom():
		p.Char = h.lineLen(c.box, c.line)
	case y < c.rect.Y, x <= c.rect.X:
		p.Char = 0
	case x >= c.rect.Right():
		p.Char = h.lineLen(c.box, c.line)
	default:
		p.Char = h.charAt(c.box, c.line, x)
	}
	return p, true
}

// Nearest picks the line closest to (x, y) by Euclidean distance to its
// rectangle. Points above or left of it land on the line start, points
// below or right of it on the line end.
func (h HitTester) Nearest(x, y float64, boxes []layout.BoxID) (Point, bool) {
	all := h.lines(boxes)
	if len(all) == 0 {
		return noPoint, false
	}
	best, bestDist := -1, math.MaxFloat64
	var above, below, left, right bool
	for i, c := range all {
		var dx, dy float64
		a, b, l, r := false, false, false, false
		switch {
		case y < c.rect.Y:
			dy, a = c.rect.Y-y, true
		case y > c.rect.Bottom():
			dy, b = y-c.rect.Bottom(), true
		}
		switch {
		case x < c.rect.X:
			dx, l = c.rect.X-x, true
		case x > c.rect.Right():
			dx, r = x-c.rect.Right(), true
		}
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = i, d
			above, below, left, right = a, b, l, r
		}
	}
	c := all[best]
	p := Point{Box: c.box, Line: c.line}
	switch {
	case above, left:
		p.Char = 0
	case below, right:
		p.Char = h.lineLen(c.box, c.line)
	default:
		p.Char = h.charAt(c.box, c.line, x)
	}
	return p, true
}

// At tries an exact hit and, when allowed, falls back to the nearest line.
func (h HitTester) At(x, y float64, boxes []layout.BoxID, allowNearest bool) (Point, bool) {
	if p, ok := h.Exact(x, y); ok {
		return p, true
	}
	if allowNearest {
		return h.Nearest(x, y, boxes)
	}
	return noPoint, false
}

// LinkHref returns the href of the nearest enclosing anchor, "#" for an
// anchor without one, and "" outside any anchor.
func LinkHref(n *html.Node) string {
	for ; n != nil; n = n.Parent {
		if n.IsElement("a") {
			if href, ok := n.GetAttribute("href"); ok {
				return href
			}
			return "#"
		}
	}
	return ""
}

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "article": true, "section": true,
	"header": true, "footer": true, "main": true, "nav": true, "aside": true,
}

// blockAncestor returns the nearest block-level element above n.
func blockAncestor(n *html.Node) *html.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && blockTags[cur.TagName] {
			return cur
		}
	}
	return nil
}

// BlockRange returns the first and last text boxes inside the block that
// holds id, or id itself when there is no such block.
func BlockRange(tree *layout.Tree, boxes []layout.BoxID, id layout.BoxID) (layout.BoxID, layout.BoxID) {
	block := blockAncestor(tree.Box(id).Node)
	if block == nil {
		return id, id
	}
	first, last := layout.NoBox, layout.NoBox
	for _, b := range boxes {
		n := tree.Box(b).Node
		if n != block && block.Contains(n) {
			if first == layout.NoBox {
				first = b
			}
			last = b
		}
	}
	if first == layout.NoBox {
		return id, id
	}
	return first, last
}
