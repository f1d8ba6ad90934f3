package layout

import (
	"boxwright/pkg/css"
	"boxwright/pkg/html"
)

// BoxID indexes a Box within its Tree.
type BoxID int

// NoBox is the parent of the root box.
const NoBox BoxID = -1

// Rect is an axis-aligned rectangle in document coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Union returns the smallest rectangle covering r and o. An empty r (or o)
// contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return o
	}
	if o.Width == 0 && o.Height == 0 {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{X: x, Y: y, Width: max(r.Right(), o.Right()) - x, Height: max(r.Bottom(), o.Bottom()) - y}
}

func (r Rect) translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// BoxDimensions holds a content rectangle and the resolved edges around it.
type BoxDimensions struct {
	Content Rect
	Padding css.BoxEdge
	Border  css.BoxEdge
	Margin  css.BoxEdge
}

func expand(r Rect, e css.BoxEdge) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Horizontal(),
		Height: r.Height + e.Vertical(),
	}
}

func (d BoxDimensions) PaddingBox() Rect { return expand(d.Content, d.Padding) }
func (d BoxDimensions) BorderBox() Rect  { return expand(d.PaddingBox(), d.Border) }
func (d BoxDimensions) MarginBox() Rect  { return expand(d.BorderBox(), d.Margin) }

// TextLine is one laid-out line of a text box.
type TextLine struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
	Start  int // byte offset of Text within the owning node's text
}

func (l TextLine) Rect() Rect {
	return Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}

// Box is one node of the render tree. Parent and Children refer to other
// boxes of the same Tree by index.
type Box struct {
	ID       BoxID
	Node     *html.Node
	Parent   BoxID
	Children []BoxID

	Style css.ComputedStyle
	Dims  BoxDimensions
	Frame Rect // border box

	// Lines is set for text boxes only.
	Lines []TextLine

	ScrollX, ScrollY                  float64
	ScrollableWidth, ScrollableHeight float64
}

func (b *Box) IsText() bool { return b.Node != nil && b.Node.Type == html.TextNode }

// Text returns the markup text of a text box.
func (b *Box) Text() string {
	if b.IsText() {
		return b.Node.Text
	}
	return ""
}

// IsScrollable reports whether the box clips and has content past its
// visible height.
func (b *Box) IsScrollable() bool {
	return b.Style.IsScrollContainer() && b.ScrollableHeight > 0
}

func (b *Box) clampScroll() {
	b.ScrollX = clamp(b.ScrollX, 0, b.ScrollableWidth)
	b.ScrollY = clamp(b.ScrollY, 0, b.ScrollableHeight)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
