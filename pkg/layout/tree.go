package layout

import (
	"boxwright/pkg/css"
	"boxwright/pkg/html"
)

// Tree is an arena of boxes mirroring a markup tree. Boxes[0] is the root.
type Tree struct {
	Boxes []Box
	Root  BoxID

	byNode map[*html.Node]BoxID
}

// Build creates one box per node under root, in document order.
func Build(root *html.Node) *Tree {
	t := &Tree{Root: NoBox, byNode: make(map[*html.Node]BoxID)}
	if root == nil {
		return t
	}
	t.Root = t.add(root, NoBox)
	return t
}

func (t *Tree) add(n *html.Node, parent BoxID) BoxID {
	id := BoxID(len(t.Boxes))
	t.Boxes = append(t.Boxes, Box{ID: id, Node: n, Parent: parent})
	t.byNode[n] = id
	for _, c := range n.Children {
		child := t.add(c, id)
		t.Boxes[id].Children = append(t.Boxes[id].Children, child)
	}
	return id
}

// Box returns the box with the given id, or nil.
func (t *Tree) Box(id BoxID) *Box {
	if id < 0 || int(id) >= len(t.Boxes) {
		return nil
	}
	return &t.Boxes[id]
}

// BoxFor returns the box built for n.
func (t *Tree) BoxFor(n *html.Node) (BoxID, bool) {
	id, ok := t.byNode[n]
	return id, ok
}

// FindByID returns the box of the element whose id attribute is id.
func (t *Tree) FindByID(id string) *Box {
	for i := range t.Boxes {
		n := t.Boxes[i].Node
		if n.Type != html.ElementNode {
			continue
		}
		if v, ok := n.GetAttribute("id"); ok && v == id {
			return &t.Boxes[i]
		}
	}
	return nil
}

// Walk visits the subtree at id in pre-order. Returning false from fn skips
// the box's children.
func (t *Tree) Walk(id BoxID, fn func(*Box) bool) {
	b := t.Box(id)
	if b == nil || !fn(b) {
		return
	}
	for _, c := range b.Children {
		t.Walk(c, fn)
	}
}

// PostOrder visits the subtree at id children first.
func (t *Tree) PostOrder(id BoxID, fn func(*Box)) {
	b := t.Box(id)
	if b == nil {
		return
	}
	for _, c := range b.Children {
		t.PostOrder(c, fn)
	}
	fn(b)
}

// Shift moves a laid-out subtree by (dx, dy).
func (t *Tree) Shift(id BoxID, dx, dy float64) {
	t.PostOrder(id, func(b *Box) {
		b.Frame = b.Frame.translate(dx, dy)
		b.Dims.Content = b.Dims.Content.translate(dx, dy)
		for i := range b.Lines {
			b.Lines[i].X += dx
			b.Lines[i].Y += dy
		}
	})
}

// TextBoxes lists every text box with at least one line, in document
// order.
func (t *Tree) TextBoxes() []BoxID {
	var ids []BoxID
	t.Walk(t.Root, func(b *Box) bool {
		if b.Style.Display == css.DisplayHidden {
			return false
		}
		if b.IsText() && len(b.Lines) > 0 {
			ids = append(ids, b.ID)
		}
		return true
	})
	return ids
}

// ScrollOffset sums the scroll offsets of every ancestor of id. Subtract it
// from a document position to get the on-screen position.
func (t *Tree) ScrollOffset(id BoxID) (dx, dy float64) {
	b := t.Box(id)
	if b == nil {
		return 0, 0
	}
	for p := t.Box(b.Parent); p != nil; p = t.Box(p.Parent) {
		dx += p.ScrollX
		dy += p.ScrollY
	}
	return dx, dy
}

// ScrollContainerAt returns the innermost scrollable box whose border box
// contains the on-screen point (x, y).
func (t *Tree) ScrollContainerAt(x, y float64) (BoxID, bool) {
	found := NoBox
	t.Walk(t.Root, func(b *Box) bool {
		if b.Style.Display == css.DisplayHidden {
			return false
		}
		dx, dy := t.ScrollOffset(b.ID)
		if b.IsScrollable() && b.Frame.translate(-dx, -dy).Contains(x, y) {
			found = b.ID
		}
		return true
	})
	return found, found != NoBox
}

// ScrollBy scrolls box id by (dx, dy), clamped to its scrollable extent. It
// reports whether the offset changed.
func (t *Tree) ScrollBy(id BoxID, dx, dy float64) bool {
	b := t.Box(id)
	if b == nil || !b.IsScrollable() {
		return false
	}
	ox, oy := b.ScrollX, b.ScrollY
	b.ScrollX += dx
	b.ScrollY += dy
	b.clampScroll()
	return b.ScrollX != ox || b.ScrollY != oy
}

// ScrollWheel scrolls the innermost scroll container under the on-screen
// point. A container already at its limit hands the movement to the next
// enclosing one. It reports whether anything moved; when nothing did the
// caller scrolls the page.
func (t *Tree) ScrollWheel(x, y, dx, dy float64) bool {
	id, ok := t.ScrollContainerAt(x, y)
	if !ok {
		return false
	}
	for b := t.Box(id); b != nil; b = t.Box(b.Parent) {
		if t.ScrollBy(b.ID, dx, dy) {
			return true
		}
	}
	return false
}
