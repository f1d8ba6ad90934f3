package layout

import (
	"boxwright/pkg/css"
	"boxwright/pkg/html"
)

// isInlineChild reports whether a child joins an inline run: text, or an
// element whose own style is inline-level.
func (p *pass) isInlineChild(id BoxID, parent *css.ComputedStyle) (inline, element bool) {
	n := p.box(id).Node
	if n.Type == html.TextNode {
		return true, false
	}
	st := p.styleFor(n, parent)
	return st.Display.IsInlineLevel(), true
}

// layoutBlock stacks the children of id vertically, collapsing adjoining
// margins, and returns the content height. Runs of inline children are
// handed to the inline algorithm as one group.
func (p *pass) layoutBlock(id BoxID, x, y, width float64) float64 {
	b := p.box(id)
	children := b.Children
	if len(children) == 0 {
		return 0
	}
	parent := &b.Style

	inline := make([]bool, len(children))
	allInline, anyInlineElement := true, false
	for i, c := range children {
		isInline, isElement := p.isInlineChild(c, parent)
		inline[i] = isInline
		if !isInline {
			allInline = false
		} else if isElement {
			anyInlineElement = true
		}
	}
	if allInline && anyInlineElement {
		return p.layoutInline(id, children, x, y, width)
	}

	cur := y
	prevMarginBottom := 0.0
	for i := 0; i < len(children); {
		if inline[i] {
			j := i
			for j < len(children) && inline[j] {
				j++
			}
			cur += p.layoutInline(id, children[i:j], x, cur, width)
			prevMarginBottom = 0
			i = j
			continue
		}

		child := children[i]
		st := p.styleFor(p.box(child).Node, parent)
		if st.Display == css.DisplayHidden {
			p.layout(child, x, cur, width, false, parent)
			i++
			continue
		}
		marginTop := st.Margin.Resolve(width, st.FontSize, p.vp).Top
		collapsed := max(prevMarginBottom, marginTop)
		marginBoxY := cur - prevMarginBottom + collapsed - marginTop

		p.layout(child, x, marginBoxY, width, false, parent)
		cb := p.box(child)
		cur = cb.Frame.Bottom() + cb.Dims.Margin.Bottom
		prevMarginBottom = cb.Dims.Margin.Bottom
		i++
	}
	return cur - y
}
