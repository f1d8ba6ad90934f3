package render

import (
	"math"
	"sort"

	"golang.org/x/image/font"

	"boxwright/pkg/css"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

// baseline returns the baseline y of a line, centering the face's ascent
// plus descent in the line box.
func baseline(face font.Face, l layout.TextLine, fontSize float64) float64 {
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	if ascent+descent <= 0 {
		return l.Y + fontSize
	}
	return l.Y + (l.Height-(ascent+descent))/2 + ascent
}

// lineRef names one line of one text box.
type lineRef struct {
	box  layout.BoxID
	line int
}

// rowKey groups highlight segments that share a visual row and a scroll
// frame.
type rowKey struct {
	y      int
	dx, dy float64
}

type segment struct {
	ref    lineRef
	x0, x1 float64
}

// highlightFills finds, for every selected line with another selected
// segment after it on the same row, the x its highlight extends to so the
// gap up to the next segment is covered. Positions are in document
// coordinates of the line.
func (r *Renderer) highlightFills(tree *layout.Tree, sel Highlighter) map[lineRef]float64 {
	if sel == nil || r.fonts == nil {
		return nil
	}
	rows := map[rowKey][]segment{}
	for _, id := range tree.TextBoxes() {
		box := tree.Box(id)
		cs := &box.Style
		measure := text.FontFor(r.fonts, cs)
		dx, dy := tree.ScrollOffset(id)
		for i, l := range box.Lines {
			from, to := sel.RangeForLine(id, i, len(l.Text))
			if to <= from {
				continue
			}
			k := rowKey{y: int(math.Round(l.Y * 10)), dx: dx, dy: dy}
			rows[k] = append(rows[k], segment{
				ref: lineRef{id, i},
				x0:  l.X + measure.PositionAtOffset(l.Text, from, cs.FontSize),
				x1:  l.X + measure.PositionAtOffset(l.Text, to, cs.FontSize),
			})
		}
	}

	fills := map[lineRef]float64{}
	for _, segs := range rows {
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].x0 < segs[j].x0 })
		for i := 0; i+1 < len(segs); i++ {
			if next := segs[i+1].x0; next > segs[i].x1 {
				fills[segs[i].ref] = next
			}
		}
	}
	return fills
}

func (r *Renderer) drawText(box *layout.Box, sel Highlighter) {
	if r.fonts == nil || len(box.Lines) == 0 {
		return
	}
	cs := &box.Style
	face := r.fonts.FontFace(cs)
	measure := text.FontFor(r.fonts, cs)
	r.context.SetFontFace(face)

	for i, l := range box.Lines {
		s := r.screen(l.Rect())
		if sel != nil {
			from, to := sel.RangeForLine(box.ID, i, len(l.Text))
			if to > from {
				x0 := measure.PositionAtOffset(l.Text, from, cs.FontSize)
				x1 := measure.PositionAtOffset(l.Text, to, cs.FontSize)
				if end, ok := r.fills[lineRef{box.ID, i}]; ok {
					x1 = max(x1, end-l.X)
				}
				r.setColor(r.opts.Selection)
				r.context.DrawRectangle(s.X+x0, s.Y, x1-x0, s.Height)
				r.context.Fill()
			}
		}
		if l.Text == "" {
			continue
		}

		y := baseline(face, l, cs.FontSize) - r.oy
		r.setColor(cs.Color)
		r.context.DrawString(l.Text, s.X, y)
		r.drawDecoration(cs, s, y)
	}
}

func (r *Renderer) drawDecoration(cs *css.ComputedStyle, line layout.Rect, y float64) {
	fs := cs.FontSize
	var ly float64
	switch cs.TextDecoration {
	case css.TextDecorationUnderline:
		ly = y + fs*0.1
	case css.TextDecorationOverline:
		ly = line.Y + (line.Height-fs)/2
	case css.TextDecorationLineThrough:
		ly = y - fs*0.3
	default:
		return
	}
	r.context.SetLineWidth(max(1, fs/12))
	r.context.DrawLine(line.X, ly, line.Right(), ly)
	r.context.Stroke()
}
