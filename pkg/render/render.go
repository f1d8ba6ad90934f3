// Package render paints a laid-out box tree onto an image with gg.
package render

import (
	"image"
	"io"
	"sort"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/images"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

// Highlighter reports the selected byte range of one line. A range with
// start >= end paints no highlight.
type Highlighter interface {
	RangeForLine(id layout.BoxID, line, lineLen int) (int, int)
}

type Options struct {
	Background     css.Color
	Selection      css.Color
	ScrollbarWidth float64
}

func DefaultOptions() Options {
	return Options{
		Background:     css.White,
		Selection:      css.Color{R: 51, G: 144, B: 255, A: 0.4},
		ScrollbarWidth: 8,
	}
}

type Renderer struct {
	context *gg.Context
	fonts   *text.Registry
	images  *images.Cache
	opts    Options
	logger  *zap.Logger

	// Page scroll, then the accumulated scroll of enclosing containers.
	originX, originY float64
	ox, oy           float64
	clips            []layout.Rect
	fills            map[lineRef]float64
}

func NewRenderer(width, height int, fonts *text.Registry) *Renderer {
	return NewRendererForImage(image.NewRGBA(image.Rect(0, 0, width, height)), fonts)
}

// NewRendererForImage draws into an existing image.
func NewRendererForImage(target *image.RGBA, fonts *text.Registry) *Renderer {
	return &Renderer{
		context: gg.NewContextForRGBA(target),
		fonts:   fonts,
		opts:    DefaultOptions(),
		logger:  zap.NewNop(),
	}
}

func (r *Renderer) SetOptions(opts Options) { r.opts = opts }

func (r *Renderer) SetImages(c *images.Cache) { r.images = c }

func (r *Renderer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
}

// SetOrigin scrolls the page: document point (x, y) lands on pixel (0, 0).
func (r *Renderer) SetOrigin(x, y float64) { r.originX, r.originY = x, y }

func (r *Renderer) Width() int  { return r.context.Width() }
func (r *Renderer) Height() int { return r.context.Height() }

// Render clears the canvas and paints the tree. sel may be nil.
func (r *Renderer) Render(tree *layout.Tree, sel Highlighter) {
	r.setColor(r.opts.Background)
	r.context.Clear()
	r.context.ResetClip()
	r.clips = r.clips[:0]
	r.ox, r.oy = r.originX, r.originY
	r.fills = r.highlightFills(tree, sel)
	r.drawBox(tree, tree.Root, sel)
}

func (r *Renderer) Image() image.Image { return r.context.Image() }

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA(c.RGBA())
}

// screen maps a document rectangle to canvas coordinates.
func (r *Renderer) screen(rect layout.Rect) layout.Rect {
	rect.X -= r.ox
	rect.Y -= r.oy
	return rect
}

func (r *Renderer) fillRect(rect layout.Rect, c css.Color) {
	if c.IsTransparent() || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	s := r.screen(rect)
	r.setColor(c)
	r.context.DrawRectangle(s.X, s.Y, s.Width, s.Height)
	r.context.Fill()
}

func withOpacity(c css.Color, opacity float64) css.Color {
	if opacity < 1 {
		c.A *= max(0, opacity)
	}
	return c
}

func (r *Renderer) drawBox(tree *layout.Tree, id layout.BoxID, sel Highlighter) {
	box := tree.Box(id)
	if box == nil || box.Style.Display == css.DisplayHidden {
		return
	}

	if box.IsText() {
		r.drawText(box, sel)
		return
	}

	opacity := box.Style.Opacity
	r.fillRect(box.Dims.PaddingBox(), withOpacity(box.Style.BackgroundColor, opacity))
	r.drawBorder(box, opacity)
	r.drawControl(box)
	switch layout.ControlOf(box.Node) {
	case layout.ControlTextarea, layout.ControlSelect:
		// Their text is painted as the field label.
		return
	}

	children := append([]layout.BoxID(nil), box.Children...)
	sort.SliceStable(children, func(i, j int) bool {
		return tree.Box(children[i]).Style.ZIndex < tree.Box(children[j]).Style.ZIndex
	})

	if !box.Style.IsScrollContainer() && box.Style.Overflow != css.OverflowHidden {
		for _, c := range children {
			r.drawBox(tree, c, sel)
		}
		return
	}

	r.pushClip(r.screen(box.Dims.PaddingBox()))
	r.ox += box.ScrollX
	r.oy += box.ScrollY
	for _, c := range children {
		r.drawBox(tree, c, sel)
	}
	r.ox -= box.ScrollX
	r.oy -= box.ScrollY
	r.popClip()

	if box.IsScrollable() {
		r.drawScrollbar(box)
	}
}

// pushClip intersects the clip with rect. gg clips survive Pop, so the stack
// is kept here and reapplied on the way out.
func (r *Renderer) pushClip(rect layout.Rect) {
	if n := len(r.clips); n > 0 {
		rect = intersect(r.clips[n-1], rect)
	}
	r.clips = append(r.clips, rect)
	r.applyClip()
}

func (r *Renderer) popClip() {
	r.clips = r.clips[:len(r.clips)-1]
	r.applyClip()
}

func (r *Renderer) applyClip() {
	r.context.ResetClip()
	if n := len(r.clips); n > 0 {
		c := r.clips[n-1]
		r.context.DrawRectangle(c.X, c.Y, max(0, c.Width), max(0, c.Height))
		r.context.Clip()
	}
}

func intersect(a, b layout.Rect) layout.Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	return layout.Rect{X: x0, Y: y0, Width: max(0, x1-x0), Height: max(0, y1-y0)}
}

// drawBorder fills each side as a trapezoid so corners miter.
func (r *Renderer) drawBorder(box *layout.Box, opacity float64) {
	bw := box.Dims.Border
	if bw.Top <= 0 && bw.Right <= 0 && bw.Bottom <= 0 && bw.Left <= 0 {
		return
	}
	outer := r.screen(box.Dims.BorderBox())
	inner := r.screen(box.Dims.PaddingBox())

	type side struct {
		width float64
		pts   [4][2]float64
	}
	sides := [4]side{
		{bw.Top, [4][2]float64{{outer.X, outer.Y}, {outer.Right(), outer.Y}, {inner.Right(), inner.Y}, {inner.X, inner.Y}}},
		{bw.Right, [4][2]float64{{outer.Right(), outer.Y}, {outer.Right(), outer.Bottom()}, {inner.Right(), inner.Bottom()}, {inner.Right(), inner.Y}}},
		{bw.Bottom, [4][2]float64{{outer.X, outer.Bottom()}, {outer.Right(), outer.Bottom()}, {inner.Right(), inner.Bottom()}, {inner.X, inner.Bottom()}}},
		{bw.Left, [4][2]float64{{outer.X, outer.Y}, {outer.X, outer.Bottom()}, {inner.X, inner.Bottom()}, {inner.X, inner.Y}}},
	}
	for i, s := range sides {
		c := withOpacity(box.Style.BorderColor[i], opacity)
		if s.width <= 0 || c.IsTransparent() {
			continue
		}
		r.setColor(c)
		r.context.MoveTo(s.pts[0][0], s.pts[0][1])
		for _, pt := range s.pts[1:] {
			r.context.LineTo(pt[0], pt[1])
		}
		r.context.ClosePath()
		r.context.Fill()
	}
}

// drawScrollbar draws a thumb along the right edge of the padding box sized
// to the visible fraction of the content.
func (r *Renderer) drawScrollbar(box *layout.Box) {
	track := box.Dims.PaddingBox()
	w := r.opts.ScrollbarWidth
	if w <= 0 || track.Height <= 0 {
		return
	}
	total := track.Height + box.ScrollableHeight
	thumbH := max(w, track.Height*track.Height/total)
	thumbY := track.Y + (track.Height-thumbH)*box.ScrollY/box.ScrollableHeight

	r.fillRect(layout.Rect{X: track.Right() - w, Y: track.Y, Width: w, Height: track.Height},
		css.Color{R: 230, G: 230, B: 230, A: 1})
	r.fillRect(layout.Rect{X: track.Right() - w, Y: thumbY, Width: w, Height: thumbH},
		css.Color{R: 160, G: 160, B: 160, A: 1})
}
