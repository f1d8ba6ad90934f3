package main

import (
	"image"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"boxwright/internal/config"
	"boxwright/pkg/render"
	"boxwright/pkg/resource"
	"boxwright/pkg/selection"
	"boxwright/pkg/text"
)

// pageView paints a page and turns pointer and keyboard input into
// selection gestures. Coordinates from fyne are viewport-relative; the
// page scroll is added before they reach the controller.
type pageView struct {
	widget.BaseWidget

	page   *resource.Page
	fonts  *text.Registry
	ctl    *selection.Controller
	opts   render.Options
	viewer config.ViewerConfig
	logger *zap.Logger

	// OnCopy receives the selected text for Ctrl+C.
	OnCopy func(string)

	raster  *canvas.Image
	target  *image.RGBA
	scrollY float64

	lastPress time.Time
	lastPos   fyne.Position
	clicks    int
	pressed   bool

	// ctrl tracks a held Ctrl or Alt key; arrows then move by word.
	ctrl   bool
	cursor desktop.Cursor
}

func newPageView(page *resource.Page, fonts *text.Registry, opts render.Options, viewer config.ViewerConfig, logger *zap.Logger) *pageView {
	v := &pageView{
		page:   page,
		fonts:  fonts,
		opts:   opts,
		viewer: viewer,
		logger: logger,
		cursor: desktop.DefaultCursor,
	}
	v.ctl = selection.NewController(page.Tree, page.Fonts())
	v.ctl.SetLogger(logger.Named("selection"))
	v.ctl.OnLink = func(href string) {
		logger.Info("link activated", zap.String("href", href), zap.String("page", page.URL))
	}
	v.raster = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.raster.FillMode = canvas.ImageFillStretch
	v.raster.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return &pageRenderer{view: v}
}

// docPoint converts a widget position to document coordinates.
func (v *pageView) docPoint(p fyne.Position) (float64, float64) {
	return float64(p.X), float64(p.Y) + v.scrollY
}

// resize lays the page out for a new widget size and repaints.
func (v *pageView) resize(size fyne.Size) {
	w, h := int(math.Ceil(float64(size.Width))), int(math.Ceil(float64(size.Height)))
	if w <= 0 || h <= 0 {
		return
	}
	if v.target != nil && v.target.Rect.Dx() == w && v.target.Rect.Dy() == h {
		return
	}
	v.target = image.NewRGBA(image.Rect(0, 0, w, h))
	v.page.Resize(float64(w), float64(h))
	v.ctl.Rebuild(v.page.Tree)
	v.clampScroll()
	v.paint()
}

func (v *pageView) clampScroll() {
	_, ch := v.page.ContentSize()
	limit := 0.0
	if v.target != nil {
		limit = max(0, ch-float64(v.target.Rect.Dy()))
	}
	v.scrollY = min(max(v.scrollY, 0), limit)
}

func (v *pageView) paint() {
	if v.target == nil {
		return
	}
	r := render.NewRendererForImage(v.target, v.fonts)
	r.SetOptions(v.opts)
	r.SetImages(v.page.Images)
	r.SetLogger(v.logger.Named("render"))
	r.SetOrigin(0, v.scrollY)
	r.Render(v.page.Tree, v.ctl)
	v.raster.Image = v.target
	v.raster.Refresh()
}

func (v *pageView) focus() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil {
		c.Focus(v)
	}
}

// clickCount extends the click run when a press lands close to the last
// one within the multi-click interval.
func (v *pageView) clickCount(pos fyne.Position, now time.Time) int {
	dx, dy := float64(pos.X-v.lastPos.X), float64(pos.Y-v.lastPos.Y)
	near := math.Hypot(dx, dy) <= v.viewer.MultiClickSlop
	if v.clicks > 0 && near && now.Sub(v.lastPress) <= v.viewer.MultiClickInterval {
		v.clicks = v.clicks%3 + 1
	} else {
		v.clicks = 1
	}
	v.lastPress, v.lastPos = now, pos
	return v.clicks
}

// desktop.Mouseable

func (v *pageView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.focus()
	x, y := v.docPoint(ev.Position)
	shift := ev.Modifier&fyne.KeyModifierShift != 0
	v.ctl.Press(x, y, v.clickCount(ev.Position, time.Now()), shift)
	v.pressed = true
	v.paint()
}

func (v *pageView) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.pressed = false
	v.ctl.Release()
	v.paint()
}

// fyne.Draggable

func (v *pageView) Dragged(ev *fyne.DragEvent) {
	if !v.pressed {
		return
	}
	x, y := v.docPoint(ev.Position)
	v.ctl.Drag(x, y)
	v.paint()
}

func (v *pageView) DragEnd() {
	v.pressed = false
	v.ctl.Release()
	v.paint()
}

// fyne.Scrollable

func (v *pageView) Scrolled(ev *fyne.ScrollEvent) {
	x, y := v.docPoint(ev.Position)
	dx, dy := -float64(ev.Scrolled.DX), -float64(ev.Scrolled.DY)
	if !v.page.Tree.ScrollWheel(x, y, dx, dy) {
		v.scrollY += dy
		v.clampScroll()
	}
	v.paint()
}

// desktop.Hoverable and desktop.Cursorable

func (v *pageView) MouseIn(ev *desktop.MouseEvent) { v.MouseMoved(ev) }

func (v *pageView) MouseMoved(ev *desktop.MouseEvent) {
	x, y := v.docPoint(ev.Position)
	switch {
	case v.ctl.IsOverLink(x, y):
		v.cursor = desktop.PointerCursor
	case v.ctl.IsOverText(x, y):
		v.cursor = desktop.TextCursor
	default:
		v.cursor = desktop.DefaultCursor
	}
}

func (v *pageView) MouseOut() { v.cursor = desktop.DefaultCursor }

func (v *pageView) Cursor() desktop.Cursor { return v.cursor }

// fyne.Focusable, fyne.Shortcutable and desktop.Keyable

func (v *pageView) FocusGained() {}

func (v *pageView) FocusLost() { v.ctrl = false }

func (v *pageView) TypedRune(rune) {}

func (v *pageView) KeyDown(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeyAltLeft, desktop.KeyAltRight:
		v.ctrl = true
	}
}

func (v *pageView) KeyUp(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeyAltLeft, desktop.KeyAltRight:
		v.ctrl = false
	}
}

func (v *pageView) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyLeft:
		v.ctl.MoveLeft(v.ctrl)
	case fyne.KeyRight:
		v.ctl.MoveRight(v.ctrl)
	case fyne.KeyUp:
		v.ctl.MoveUp()
	case fyne.KeyDown:
		v.ctl.MoveDown()
	case fyne.KeyPageDown, fyne.KeyPageUp:
		step := v.viewer.ScrollStep * 10
		if v.target != nil {
			step = float64(v.target.Rect.Dy()) * 0.9
		}
		if ev.Name == fyne.KeyPageUp {
			step = -step
		}
		v.scrollY += step
		v.clampScroll()
	default:
		return
	}
	v.paint()
}

func (v *pageView) TypedShortcut(s fyne.Shortcut) {
	switch s.(type) {
	case *fyne.ShortcutSelectAll:
		if v.ctl.SelectAll() {
			v.paint()
		}
	case *fyne.ShortcutCopy:
		if txt := v.ctl.Text(); txt != "" && v.OnCopy != nil {
			v.OnCopy(txt)
			v.logger.Debug("copied selection", zap.Int("bytes", len(txt)))
		}
	}
}

type pageRenderer struct {
	view *pageView
}

func (r *pageRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
	r.view.raster.Move(fyne.NewPos(0, 0))
	r.view.resize(size)
}

func (r *pageRenderer) MinSize() fyne.Size { return fyne.NewSize(100, 100) }

func (r *pageRenderer) Refresh() { r.view.paint() }

func (r *pageRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.view.raster} }

func (r *pageRenderer) Destroy() {}
