package render

import (
	"math"

	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/images"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

var (
	controlBorder = css.Color{R: 118, G: 118, B: 118, A: 1}
	controlFace   = css.Color{R: 239, G: 239, B: 239, A: 1}
	placeholderFg = css.Color{R: 117, G: 117, B: 117, A: 1}
	checkFill     = css.Color{R: 0, G: 117, B: 255, A: 1}
)

func (r *Renderer) strokeRect(rect layout.Rect, c css.Color) {
	s := r.screen(rect)
	r.setColor(c)
	r.context.SetLineWidth(1)
	r.context.DrawRectangle(s.X+0.5, s.Y+0.5, max(0, s.Width-1), max(0, s.Height-1))
	r.context.Stroke()
}

// drawControl paints form controls and images into the content box.
func (r *Renderer) drawControl(box *layout.Box) {
	content := box.Dims.Content
	n := box.Node
	switch layout.ControlOf(n) {
	case layout.ControlCheckbox:
		r.fillRect(content, css.White)
		r.strokeRect(content, controlBorder)
		if _, checked := n.GetAttribute("checked"); checked {
			r.fillRect(content, checkFill)
			s := r.screen(content)
			r.setColor(css.White)
			r.context.SetLineWidth(2)
			r.context.MoveTo(s.X+s.Width*0.2, s.Y+s.Height*0.5)
			r.context.LineTo(s.X+s.Width*0.42, s.Y+s.Height*0.72)
			r.context.LineTo(s.X+s.Width*0.8, s.Y+s.Height*0.28)
			r.context.Stroke()
		}
	case layout.ControlRadio:
		s := r.screen(content)
		cx, cy := s.X+s.Width/2, s.Y+s.Height/2
		radius := math.Min(s.Width, s.Height) / 2
		r.setColor(css.White)
		r.context.DrawCircle(cx, cy, radius-0.5)
		r.context.Fill()
		r.setColor(controlBorder)
		r.context.SetLineWidth(1)
		r.context.DrawCircle(cx, cy, radius-0.5)
		r.context.Stroke()
		if _, checked := n.GetAttribute("checked"); checked {
			r.setColor(checkFill)
			r.context.DrawCircle(cx, cy, radius*0.5)
			r.context.Fill()
		}
	case layout.ControlInput:
		typ, _ := n.GetAttribute("type")
		switch typ {
		case "hidden":
			return
		case "submit", "button", "reset":
			r.drawField(box, controlFace, true)
		default:
			r.drawField(box, css.White, false)
		}
	case layout.ControlTextarea:
		r.drawField(box, css.White, false)
	case layout.ControlSelect:
		r.drawField(box, css.White, false)
		s := r.screen(content)
		x, y := s.Right()-12, s.Y+s.Height/2
		r.setColor(css.Black)
		r.context.MoveTo(x, y-2)
		r.context.LineTo(x+8, y-2)
		r.context.LineTo(x+4, y+3)
		r.context.ClosePath()
		r.context.Fill()
	case layout.ControlImage:
		r.drawImage(box)
	}
}

// drawField paints a text field or button. Fields without a CSS border get
// a gray outline.
func (r *Renderer) drawField(box *layout.Box, face css.Color, button bool) {
	pb := box.Dims.PaddingBox()
	if box.Style.BackgroundColor.IsTransparent() {
		r.fillRect(pb, face)
	}
	if box.Dims.Border == (css.BoxEdge{}) {
		r.strokeRect(pb, controlBorder)
	}

	n := box.Node
	label, fg := "", box.Style.Color
	if v, ok := n.GetAttribute("value"); ok {
		label = v
	} else if n.TagName == "textarea" {
		label = n.TextContent()
	} else if n.TagName == "select" {
		label = firstOption(box)
	}
	if label == "" && !button {
		label, _ = n.GetAttribute("placeholder")
		fg = placeholderFg
	}
	if label == "" || r.fonts == nil {
		return
	}

	cs := &box.Style
	content := box.Dims.Content
	x := content.X + 2
	if button {
		w := text.FontFor(r.fonts, cs).MeasureWidth(label, cs.FontSize)
		x = content.X + (content.Width-w)/2
	}
	line := layout.TextLine{Text: label, X: x, Y: content.Y, Height: math.Min(content.Height, cs.FontSize*cs.LineHeight)}
	fontFace := r.fonts.FontFace(cs)
	r.context.SetFontFace(fontFace)
	r.setColor(fg)
	s := r.screen(line.Rect())
	r.context.DrawString(label, s.X, baseline(fontFace, line, cs.FontSize)-r.oy)
}

func firstOption(box *layout.Box) string {
	var first, selected string
	for _, c := range box.Node.Children {
		if !c.IsElement("option") {
			continue
		}
		if first == "" {
			first = c.TextContent()
		}
		if _, ok := c.GetAttribute("selected"); ok && selected == "" {
			selected = c.TextContent()
		}
	}
	if selected != "" {
		return selected
	}
	return first
}

func (r *Renderer) drawImage(box *layout.Box) {
	content := box.Dims.Content
	src, _ := box.Node.GetAttribute("src")
	if r.images != nil && src != "" {
		img, err := r.images.Load(src)
		if err == nil {
			w, h := int(math.Round(content.Width)), int(math.Round(content.Height))
			if w > 0 && h > 0 {
				s := r.screen(content)
				r.context.DrawImage(images.Scale(img, w, h), int(math.Round(s.X)), int(math.Round(s.Y)))
			}
			return
		}
		r.logger.Debug("image unavailable", zap.String("src", src), zap.Error(err))
	}

	// Broken image: gray box with a cross.
	r.fillRect(content, controlFace)
	r.strokeRect(content, controlBorder)
	s := r.screen(content)
	r.setColor(controlBorder)
	r.context.SetLineWidth(1)
	r.context.DrawLine(s.X, s.Y, s.Right(), s.Bottom())
	r.context.DrawLine(s.Right(), s.Y, s.X, s.Bottom())
	r.context.Stroke()
}
