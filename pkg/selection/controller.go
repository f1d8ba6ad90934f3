package selection

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

// Mode is the granularity a drag extends by.
type Mode int

const (
	ModeCharacter Mode = iota
	ModeWord
	ModeLine
)

func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModeLine:
		return "line"
	}
	return "character"
}

// Controller turns pointer and keyboard input into selection changes. It
// must be rebuilt after every layout pass.
type Controller struct {
	*State

	hit  HitTester
	mode Mode

	// The word or block the gesture started on; drags grow outward from it.
	originStart, originEnd Point

	// OnLink receives the href of a link hit by a single click. When nil,
	// clicks on links select text like any other click.
	OnLink func(href string)

	logger *zap.Logger
}

func NewController(tree *layout.Tree, fonts text.Fonts) *Controller {
	c := &Controller{
		State:  NewState(),
		hit:    HitTester{Tree: tree, Fonts: fonts},
		logger: zap.NewNop(),
	}
	c.State.Rebuild(tree)
	return c
}

func (c *Controller) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) HitTester() HitTester { return c.hit }

// Rebuild points the controller at a freshly laid out tree.
func (c *Controller) Rebuild(tree *layout.Tree) {
	c.hit.Tree = tree
	c.State.Rebuild(tree)
}

func (c *Controller) lineText(p Point) string {
	return c.tree.Box(p.Box).Lines[p.Line].Text
}

// compare orders two points in document order.
func (c *Controller) compare(a, b Point) int {
	ai, bi := c.IndexOf(a.Box), c.IndexOf(b.Box)
	switch {
	case ai != bi:
		return cmpInt(ai, bi)
	case a.Line != b.Line:
		return cmpInt(a.Line, b.Line)
	}
	return cmpInt(a.Char, b.Char)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// userSelect resolves the user-select value governing a text box from its
// nearest element ancestor that sets one.
func (c *Controller) userSelect(id layout.BoxID) css.UserSelect {
	for b := c.tree.Box(id); b != nil; b = c.tree.Box(b.Parent) {
		if b.IsText() {
			continue
		}
		if us := b.Style.UserSelect; us != "" && us != css.UserSelectAuto {
			return us
		}
	}
	return css.UserSelectAuto
}

// LinkAt returns the href of the link under (x, y), or "".
func (c *Controller) LinkAt(x, y float64) string {
	id, ok := c.hit.BoxAt(x, y)
	if !ok {
		return ""
	}
	return LinkHref(c.tree.Box(id).Node)
}

func (c *Controller) IsOverLink(x, y float64) bool { return c.LinkAt(x, y) != "" }

// IsOverText reports whether (x, y) lies on a line of text.
func (c *Controller) IsOverText(x, y float64) bool {
	_, ok := c.hit.Exact(x, y)
	return ok
}

// Press handles a button press. clicks is the click count of the gesture
// (1, 2 or 3); shift extends an existing selection.
func (c *Controller) Press(x, y float64, clicks int, shift bool) {
	if clicks == 1 && !shift && c.OnLink != nil {
		if href := c.LinkAt(x, y); href != "" {
			c.logger.Debug("link activated", zap.String("href", href))
			c.OnLink(href)
			return
		}
	}

	p, ok := c.hit.At(x, y, c.boxes, true)
	if !ok {
		c.Clear()
		return
	}

	switch c.userSelect(p.Box) {
	case css.UserSelectNone:
		c.Clear()
		return
	case css.UserSelectAll:
		c.mode = ModeCharacter
		c.Select(Point{Box: p.Box}, c.endOf(p.Box))
		return
	}

	if shift && c.Anchor.Box != layout.NoBox {
		c.Update(p)
		c.Selecting = true
		return
	}

	switch {
	case clicks >= 3:
		first, last := BlockRange(c.tree, c.boxes, p.Box)
		c.mode = ModeLine
		c.originStart, c.originEnd = Point{Box: first}, c.endOf(last)
		c.Select(c.originStart, c.originEnd)
		c.Selecting = true
	case clicks == 2:
		s, e := WordAt(c.lineText(p), p.Char)
		c.mode = ModeWord
		c.originStart = Point{Box: p.Box, Line: p.Line, Char: s}
		c.originEnd = Point{Box: p.Box, Line: p.Line, Char: e}
		c.Select(c.originStart, c.originEnd)
		c.HasSelection = s != e
		c.Selecting = true
	default:
		c.mode = ModeCharacter
		c.Start(p)
	}
	c.logger.Debug("selection started",
		zap.Stringer("mode", c.mode),
		zap.Int("box", int(p.Box)),
		zap.Int("line", p.Line),
		zap.Int("char", p.Char))
}

// Drag moves the focus while a press is held.
func (c *Controller) Drag(x, y float64) {
	if !c.Selecting {
		return
	}
	p, ok := c.hit.Vertical(x, y, c.boxes)
	if !ok {
		return
	}
	switch c.mode {
	case ModeWord:
		s, e := WordAt(c.lineText(p), p.Char)
		start := Point{Box: p.Box, Line: p.Line, Char: s}
		end := Point{Box: p.Box, Line: p.Line, Char: e}
		if c.compare(start, c.originStart) < 0 {
			c.Anchor, c.Focus = c.originEnd, start
		} else {
			c.Anchor, c.Focus = c.originStart, end
		}
		c.HasSelection = c.Anchor != c.Focus
	case ModeLine:
		first, last := BlockRange(c.tree, c.boxes, p.Box)
		if c.compare(Point{Box: first}, c.originStart) < 0 {
			c.Anchor, c.Focus = c.originEnd, Point{Box: first}
		} else {
			c.Anchor, c.Focus = c.originStart, c.endOf(last)
		}
		c.HasSelection = true
	default:
		c.Update(p)
	}
}

func (c *Controller) Release() {
	if c.Selecting && c.HasSelection {
		c.logger.Debug("selection finished", zap.Int("bytes", len(c.Text())))
	}
	c.End()
}

func (c *Controller) SelectAll() bool {
	c.mode = ModeCharacter
	return c.State.SelectAll()
}

// MoveLeft moves the focus one character, or one word, back. The anchor
// stays put.
func (c *Controller) MoveLeft(word bool) {
	if !c.focusValid() {
		return
	}
	c.ResetGoalX()
	f := c.Focus
	if f.Char > 0 {
		if word {
			f.Char = PrevWordStart(c.lineText(f), f.Char)
		} else {
			f.Char = prevRune(c.lineText(f), f.Char)
		}
		c.Update(f)
		return
	}
	if f.Line > 0 {
		f.Line--
		f.Char = len(c.lineText(f))
		c.Update(f)
		return
	}
	if i := c.IndexOf(f.Box); i > 0 {
		prev := c.endOf(c.boxes[i-1])
		prev.Char = trimTrailingSpace(c.lineText(prev))
		c.Update(prev)
	}
}

// MoveRight moves the focus one character, or to the end of the next word.
func (c *Controller) MoveRight(word bool) {
	if !c.focusValid() {
		return
	}
	c.ResetGoalX()
	f := c.Focus
	s := c.lineText(f)
	if f.Char < len(s) {
		if word {
			f.Char = NextWordEnd(s, f.Char)
		} else {
			f.Char = nextRune(s, f.Char)
		}
		c.Update(f)
		return
	}
	if f.Line+1 < len(c.tree.Box(f.Box).Lines) {
		f.Line++
		f.Char = 0
		c.Update(f)
		return
	}
	if i := c.IndexOf(f.Box); i >= 0 && i+1 < len(c.boxes) {
		next := Point{Box: c.boxes[i+1]}
		next.Char = skipLeadingSpace(c.lineText(next))
		c.Update(next)
	}
}

func (c *Controller) MoveUp()   { c.moveVertical(-1) }
func (c *Controller) MoveDown() { c.moveVertical(1) }

func (c *Controller) focusValid() bool {
	return c.tree != nil && c.IndexOf(c.Focus.Box) >= 0
}

// visualLines lists every line of every text box top to bottom, left to
// right within a row.
func (c *Controller) visualLines() []candidate {
	all := c.hit.lines(c.boxes)
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].rect, all[j].rect
		if math.Abs(a.Y-b.Y) < 1 {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return all
}

// moveVertical moves the focus to the nearest visual line above (dir < 0)
// or below, keeping the goal column from the first vertical move.
func (c *Controller) moveVertical(dir int) {
	if !c.focusValid() {
		return
	}
	f := c.Focus
	cur := c.hit.lineRect(f.Box, f.Line)
	if c.GoalX < 0 {
		c.GoalX = cur.X
		b := c.tree.Box(f.Box)
		if face := text.FontFor(c.hit.Fonts, &b.Style); face != nil {
			c.GoalX += face.PositionAtOffset(c.lineText(f), f.Char, b.Style.FontSize)
		}
	}

	lines := c.visualLines()
	rowY := math.NaN()
	var row []candidate
	scan := func(cand candidate) bool {
		if !math.IsNaN(rowY) && math.Abs(cand.rect.Y-rowY) >= 1 {
			return false
		}
		rowY = cand.rect.Y
		row = append(row, cand)
		return true
	}
	if dir > 0 {
		for _, cand := range lines {
			if cand.rect.Y >= cur.Y+1 && !scan(cand) {
				break
			}
		}
	} else {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i].rect.Y <= cur.Y-1 && !scan(lines[i]) {
				break
			}
		}
	}

	if len(row) == 0 {
		if dir < 0 {
			c.Update(Point{Box: c.boxes[0]})
		} else {
			c.Update(c.endOf(c.boxes[len(c.boxes)-1]))
		}
		return
	}

	best, bestDist := row[0], math.MaxFloat64
	for _, cand := range row {
		d := 0.0
		switch {
		case c.GoalX < cand.rect.X:
			d = cand.rect.X - c.GoalX
		case c.GoalX > cand.rect.Right():
			d = c.GoalX - cand.rect.Right()
		}
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	p := Point{Box: best.box, Line: best.line}
	switch {
	case c.GoalX <= best.rect.X:
	case c.GoalX >= best.rect.Right():
		p.Char = c.hit.lineLen(best.box, best.line)
	default:
		p.Char = c.hit.charAt(best.box, best.line, c.GoalX)
	}
	c.Update(p)
}
