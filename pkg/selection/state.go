// Package selection tracks a text selection that may span many text boxes
// and maps pointer positions onto characters of laid-out text.
package selection

import (
	"strings"

	"boxwright/pkg/layout"
)

// Point addresses a character position: a byte offset into one line of one
// text box.
type Point struct {
	Box  layout.BoxID
	Line int
	Char int
}

var noPoint = Point{Box: layout.NoBox}

// State is the selection model. Anchor is where the selection started and
// Focus where it currently ends; either may come first in document order.
type State struct {
	Anchor, Focus Point
	Selecting     bool // a drag is in progress
	HasSelection  bool

	// GoalX is the sticky column for vertical moves; negative when unset.
	GoalX float64

	tree  *layout.Tree
	boxes []layout.BoxID
	index map[layout.BoxID]int
}

func NewState() *State {
	s := &State{}
	s.Clear()
	return s
}

// Rebuild refreshes the document-order list of text boxes. It must run
// after every layout. A selection whose endpoints no longer exist is
// cleared; endpoints past the end of a rewrapped line are clamped.
func (s *State) Rebuild(tree *layout.Tree) {
	s.tree = tree
	s.boxes = tree.TextBoxes()
	s.index = make(map[layout.BoxID]int, len(s.boxes))
	for i, id := range s.boxes {
		s.index[id] = i
	}
	if s.Anchor.Box == layout.NoBox && s.Focus.Box == layout.NoBox {
		return
	}
	if s.IndexOf(s.Anchor.Box) < 0 || s.IndexOf(s.Focus.Box) < 0 {
		s.Clear()
		return
	}
	s.Anchor = s.clampPoint(s.Anchor)
	s.Focus = s.clampPoint(s.Focus)
}

func (s *State) clampPoint(p Point) Point {
	lines := s.tree.Box(p.Box).Lines
	if p.Line >= len(lines) {
		p.Line = len(lines) - 1
		p.Char = len(lines[p.Line].Text)
	}
	if p.Char > len(lines[p.Line].Text) {
		p.Char = len(lines[p.Line].Text)
	}
	return p
}

// Boxes returns the text boxes in document order.
func (s *State) Boxes() []layout.BoxID { return s.boxes }

func (s *State) Tree() *layout.Tree { return s.tree }

func (s *State) Clear() {
	s.Anchor, s.Focus = noPoint, noPoint
	s.Selecting = false
	s.HasSelection = false
	s.GoalX = -1
}

// Start begins a drag at p with an empty selection.
func (s *State) Start(p Point) {
	s.Anchor, s.Focus = p, p
	s.Selecting = true
	s.HasSelection = false
	s.GoalX = -1
}

// Update moves the focus. The selection is non-empty whenever anchor and
// focus differ.
func (s *State) Update(p Point) {
	s.Focus = p
	s.HasSelection = s.Anchor != s.Focus
}

func (s *State) End() { s.Selecting = false }

func (s *State) ResetGoalX() { s.GoalX = -1 }

// Select sets both endpoints without starting a drag.
func (s *State) Select(anchor, focus Point) {
	s.Anchor, s.Focus = anchor, focus
	s.HasSelection = true
	s.Selecting = false
}

// SelectAll spans the first through the last text box.
func (s *State) SelectAll() bool {
	if len(s.boxes) == 0 {
		return false
	}
	first, last := s.boxes[0], s.boxes[len(s.boxes)-1]
	s.Select(Point{Box: first}, s.endOf(last))
	return true
}

// endOf is the point after the last character of a box.
func (s *State) endOf(id layout.BoxID) Point {
	lines := s.tree.Box(id).Lines
	n := len(lines) - 1
	return Point{Box: id, Line: n, Char: len(lines[n].Text)}
}

// IndexOf returns the document-order position of a text box, or -1.
func (s *State) IndexOf(id layout.BoxID) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// BoxState reports where a box lies relative to the selection: -1 before
// it (or no selection), 0 inside, 1 after.
func (s *State) BoxState(id layout.BoxID) int {
	if !s.HasSelection {
		return -1
	}
	bi, ai, fi := s.IndexOf(id), s.IndexOf(s.Anchor.Box), s.IndexOf(s.Focus.Box)
	if bi < 0 || ai < 0 || fi < 0 {
		return -1
	}
	switch {
	case bi < min(ai, fi):
		return -1
	case bi > max(ai, fi):
		return 1
	}
	return 0
}

// ordered returns the endpoints in document order of their boxes. Within a
// single box the caller still has to order by line and character.
func (s *State) ordered() (start, end Point) {
	if s.IndexOf(s.Anchor.Box) <= s.IndexOf(s.Focus.Box) {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

func before(a, b Point) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Char < b.Char)
}

// RangeForLine returns the selected byte range [start, end) of one line,
// clamped to [0, lineLen] with start <= end. An unselected line yields
// (0, 0).
func (s *State) RangeForLine(id layout.BoxID, line, lineLen int) (int, int) {
	from, to := s.rangeForLine(id, line, lineLen)
	lineLen = max(lineLen, 0)
	from = min(max(from, 0), lineLen)
	to = min(max(to, 0), lineLen)
	return min(from, to), to
}

func (s *State) rangeForLine(id layout.BoxID, line, lineLen int) (int, int) {
	if s.BoxState(id) != 0 {
		return 0, 0
	}
	start, end := s.ordered()
	isStart, isEnd := id == start.Box, id == end.Box

	switch {
	case isStart && isEnd:
		if before(end, start) {
			start, end = end, start
		}
		if line < start.Line || line > end.Line {
			return 0, 0
		}
		from, to := 0, lineLen
		if line == start.Line {
			from = start.Char
		}
		if line == end.Line {
			to = end.Char
		}
		return from, to
	case isStart:
		if line < start.Line {
			return 0, 0
		}
		if line == start.Line {
			return start.Char, lineLen
		}
		return 0, lineLen
	case isEnd:
		if line > end.Line {
			return 0, 0
		}
		if line == end.Line {
			return 0, end.Char
		}
		return 0, lineLen
	}
	return 0, lineLen
}

// Text returns the selected text. Boxes are joined by newlines and the
// wrapped lines of one box by single spaces.
func (s *State) Text() string {
	if !s.HasSelection || s.tree == nil {
		return ""
	}
	ai, fi := s.IndexOf(s.Anchor.Box), s.IndexOf(s.Focus.Box)
	if ai < 0 || fi < 0 {
		return ""
	}
	var sb strings.Builder
	for bi := min(ai, fi); bi <= max(ai, fi); bi++ {
		id := s.boxes[bi]
		lines := s.tree.Box(id).Lines
		if bi > min(ai, fi) && sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		for li, l := range lines {
			from, to := s.RangeForLine(id, li, len(l.Text))
			to = min(to, len(l.Text))
			if from >= to {
				continue
			}
			if li > 0 && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Text[from:to])
		}
	}
	return sb.String()
}
