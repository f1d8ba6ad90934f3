package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/html"
	"boxwright/pkg/layout"
	"boxwright/pkg/text"
)

var testFonts = text.Uniform{Face: text.FixedFace{Advance: 10}}

// Two blocks: "hello" / "world foo" wrapped in #a, then "don't stop" in #b.
const twoBlocks = `<div id="a" style="width:100px">hello world foo</div><div id="b">don't stop</div>`

func layoutHTML(t *testing.T, markup string) *layout.Tree {
	t.Helper()
	doc, err := html.Parse(markup)
	require.NoError(t, err)
	engine := layout.NewLayoutEngine(800, 600)
	engine.SetFonts(testFonts)
	return engine.Layout(doc)
}

func textOf(t *testing.T, tree *layout.Tree, id string) layout.BoxID {
	t.Helper()
	b := tree.FindByID(id)
	require.NotNil(t, b, "no box with id %q", id)
	require.NotEmpty(t, b.Children)
	return b.Children[0]
}

func newState(t *testing.T, tree *layout.Tree) *State {
	t.Helper()
	s := NewState()
	s.Rebuild(tree)
	return s
}

func TestState_Empty(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	a := textOf(t, tree, "a")

	assert.False(t, s.HasSelection)
	assert.Equal(t, -1, s.BoxState(a))
	start, end := s.RangeForLine(a, 0, 5)
	assert.Equal(t, [2]int{0, 0}, [2]int{start, end})
	assert.Empty(t, s.Text())
	assert.Equal(t, -1, s.IndexOf(layout.BoxID(9999)))
}

func TestState_RangeForLineSameBox(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	a := textOf(t, tree, "a")

	// Focus before anchor inside one box is swapped.
	s.Start(Point{Box: a, Line: 1, Char: 5})
	s.Update(Point{Box: a, Line: 0, Char: 2})
	require.True(t, s.HasSelection)

	from, to := s.RangeForLine(a, 0, 5)
	assert.Equal(t, 2, from)
	assert.Equal(t, 5, to)
	from, to = s.RangeForLine(a, 1, 9)
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, to)
	assert.Equal(t, "llo world", s.Text())
}

func TestState_RangeForLineAcrossBoxes(t *testing.T) {
	tree := layoutHTML(t, `<div id="a">one</div><div id="b">two</div><div id="c">three</div>`)
	s := newState(t, tree)
	a, b, c := textOf(t, tree, "a"), textOf(t, tree, "b"), textOf(t, tree, "c")

	// Dragging backwards: the anchor sits in the last box.
	s.Start(Point{Box: c, Line: 0, Char: 2})
	s.Update(Point{Box: a, Line: 0, Char: 1})

	assert.Equal(t, 0, s.BoxState(a))
	assert.Equal(t, 0, s.BoxState(b))
	assert.Equal(t, 0, s.BoxState(c))

	from, to := s.RangeForLine(a, 0, 3)
	assert.Equal(t, [2]int{1, 3}, [2]int{from, to})
	from, to = s.RangeForLine(b, 0, 3)
	assert.Equal(t, [2]int{0, 3}, [2]int{from, to}, "middle boxes are fully selected")
	from, to = s.RangeForLine(c, 0, 5)
	assert.Equal(t, [2]int{0, 2}, [2]int{from, to})

	assert.Equal(t, "ne\ntwo\nth", s.Text())
}

func TestState_BoxStateOutside(t *testing.T) {
	tree := layoutHTML(t, `<div id="a">one</div><div id="b">two</div><div id="c">three</div>`)
	s := newState(t, tree)
	a, b, c := textOf(t, tree, "a"), textOf(t, tree, "b"), textOf(t, tree, "c")

	s.Start(Point{Box: b, Line: 0, Char: 0})
	s.Update(Point{Box: b, Line: 0, Char: 2})
	assert.Equal(t, -1, s.BoxState(a))
	assert.Equal(t, 0, s.BoxState(b))
	assert.Equal(t, 1, s.BoxState(c))
	from, to := s.RangeForLine(c, 0, 5)
	assert.Equal(t, from, to)
}

func TestState_RangeNeverInverted(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	boxes := s.Boxes()
	require.Len(t, boxes, 2)

	var points []Point
	for _, id := range boxes {
		for li, l := range tree.Box(id).Lines {
			for ci := 0; ci <= len(l.Text); ci += 2 {
				points = append(points, Point{Box: id, Line: li, Char: ci})
			}
		}
	}
	for _, anchor := range points {
		for _, focus := range points {
			s.Start(anchor)
			s.Update(focus)
			for _, id := range boxes {
				for li, l := range tree.Box(id).Lines {
					from, to := s.RangeForLine(id, li, len(l.Text))
					require.LessOrEqual(t, from, to, "anchor %+v focus %+v line %d", anchor, focus, li)
				}
			}
		}
	}
}

func TestState_RangeClampedToLineLength(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	boxes := s.Boxes()
	require.Len(t, boxes, 2)
	first, last := boxes[0], boxes[len(boxes)-1]

	// The caller's line length is shorter than the anchor's offset.
	s.Select(Point{Box: first, Char: 4}, Point{Box: last, Char: 1})
	from, to := s.RangeForLine(first, 0, 2)
	assert.Equal(t, 2, from)
	assert.Equal(t, 2, to)

	s.Select(Point{Box: first, Char: 1}, Point{Box: first, Char: 4})
	from, to = s.RangeForLine(first, 0, 2)
	assert.Equal(t, 1, from)
	assert.Equal(t, 2, to)

	s.Select(Point{Box: first}, Point{Box: last, Char: 5})
	from, to = s.RangeForLine(last, 0, 3)
	assert.Equal(t, 0, from)
	assert.Equal(t, 3, to)
}

func TestState_WrappedLinesJoinWithSpace(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	require.True(t, s.SelectAll())
	assert.Equal(t, "hello world foo\ndon't stop", s.Text())
}

func TestState_RebuildClampsAndClears(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	s := newState(t, tree)
	a := textOf(t, tree, "a")
	s.Select(Point{Box: a}, Point{Box: a, Line: 1, Char: 9})

	// Relayout wider: "hello world foo" now fits on one line.
	engine := layout.NewLayoutEngine(800, 600)
	engine.SetFonts(testFonts)
	tree.FindByID("a").Node.SetAttribute("style", "width:300px")
	doc := &html.Document{Root: tree.Box(tree.Root).Node}
	wide := engine.Layout(doc)
	s.Rebuild(wide)
	require.True(t, s.HasSelection)
	assert.Equal(t, 0, s.Focus.Line)
	assert.Equal(t, len("hello world foo"), s.Focus.Char)

	gone := layoutHTML(t, `<div></div>`)
	s.Rebuild(gone)
	assert.False(t, s.HasSelection)
	assert.Equal(t, layout.NoBox, s.Anchor.Box)
}

func TestWords_Boundaries(t *testing.T) {
	s := "don't stop, it’s fine"
	assert.False(t, IsWordBoundary(s, 3), "apostrophe between letters")
	assert.True(t, IsWordBoundary(s, 5), "space")
	assert.True(t, IsWordBoundary(s, 10), "comma")
	assert.False(t, IsWordBoundary(s, 14), "typographic apostrophe")
	assert.True(t, IsWordBoundary(s, len(s)))
	assert.True(t, IsWordBoundary("'tis", 0), "leading apostrophe")
}

func TestWords_WordAt(t *testing.T) {
	cases := []struct {
		s          string
		i          int
		start, end int
	}{
		{"don't stop", 2, 0, 6},
		{"don't stop", 7, 6, 10},
		{"hello, world", 5, 5, 6},
		{"hello, world", 3, 0, 5},
		{"it’s fine", 0, 0, len("it’s ")},
		{"abc", 10, 0, 3},
		{"", 0, 0, 0},
	}
	for _, tc := range cases {
		start, end := WordAt(tc.s, tc.i)
		assert.Equal(t, tc.start, start, "start of %q at %d", tc.s, tc.i)
		assert.Equal(t, tc.end, end, "end of %q at %d", tc.s, tc.i)
	}
}

func TestWords_Navigation(t *testing.T) {
	s := "one two, three"
	assert.Equal(t, 3, NextWordEnd(s, 0))
	assert.Equal(t, 7, NextWordEnd(s, 3))
	assert.Equal(t, len(s), NextWordEnd(s, 7))
	assert.Equal(t, 9, PrevWordStart(s, len(s)))
	assert.Equal(t, 4, PrevWordStart(s, 9))
	assert.Equal(t, 0, PrevWordStart(s, 2))

	u := "héllo"
	assert.Equal(t, 3, nextRune(u, 1))
	assert.Equal(t, 1, prevRune(u, 3))
}
