package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"boxwright/pkg/layout"
)

func newController(t *testing.T, markup string) (*Controller, *layout.Tree) {
	t.Helper()
	tree := layoutHTML(t, markup)
	c := NewController(tree, testFonts)
	c.SetLogger(zap.NewNop())
	return c, tree
}

func TestController_DragSelectsCharacters(t *testing.T) {
	c, _ := newController(t, twoBlocks)

	c.Press(9, 10, 1, false)
	assert.True(t, c.Selecting)
	assert.False(t, c.HasSelection)

	c.Drag(8+50, 30)
	c.Release()
	assert.False(t, c.Selecting)
	require.True(t, c.HasSelection)
	assert.Equal(t, "hello world", c.Text())
}

func TestController_DragPastLineEnd(t *testing.T) {
	c, _ := newController(t, twoBlocks)
	c.Press(9, 10, 1, false)
	c.Drag(400, 10)
	assert.Equal(t, "hello", c.Text(), "dragging right of a line keeps selecting within it")
}

func TestController_DoubleClickKeepsContraction(t *testing.T) {
	c, tree := newController(t, twoBlocks)
	b := textOf(t, tree, "b")

	c.Press(8+15, 50, 2, false)
	require.True(t, c.HasSelection)
	assert.Equal(t, ModeWord, c.Mode())
	assert.Equal(t, b, c.Anchor.Box)
	assert.Equal(t, "don't", strings.TrimSpace(c.Text()))
}

func TestController_WordDragGrowsByWords(t *testing.T) {
	c, _ := newController(t, twoBlocks)

	c.Press(8+12, 30, 2, false)
	assert.Equal(t, "world ", c.Text())

	c.Drag(8+75, 30)
	assert.Equal(t, "world foo", c.Text())

	// Back above the original word: the far end of it stays selected.
	c.Drag(10, 10)
	assert.Equal(t, "hello world ", c.Text())
}

func TestController_TripleClickSelectsBlock(t *testing.T) {
	c, _ := newController(t, `<p>one <b>two</b> three</p><p>other</p>`)
	require.NotEmpty(t, c.Boxes())
	first := c.HitTester().lineRect(c.Boxes()[0], 0)

	c.Press(first.X+1, first.Y+1, 3, false)
	assert.Equal(t, ModeLine, c.Mode())
	text := c.Text()
	assert.Contains(t, text, "one")
	assert.Contains(t, text, "three")
	assert.NotContains(t, text, "other")
}

func TestController_ShiftClickExtends(t *testing.T) {
	c, tree := newController(t, twoBlocks)
	a := textOf(t, tree, "a")

	c.Press(9, 10, 1, false)
	c.Release()
	c.Press(8+50, 30, 1, true)
	c.Release()
	assert.Equal(t, Point{Box: a, Line: 0, Char: 0}, c.Anchor)
	assert.Equal(t, "hello world", c.Text())
}

func TestController_PressInEmptySpace(t *testing.T) {
	c, tree := newController(t, twoBlocks)
	c.Press(500, 500, 1, false)
	assert.Equal(t, textOf(t, tree, "b"), c.Anchor.Box, "nearest line anchors the selection")

	empty, _ := newController(t, `<div style="height:40px"></div>`)
	empty.Press(10, 10, 1, false)
	assert.Equal(t, layout.NoBox, empty.Anchor.Box)
	assert.False(t, empty.HasSelection)
}

func TestController_UserSelect(t *testing.T) {
	c, _ := newController(t, `<div style="user-select:none">nope</div>`)
	c.Press(10, 10, 2, false)
	assert.False(t, c.HasSelection)
	assert.Equal(t, layout.NoBox, c.Anchor.Box)

	c, _ = newController(t, `<div style="user-select:all"><span>all of it</span></div>`)
	c.Press(10, 10, 1, false)
	assert.True(t, c.HasSelection)
	assert.Equal(t, "all of it", c.Text())
}

func TestController_LinkClick(t *testing.T) {
	c, _ := newController(t, `<a href="/next">go</a>`)
	var got string
	c.OnLink = func(href string) { got = href }

	assert.True(t, c.IsOverLink(10, 10))
	assert.False(t, c.IsOverLink(400, 400))
	c.Press(10, 10, 1, false)
	assert.Equal(t, "/next", got)
	assert.False(t, c.Selecting, "link clicks do not start a selection")

	// Double clicks still select.
	c.Press(10, 10, 2, false)
	assert.Equal(t, "go", c.Text())
}

func TestController_IsOverText(t *testing.T) {
	c, _ := newController(t, twoBlocks)
	assert.True(t, c.IsOverText(10, 10))
	assert.False(t, c.IsOverText(300, 10))
}

func TestController_HorizontalKeys(t *testing.T) {
	c, tree := newController(t, twoBlocks)
	a, b := textOf(t, tree, "a"), textOf(t, tree, "b")

	c.Press(9, 10, 1, false)
	c.Release()
	c.MoveRight(false)
	assert.Equal(t, Point{Box: a, Line: 0, Char: 1}, c.Focus)
	c.MoveRight(true)
	assert.Equal(t, Point{Box: a, Line: 0, Char: 5}, c.Focus)
	c.MoveRight(false)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 0}, c.Focus, "wraps onto the next line of the box")
	c.MoveLeft(false)
	assert.Equal(t, Point{Box: a, Line: 0, Char: 5}, c.Focus)
	assert.Equal(t, "hello", c.Text())

	c.Select(Point{Box: a}, Point{Box: a, Line: 1, Char: 9})
	c.MoveRight(false)
	assert.Equal(t, Point{Box: b, Line: 0, Char: 0}, c.Focus, "crosses into the next box")
	c.MoveLeft(false)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 9}, c.Focus)
	c.MoveLeft(true)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 6}, c.Focus)
}

func TestController_VerticalKeysKeepGoalColumn(t *testing.T) {
	c, tree := newController(t, twoBlocks)
	a, b := textOf(t, tree, "a"), textOf(t, tree, "b")

	c.Press(8+31, 10, 1, false)
	c.Release()
	require.Equal(t, Point{Box: a, Line: 0, Char: 3}, c.Focus)

	c.MoveDown()
	assert.Equal(t, Point{Box: a, Line: 1, Char: 3}, c.Focus)
	c.MoveDown()
	assert.Equal(t, Point{Box: b, Line: 0, Char: 3}, c.Focus)
	c.MoveDown()
	assert.Equal(t, Point{Box: b, Line: 0, Char: 10}, c.Focus, "no line below: document end")
	c.MoveUp()
	assert.Equal(t, Point{Box: a, Line: 1, Char: 3}, c.Focus, "the goal column survives the detour")

	c.MoveLeft(false)
	c.MoveUp()
	assert.Equal(t, Point{Box: a, Line: 0, Char: 2}, c.Focus, "a horizontal move resets the goal")
	c.MoveUp()
	assert.Equal(t, Point{Box: a, Line: 0, Char: 0}, c.Focus, "no line above: document start")
}

func TestController_SelectAllAndRebuild(t *testing.T) {
	c, _ := newController(t, twoBlocks)
	require.True(t, c.SelectAll())
	assert.Equal(t, "hello world foo\ndon't stop", c.Text())

	c.Rebuild(layoutHTML(t, `<div></div>`))
	assert.False(t, c.HasSelection)
	assert.False(t, c.SelectAll())
	c.MoveRight(false)
	assert.Equal(t, layout.NoBox, c.Focus.Box)
}
