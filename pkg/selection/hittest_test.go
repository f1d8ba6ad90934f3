package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxwright/pkg/html"
	"boxwright/pkg/layout"
)

func hitTester(tree *layout.Tree) HitTester {
	return HitTester{Tree: tree, Fonts: testFonts}
}

func TestHitTester_Exact(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	h := hitTester(tree)
	a := textOf(t, tree, "a")

	p, ok := h.Exact(8+21, 30)
	require.True(t, ok)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 2}, p)

	_, ok = h.Exact(300, 30)
	assert.False(t, ok, "right of every line")
}

func TestHitTester_BoxAt(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	h := hitTester(tree)

	id, ok := h.BoxAt(10, 10)
	require.True(t, ok)
	assert.True(t, tree.Box(id).IsText())

	id, ok = h.BoxAt(104, 10)
	require.True(t, ok)
	assert.Equal(t, tree.FindByID("a").ID, id, "inside the div but past its text")
}

func TestHitTester_VerticalRow(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	h := hitTester(tree)
	a := textOf(t, tree, "a")
	boxes := tree.TextBoxes()

	p, ok := h.Vertical(90, 10, boxes)
	require.True(t, ok)
	assert.Equal(t, Point{Box: a, Line: 0, Char: 5}, p, "right of the row snaps to its end")

	p, _ = h.Vertical(2, 30, boxes)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 0}, p, "left of the row snaps to its start")

	// Between the two lines of #a: nearest by vertical distance, and below it.
	p, _ = h.Vertical(50, 27.5, boxes)
	assert.Equal(t, Point{Box: a, Line: 0, Char: 5}, p)
}

func TestHitTester_VerticalGapMidpoint(t *testing.T) {
	doc, err := html.Parse(`<div><span>aaaa</span><span>bbbb</span></div>`)
	require.NoError(t, err)
	tree := layout.Build(doc.Root)
	var texts []layout.BoxID
	tree.Walk(tree.Root, func(b *layout.Box) bool {
		b.Style.Display = "block"
		b.Style.FontSize = 16
		if b.IsText() {
			texts = append(texts, b.ID)
		}
		return true
	})
	require.Len(t, texts, 2)
	tree.Box(texts[0]).Lines = []layout.TextLine{{Text: "aaaa", X: 0, Y: 0, Width: 40, Height: 20}}
	tree.Box(texts[1]).Lines = []layout.TextLine{{Text: "bbbb", X: 100, Y: 0, Width: 40, Height: 20}}

	h := hitTester(tree)
	p, ok := h.Vertical(60, 10, texts)
	require.True(t, ok)
	assert.Equal(t, Point{Box: texts[0], Line: 0, Char: 4}, p)

	p, _ = h.Vertical(80, 10, texts)
	assert.Equal(t, Point{Box: texts[1], Line: 0, Char: 0}, p)

	p, _ = h.Vertical(200, 10, texts)
	assert.Equal(t, Point{Box: texts[1], Line: 0, Char: 4}, p)

	// Left of every line on the row: the start of the first one.
	tree.Box(texts[0]).Lines[0].X = 100
	tree.Box(texts[1]).Lines[0].X = 200
	p, _ = h.Vertical(10, 10, texts)
	assert.Equal(t, Point{Box: texts[0], Line: 0, Char: 0}, p)
}

func TestHitTester_Nearest(t *testing.T) {
	tree := layoutHTML(t, twoBlocks)
	h := hitTester(tree)
	a, b := textOf(t, tree, "a"), textOf(t, tree, "b")
	boxes := tree.TextBoxes()

	p, ok := h.Nearest(500, 500, boxes)
	require.True(t, ok)
	assert.Equal(t, Point{Box: b, Line: 0, Char: len("don't stop")}, p)

	p, _ = h.Nearest(0, 30, boxes)
	assert.Equal(t, Point{Box: a, Line: 1, Char: 0}, p)

	_, ok = h.Nearest(0, 0, nil)
	assert.False(t, ok)

	_, ok = h.At(500, 500, boxes, false)
	assert.False(t, ok, "no exact hit and no fallback")
}

func TestHitTester_ScrolledContainer(t *testing.T) {
	tree := layoutHTML(t, `<div id="s" style="width:60px;height:20px;overflow:scroll">one two three four five six</div>`)
	s := tree.FindByID("s")
	require.True(t, s.IsScrollable())
	tb := s.Children[0]
	secondY := tree.Box(tb).Lines[1].Y

	require.True(t, tree.ScrollBy(s.ID, 0, 20))
	p, ok := hitTester(tree).Exact(10, secondY-20+1)
	require.True(t, ok)
	assert.Equal(t, 1, p.Line)
}

func TestLinkHref(t *testing.T) {
	doc, err := html.Parse(`<a id="l" href="/next"><b>go</b></a><a id="bare">x</a><p id="p">plain</p>`)
	require.NoError(t, err)
	tree := layout.Build(doc.Root)

	bold := tree.FindByID("l").Node.Children[0].Children[0]
	assert.Equal(t, "/next", LinkHref(bold))
	assert.Equal(t, "#", LinkHref(tree.FindByID("bare").Node))
	assert.Equal(t, "", LinkHref(tree.FindByID("p").Node.Children[0]))
	assert.Equal(t, "", LinkHref(nil))
}

func TestBlockRange(t *testing.T) {
	tree := layoutHTML(t, `<p id="p">one <b>two</b> three</p><p>other</p>`)
	boxes := tree.TextBoxes()
	p := tree.FindByID("p")
	bold := tree.Box(p.Children[1])
	two := bold.Children[0]

	first, last := BlockRange(tree, boxes, two)
	assert.Equal(t, "one", strings.TrimSpace(tree.Box(first).Text()))
	assert.Equal(t, "three", strings.TrimSpace(tree.Box(last).Text()))
}
