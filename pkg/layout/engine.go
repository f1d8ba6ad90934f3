package layout

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
	"boxwright/pkg/text"
)

var defaultFonts = sync.OnceValue(func() text.Fonts { return text.DefaultRegistry() })

// LayoutEngine lays out box trees for a viewport.
type LayoutEngine struct {
	viewport css.Viewport
	fonts    text.Fonts
	logger   *zap.Logger
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	return &LayoutEngine{
		viewport: css.Viewport{Width: viewportWidth, Height: viewportHeight},
		logger:   zap.NewNop(),
	}
}

// SetFonts replaces the font oracle. The bundled Go fonts are used when
// none is set.
func (le *LayoutEngine) SetFonts(fonts text.Fonts) {
	le.fonts = fonts
}

func (le *LayoutEngine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	le.logger = logger
}

// SetViewport changes the viewport size used by the next layout.
func (le *LayoutEngine) SetViewport(width, height float64) {
	le.viewport = css.Viewport{Width: width, Height: height}
}

func (le *LayoutEngine) Viewport() css.Viewport { return le.viewport }

func (le *LayoutEngine) Fonts() text.Fonts {
	if le.fonts == nil {
		return defaultFonts()
	}
	return le.fonts
}

// Layout builds the box tree for doc and lays it out.
func (le *LayoutEngine) Layout(doc *html.Document) *Tree {
	tree := Build(doc.Root)
	le.LayoutTree(tree, css.CascadeForDocument(doc))
	return tree
}

// LayoutTree lays out an existing tree again, for instance after a
// viewport change. Scroll offsets survive, clamped to the new extents.
func (le *LayoutEngine) LayoutTree(tree *Tree, cascade *css.Cascade) {
	if tree.Root == NoBox {
		return
	}
	start := time.Now()
	p := &pass{
		tree:    tree,
		cascade: cascade,
		fonts:   le.Fonts(),
		vp:      le.viewport,
		log:     le.logger,
	}
	p.layout(tree.Root, 0, 0, le.viewport.Width, false, nil)
	le.logger.Debug("layout complete",
		zap.Int("boxes", len(tree.Boxes)),
		zap.Float64("viewport_width", le.viewport.Width),
		zap.Float64("height", tree.Boxes[tree.Root].Frame.Height),
		zap.Duration("elapsed", time.Since(start)))
}

// pass carries the state of one layout run.
type pass struct {
	tree    *Tree
	cascade *css.Cascade
	fonts   text.Fonts
	vp      css.Viewport
	log     *zap.Logger
}

func (p *pass) box(id BoxID) *Box { return &p.tree.Boxes[id] }

func (p *pass) face(cs *css.ComputedStyle) text.Face {
	return text.FontFor(p.fonts, cs)
}
