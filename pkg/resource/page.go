package resource

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
	"boxwright/pkg/images"
	"boxwright/pkg/layout"
	"boxwright/pkg/script"
	"boxwright/pkg/text"
)

// Options configure how a page is loaded.
type Options struct {
	Width, Height float64
	Fonts         text.Fonts
	// RunScripts executes inline scripts between parsing and layout.
	RunScripts    bool
	ScriptTimeout time.Duration
	Logger        *zap.Logger
}

// Page is a parsed, laid-out document.
type Page struct {
	URL    string
	Doc    *html.Document
	Tree   *layout.Tree
	Images *images.Cache

	engine  *layout.LayoutEngine
	cascade *css.Cascade
	logger  *zap.Logger
}

// Load fetches uri and builds its page.
func Load(ctx context.Context, f *DefaultFetcher, uri string, opts Options) (*Page, error) {
	body, _, err := f.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", uri, err)
	}
	base := uri
	if f.Base() != "" {
		base = ResolveURL(f.Base(), uri)
	}
	return FromBytes(ctx, f.WithBase(base), base, body, opts)
}

// FromBytes builds a page from markup. Subresources resolve through f,
// which may be nil to disable external stylesheets and images.
func FromBytes(ctx context.Context, f Fetcher, url string, markup []byte, opts Options) (*Page, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	doc, err := html.ParseReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	p := &Page{URL: url, Doc: doc, logger: logger}

	if f != nil {
		p.linkStylesheets(ctx, f)
		p.Images = images.NewCache(func(uri string) ([]byte, error) {
			b, _, err := f.Fetch(ctx, uri)
			return b, err
		})
	} else {
		p.Images = images.NewCache(func(string) ([]byte, error) {
			return nil, fmt.Errorf("no fetcher configured")
		})
	}

	if opts.RunScripts && len(doc.Scripts) > 0 {
		timeout := opts.ScriptTimeout
		if timeout == 0 {
			timeout = script.DefaultTimeout
		}
		engine := script.New(script.WithLogger(logger.Named("script")), script.WithTimeout(timeout))
		if err := engine.Execute(ctx, doc); err != nil {
			// A failing script leaves the document as far as it got.
			logger.Warn("script failed", zap.String("url", url), zap.Error(err))
		}
	}

	p.engine = layout.NewLayoutEngine(opts.Width, opts.Height)
	p.engine.SetLogger(logger.Named("layout"))
	if opts.Fonts != nil {
		p.engine.SetFonts(opts.Fonts)
	}
	p.cascade = css.CascadeForDocument(doc)
	p.Tree = layout.Build(doc.Root)
	p.engine.LayoutTree(p.Tree, p.cascade)
	return p, nil
}

// linkStylesheets appends <link rel=stylesheet> sheets after the inline
// ones. A sheet that cannot be fetched is skipped.
func (p *Page) linkStylesheets(ctx context.Context, f Fetcher) {
	p.Doc.Root.Walk(func(n *html.Node) bool {
		if !n.IsElement("link") {
			return true
		}
		rel, _ := n.GetAttribute("rel")
		href, ok := n.GetAttribute("href")
		if !ok || !strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
			return false
		}
		body, contentType, err := f.Fetch(ctx, href)
		if err != nil {
			p.logger.Warn("stylesheet unavailable", zap.String("href", href), zap.Error(err))
			return false
		}
		ct := strings.ToLower(contentType)
		if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
			p.logger.Warn("unexpected stylesheet content type",
				zap.String("href", href), zap.String("content_type", contentType))
			return false
		}
		p.Doc.Stylesheets = append(p.Doc.Stylesheets, string(body))
		return false
	})
}

func (p *Page) Fonts() text.Fonts { return p.engine.Fonts() }

func (p *Page) Viewport() css.Viewport { return p.engine.Viewport() }

// Resize lays the page out again for a new viewport. Scroll offsets are
// kept, clamped to the new extents.
func (p *Page) Resize(width, height float64) {
	p.engine.SetViewport(width, height)
	p.engine.LayoutTree(p.Tree, p.cascade)
}

// ContentSize returns the extent of the laid-out document.
func (p *Page) ContentSize() (width, height float64) {
	root := p.Tree.Box(p.Tree.Root)
	if root == nil {
		return 0, 0
	}
	return root.Frame.Right(), root.Frame.Bottom()
}
