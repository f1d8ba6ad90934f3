package visualtest

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"boxwright/pkg/html"
	"boxwright/pkg/render"
	"boxwright/pkg/resource"
	"boxwright/pkg/text"
)

// Size is the viewport reftests render at.
var Size = image.Pt(400, 400)

var fonts = text.DefaultRegistry()

// RenderMarkup lays out and paints markup. Relative stylesheet and image
// references resolve against baseDir; with an empty baseDir they fail.
func RenderMarkup(ctx context.Context, markup, baseDir string, size image.Point) (*image.RGBA, error) {
	var f resource.Fetcher
	url := "about:blank"
	if baseDir != "" {
		url = filepath.Join(baseDir, "index.html")
		f = resource.NewFetcher(url)
	}
	page, err := resource.FromBytes(ctx, f, url, []byte(markup), resource.Options{
		Width:  float64(size.X),
		Height: float64(size.Y),
		Fonts:  fonts,
	})
	if err != nil {
		return nil, err
	}
	target := image.NewRGBA(image.Rectangle{Max: size})
	r := render.NewRendererForImage(target, fonts)
	r.SetImages(page.Images)
	r.Render(page.Tree, nil)
	return target, nil
}

// RenderFile renders the document at path.
func RenderFile(ctx context.Context, path string, size image.Point) (*image.RGBA, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return RenderMarkup(ctx, string(b), filepath.Dir(path), size)
}

// RefLink returns the href of the first <link rel="match"> in markup.
func RefLink(markup string) string {
	doc, err := html.Parse(markup)
	if err != nil {
		return ""
	}
	var href string
	doc.Root.Walk(func(n *html.Node) bool {
		if href != "" {
			return false
		}
		if n.IsElement("link") {
			rel, _ := n.GetAttribute("rel")
			if strings.EqualFold(strings.TrimSpace(rel), "match") {
				href, _ = n.GetAttribute("href")
			}
		}
		return true
	})
	return href
}

// Reftest renders the test at path and the reference it links to, then
// compares them. The returned paths name the reference for reporting.
func Reftest(ctx context.Context, path string, opts Options) (*Result, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	ref := RefLink(string(b))
	if ref == "" {
		return nil, "", fmt.Errorf("%s: no <link rel=\"match\">", path)
	}
	refPath := filepath.Join(filepath.Dir(path), ref)

	actual, err := RenderMarkup(ctx, string(b), filepath.Dir(path), Size)
	if err != nil {
		return nil, refPath, fmt.Errorf("rendering %s: %w", path, err)
	}
	expected, err := RenderFile(ctx, refPath, Size)
	if err != nil {
		return nil, refPath, fmt.Errorf("rendering %s: %w", refPath, err)
	}
	res, err := Compare(actual, expected, opts)
	return res, refPath, err
}
