package html

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds a Document from markup. Tokenization and tree construction
// follow the HTML5 algorithm; the result is then folded into our node tree:
// <style> and <script> bodies move into the Document, comments and doctypes
// are dropped, and text whitespace is collapsed.
func Parse(markup string) (*Document, error) {
	return ParseReader(strings.NewReader(markup))
}

func ParseReader(r io.Reader) (*Document, error) {
	src, err := xhtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := NewDocument()
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		convertNode(doc, doc.Root, c)
	}
	return doc, nil
}

// ParseFragment parses markup in a <body> context and returns the top-level
// nodes, detached. Style and script bodies inside the fragment are dropped.
func ParseFragment(markup string) ([]*Node, error) {
	context := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	srcs, err := xhtml.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	scratch := NewDocument()
	for _, src := range srcs {
		convertNode(scratch, scratch.Root, src)
	}
	nodes := append([]*Node(nil), scratch.Root.Children...)
	for _, n := range nodes {
		n.Parent = nil
	}
	return nodes, nil
}

func convertNode(doc *Document, parent *Node, src *xhtml.Node) {
	switch src.Type {
	case xhtml.ElementNode:
		switch src.Data {
		case "style":
			doc.Stylesheets = append(doc.Stylesheets, rawText(src))
			return
		case "script":
			if _, external := attr(src, "src"); !external {
				doc.Scripts = append(doc.Scripts, rawText(src))
			}
			return
		}
		el := NewElement(src.Data)
		for _, a := range src.Attr {
			el.Attributes[strings.ToLower(a.Key)] = a.Val
		}
		parent.AddChild(el)
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			convertNode(doc, el, c)
		}
	case xhtml.TextNode:
		if text := collapseWhitespace(src.Data); text != "" {
			parent.AddChild(NewText(text))
		}
	case xhtml.DocumentNode:
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			convertNode(doc, parent, c)
		}
	}
}

func attr(n *xhtml.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func rawText(n *xhtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// collapseWhitespace folds whitespace runs into single spaces. Whitespace-only
// text yields "". A single boundary space is kept on each side that had
// whitespace so inline flow keeps word separation between siblings.
func collapseWhitespace(s string) string {
	inner := strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
	if inner == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(inner) + 2)
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(r) {
		sb.WriteByte(' ')
	}
	sb.WriteString(inner)
	if r, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(r) {
		sb.WriteByte(' ')
	}
	return sb.String()
}
