package css

import (
	_ "embed"
	"sort"
	"strings"

	"boxwright/pkg/html"
)

//go:embed useragent.css
var userAgentCSS string

var userAgentSheet = ParseStylesheet(userAgentCSS)

// UserAgentStylesheet returns the built-in default stylesheet.
func UserAgentStylesheet() *Stylesheet { return userAgentSheet }

// Cascade computes styles for nodes from the user-agent sheet, a set of
// author sheets, and inline style attributes.
type Cascade struct {
	userAgent *Stylesheet
	author    []*Stylesheet
}

// NewCascade builds a cascade over the given author sheets.
func NewCascade(author ...*Stylesheet) *Cascade {
	return &Cascade{userAgent: userAgentSheet, author: author}
}

// CascadeForDocument parses every <style> block of doc.
func CascadeForDocument(doc *html.Document) *Cascade {
	sheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, text := range doc.Stylesheets {
		sheets = append(sheets, ParseStylesheet(text))
	}
	return NewCascade(sheets...)
}

type matchedRule struct {
	rule  Rule
	sheet int
}

// Declarations returns the merged declaration block for node: user-agent
// rules in source order, then author rules by ascending specificity (source
// order breaks ties), then the inline style attribute.
func (c *Cascade) Declarations(node *html.Node) *Style {
	final := NewStyle()
	if node == nil || node.Type != html.ElementNode {
		return final
	}

	for _, rule := range c.userAgent.Rules {
		if MatchesSelector(node, rule.Selector) {
			final.Merge(rule.Declarations)
		}
	}

	matches := make([]matchedRule, 0)
	for i, sheet := range c.author {
		for _, rule := range sheet.Rules {
			if MatchesSelector(node, rule.Selector) {
				matches = append(matches, matchedRule{rule: rule, sheet: i})
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rule.Selector.Specificity.Less(matches[j].rule.Selector.Specificity)
	})
	for _, m := range matches {
		final.Merge(m.rule.Declarations)
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		final.Merge(ParseInlineStyle(styleAttr))
	}
	return final
}

// ComputeStyle returns the style of node before inheritance. Text and
// document nodes get the initial values; inheritance is applied by layout,
// which knows the parent's resolved style.
func (c *Cascade) ComputeStyle(node *html.Node) ComputedStyle {
	cs := DefaultStyle()
	if node != nil && node.Type == html.ElementNode {
		cs.Apply(c.Declarations(node))
	}
	return cs
}

// InlineStyleMentions reports whether property appears anywhere in node's
// style attribute text. This is a plain substring test: "background-color"
// mentions "color".
func InlineStyleMentions(node *html.Node, property string) bool {
	if node == nil {
		return false
	}
	styleAttr, ok := node.GetAttribute("style")
	return ok && strings.Contains(styleAttr, property)
}
