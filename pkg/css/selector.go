package css

import (
	"strings"

	"boxwright/pkg/html"
)

// SelectorPart is one compound selector: tag.class#id.
type SelectorPart struct {
	Element string
	ID      string
	Classes []string
	// Pseudo-classes and attribute selectors are outside the supported
	// subset; a part carrying one never matches.
	Unsupported bool
}

// Specificity is compared as (ids, classes, tags).
type Specificity [3]int

func (s Specificity) Less(o Specificity) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

// Selector is a chain of compound parts joined by descendant combinators.
// Child and sibling combinators are accepted and matched as descendants.
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Specificity Specificity
}

// SplitSelectorGroup splits "a, b.c" into its member selectors.
func SplitSelectorGroup(group string) []string {
	var out []string
	for _, s := range strings.Split(group, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseSelector parses one selector of a group.
func ParseSelector(raw string) Selector {
	sel := Selector{Raw: strings.TrimSpace(raw)}
	spaced := strings.NewReplacer(">", " ", "+", " ", "~", " ").Replace(sel.Raw)
	for _, token := range strings.Fields(spaced) {
		part := parseSelectorPart(token)
		sel.Parts = append(sel.Parts, part)
		if part.ID != "" {
			sel.Specificity[0]++
		}
		sel.Specificity[1] += len(part.Classes)
		if part.Element != "" && part.Element != "*" {
			sel.Specificity[2]++
		}
	}
	return sel
}

func parseSelectorPart(token string) SelectorPart {
	var part SelectorPart
	if i := strings.IndexAny(token, ":["); i >= 0 {
		part.Unsupported = true
		token = token[:i]
	}
	mark := byte(0)
	start := 0
	flush := func(end int) {
		name := token[start:end]
		if name == "" {
			return
		}
		switch mark {
		case 0:
			part.Element = strings.ToLower(name)
		case '.':
			part.Classes = append(part.Classes, name)
		case '#':
			part.ID = name
		}
	}
	for i := 0; i < len(token); i++ {
		if token[i] == '.' || token[i] == '#' {
			flush(i)
			mark = token[i]
			start = i + 1
		}
	}
	flush(len(token))
	return part
}

// MatchesSelector returns true if the node matches the selector. The
// rightmost part must match the node itself; the remaining parts are
// matched right to left against its ancestors, nearest first.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node == nil || node.Type != html.ElementNode || len(selector.Parts) == 0 {
		return false
	}
	last := len(selector.Parts) - 1
	if !matchesSelectorPart(node, selector.Parts[last]) {
		return false
	}
	i := last - 1
	for ancestor := node.Parent; ancestor != nil && i >= 0; ancestor = ancestor.Parent {
		if ancestor.Type == html.ElementNode && matchesSelectorPart(ancestor, selector.Parts[i]) {
			i--
		}
	}
	return i < 0
}

// matchesSelectorPart checks if a node matches a single selector part
func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Unsupported {
		return false
	}
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}
	if len(part.Classes) > 0 {
		classAttr, _ := node.GetAttribute("class")
		nodeClasses := strings.Fields(classAttr)
		for _, required := range part.Classes {
			found := false
			for _, c := range nodeClasses {
				if c == required {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}
