package css

import (
	"regexp"
	"strings"
)

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations *Style
	Order        int // position in the sheet, for stable cascade ordering
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

var commentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

// ParseStylesheet parses stylesheet text into rules. Malformed rules and
// at-rule blocks are skipped.
func ParseStylesheet(cssText string) *Stylesheet {
	sheet := &Stylesheet{Rules: make([]Rule, 0)}
	cssText = commentPattern.ReplaceAllString(cssText, "")

	for _, block := range splitRules(cssText) {
		brace := strings.IndexByte(block, '{')
		if brace < 0 {
			continue
		}
		prelude := strings.TrimSpace(block[:brace])
		if prelude == "" || strings.HasPrefix(prelude, "@") {
			continue
		}
		body := block[brace+1:]
		body = strings.TrimSuffix(strings.TrimSpace(body), "}")

		decls := NewStyle()
		parseDeclarationsInto(decls, body)
		for _, sel := range SplitSelectorGroup(prelude) {
			parsed := ParseSelector(sel)
			if len(parsed.Parts) == 0 {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{
				Selector:     parsed,
				Declarations: decls,
				Order:        len(sheet.Rules),
			})
		}
	}
	return sheet
}

// splitRules splits CSS into top-level "prelude { body }" blocks. Nested
// blocks (as inside @media) stay inside their parent block.
func splitRules(cssText string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0
	for i := 0; i < len(cssText); i++ {
		switch cssText[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				start = i + 1
				continue
			}
			depth--
			if depth == 0 {
				if rule := strings.TrimSpace(cssText[start : i+1]); rule != "" {
					rules = append(rules, rule)
				}
				start = i + 1
			}
		case ';':
			// Statement at-rules such as @import end at a semicolon.
			if depth == 0 && strings.HasPrefix(strings.TrimSpace(cssText[start:i]), "@") {
				start = i + 1
			}
		}
	}
	return rules
}
