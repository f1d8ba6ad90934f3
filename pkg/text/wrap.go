package text

import "strings"

// UnboundedWidth stands in for a missing or non-positive wrap width.
const UnboundedWidth = 10000

// Segment is one wrapped line of a string.
type Segment struct {
	Text  string
	Start int // byte offset of Text within the wrapped string
	Width float64
}

// Wrap greedily breaks s into lines no wider than maxWidth. Spaces are the
// only break points; a line always takes at least one token, so a token
// wider than maxWidth sits alone on its own line. Trailing spaces are
// trimmed from every line and a space that caused a break is dropped.
func Wrap(face Face, s string, fontSize, maxWidth float64) []Segment {
	if face == nil || s == "" {
		return nil
	}
	if maxWidth <= 0 {
		maxWidth = UnboundedWidth
	}
	if w := face.MeasureWidth(s, fontSize); w <= maxWidth {
		return []Segment{{Text: s, Start: 0, Width: w}}
	}

	var lines []Segment
	line, start := "", 0
	finish := func() {
		trimmed := strings.TrimRight(line, " ")
		if trimmed != "" {
			lines = append(lines, Segment{Text: trimmed, Start: start, Width: face.MeasureWidth(trimmed, fontSize)})
		}
	}

	offset := 0
	for _, tok := range splitSpaces(s) {
		if line == "" || face.MeasureWidth(line+tok, fontSize) <= maxWidth {
			if line == "" {
				start = offset
			}
			line += tok
		} else {
			finish()
			if tok == " " {
				line, start = "", offset+len(tok)
			} else {
				line, start = tok, offset
			}
		}
		offset += len(tok)
	}
	finish()
	return lines
}

// splitSpaces splits s into words and single-space tokens.
func splitSpaces(s string) []string {
	var tokens []string
	word := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if i > word {
				tokens = append(tokens, s[word:i])
			}
			tokens = append(tokens, " ")
			word = i + 1
		}
	}
	if word < len(s) {
		tokens = append(tokens, s[word:])
	}
	return tokens
}

// Tokenize splits inline text into wrap tokens. Every space is its own
// token; a comma ends the token it belongs to; a hyphen inside a word ends
// its token so compounds can break after it. Concatenating the tokens gives
// back s.
func Tokenize(s string) []string {
	var tokens []string
	start := 0
	push := func(end int) {
		if end > start {
			tokens = append(tokens, s[start:end])
		}
		start = end
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			push(i)
			push(i + 1)
		case ',':
			if i+1 < len(s) {
				push(i + 1)
			}
		case '-':
			if i > start && i+1 < len(s) && s[i+1] != ' ' {
				push(i + 1)
			}
		}
	}
	push(len(s))
	return tokens
}

// IsPunctuationOnly reports whether s is non-empty and made only of
// closing punctuation, which may not begin a line.
func IsPunctuationOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(`,.;:!?)]}"'-`, rune(s[i])) {
			return false
		}
	}
	return true
}
