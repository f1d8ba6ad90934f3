package selection

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func runeAt(s string, i int) (rune, int) {
	return utf8.DecodeRuneInString(s[i:])
}

func runeBefore(s string, i int) (rune, int) {
	return utf8.DecodeLastRuneInString(s[:i])
}

// floorRune moves i back onto a rune boundary.
func floorRune(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func isApostrophe(r rune) bool { return r == '\'' || r == '’' }

// IsWordBoundary reports whether the rune at byte offset i separates
// words. Whitespace and punctuation do, except an apostrophe with a letter
// on each side. Offsets at or past the end are boundaries.
func IsWordBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, size := runeAt(s, i)
	if unicode.IsSpace(r) {
		return true
	}
	if isApostrophe(r) && i > 0 && i+size < len(s) {
		prev, _ := runeBefore(s, i)
		next, _ := runeAt(s, i+size)
		if unicode.IsLetter(prev) && unicode.IsLetter(next) {
			return false
		}
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// WordAt returns the byte range of the word around offset i, including any
// whitespace that follows it. On a boundary character only that character
// is returned.
func WordAt(s string, i int) (int, int) {
	if s == "" {
		return 0, 0
	}
	if i >= len(s) {
		_, size := runeBefore(s, len(s))
		i = len(s) - size
	}
	i = floorRune(s, max(0, i))
	if IsWordBoundary(s, i) {
		_, size := runeAt(s, i)
		return i, i + size
	}

	start := i
	for start > 0 {
		_, size := runeBefore(s, start)
		if IsWordBoundary(s, start-size) {
			break
		}
		start -= size
	}
	end := i
	for end < len(s) && !IsWordBoundary(s, end) {
		_, size := runeAt(s, end)
		end += size
	}
	for end < len(s) {
		r, size := runeAt(s, end)
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return start, end
}

// NextWordEnd returns the offset just past the next word at or after i,
// or len(s) when there is none.
func NextWordEnd(s string, i int) int {
	for i < len(s) && IsWordBoundary(s, i) {
		i = nextRune(s, i)
	}
	for i < len(s) && !IsWordBoundary(s, i) {
		i = nextRune(s, i)
	}
	return i
}

// PrevWordStart returns the start of the word before i.
func PrevWordStart(s string, i int) int {
	i = min(i, len(s))
	for i > 0 && IsWordBoundary(s, prevRune(s, i)) {
		i = prevRune(s, i)
	}
	for i > 0 && !IsWordBoundary(s, prevRune(s, i)) {
		i = prevRune(s, i)
	}
	return i
}

// nextRune and prevRune step one character.
func nextRune(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	_, size := runeAt(s, i)
	return i + size
}

func prevRune(s string, i int) int {
	if i <= 0 {
		return 0
	}
	_, size := runeBefore(s, min(i, len(s)))
	return min(i, len(s)) - size
}

func skipLeadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

func trimTrailingSpace(s string) int {
	return len(strings.TrimRight(s, " \t"))
}
