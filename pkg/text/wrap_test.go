package text

import (
	"reflect"
	"strings"
	"testing"
)

var tenPx = FixedFace{Advance: 10}

func TestWrap_GreedyPacking(t *testing.T) {
	lines := Wrap(tenPx, "hello world foo", 16, 120)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Text != "hello world" || lines[0].Width != 110 {
		t.Errorf("line 0 = %+v, want 'hello world' 110px", lines[0])
	}
	if lines[1].Text != "foo" || lines[1].Width != 30 || lines[1].Start != 12 {
		t.Errorf("line 1 = %+v, want 'foo' 30px at offset 12", lines[1])
	}
}

func TestWrap_FitsOnOneLine(t *testing.T) {
	lines := Wrap(tenPx, "short", 16, 100)
	if len(lines) != 1 || lines[0].Text != "short" || lines[0].Width != 50 {
		t.Errorf("unexpected lines: %+v", lines)
	}
}

func TestWrap_NoLineExceedsWidthExceptLoneTokens(t *testing.T) {
	s := "a quick brown fox jumps over the extraordinarily lazy dog"
	for _, width := range []float64{30, 55, 80, 120, 200} {
		for _, line := range Wrap(tenPx, s, 16, width) {
			if line.Width > width && strings.Contains(line.Text, " ") {
				t.Errorf("width %v: line %q (%vpx) overflows", width, line.Text, line.Width)
			}
			if s[line.Start:line.Start+len(line.Text)] != line.Text {
				t.Errorf("width %v: line %q does not start at offset %d", width, line.Text, line.Start)
			}
		}
	}
}

func TestWrap_DegenerateWidth(t *testing.T) {
	lines := Wrap(tenPx, "no wrapping here at all", 16, 0)
	if len(lines) != 1 {
		t.Errorf("non-positive width should not wrap, got %d lines", len(lines))
	}
	if Wrap(nil, "x", 16, 100) != nil || Wrap(tenPx, "", 16, 100) != nil {
		t.Errorf("nil face or empty text should produce no lines")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", " ", "world"}},
		{"a,b, c", []string{"a,", "b,", " ", "c"}},
		{"end,", []string{"end,"}},
		{"well-known fact", []string{"well-", "known", " ", "fact"}},
		{"-x", []string{"-x"}},
		{"x- y", []string{"x-", " ", "y"}},
		{"  ", []string{" ", " "}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if strings.Join(got, "") != tt.in {
			t.Errorf("Tokenize(%q) tokens do not concatenate back", tt.in)
		}
	}
}

func TestIsPunctuationOnly(t *testing.T) {
	for _, s := range []string{".", "!?", `"),`, "-"} {
		if !IsPunctuationOnly(s) {
			t.Errorf("IsPunctuationOnly(%q) = false", s)
		}
	}
	for _, s := range []string{"", "a.", " ", "x"} {
		if IsPunctuationOnly(s) {
			t.Errorf("IsPunctuationOnly(%q) = true", s)
		}
	}
}
