package css

import "testing"

func TestParseInlineStyle_BoxShorthand(t *testing.T) {
	tests := []struct {
		value                    string
		top, right, bottom, left string
	}{
		{"10px", "10px", "10px", "10px", "10px"},
		{"10px 20px", "10px", "20px", "10px", "20px"},
		{"1px 2px 3px", "1px", "2px", "3px", "2px"},
		{"1px 2px 3px 4px", "1px", "2px", "3px", "4px"},
	}
	for _, tt := range tests {
		style := ParseInlineStyle("margin: " + tt.value)
		got := [4]string{}
		for i, side := range sides {
			got[i], _ = style.Get("margin-" + side)
		}
		want := [4]string{tt.top, tt.right, tt.bottom, tt.left}
		if got != want {
			t.Errorf("margin: %s expanded to %v, want %v", tt.value, got, want)
		}
	}
}

func TestParseInlineStyle_SourceOrderWins(t *testing.T) {
	style := ParseInlineStyle("margin-top: 5px; margin: 1px; padding: 2px; padding-left: 9px")
	if v, _ := style.Get("margin-top"); v != "1px" {
		t.Errorf("expected shorthand to override earlier longhand, got %q", v)
	}
	if v, _ := style.Get("padding-left"); v != "9px" {
		t.Errorf("expected later longhand to override shorthand, got %q", v)
	}
}

func TestParseInlineStyle_Border(t *testing.T) {
	style := ParseInlineStyle("border: solid 2px red; border-left: none")
	if v, _ := style.Get("border-top-width"); v != "2px" {
		t.Errorf("border-top-width = %q, want 2px", v)
	}
	if v, _ := style.Get("border-top-color"); v != "red" {
		t.Errorf("border-top-color = %q, want red", v)
	}
	if v, _ := style.Get("border-left-width"); v != "0px" {
		t.Errorf("border-left-width = %q, want 0px", v)
	}
}

func TestParseInlineStyle_LogicalAndFlex(t *testing.T) {
	style := ParseInlineStyle("margin-block-start: 3px; padding-inline-end: 4px; flex: 2")
	if v, _ := style.Get("margin-top"); v != "3px" {
		t.Errorf("margin-top = %q", v)
	}
	if v, _ := style.Get("padding-right"); v != "4px" {
		t.Errorf("padding-right = %q", v)
	}
	if v, _ := style.Get("flex-grow"); v != "2" {
		t.Errorf("flex-grow = %q", v)
	}
	if v, _ := style.Get("flex-basis"); v != "0px" {
		t.Errorf("flex-basis = %q", v)
	}
}

func TestComputedStyle_Apply(t *testing.T) {
	cs := DefaultStyle()
	cs.Apply(ParseInlineStyle(`display: flex; font-size: 20px; line-height: 30px; font-weight: 700;
		font-style: oblique; color: #ff0000; width: 50%; box-sizing: border-box; overflow: auto;
		user-select: none; vertical-align: middle; gap: 4px; flex-wrap: wrap; text-align: center`))

	if cs.Display != DisplayFlex {
		t.Errorf("Display = %v", cs.Display)
	}
	if cs.FontSize != 20 || cs.LineHeight != 1.5 {
		t.Errorf("FontSize/LineHeight = %v/%v, want 20/1.5", cs.FontSize, cs.LineHeight)
	}
	if cs.FontWeight != FontWeightBold || cs.FontStyle != FontStyleItalic {
		t.Errorf("weight/style = %v/%v", cs.FontWeight, cs.FontStyle)
	}
	if cs.Color != (Color{255, 0, 0, 1}) {
		t.Errorf("Color = %+v", cs.Color)
	}
	if cs.Width != (Value{50, Percent}) || cs.BoxSizing != BorderBox {
		t.Errorf("Width/BoxSizing = %+v/%v", cs.Width, cs.BoxSizing)
	}
	if !cs.IsScrollContainer() || cs.UserSelect != UserSelectNone || cs.VerticalAlign != VerticalAlignMiddle {
		t.Errorf("overflow/user-select/vertical-align not applied: %+v", cs)
	}
	if cs.Gap != 4 || cs.FlexWrap != "wrap" || cs.TextAlign != TextAlignCenter {
		t.Errorf("gap/wrap/align = %v/%v/%v", cs.Gap, cs.FlexWrap, cs.TextAlign)
	}
}

func TestComputedStyle_MonospaceShrinksDefaultSize(t *testing.T) {
	cs := DefaultStyle()
	cs.Apply(ParseInlineStyle("font-family: monospace"))
	if cs.FontSize != 13 {
		t.Errorf("expected monospace default size 13, got %v", cs.FontSize)
	}

	cs = DefaultStyle()
	cs.Apply(ParseInlineStyle("font-family: monospace; font-size: 18px"))
	if cs.FontSize != 18 {
		t.Errorf("explicit font-size should win, got %v", cs.FontSize)
	}
}

func TestComputedStyle_DisplayNoneIsHidden(t *testing.T) {
	cs := DefaultStyle()
	cs.Apply(ParseInlineStyle("display: none"))
	if cs.Display != DisplayHidden {
		t.Errorf("Display = %v, want hidden", cs.Display)
	}
	cs.Apply(ParseInlineStyle("display: marquee"))
	if cs.Display != DisplayHidden {
		t.Errorf("unknown display should keep previous value, got %v", cs.Display)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Color{255, 0, 0, 1}},
		{"RebeccaPurple", Color{0x66, 0x33, 0x99, 1}},
		{"transparent", Transparent},
		{"#0f0", Color{0, 255, 0, 1}},
		{"#00ff0080", Color{0, 255, 0, 128.0 / 255}},
		{"rgb(10, 20, 30)", Color{10, 20, 30, 1}},
		{"rgba(255, 0, 0, 0.5)", Color{255, 0, 0, 0.5}},
		{"rgb(100%, 0%, 0%)", Color{255, 0, 0, 1}},
		{"hsl(120, 100%, 50%)", Color{0, 255, 0, 1}},
		{"hsl(0, 0%, 100%)", Color{255, 255, 255, 1}},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, %v; want %+v", tt.in, got, ok, tt.want)
		}
	}
	for _, bad := range []string{"", "notacolor", "#12", "rgb(1,2)"} {
		if _, ok := ParseColor(bad); ok {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}
