package text

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"boxwright/pkg/css"
)

// FontConfig holds optional paths to TrueType files. Empty entries use the
// bundled Go fonts.
type FontConfig struct {
	Regular    string `mapstructure:"regular" yaml:"regular"`
	Bold       string `mapstructure:"bold" yaml:"bold"`
	Italic     string `mapstructure:"italic" yaml:"italic"`
	BoldItalic string `mapstructure:"bold_italic" yaml:"bold_italic"`
	Monospace  string `mapstructure:"monospace" yaml:"monospace"`
	MonoBold   string `mapstructure:"mono_bold" yaml:"mono_bold"`
}

type variant int

const (
	variantRegular variant = iota
	variantBold
	variantItalic
	variantBoldItalic
	variantMono
	variantMonoBold
	variantCount
)

func pickVariant(mono, bold, italic bool) variant {
	switch {
	case mono && bold:
		return variantMonoBold
	case mono:
		return variantMono
	case bold && italic:
		return variantBoldItalic
	case bold:
		return variantBold
	case italic:
		return variantItalic
	}
	return variantRegular
}

// TrueTypeFace measures with unhinted advances straight from the font's
// horizontal metrics, so widths are independent of rasterizer hinting.
type TrueTypeFace struct {
	font *truetype.Font

	mu    sync.Mutex
	sized map[float64]font.Face
}

func newTrueTypeFace(f *truetype.Font) *TrueTypeFace {
	return &TrueTypeFace{font: f, sized: make(map[float64]font.Face)}
}

func (f *TrueTypeFace) advance(r rune, fontSize float64) float64 {
	scale := fixed.Int26_6(fontSize * 64)
	return float64(f.font.HMetric(scale, f.font.Index(r)).AdvanceWidth) / 64
}

func (f *TrueTypeFace) MeasureWidth(text string, fontSize float64) float64 {
	return measure(f.advance, text, fontSize)
}

func (f *TrueTypeFace) HitTestOffset(text string, localX, fontSize float64) int {
	return hitTest(f.advance, text, localX, fontSize)
}

func (f *TrueTypeFace) PositionAtOffset(text string, offset int, fontSize float64) float64 {
	return positionAt(f.advance, text, offset, fontSize)
}

// Sized returns a rasterizable face at fontSize for painting.
func (f *TrueTypeFace) Sized(fontSize float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.sized[fontSize]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingNone})
	f.sized[fontSize] = face
	return face
}

// Registry is the font oracle backed by TrueType fonts.
type Registry struct {
	faces [variantCount]*TrueTypeFace
}

var bundled = [variantCount][]byte{
	variantRegular:    goregular.TTF,
	variantBold:       gobold.TTF,
	variantItalic:     goitalic.TTF,
	variantBoldItalic: gobolditalic.TTF,
	variantMono:       gomono.TTF,
	variantMonoBold:   gomonobold.TTF,
}

// NewRegistry loads the fonts named by cfg, using the bundled Go fonts for
// any variant without a path.
func NewRegistry(cfg FontConfig) (*Registry, error) {
	paths := [variantCount]string{
		variantRegular:    cfg.Regular,
		variantBold:       cfg.Bold,
		variantItalic:     cfg.Italic,
		variantBoldItalic: cfg.BoldItalic,
		variantMono:       cfg.Monospace,
		variantMonoBold:   cfg.MonoBold,
	}
	r := &Registry{}
	for v := variant(0); v < variantCount; v++ {
		data := bundled[v]
		if paths[v] != "" {
			b, err := os.ReadFile(paths[v])
			if err != nil {
				return nil, fmt.Errorf("read font %s: %w", paths[v], err)
			}
			data = b
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font variant %d: %w", v, err)
		}
		r.faces[v] = newTrueTypeFace(f)
	}
	return r, nil
}

// DefaultRegistry returns a registry of the bundled Go fonts.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(FontConfig{})
	if err != nil {
		// The bundled fonts are compiled in; failing to parse them is a build defect.
		panic(err)
	}
	return r
}

func isMonoFamily(family string) bool {
	first := strings.ToLower(strings.TrimSpace(strings.Split(family, ",")[0]))
	first = strings.Trim(first, `"'`)
	return strings.Contains(first, "mono") || strings.Contains(first, "courier") || first == "consolas"
}

func (r *Registry) face(family string, weight css.FontWeight, style css.FontStyle) *TrueTypeFace {
	return r.faces[pickVariant(isMonoFamily(family), weight == css.FontWeightBold, style == css.FontStyleItalic)]
}

func (r *Registry) Font(family string, weight css.FontWeight, style css.FontStyle) Face {
	return r.face(family, weight, style)
}

func (r *Registry) Default() Face { return r.faces[variantRegular] }

// FontFace returns the paintable face for a computed style.
func (r *Registry) FontFace(cs *css.ComputedStyle) font.Face {
	return r.face(cs.FontFamily, cs.FontWeight, cs.FontStyle).Sized(cs.FontSize)
}
