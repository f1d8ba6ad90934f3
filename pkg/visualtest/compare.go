// Package visualtest compares rendered pages pixel by pixel. A reftest
// renders two documents that should look the same and diffs the images.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Result contains the results of an image comparison.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255

	// Diff marks differing pixels in red over a grayscale copy of the
	// actual image. Set only when Options.Diff is true.
	Diff *image.RGBA
}

// Options configures the comparison.
type Options struct {
	// Tolerance is the largest per-channel difference (0-255) that still
	// counts as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing small glyph shifts.
	FuzzyRadius int

	// MaxDifferentPercent passes a comparison whose share of differing
	// pixels is at or below this value.
	MaxDifferentPercent float64

	Diff bool
}

func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Compare diffs actual against expected. Images of different bounds are
// an error.
func Compare(actual, expected image.Image, opts Options) (*Result, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &Result{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &Result{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			result.MaxDifference = max(result.MaxDifference, diff)

			matched := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !matched {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if matched {
					result.Diff.Set(x, y, color.RGBA{a[0], a[0], a[0], 255})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// CompareFiles decodes two PNG files and compares them.
func CompareFiles(actualPath, expectedPath string, opts Options) (*Result, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

func rgba8(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func channelDiff(a, b [4]uint8) int {
	d := 0
	for i := range a {
		d = max(d, absInt(int(a[i])-int(b[i])))
	}
	return d
}

// fuzzyMatch reports whether a matches any expected pixel within radius
// of (x, y).
func fuzzyMatch(a [4]uint8, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, rgba8(expected.At(p.X, p.Y))) <= tolerance {
				return true
			}
		}
	}
	return false
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
