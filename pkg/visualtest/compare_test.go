package visualtest

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompare_Identical(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	result, err := Compare(solid(10, 10, red), solid(10, 10, red), DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match || result.DifferentPixels != 0 {
		t.Errorf("expected a match, got %+v", result)
	}
	if result.TotalPixels != 100 {
		t.Errorf("expected 100 total pixels, got %d", result.TotalPixels)
	}
}

func TestCompare_Different(t *testing.T) {
	expected := solid(10, 10, color.RGBA{255, 0, 0, 255})
	actual := solid(10, 10, color.RGBA{255, 0, 0, 255})
	for x := 0; x < 10; x++ {
		actual.SetRGBA(x, 0, color.RGBA{0, 0, 255, 255})
	}

	opts := DefaultOptions()
	opts.Diff = true
	result, err := Compare(actual, expected, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Error("expected images to differ")
	}
	if result.DifferentPixels != 10 {
		t.Errorf("expected 10 different pixels, got %d", result.DifferentPixels)
	}
	if result.MaxDifference != 255 {
		t.Errorf("expected max difference 255, got %d", result.MaxDifference)
	}
	if got := result.Diff.RGBAAt(3, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("diff pixel = %v, want red", got)
	}

	opts.MaxDifferentPercent = 10
	if result, _ := Compare(actual, expected, opts); !result.Match {
		t.Error("expected 10% different pixels to pass with MaxDifferentPercent=10")
	}
}

func TestCompare_Tolerance(t *testing.T) {
	a := solid(4, 4, color.RGBA{100, 100, 100, 255})
	b := solid(4, 4, color.RGBA{103, 100, 100, 255})

	if result, _ := Compare(a, b, Options{Tolerance: 2}); result.Match {
		t.Error("expected a 3-level difference to fail at tolerance 2")
	}
	if result, _ := Compare(a, b, Options{Tolerance: 3}); !result.Match {
		t.Error("expected a 3-level difference to pass at tolerance 3")
	}
}

func TestCompare_FuzzyRadius(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	a := solid(5, 5, white)
	b := solid(5, 5, white)
	a.SetRGBA(2, 2, black)
	b.SetRGBA(3, 2, black)

	if result, _ := Compare(a, b, DefaultOptions()); result.Match {
		t.Error("expected a shifted pixel to differ without fuzzing")
	}
	opts := DefaultOptions()
	opts.FuzzyRadius = 1
	if result, _ := Compare(a, b, opts); !result.Match {
		t.Error("expected a one-pixel shift to match with radius 1")
	}
}

func TestCompare_DifferentDimensions(t *testing.T) {
	c := color.RGBA{0, 0, 0, 255}
	if _, err := Compare(solid(10, 10, c), solid(20, 20, c), DefaultOptions()); err == nil {
		t.Error("expected an error for different dimensions")
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	img := solid(6, 6, color.RGBA{0, 200, 0, 255})
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	for _, p := range []string{a, b} {
		if err := SavePNG(img, p); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	result, err := CompareFiles(a, b, DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Error("expected files to match")
	}
	if _, err := CompareFiles(filepath.Join(dir, "missing.png"), b, DefaultOptions()); err == nil {
		t.Error("expected an error for a missing file")
	}
}
