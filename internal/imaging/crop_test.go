package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, Region{X1: 0, Y1: 0, X2: 50, Y2: 50})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	b := cropped.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}

	// The top-left quadrant of the pattern is red.
	r, g, bl, _ := cropped.At(b.Min.X+25, b.Min.Y+25).RGBA()
	if r>>8 != 255 || g>>8 != 0 || bl>>8 != 0 {
		t.Errorf("cropped colour: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, bl>>8)
	}
}

func TestCrop_OffsetBounds(t *testing.T) {
	// Region coordinates are relative to the image's own origin.
	base := createPatternImage(100, 100)
	sub := base.SubImage(image.Rect(50, 0, 100, 50))

	cropped, err := Crop(sub, Region{X1: 0, Y1: 0, X2: 10, Y2: 10})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	r, g, b, _ := cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("got (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 negative", Region{-1, 0, 50, 50}},
		{"y1 negative", Region{0, -1, 50, 50}},
		{"x2 too large", Region{0, 0, 101, 50}},
		{"y2 too large", Region{0, 0, 50, 101}},
		{"all out of bounds", Region{-1, -1, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region); err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"empty width", Region{10, 10, 10, 50}},
		{"empty height", Region{10, 10, 50, 10}},
		{"inverted", Region{50, 50, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region); err == nil {
				t.Error("Crop should fail for an empty or inverted region")
			}
		})
	}
}
