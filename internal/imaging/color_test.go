package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewColorResult_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		rgb     [3]uint8
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", [3]uint8{255, 0, 0}, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", [3]uint8{0, 255, 0}, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", [3]uint8{0, 0, 255}, "#0000FF", HSLColor{240, 100, 50}},
		{"white", [3]uint8{255, 255, 255}, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", [3]uint8{0, 0, 0}, "#000000", HSLColor{0, 0, 0}},
		{"gray", [3]uint8{128, 128, 128}, "#808080", HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewColorResult(blurhash.RGBFrom255(tt.rgb[0], tt.rgb[1], tt.rgb[2]))

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.RGB != (RGBColor{tt.rgb[0], tt.rgb[1], tt.rgb[2]}) {
				t.Errorf("RGB: got %+v, want %v", result.RGB, tt.rgb)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestNewColorResult_ClampsOutOfRange(t *testing.T) {
	result := NewColorResult(blurhash.RGB{R: 1.5, G: -0.2, B: 0.5})
	if result.RGB != (RGBColor{255, 0, 128}) {
		t.Errorf("RGB: got %+v, want {255 0 128}", result.RGB)
	}
	if result.Hex != "#FF0080" {
		t.Errorf("Hex: got %s, want #FF0080", result.Hex)
	}
}
