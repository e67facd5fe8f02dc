package imaging

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// It is used to report the average colour of a BlurHash, which callers
// commonly use as a flat placeholder before the blurred image is rendered.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// NewColorResult describes c in hex, 8-bit RGB and HSL.
func NewColorResult(c blurhash.RGB) ColorResult {
	r, g, b := c.RGB255()
	// Rebuild from the 8-bit value so every representation describes the
	// same quantized colour.
	col := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := col.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return ColorResult{
		Hex: strings.ToUpper(col.Hex()),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
