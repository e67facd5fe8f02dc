package blurhash

import (
	"fmt"
	"math"
)

// RGB is an sRGB-encoded colour with each channel normalized to [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB255 rounds each channel to the nearest 8-bit value, clamping at both
// ends.
func (c RGB) RGB255() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

// RGBFrom255 builds an RGB from 8-bit channels.
func RGBFrom255(r, g, b uint8) RGB {
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func to8(v float64) uint8 {
	return uint8(math.Floor(clamp01(v)*255 + 0.5))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PixelGrid is a row-major grid of sRGB samples.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []RGB
}

// MaxOutputPixels bounds the grids Inverse will render.
const MaxOutputPixels = 1 << 28

// NewPixelGrid allocates a black grid of the given size. It panics if
// width*height overflows int.
func NewPixelGrid(width, height int) *PixelGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width > 0 && height > math.MaxInt/width {
		panic(fmt.Sprintf("blurhash: pixel grid %dx%d overflows int", width, height))
	}
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// At returns the sample at (x, y). It panics if the coordinates are outside
// the grid.
func (g *PixelGrid) At(x, y int) RGB {
	return g.Pix[y*g.Width+x]
}

// Set stores c at (x, y).
func (g *PixelGrid) Set(x, y int, c RGB) {
	g.Pix[y*g.Width+x] = c
}

func (g *PixelGrid) valid() bool {
	return g != nil && g.Width > 0 && g.Height > 0 && len(g.Pix) == g.Width*g.Height
}

// Factor is one linear-light basis coefficient per colour channel. AC
// factors may be negative.
type Factor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Components holds the coefficients of an X by Y cosine basis. Factors are
// stored y-major, so the factor for (i, j) is Factors[j*X+i].
type Components struct {
	X       int
	Y       int
	Factors []Factor
}

func newComponents(x, y int) *Components {
	return &Components{X: x, Y: y, Factors: make([]Factor, x*y)}
}

// At returns the factor for horizontal frequency i and vertical frequency j.
func (c *Components) At(i, j int) Factor {
	return c.Factors[j*c.X+i]
}

// DC returns the zero-frequency factor (the average colour in linear light).
func (c *Components) DC() Factor {
	return c.Factors[0]
}

// AC returns all non-DC factors in storage order.
func (c *Components) AC() []Factor {
	return c.Factors[1:]
}

// MaxAC returns the largest absolute AC value across all channels, or 0 when
// there are no AC terms.
func (c *Components) MaxAC() float64 {
	var m float64
	for _, f := range c.AC() {
		m = math.Max(m, math.Max(math.Abs(f.R), math.Max(math.Abs(f.G), math.Abs(f.B))))
	}
	return m
}

func validComponentCount(n int) bool {
	return n >= 1 && n <= 9
}
