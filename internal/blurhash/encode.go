package blurhash

import (
	"fmt"
	"math"
	"strings"

	"github.com/dividenconquer/blurhash-generator/internal/base83"
)

// Options tunes the codec. The zero value is the standard behaviour: sRGB
// transfer curve and no contrast boost.
type Options struct {
	// Gamma is the transfer curve used on both sides of the transform.
	Gamma Gamma

	// Punch scales the AC maximum when decoding. Values above 1 increase
	// contrast. Zero or negative means 1. Encoding ignores it.
	Punch float64
}

func (o Options) punch() float64 {
	if o.Punch <= 0 {
		return 1
	}
	return o.Punch
}

// HashLength returns the length of a hash with the given component counts.
func HashLength(xComponents, yComponents int) int {
	return 4 + 2*xComponents*yComponents
}

// Encode computes the BlurHash of grid with the default options.
func Encode(grid *PixelGrid, xComponents, yComponents int) (string, error) {
	return Options{}.Encode(grid, xComponents, yComponents)
}

// Encode computes the BlurHash of grid using an xComponents by yComponents
// basis. Both counts must be in [1,9].
func (o Options) Encode(grid *PixelGrid, xComponents, yComponents int) (string, error) {
	comps, err := Forward(grid, xComponents, yComponents, o.Gamma)
	if err != nil {
		return "", err
	}
	return o.EncodeComponents(comps)
}

// EncodeComponents serializes an already computed component grid.
func (o Options) EncodeComponents(comps *Components) (string, error) {
	if comps == nil || !validComponentCount(comps.X) || !validComponentCount(comps.Y) ||
		len(comps.Factors) != comps.X*comps.Y {
		return "", fmt.Errorf("%w: inconsistent component grid", ErrInvalidComponentCount)
	}

	var sb strings.Builder
	sb.Grow(HashLength(comps.X, comps.Y))

	sizeFlag := (comps.X - 1) + (comps.Y-1)*9
	if err := put(&sb, sizeFlag, 1); err != nil {
		return "", fmt.Errorf("encode size flag: %w", err)
	}

	maxValue := 1.0
	quantMax := 0
	if len(comps.Factors) > 1 {
		quantMax = quantizeMax(comps.MaxAC())
		maxValue = float64(quantMax+1) / 166
	}
	if err := put(&sb, quantMax, 1); err != nil {
		return "", fmt.Errorf("encode maximum: %w", err)
	}

	if err := put(&sb, encodeDC(comps.DC(), o.Gamma), 4); err != nil {
		return "", fmt.Errorf("encode dc: %w", err)
	}

	for k, f := range comps.AC() {
		if err := put(&sb, encodeAC(f, maxValue), 2); err != nil {
			return "", fmt.Errorf("encode ac %d: %w", k+1, err)
		}
	}
	return sb.String(), nil
}

func put(sb *strings.Builder, value, length int) error {
	s, err := base83.Encode(value, length)
	if err != nil {
		return err
	}
	sb.WriteString(s)
	return nil
}

// quantizeMax maps a maximum AC magnitude to a single digit in [0,82].
func quantizeMax(m float64) int {
	return clampInt(int(math.Floor(m*166-0.5)), 0, 82)
}

func encodeDC(f Factor, gamma Gamma) int {
	r, g, b := gamma.encode(f).RGB255()
	return int(r)<<16 | int(g)<<8 | int(b)
}

func encodeAC(f Factor, maxValue float64) int {
	q := func(v float64) int {
		return clampInt(int(math.Floor(signPow(v/maxValue, 0.5)*9+9.5)), 0, 18)
	}
	return q(f.R)*19*19 + q(f.G)*19 + q(f.B)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
