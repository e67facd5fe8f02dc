package blurhash

import (
	"fmt"

	"github.com/dividenconquer/blurhash-generator/internal/base83"
)

// Decode renders hash as a width by height grid with the default options.
func Decode(hash string, width, height int) (*PixelGrid, error) {
	return Options{}.Decode(hash, width, height)
}

// Decode renders hash as a width by height grid.
func (o Options) Decode(hash string, width, height int) (*PixelGrid, error) {
	comps, err := o.DecodeComponents(hash)
	if err != nil {
		return nil, err
	}
	return Inverse(comps, width, height, o.Gamma)
}

// DecodeComponents parses hash into its component grid with the default
// options.
func DecodeComponents(hash string) (*Components, error) {
	return Options{}.DecodeComponents(hash)
}

// DecodeComponents parses hash into its component grid without rendering it.
// AC factors are scaled by the punch factor.
func (o Options) DecodeComponents(hash string) (*Components, error) {
	nx, ny, err := ComponentCount(hash)
	if err != nil {
		return nil, err
	}

	quantMax, err := base83.Decode(hash[1:2])
	if err != nil {
		return nil, fmt.Errorf("decode maximum: %w", err)
	}
	maxValue := float64(quantMax+1) / 166 * o.punch()

	comps := newComponents(nx, ny)

	dc, err := base83.Decode(hash[2:6])
	if err != nil {
		return nil, fmt.Errorf("decode dc: %w", err)
	}
	comps.Factors[0] = decodeDC(dc, o.Gamma)

	for k := 1; k < len(comps.Factors); k++ {
		off := 4 + 2*k
		v, err := base83.Decode(hash[off : off+2])
		if err != nil {
			return nil, fmt.Errorf("decode ac %d: %w", k, err)
		}
		comps.Factors[k] = decodeAC(v, maxValue)
	}
	return comps, nil
}

// ComponentCount reads the size flag of hash and checks that the hash length
// agrees with it.
func ComponentCount(hash string) (x, y int, err error) {
	if len(hash) < 6 || (len(hash)-4)%2 != 0 {
		return 0, 0, fmt.Errorf("%w: length %d", ErrMalformedHash, len(hash))
	}

	flag, err := base83.Decode(hash[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("decode size flag: %w", err)
	}
	x = flag%9 + 1
	y = flag/9 + 1
	if !validComponentCount(y) {
		return 0, 0, fmt.Errorf("%w: size flag %d out of range", ErrMalformedHash, flag)
	}

	if want := HashLength(x, y); len(hash) != want {
		return 0, 0, fmt.Errorf("%w: %dx%d components need %d characters, got %d",
			ErrSizeMismatch, x, y, want, len(hash))
	}
	return x, y, nil
}

// Validate reports whether hash is a well-formed BlurHash.
func Validate(hash string) error {
	_, err := DecodeComponents(hash)
	return err
}

// AverageColor returns the DC colour of hash in sRGB.
func AverageColor(hash string) (RGB, error) {
	return Options{}.AverageColor(hash)
}

// AverageColor returns the DC colour of hash in sRGB.
func (o Options) AverageColor(hash string) (RGB, error) {
	comps, err := o.DecodeComponents(hash)
	if err != nil {
		return RGB{}, err
	}
	return o.Gamma.encode(comps.DC()), nil
}

func decodeDC(v int, gamma Gamma) Factor {
	return gamma.linear(RGBFrom255(uint8(min(v>>16, 255)), uint8((v>>8)&255), uint8(v&255)))
}

func decodeAC(v int, maxValue float64) Factor {
	q := func(d int) float64 {
		return signPow(float64(d-9)/9, 2) * maxValue
	}
	return Factor{
		R: q(v / (19 * 19)),
		G: q((v / 19) % 19),
		B: q(v % 19),
	}
}
