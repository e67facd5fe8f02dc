package blurhash

import (
	"errors"
	"math"
	"testing"
)

func TestGamma_RoundTrip(t *testing.T) {
	for _, gamma := range []Gamma{SRGB, Power22} {
		for v := 0; v <= 255; v++ {
			s := float64(v) / 255
			back := gamma.ToSRGB(gamma.ToLinear(s))
			if math.Abs(back-s) > 1e-9 {
				t.Fatalf("%s: %d round trips to %v", gamma, v, back*255)
			}
		}
	}
}

func TestGamma_KnownPoints(t *testing.T) {
	tests := []struct {
		name  string
		gamma Gamma
		in    float64
		want  float64
	}{
		{"srgb black", SRGB, 0, 0},
		{"srgb white", SRGB, 1, 1},
		{"srgb toe", SRGB, 0.04, 0.04 / 12.92},
		{"srgb mid", SRGB, 0.5, math.Pow((0.5+0.055)/1.055, 2.4)},
		{"power mid", Power22, 0.5, math.Pow(0.5, 2.2)},
		{"clamp low", SRGB, -0.3, 0},
		{"clamp high", Power22, 1.7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gamma.ToLinear(tt.in); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ToLinear(%v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGamma_CurvesAreClose(t *testing.T) {
	// The power law is an approximation of the sRGB curve; both must agree
	// to within a few 8-bit steps across the range.
	for v := 0; v <= 255; v += 5 {
		s := float64(v) / 255
		a := SRGB.ToLinear(s)
		b := Power22.ToLinear(s)
		if math.Abs(a-b) > 0.02 {
			t.Errorf("at %d: srgb %v vs power %v", v, a, b)
		}
	}
}

func TestParseGamma(t *testing.T) {
	tests := []struct {
		in      string
		want    Gamma
		wantErr bool
	}{
		{"", SRGB, false},
		{"sRGB", SRGB, false},
		{"2.2", Power22, false},
		{" power22 ", Power22, false},
		{"linear", SRGB, true},
	}

	for _, tt := range tests {
		got, err := ParseGamma(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGamma(%q): err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGamma(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSignPow(t *testing.T) {
	tests := []struct {
		x, p, want float64
	}{
		{4, 0.5, 2},
		{-4, 0.5, -2},
		{-0.5, 2, -0.25},
		{0, 0.5, 0},
		{0.25, 2, 0.0625},
	}
	for _, tt := range tests {
		if got := signPow(tt.x, tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("signPow(%v, %v): got %v, want %v", tt.x, tt.p, got, tt.want)
		}
	}
}

func TestForward_DCIsMeanLinearColor(t *testing.T) {
	grid := quadrantGrid(8, 8)
	comps, err := Forward(grid, 3, 2, SRGB)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if comps.X != 3 || comps.Y != 2 || len(comps.Factors) != 6 {
		t.Fatalf("shape: got %dx%d with %d factors", comps.X, comps.Y, len(comps.Factors))
	}

	// Each quadrant contributes a quarter; linear(255) is exactly 1.
	dc := comps.DC()
	if math.Abs(dc.R-0.5) > 1e-12 || math.Abs(dc.G-0.5) > 1e-12 || math.Abs(dc.B-0.5) > 1e-12 {
		t.Errorf("DC: got %+v, want 0.5 per channel", dc)
	}
}

func TestForward_MatchesDirectSum(t *testing.T) {
	grid := gradientGrid(6, 5)
	comps, err := Forward(grid, 4, 3, SRGB)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	w, h := float64(grid.Width), float64(grid.Height)
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			var want Factor
			for y := 0; y < grid.Height; y++ {
				for x := 0; x < grid.Width; x++ {
					b := math.Cos(math.Pi*float64(i)*float64(x)/w) * math.Cos(math.Pi*float64(j)*float64(y)/h)
					lin := SRGB.linear(grid.At(x, y))
					want.R += b * lin.R
					want.G += b * lin.G
					want.B += b * lin.B
				}
			}
			norm := 2.0
			if i == 0 && j == 0 {
				norm = 1
			}
			scale := norm / (w * h)
			got := comps.At(i, j)
			if math.Abs(got.R-want.R*scale) > 1e-12 || math.Abs(got.G-want.G*scale) > 1e-12 ||
				math.Abs(got.B-want.B*scale) > 1e-12 {
				t.Errorf("factor (%d,%d): got %+v, want %+v", i, j, got, Factor{want.R * scale, want.G * scale, want.B * scale})
			}
		}
	}
}

func TestInverse_DCOnly(t *testing.T) {
	comps := &Components{X: 1, Y: 1, Factors: []Factor{{R: 1, G: 0, B: SRGB.ToLinear(0.5)}}}
	grid, err := Inverse(comps, 3, 2, SRGB)
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	for i, px := range grid.Pix {
		if math.Abs(px.R-1) > 1e-12 || px.G != 0 || math.Abs(px.B-0.5) > 1e-9 {
			t.Errorf("pixel %d: got %+v", i, px)
		}
	}
}

func TestInverse_Clamps(t *testing.T) {
	comps := &Components{X: 2, Y: 1, Factors: []Factor{{R: 0.5, G: 0.5, B: 0.5}, {R: 3, G: -3, B: 0}}}
	grid, err := Inverse(comps, 4, 1, SRGB)
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	for i, px := range grid.Pix {
		for _, v := range []float64{px.R, px.G, px.B} {
			if v < 0 || v > 1 {
				t.Errorf("pixel %d out of range: %+v", i, px)
			}
		}
	}
	if r, g, _ := grid.At(0, 0).RGB255(); r != 255 || g != 0 {
		t.Errorf("left edge: got r=%d g=%d, want 255 and 0", r, g)
	}
}

func TestInverse_Invalid(t *testing.T) {
	if _, err := Inverse(nil, 4, 4, SRGB); !errors.Is(err, ErrInvalidComponentCount) {
		t.Errorf("nil components: got %v", err)
	}
	comps := &Components{X: 1, Y: 1, Factors: []Factor{{}}}
	if _, err := Inverse(comps, 0, 4, SRGB); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("zero width: got %v", err)
	}
	if _, err := Inverse(comps, math.MaxInt/2+1, 2, SRGB); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("overflowing size: got %v", err)
	}
}

func TestNewPixelGrid_Overflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPixelGrid should panic when width*height overflows")
		}
	}()
	NewPixelGrid(math.MaxInt/2+1, 2)
}

func TestRGB255_RoundsAndClamps(t *testing.T) {
	tests := []struct {
		in   RGB
		want [3]uint8
	}{
		{RGB{0, 0.5, 1}, [3]uint8{0, 128, 255}},
		{RGB{-1, 2, math.NaN()}, [3]uint8{0, 255, 0}},
		{RGB{1.0 / 255 * 0.49, 1.0 / 255 * 0.51, 0.999}, [3]uint8{0, 1, 255}},
	}
	for _, tt := range tests {
		r, g, b := tt.in.RGB255()
		if [3]uint8{r, g, b} != tt.want {
			t.Errorf("RGB255(%+v): got %v, want %v", tt.in, [3]uint8{r, g, b}, tt.want)
		}
	}
}

func TestComponents_MaxAC(t *testing.T) {
	comps := &Components{X: 3, Y: 1, Factors: []Factor{{R: 9}, {R: 0.1, G: -0.4}, {B: 0.3}}}
	if got := comps.MaxAC(); got != 0.4 {
		t.Errorf("MaxAC: got %v, want 0.4", got)
	}
	if got := (&Components{X: 1, Y: 1, Factors: []Factor{{R: 1}}}).MaxAC(); got != 0 {
		t.Errorf("MaxAC without AC: got %v, want 0", got)
	}
}
