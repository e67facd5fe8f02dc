package blurhash

import (
	"fmt"
	"math"
)

// cosTable returns t where t[k][p] = cos(pi*k*p/size) for k < n, p < size.
func cosTable(n, size int) [][]float64 {
	t := make([][]float64, n)
	for k := range t {
		row := make([]float64, size)
		for p := range row {
			row[p] = math.Cos(math.Pi * float64(k) * float64(p) / float64(size))
		}
		t[k] = row
	}
	return t
}

// Forward projects grid onto an nx by ny cosine basis. Samples are converted
// to linear light with gamma before averaging. The DC factor is the plain
// mean; AC factors carry a normalization of 2.
//
// The projection is separable: rows are reduced against the horizontal
// basis first, then the partial sums are reduced against the vertical one.
func Forward(grid *PixelGrid, nx, ny int, gamma Gamma) (*Components, error) {
	if !validComponentCount(nx) || !validComponentCount(ny) {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidComponentCount, nx, ny)
	}
	if !grid.valid() {
		return nil, invalidGrid(grid)
	}

	w, h := grid.Width, grid.Height
	cosX := cosTable(nx, w)
	cosY := cosTable(ny, h)

	linear := make([]Factor, len(grid.Pix))
	for k, c := range grid.Pix {
		linear[k] = gamma.linear(c)
	}

	// rows[i][y] = sum over x of linear(x, y) * cos(pi*i*x/w)
	rows := make([][]Factor, nx)
	for i := range rows {
		rows[i] = make([]Factor, h)
		basis := cosX[i]
		for y := 0; y < h; y++ {
			var acc Factor
			line := linear[y*w : (y+1)*w]
			for x, px := range line {
				b := basis[x]
				acc.R += b * px.R
				acc.G += b * px.G
				acc.B += b * px.B
			}
			rows[i][y] = acc
		}
	}

	comps := newComponents(nx, ny)
	area := float64(w * h)
	for j := 0; j < ny; j++ {
		basis := cosY[j]
		for i := 0; i < nx; i++ {
			var acc Factor
			for y, part := range rows[i] {
				b := basis[y]
				acc.R += b * part.R
				acc.G += b * part.G
				acc.B += b * part.B
			}
			norm := 2.0
			if i == 0 && j == 0 {
				norm = 1
			}
			scale := norm / area
			comps.Factors[j*nx+i] = Factor{R: acc.R * scale, G: acc.G * scale, B: acc.B * scale}
		}
	}
	return comps, nil
}

// Inverse evaluates comps at every pixel of a width by height grid and
// converts the result back to sRGB with gamma. Channels are clamped to
// [0,1].
func Inverse(comps *Components, width, height int, gamma Gamma) (*PixelGrid, error) {
	if comps == nil || !validComponentCount(comps.X) || !validComponentCount(comps.Y) ||
		len(comps.Factors) != comps.X*comps.Y {
		return nil, fmt.Errorf("%w: inconsistent component grid", ErrInvalidComponentCount)
	}
	if width <= 0 || height <= 0 || width > MaxOutputPixels/height {
		return nil, fmt.Errorf("%w: output size %dx%d", ErrInvalidImage, width, height)
	}

	nx, ny := comps.X, comps.Y
	cosX := cosTable(nx, width)
	cosY := cosTable(ny, height)

	out := NewPixelGrid(width, height)
	cols := make([]Factor, nx)
	for y := 0; y < height; y++ {
		// cols[i] = sum over j of factor(i, j) * cos(pi*j*y/height)
		for i := range cols {
			var acc Factor
			for j := 0; j < ny; j++ {
				b := cosY[j][y]
				f := comps.Factors[j*nx+i]
				acc.R += b * f.R
				acc.G += b * f.G
				acc.B += b * f.B
			}
			cols[i] = acc
		}
		row := out.Pix[y*width : (y+1)*width]
		for x := range row {
			var acc Factor
			for i, col := range cols {
				b := cosX[i][x]
				acc.R += b * col.R
				acc.G += b * col.G
				acc.B += b * col.B
			}
			row[x] = gamma.encode(acc)
		}
	}
	return out, nil
}

func invalidGrid(grid *PixelGrid) error {
	if grid == nil {
		return fmt.Errorf("%w: nil pixel grid", ErrInvalidImage)
	}
	if grid.Width <= 0 || grid.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidImage, grid.Width, grid.Height)
	}
	return fmt.Errorf("%w: %d samples for %dx%d grid", ErrInvalidImage, len(grid.Pix), grid.Width, grid.Height)
}
