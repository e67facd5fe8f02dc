package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
)

// Downscale shrinks img to fit a maxDimension by maxDimension box, keeping
// the aspect ratio. Images already inside the box, and any image when
// maxDimension is 0 or negative, are returned unchanged.
func Downscale(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	if maxDimension <= 0 || (b.Dx() <= maxDimension && b.Dy() <= maxDimension) {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Box)
}

// ToPixelGrid samples img into a grid of normalized sRGB values, after
// downscaling it with Downscale.
func ToPixelGrid(img image.Image, maxDimension int) *blurhash.PixelGrid {
	rgba := clone.AsRGBA(Downscale(img, maxDimension))
	b := rgba.Bounds()

	grid := blurhash.NewPixelGrid(b.Dx(), b.Dy())
	for y := 0; y < grid.Height; y++ {
		off := rgba.PixOffset(b.Min.X, b.Min.Y+y)
		row := rgba.Pix[off : off+4*grid.Width]
		for x := 0; x < grid.Width; x++ {
			p := row[4*x : 4*x+3]
			grid.Set(x, y, blurhash.RGBFrom255(p[0], p[1], p[2]))
		}
	}
	return grid
}

// ToPixelGridRegion crops region out of img and samples it like ToPixelGrid.
func ToPixelGridRegion(img image.Image, region Region, maxDimension int) (*blurhash.PixelGrid, error) {
	cropped, err := Crop(img, region)
	if err != nil {
		return nil, err
	}
	return ToPixelGrid(cropped, maxDimension), nil
}
