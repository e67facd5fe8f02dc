package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/dividenconquer/blurhash-generator/internal/blurhash"
)

// JPEGQuality is the quality used by Save for .jpg and .jpeg files.
const JPEGQuality = 90

// FromPixelGrid converts a grid into an opaque NRGBA image.
func FromPixelGrid(grid *blurhash.PixelGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			r, g, b := grid.At(x, y).RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// RenderResult contains an encoded image ready to embed in a JSON response.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderPNG encodes img as a base64 PNG.
func RenderPNG(img image.Image) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path, choosing PNG or JPEG from the extension.
func Save(path string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(JPEGQuality)
	default:
		return fmt.Errorf("unsupported output format %q (use .png, .jpg or .jpeg)", filepath.Ext(path))
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
