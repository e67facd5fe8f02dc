package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// SupportedExtensions lists the lower-case file extensions Open can decode.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// IsSupported reports whether path has an extension Open can decode.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open decodes the image at path and returns it with the format name
// reported by the decoder ("png", "jpeg", "gif", "webp", "bmp", "tiff").
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, format, nil
}

type cacheEntry struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded images keyed by their file path. Different paths
// to the same file (relative vs absolute) are separate entries. Cached
// images stay in memory until Evict or Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.LoadFormat(path)
	return img, err
}

// LoadFormat is Load that also returns the detected format name.
func (c *ImageCache) LoadFormat(path string) (image.Image, string, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e.img, e.format, nil
	}
	c.mu.RUnlock()

	img, format, err := Open(path)
	if err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and describes it.
//
// Color depth is "16-bit" for *image.RGBA64, *image.NRGBA64 and
// *image.Gray16, "8-bit" for everything else. HasAlpha is true for the RGBA
// and NRGBA families.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, format, err := cache.LoadFormat(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
