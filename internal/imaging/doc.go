// Package imaging adapts decoded images to and from the BlurHash engine.
//
// The blurhash package only understands PixelGrid values. This package owns
// everything around that: opening image files, caching decoded images,
// cropping and downscaling before encoding, and turning decoded grids back
// into image.Image values, PNG payloads or files on disk.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Supported Formats
//
// Decoding supports PNG, JPEG and GIF from the standard library plus WebP,
// BMP and TIFF from golang.org/x/image. Saving supports PNG and JPEG.
//
// # Downscaling
//
// A BlurHash keeps at most nine frequencies per axis, so encoding a full
// resolution photo wastes time. ToPixelGrid shrinks the image to fit a
// bounding box (64 pixels by default in the CLI) with a box filter before
// sampling. Aspect ratio is preserved.
//
// # Transparency
//
// Pixels are read premultiplied, so transparent areas contribute black.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The conversion functions
// are stateless and may be called concurrently on different images.
package imaging
