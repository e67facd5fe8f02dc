// Package blurhash encodes pixel grids into BlurHash strings and decodes them
// back into approximate placeholder images.
//
// A BlurHash is a short ASCII string describing a small number of low
// frequency cosine components of an image. Encoding projects the image onto
// the basis; decoding evaluates the basis at any requested resolution.
//
// # Hash Layout
//
// Every hash is a sequence of base-83 fields:
//
//	offset  width  contents
//	0       1      size flag: (x-1) + (y-1)*9
//	1       1      quantized maximum AC magnitude
//	2       4      DC colour, packed r<<16 | g<<8 | b in sRGB
//	6       2*n    one field per AC component, packed r*361 + g*19 + b
//
// The total length is 4 + 2*x*y characters.
//
// # Component Order
//
// Components are stored y-major: the factor for horizontal frequency i and
// vertical frequency j sits at index j*x + i. Factor 0 is the DC term.
//
// # Colour Handling
//
// PixelGrid values are sRGB-encoded channels normalized to [0,1]. The basis
// transform runs in linear light; the conversion in both directions goes
// through a single Gamma value so encode and decode stay symmetric.
//
// # Thread Safety
//
// All functions are pure and hold no package state beyond read-only tables.
// Separate images may be encoded or decoded concurrently. A PixelGrid passed
// to Encode must not be mutated until the call returns.
package blurhash
