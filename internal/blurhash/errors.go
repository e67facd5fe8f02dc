package blurhash

import (
	"errors"

	"github.com/dividenconquer/blurhash-generator/internal/base83"
)

var (
	// ErrInvalidComponentCount means a component count outside [1,9].
	ErrInvalidComponentCount = errors.New("blurhash: component count must be between 1 and 9")

	// ErrInvalidImage means an empty or inconsistent pixel grid, or a
	// non-positive output size.
	ErrInvalidImage = errors.New("blurhash: invalid image")

	// ErrMalformedHash means a hash shorter than 6 characters or with an
	// odd payload length.
	ErrMalformedHash = errors.New("blurhash: malformed hash")

	// ErrSizeMismatch means the hash length disagrees with its size flag.
	ErrSizeMismatch = errors.New("blurhash: hash length does not match size flag")

	// ErrInvalidCharacter is the base83 sentinel, re-exported so callers do
	// not need to import base83.
	ErrInvalidCharacter = base83.ErrInvalidCharacter

	// ErrValueTooLarge is the base83 sentinel. The encoder only produces it
	// on an internal defect.
	ErrValueTooLarge = base83.ErrValueTooLarge
)
