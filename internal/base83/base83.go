// Package base83 implements the radix-83 text encoding used by BlurHash.
//
// Values are written most-significant digit first using a fixed-width field.
// The alphabet contains only printable ASCII characters that are safe to embed
// in JSON strings and URLs.
package base83

import (
	"errors"
	"fmt"
	"math"
)

// Alphabet lists the 83 digits in ascending order of value.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

const base = len(Alphabet)

var (
	// ErrValueTooLarge is returned when a value does not fit the requested
	// number of digits, or a decoded value does not fit in an int.
	ErrValueTooLarge = errors.New("base83: value out of range")

	// ErrInvalidCharacter is returned when decoding a string containing a
	// character outside Alphabet.
	ErrInvalidCharacter = errors.New("base83: invalid character")
)

// digits maps an ASCII byte to its digit value, or -1.
var digits [256]int

func init() {
	for i := range digits {
		digits[i] = -1
	}
	for i := 0; i < base; i++ {
		digits[Alphabet[i]] = i
	}
}

// Encode writes value as exactly length base-83 digits.
func Encode(value, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: negative length %d", ErrValueTooLarge, length)
	}
	if value < 0 {
		return "", fmt.Errorf("%w: negative value %d", ErrValueTooLarge, value)
	}

	buf := make([]byte, length)
	v := value
	for i := length - 1; i >= 0; i-- {
		buf[i] = Alphabet[v%base]
		v /= base
	}
	if v != 0 {
		return "", fmt.Errorf("%w: %d does not fit in %d digits", ErrValueTooLarge, value, length)
	}
	return string(buf), nil
}

// Decode parses s as a base-83 number. The empty string decodes to 0.
func Decode(s string) (int, error) {
	value := 0
	for i := 0; i < len(s); i++ {
		d := digits[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, s[i], i)
		}
		if value > (math.MaxInt-d)/base {
			return 0, fmt.Errorf("%w: %q overflows int", ErrValueTooLarge, s)
		}
		value = value*base + d
	}
	return value, nil
}
