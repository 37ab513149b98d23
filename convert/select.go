package convert

import (
	"math"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
)

// MaxStringChars is the largest representable string capacity class.
const MaxStringChars = 1024

// capacityClasses is the ascending set of string capacity tiers, measured
// in Unicode characters.
var capacityClasses = [...]int{2, 4, 8, 16, 32, 64, 128, 256, 512, 1024}

// IntType selects the most compact wire width for an integer. Non-negative
// values prefer unsigned widths, checked ascending 8, 16, 32, 64; negative
// values take the smallest signed width whose range contains them. The
// unsigned preference is a wire-compactness policy: ids and counts are
// overwhelmingly non-negative.
func IntType(n int64) handle.Type {
	if n >= 0 {
		switch {
		case n <= math.MaxUint8:
			return handle.TypeU8
		case n <= math.MaxUint16:
			return handle.TypeU16
		case n <= math.MaxUint32:
			return handle.TypeU32
		default:
			return handle.TypeU64
		}
	}
	switch {
	case n >= math.MinInt8:
		return handle.TypeI8
	case n >= math.MinInt16:
		return handle.TypeI16
	case n >= math.MinInt32:
		return handle.TypeI32
	default:
		return handle.TypeI64
	}
}

// charCount counts Unicode characters by walking UTF-8 leading bytes. A
// byte that matches none of the 1/2/3/4-byte patterns, or a sequence cut
// short by the end of the string, fails with invalid_encoding.
func charCount(s string) (int, error) {
	count := 0
	for i := 0; i < len(s); {
		c := s[i]
		var size int
		switch {
		case c < 0x80:
			size = 1
		case c&0xE0 == 0xC0:
			size = 2
		case c&0xF0 == 0xE0:
			size = 3
		case c&0xF8 == 0xF0:
			size = 4
		default:
			return 0, errors.InvalidEncoding(errors.PhaseEncode, nil, []byte(s[i:]))
		}
		if i+size > len(s) {
			return 0, errors.InvalidEncoding(errors.PhaseEncode, nil, []byte(s[i:]))
		}
		i += size
		count++
	}
	return count, nil
}

// StringClass selects the smallest capacity class that holds the string's
// character count. Encoding is validated before any class decision; a
// count over MaxStringChars fails with string_too_long naming the count
// and the ceiling.
func StringClass(s string) (int, error) {
	n, err := charCount(s)
	if err != nil {
		return 0, err
	}
	for _, class := range capacityClasses {
		if n <= class {
			return class, nil
		}
	}
	return 0, errors.StringTooLong(errors.PhaseEncode, nil, n, MaxStringChars)
}
