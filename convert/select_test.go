package convert

import (
	"errors"
	"math"
	"strings"
	"testing"

	gblnerrors "github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
)

func TestIntTypeUnsignedLadder(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want handle.Type
	}{
		{"zero", 0, handle.TypeU8},
		{"u8 max", math.MaxUint8, handle.TypeU8},
		{"u16 min", math.MaxUint8 + 1, handle.TypeU16},
		{"u16 max", math.MaxUint16, handle.TypeU16},
		{"u32 min", math.MaxUint16 + 1, handle.TypeU32},
		{"u32 max", math.MaxUint32, handle.TypeU32},
		{"u64 min", math.MaxUint32 + 1, handle.TypeU64},
		{"i64 max", math.MaxInt64, handle.TypeU64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntType(tc.n); got != tc.want {
				t.Errorf("IntType(%d) = %v, want %v", tc.n, got, tc.want)
			}
		})
	}
}

func TestIntTypeSignedLadder(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want handle.Type
	}{
		{"minus one", -1, handle.TypeI8},
		{"i8 min", math.MinInt8, handle.TypeI8},
		{"i16 top", math.MinInt8 - 1, handle.TypeI16},
		{"i16 min", math.MinInt16, handle.TypeI16},
		{"i32 top", math.MinInt16 - 1, handle.TypeI32},
		{"i32 min", math.MinInt32, handle.TypeI32},
		{"i64 top", math.MinInt32 - 1, handle.TypeI64},
		{"i64 min", math.MinInt64, handle.TypeI64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntType(tc.n); got != tc.want {
				t.Errorf("IntType(%d) = %v, want %v", tc.n, got, tc.want)
			}
		})
	}
}

func TestIntTypePrefersUnsigned(t *testing.T) {
	// 100 fits i8 as well, but the compact policy picks u8.
	if got := IntType(100); got != handle.TypeU8 {
		t.Errorf("IntType(100) = %v, want u8", got)
	}
}

func TestStringClassLadder(t *testing.T) {
	tests := []struct {
		name string
		len  int
		want int
	}{
		{"empty", 0, 2},
		{"one", 1, 2},
		{"two", 2, 2},
		{"three", 3, 4},
		{"sixteen", 16, 16},
		{"sixty-four", 64, 64},
		{"sixty-five", 65, 128},
		{"max", 1024, 1024},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StringClass(strings.Repeat("a", tc.len))
			if err != nil {
				t.Fatalf("StringClass: %v", err)
			}
			if got != tc.want {
				t.Errorf("StringClass(%d chars) = %d, want %d", tc.len, got, tc.want)
			}
		})
	}
}

func TestStringClassTooLong(t *testing.T) {
	_, err := StringClass(strings.Repeat("a", 1025))
	if err == nil {
		t.Fatal("expected string_too_long")
	}
	if !errors.Is(err, &gblnerrors.Error{Phase: gblnerrors.PhaseEncode, Kind: gblnerrors.KindStringTooLong}) {
		t.Errorf("err = %v, want string_too_long", err)
	}
	if !strings.Contains(err.Error(), "1025") || !strings.Contains(err.Error(), "1024") {
		t.Errorf("message %q should name count and ceiling", err.Error())
	}
}

func TestStringClassCountsCharactersNotBytes(t *testing.T) {
	// Ten characters across thirty bytes: class follows the character
	// count (10 -> 16), not the byte count (30 -> 32).
	s := strings.Repeat("語", 10)
	if len(s) != 30 {
		t.Fatalf("test string is %d bytes, want 30", len(s))
	}
	got, err := StringClass(s)
	if err != nil {
		t.Fatalf("StringClass: %v", err)
	}
	if got != 16 {
		t.Errorf("StringClass = %d, want 16", got)
	}
}

func TestStringClassInvalidEncoding(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"stray continuation byte", string([]byte{0x80})},
		{"invalid leading byte", string([]byte{0xff, 0x61})},
		{"truncated sequence", string([]byte{0xE3, 0x81})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := StringClass(tc.s)
			if err == nil {
				t.Fatal("expected invalid_encoding")
			}
			if !errors.Is(err, &gblnerrors.Error{Phase: gblnerrors.PhaseEncode, Kind: gblnerrors.KindInvalidEncoding}) {
				t.Errorf("err = %v, want invalid_encoding", err)
			}
		})
	}
}
