package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"user", "address", "zip"},
				Got:    "string",
				Want:   "int",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "user.address.zip", "got string", "want int", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindConversionFailure,
			},
			contains: []string{"[decode]", "conversion_failure"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseIO,
				Kind:   KindIOFailure,
				Detail: "write failed",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[io]", "io_failure", "write failed", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidSyntax,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindStringTooLong,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindStringTooLong}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindStringTooLong}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidEncoding}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseEncode, Kind: KindStringTooLong}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindConversionFailure).
		Path("user", "name").
		Got("string").
		Want("object").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "object", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindConversionFailure {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConversionFailure)
	}
	if len(err.Path) != 2 || err.Path[0] != "user" || err.Path[1] != "name" {
		t.Errorf("Path = %v, want [user name]", err.Path)
	}
	if err.Got != "string" || err.Want != "object" {
		t.Errorf("Got/Want = %q/%q", err.Got, err.Want)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Error("Cause not preserved")
	}
	if err.Detail != "expected object, got string" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{
			name:     "TypeMismatch",
			err:      TypeMismatch(PhaseValue, []string{"a"}, "bool", "int"),
			phase:    PhaseValue,
			kind:     KindTypeMismatch,
			contains: "got bool",
		},
		{
			name:     "ConversionFailure",
			err:      ConversionFailure(PhaseDecode, []string{"a"}, "extraction failed"),
			phase:    PhaseDecode,
			kind:     KindConversionFailure,
			contains: "extraction failed",
		},
		{
			name:     "InvalidEncoding",
			err:      InvalidEncoding(PhaseEncode, nil, []byte{0xff, 0xfe}),
			phase:    PhaseEncode,
			kind:     KindInvalidEncoding,
			contains: "fffe",
		},
		{
			name:     "StringTooLong",
			err:      StringTooLong(PhaseEncode, nil, 1025, 1024),
			phase:    PhaseEncode,
			kind:     KindStringTooLong,
			contains: "1025 characters, max 1024",
		},
		{
			name:     "InvalidArgument",
			err:      InvalidArgument(PhaseValue, "nil store"),
			phase:    PhaseValue,
			kind:     KindInvalidArgument,
			contains: "nil store",
		},
		{
			name:     "IndexOutOfRange",
			err:      IndexOutOfRange(PhaseDecode, 5, 3),
			phase:    PhaseDecode,
			kind:     KindIndexOutOfRange,
			contains: "index 5 out of range (length 3)",
		},
		{
			name:     "DepthExceeded",
			err:      DepthExceeded(PhaseEncode, nil, 512),
			phase:    PhaseEncode,
			kind:     KindDepthExceeded,
			contains: "depth limit 512",
		},
		{
			name:     "DuplicateKey",
			err:      DuplicateKey(PhaseParse, nil, "id"),
			phase:    PhaseParse,
			kind:     KindDuplicateKey,
			contains: `duplicate key "id"`,
		},
		{
			name:     "IntOutOfRange",
			err:      IntOutOfRange(PhaseParse, nil, 300, "u8"),
			phase:    PhaseParse,
			kind:     KindIntOutOfRange,
			contains: "300 does not fit u8",
		},
		{
			name:     "NullHandle",
			err:      NullHandle(PhaseDecode, []string{"b"}),
			phase:    PhaseDecode,
			kind:     KindNullHandle,
			contains: "null handle",
		},
		{
			name:     "InvalidConfig",
			err:      InvalidConfig("compression level must be 0-9, got %d", 12),
			phase:    PhaseConfig,
			kind:     KindInvalidConfig,
			contains: "got 12",
		},
		{
			name:     "LimitExceeded",
			err:      LimitExceeded(PhaseIO, "uncompressed size %d over limit", 1<<40),
			phase:    PhaseIO,
			kind:     KindLimitExceeded,
			contains: "over limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("io: short write")
	err := Wrap(PhaseIO, KindIOFailure, cause, "container write")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "container write") {
		t.Errorf("message %q missing detail", err.Error())
	}
}
