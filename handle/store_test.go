package handle

import (
	"math"
	"strings"
	"testing"
)

func TestScalarConstructorsAndExtraction(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name string
		h    Handle
		typ  Type
	}{
		{"null", s.NewNull(), TypeNull},
		{"bool", s.NewBool(true), TypeBool},
		{"i8", s.NewI8(-5), TypeI8},
		{"i16", s.NewI16(-300), TypeI16},
		{"i32", s.NewI32(-70000), TypeI32},
		{"i64", s.NewI64(math.MinInt64), TypeI64},
		{"u8", s.NewU8(200), TypeU8},
		{"u16", s.NewU16(60000), TypeU16},
		{"u32", s.NewU32(4000000000), TypeU32},
		{"u64", s.NewU64(math.MaxUint64), TypeU64},
		{"f32", s.NewF32(1.5), TypeF32},
		{"f64", s.NewF64(2.5), TypeF64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.h == 0 {
				t.Fatal("constructor returned zero handle")
			}
			typ, ok := s.Type(tc.h)
			if !ok || typ != tc.typ {
				t.Errorf("Type() = %v, %v; want %v", typ, ok, tc.typ)
			}
		})
	}
}

func TestIntegerExtraction(t *testing.T) {
	s := NewStore()

	if v, ok := s.AsI64(s.NewU8(200)); !ok || v != 200 {
		t.Errorf("AsI64(u8 200) = %d, %v", v, ok)
	}
	if v, ok := s.AsI64(s.NewI16(-300)); !ok || v != -300 {
		t.Errorf("AsI64(i16 -300) = %d, %v", v, ok)
	}
	if v, ok := s.AsU64(s.NewI32(70000)); !ok || v != 70000 {
		t.Errorf("AsU64(i32 70000) = %d, %v", v, ok)
	}

	// u64 above the signed range cannot extract as i64.
	if _, ok := s.AsI64(s.NewU64(math.MaxUint64)); ok {
		t.Error("AsI64 should fail for u64 above MaxInt64")
	}
	if !strings.Contains(s.LastError(), "out of i64 range") {
		t.Errorf("LastError() = %q", s.LastError())
	}

	// Negative values cannot extract as u64.
	if _, ok := s.AsU64(s.NewI8(-1)); ok {
		t.Error("AsU64 should fail for negative value")
	}

	// Extraction mismatch reports through the ok flag, never panics.
	if _, ok := s.AsI64(s.NewBool(true)); ok {
		t.Error("AsI64 on bool should fail")
	}
}

func TestFloatExtraction(t *testing.T) {
	s := NewStore()

	h32 := s.NewF32(1.25)
	if v, ok := s.AsF64(h32); !ok || v != 1.25 {
		t.Errorf("AsF64(f32) = %v, %v; want 1.25 widened", v, ok)
	}
	if v, ok := s.AsF32(h32); !ok || v != 1.25 {
		t.Errorf("AsF32(f32) = %v, %v", v, ok)
	}

	h64 := s.NewF64(math.Pi)
	if v, ok := s.AsF64(h64); !ok || v != math.Pi {
		t.Errorf("AsF64(f64) = %v, %v", v, ok)
	}

	if _, ok := s.AsF64(s.NewNull()); ok {
		t.Error("AsF64 on null should fail")
	}
}

func TestNewString(t *testing.T) {
	s := NewStore()

	h := s.NewString("Alice", 8)
	if h == 0 {
		t.Fatalf("NewString failed: %s", s.LastError())
	}
	if got, ok := s.AsString(h); !ok || got != "Alice" {
		t.Errorf("AsString() = %q, %v", got, ok)
	}
	if c, ok := s.StringCap(h); !ok || c != 8 {
		t.Errorf("StringCap() = %d, %v; want 8", c, ok)
	}

	// Character count, not byte count, is measured against capacity.
	if h := s.NewString("日本語のテキスト", 8); h == 0 {
		t.Errorf("8 multi-byte characters should fit capacity 8: %s", s.LastError())
	}

	if h := s.NewString("too long for two", 2); h != 0 {
		t.Error("over-capacity string should fail")
	}
	if h := s.NewString("x", 0); h != 0 {
		t.Error("non-positive capacity should fail")
	}
	if h := s.NewString(string([]byte{0xff}), 8); h != 0 {
		t.Error("invalid UTF-8 should fail")
	}
}

func TestObjectInsertOwnership(t *testing.T) {
	s := NewStore()

	obj := s.NewObject()
	child := s.NewU8(1)

	if code := s.ObjectInsert(obj, "a", child); code != CodeOK {
		t.Fatalf("insert = %v, want ok", code)
	}

	// Duplicate key: ownership does not transfer.
	dup := s.NewU8(2)
	if code := s.ObjectInsert(obj, "a", dup); code != CodeDuplicateKey {
		t.Fatalf("duplicate insert = %v, want duplicate_key", code)
	}
	if !strings.Contains(s.LastError(), `duplicate key "a"`) {
		t.Errorf("LastError() = %q", s.LastError())
	}
	s.Free(dup) // still ours to free

	// Wrong parent type.
	if code := s.ObjectInsert(s.NewU8(9), "k", s.NewNull()); code != CodeTypeMismatch {
		t.Errorf("insert into scalar = %v, want type_mismatch", code)
	}

	// Null and invalid children.
	if code := s.ObjectInsert(obj, "b", 0); code != CodeNullValue {
		t.Errorf("insert null handle = %v, want null_value", code)
	}
	if code := s.ObjectInsert(obj, "b", Handle(9999)); code != CodeInvalidHandle {
		t.Errorf("insert bogus handle = %v, want invalid_handle", code)
	}

	// Freeing the parent frees the owned child.
	s.Free(obj)
	if _, ok := s.Type(child); ok {
		t.Error("child should be freed with its parent")
	}
}

func TestArrayPushOwnership(t *testing.T) {
	s := NewStore()

	arr := s.NewArray()
	a := s.NewBool(true)
	b := s.NewNull()

	if code := s.ArrayPush(arr, a); code != CodeOK {
		t.Fatalf("push = %v", code)
	}
	if code := s.ArrayPush(arr, b); code != CodeOK {
		t.Fatalf("push = %v", code)
	}
	if n := s.ArrayLen(arr); n != 2 {
		t.Errorf("ArrayLen = %d, want 2", n)
	}

	if code := s.ArrayPush(s.NewNull(), a); code != CodeTypeMismatch {
		t.Errorf("push into scalar = %v, want type_mismatch", code)
	}
	if code := s.ArrayPush(arr, 0); code != CodeNullValue {
		t.Errorf("push null handle = %v, want null_value", code)
	}

	// Borrowed element access.
	if got := s.ArrayGet(arr, 0); got != a {
		t.Errorf("ArrayGet(0) = %v, want %v", got, a)
	}
	if got := s.ArrayGet(arr, 2); got != 0 {
		t.Error("out-of-range ArrayGet should return zero handle")
	}
	if got := s.ArrayGet(arr, -1); got != 0 {
		t.Error("negative ArrayGet should return zero handle")
	}

	s.Free(arr)
	if _, ok := s.Type(a); ok {
		t.Error("elements should be freed with the array")
	}
}

func TestObjectEnumeration(t *testing.T) {
	s := NewStore()

	obj := s.NewObject()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		if code := s.ObjectInsert(obj, k, s.NewNull()); code != CodeOK {
			t.Fatalf("insert %q = %v", k, code)
		}
	}

	keys, n := s.ObjectKeys(obj)
	if n != 3 || keys == nil {
		t.Fatalf("ObjectKeys = %v, %d", keys, n)
	}
	defer s.FreeKeys(keys)

	// Keys come back sorted regardless of insertion order.
	want := []string{"alpha", "mid", "zeta"}
	for i, w := range want {
		if keys.keys[i] != w {
			t.Errorf("keys[%d] = %q, want %q", i, keys.keys[i], w)
		}
	}

	if got := s.ObjectGet(obj, "mid"); got == 0 {
		t.Error("ObjectGet(mid) returned zero handle")
	}
	if got := s.ObjectGet(obj, "missing"); got != 0 {
		t.Error("ObjectGet on absent key should return zero handle")
	}
	if got := s.ObjectLen(obj); got != 3 {
		t.Errorf("ObjectLen = %d, want 3", got)
	}

	if keys, n := s.ObjectKeys(s.NewU8(1)); keys != nil || n != 0 {
		t.Error("ObjectKeys on non-object should return nil, 0")
	}
}

func TestFreeSemantics(t *testing.T) {
	s := NewStore()

	s.Free(0) // no-op

	h := s.NewBool(true)
	s.Free(h)
	s.Free(h) // double free is a no-op
	if _, ok := s.Type(h); ok {
		t.Error("freed handle should be invalid")
	}

	// Freed slots are recycled.
	h2 := s.NewBool(false)
	if h2 != h {
		t.Errorf("expected slot reuse, got %v after freeing %v", h2, h)
	}
}

func TestLiveCounter(t *testing.T) {
	s := NewStore()

	if s.Live() != 0 {
		t.Fatalf("fresh store Live() = %d", s.Live())
	}

	obj := s.NewObject()
	s.ObjectInsert(obj, "a", s.NewU8(1))
	s.ObjectInsert(obj, "b", s.NewU8(2))
	if s.Live() != 3 {
		t.Errorf("Live() = %d, want 3", s.Live())
	}

	keys, _ := s.ObjectKeys(obj)
	if s.Live() != 4 {
		t.Errorf("Live() with key array = %d, want 4", s.Live())
	}
	s.FreeKeys(keys)
	s.FreeKeys(keys) // double free is a no-op
	if s.Live() != 3 {
		t.Errorf("Live() after FreeKeys = %d, want 3", s.Live())
	}

	s.Free(obj)
	if s.Live() != 0 {
		t.Errorf("Live() after Free = %d, want 0", s.Live())
	}

	s.Close()
	if s.Live() != 0 {
		t.Errorf("Live() after Close = %d, want 0", s.Live())
	}
}

func TestTypeAndCodeStrings(t *testing.T) {
	if TypeU8.String() != "u8" || TypeStr.String() != "str" || Type(99).String() != "unknown" {
		t.Error("Type.String mismatch")
	}
	if CodeOK.String() != "ok" || CodeDuplicateKey.String() != "duplicate_key" || Code(99).String() != "unknown" {
		t.Error("Code.String mismatch")
	}
	if !TypeU64.IsInt() || TypeF32.IsInt() {
		t.Error("IsInt misclassifies")
	}
	if !TypeI64.IsSigned() || TypeU8.IsSigned() {
		t.Error("IsSigned misclassifies")
	}
	if !TypeF32.IsFloat() || TypeBool.IsFloat() {
		t.Error("IsFloat misclassifies")
	}
}
