package value

import (
	"math"
	"unicode/utf8"

	"github.com/gbln-format/gbln-go/errors"
)

// Value is the in-memory representation of a GBLN document node. It holds
// exactly one of the seven variants at a time; the zero Value is Null.
//
// A Value owns its children exclusively. Container contents may be mutated
// through AsObject/AsArray and the Set/Append helpers, but a Value never
// changes variant in place.
type Value struct {
	obj  map[string]Value
	arr  []Value
	s    string
	i    int64
	f    float64
	b    bool
	kind Kind
}

// Null returns the Null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a Bool value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an Int value. All wire integer widths collapse into a single
// signed 64-bit slot; the wire width is re-derived from sign and magnitude
// at encode time.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a Float value. Both 32- and 64-bit wire floats collapse
// into a single 64-bit slot; round-tripping may widen a 32-bit float.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a String value. The input must be valid UTF-8; invalid
// byte sequences are a construction contract violation and panic with an
// invalid_encoding error.
func String(s string) Value {
	if !utf8.ValidString(s) {
		panic(errors.InvalidEncoding(errors.PhaseValue, nil, []byte(s)))
	}
	return Value{kind: KindString, s: s}
}

// Object returns an Object value owning m. Passing nil creates an empty
// object.
func Object(m map[string]Value) Value {
	if m == nil {
		m = make(map[string]Value)
	}
	return Value{kind: KindObject, obj: m}
}

// Array returns an Array value owning elems.
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Kind returns the variant discriminator.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsArray() bool  { return v.kind == KindArray }

func (v Value) require(want Kind) {
	if v.kind != want {
		panic(errors.TypeMismatch(errors.PhaseValue, nil, v.kind.String(), want.String()))
	}
}

// AsBool returns the boolean payload. Panics with type_mismatch if the
// value is not a Bool.
func (v Value) AsBool() bool {
	v.require(KindBool)
	return v.b
}

// AsInt returns the integer payload. Panics with type_mismatch if the
// value is not an Int.
func (v Value) AsInt() int64 {
	v.require(KindInt)
	return v.i
}

// AsFloat returns the float payload. Panics with type_mismatch if the
// value is not a Float.
func (v Value) AsFloat() float64 {
	v.require(KindFloat)
	return v.f
}

// AsString returns the string payload. Panics with type_mismatch if the
// value is not a String.
func (v Value) AsString() string {
	v.require(KindString)
	return v.s
}

// AsObject returns the owned map. The map is the live container; callers
// may mutate entries directly. Panics with type_mismatch if the value is
// not an Object.
func (v Value) AsObject() map[string]Value {
	v.require(KindObject)
	return v.obj
}

// AsArray returns the owned element slice. Element mutation is visible to
// the Value; use Append to grow it. Panics with type_mismatch if the value
// is not an Array.
func (v Value) AsArray() []Value {
	v.require(KindArray)
	return v.arr
}

// Get returns the child for key and whether it exists. Panics with
// type_mismatch if the value is not an Object.
func (v Value) Get(key string) (Value, bool) {
	v.require(KindObject)
	child, ok := v.obj[key]
	return child, ok
}

// Set stores child under key, replacing any previous entry. Panics with
// type_mismatch if the value is not an Object.
func (v *Value) Set(key string, child Value) {
	v.require(KindObject)
	v.obj[key] = child
}

// Append adds elem to the end of the array. Panics with type_mismatch if
// the value is not an Array.
func (v *Value) Append(elem Value) {
	v.require(KindArray)
	v.arr = append(v.arr, elem)
}

// Len returns the number of entries for Object and Array values and 0 for
// every scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	default:
		return 0
	}
}

// Equal reports deep equality. Floats compare bit-for-bit except that NaN
// equals NaN, so round-trip comparisons stay reflexive.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, child := range v.obj {
			oc, ok := other.obj[k]
			if !ok || !child.Equal(oc) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i, child := range v.arr {
			if !child.Equal(other.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}
