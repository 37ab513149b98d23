package handle

// Handle is an opaque reference to a node in a Store.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Type is the node's wire type tag. Unlike the value package's Kind, it
// keeps the sub-width of integers and floats and the capacity class of
// strings, because those determine the on-wire encoding.
type Type uint8

const (
	TypeI8 Type = iota
	TypeI16
	TypeI32
	TypeI64
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeF32
	TypeF64
	TypeStr
	TypeBool
	TypeNull
	TypeObject
	TypeArray
)

var typeNames = [...]string{
	TypeI8:     "i8",
	TypeI16:    "i16",
	TypeI32:    "i32",
	TypeI64:    "i64",
	TypeU8:     "u8",
	TypeU16:    "u16",
	TypeU32:    "u32",
	TypeU64:    "u64",
	TypeF32:    "f32",
	TypeF64:    "f64",
	TypeStr:    "str",
	TypeBool:   "b",
	TypeNull:   "n",
	TypeObject: "object",
	TypeArray:  "array",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsInt reports whether the type is one of the eight integer sub-widths.
func (t Type) IsInt() bool {
	return t <= TypeU64
}

// IsSigned reports whether an integer type is signed.
func (t Type) IsSigned() bool {
	return t <= TypeI64
}

// IsFloat reports whether the type is f32 or f64.
func (t Type) IsFloat() bool {
	return t == TypeF32 || t == TypeF64
}

// Code is the result of a fallible boundary mutation.
type Code uint8

const (
	CodeOK Code = iota
	CodeInvalidHandle
	CodeTypeMismatch
	CodeNullValue
	CodeDuplicateKey
)

var codeNames = [...]string{
	CodeOK:            "ok",
	CodeInvalidHandle: "invalid_handle",
	CodeTypeMismatch:  "type_mismatch",
	CodeNullValue:     "null_value",
	CodeDuplicateKey:  "duplicate_key",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// KeyArray is the owned result of an object key enumeration. It is freed
// as a single unit with Store.FreeKeys, never key by key.
type KeyArray struct {
	keys  []string
	freed bool
}
