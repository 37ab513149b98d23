package value

// Kind discriminates the seven Value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindObject: "object",
	KindArray:  "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether the kind carries no children.
func (k Kind) IsScalar() bool {
	return k <= KindString
}

// IsContainer reports whether the kind owns child values.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}
