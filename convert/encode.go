package convert

import (
	"sort"
	"strconv"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
	"github.com/gbln-format/gbln-go/value"
)

// Encode converts an in-memory Value into a handle tree with default
// options. On success the caller owns the returned handle; on failure
// every handle allocated along the way has already been released.
func Encode(b Boundary, v value.Value) (handle.Handle, error) {
	return EncodeWithOptions(b, v, Options{})
}

// EncodeWithOptions converts an in-memory Value into a handle tree.
func EncodeWithOptions(b Boundary, v value.Value, opts Options) (handle.Handle, error) {
	e := encoder{b: b, maxDepth: opts.maxDepth()}
	return e.encode(v, nil, 0)
}

type encoder struct {
	b        Boundary
	maxDepth int
}

func (e *encoder) encode(v value.Value, path []string, depth int) (handle.Handle, error) {
	if depth > e.maxDepth {
		return 0, errors.DepthExceeded(errors.PhaseEncode, path, e.maxDepth)
	}

	switch v.Kind() {
	case value.KindNull:
		return e.b.NewNull(), nil

	case value.KindBool:
		return e.b.NewBool(v.AsBool()), nil

	case value.KindInt:
		return e.encodeInt(v.AsInt()), nil

	case value.KindFloat:
		// A single f64 constructor covers both wire widths.
		return e.b.NewF64(v.AsFloat()), nil

	case value.KindString:
		return e.encodeString(v.AsString(), path)

	case value.KindObject:
		return e.encodeObject(v.AsObject(), path, depth)

	case value.KindArray:
		return e.encodeArray(v.AsArray(), path, depth)
	}

	return 0, errors.New(errors.PhaseEncode, errors.KindConversionFailure).
		Path(path...).
		Detail("unknown value kind %d", v.Kind()).
		Build()
}

// encodeInt routes through auto-width selection to the matching
// constructor.
func (e *encoder) encodeInt(n int64) handle.Handle {
	switch IntType(n) {
	case handle.TypeU8:
		return e.b.NewU8(uint8(n))
	case handle.TypeU16:
		return e.b.NewU16(uint16(n))
	case handle.TypeU32:
		return e.b.NewU32(uint32(n))
	case handle.TypeU64:
		return e.b.NewU64(uint64(n))
	case handle.TypeI8:
		return e.b.NewI8(int8(n))
	case handle.TypeI16:
		return e.b.NewI16(int16(n))
	case handle.TypeI32:
		return e.b.NewI32(int32(n))
	default:
		return e.b.NewI64(n)
	}
}

func (e *encoder) encodeString(s string, path []string) (handle.Handle, error) {
	class, err := StringClass(s)
	if err != nil {
		if structured, ok := err.(*errors.Error); ok && len(path) > 0 {
			structured.Path = path
		}
		return 0, err
	}
	h := e.b.NewString(s, class)
	if h == 0 {
		return 0, errors.New(errors.PhaseEncode, errors.KindConversionFailure).
			Path(path...).
			Detail("string constructor failed: %s", e.b.LastError()).
			Build()
	}
	return h, nil
}

func (e *encoder) encodeObject(m map[string]value.Value, path []string, depth int) (handle.Handle, error) {
	parent := handle.Own(e.b, e.b.NewObject())

	// Deterministic traversal order; the boundary keeps keys sorted anyway.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		childPath := append(path[:len(path):len(path)], k)

		child, err := e.encode(m[k], childPath, depth+1)
		if err != nil {
			parent.Release()
			return 0, err
		}

		// Until insertion succeeds the child is ours; afterwards the
		// parent owns it and the guard must be disarmed.
		cg := handle.Own(e.b, child)
		if code := e.b.ObjectInsert(parent.Handle(), k, child); code != handle.CodeOK {
			cg.Release()
			parent.Release()
			return 0, errors.New(errors.PhaseEncode, errors.KindConversionFailure).
				Path(path...).
				Value(k).
				Detail("insert of key %q rejected (%s): %s", k, code, e.b.LastError()).
				Build()
		}
		cg.Detach()
	}

	return parent.Detach(), nil
}

func (e *encoder) encodeArray(elems []value.Value, path []string, depth int) (handle.Handle, error) {
	parent := handle.Own(e.b, e.b.NewArray())

	for i, elem := range elems {
		childPath := append(path[:len(path):len(path)], "["+strconv.Itoa(i)+"]")

		child, err := e.encode(elem, childPath, depth+1)
		if err != nil {
			parent.Release()
			return 0, err
		}

		cg := handle.Own(e.b, child)
		if code := e.b.ArrayPush(parent.Handle(), child); code != handle.CodeOK {
			cg.Release()
			parent.Release()
			return 0, errors.New(errors.PhaseEncode, errors.KindConversionFailure).
				Path(path...).
				Value(i).
				Detail("push of element %d rejected (%s): %s", i, code, e.b.LastError()).
				Build()
		}
		cg.Detach()
	}

	return parent.Detach(), nil
}
