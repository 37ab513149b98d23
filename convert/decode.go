package convert

import (
	"strconv"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
	"github.com/gbln-format/gbln-go/value"
)

// Decode converts a handle tree into an in-memory Value with default
// options. The handle is borrowed: the caller keeps ownership and frees
// it independently of the result.
func Decode(b Boundary, h handle.Handle) (value.Value, error) {
	return DecodeWithOptions(b, h, Options{})
}

// DecodeWithOptions converts a handle tree into an in-memory Value.
func DecodeWithOptions(b Boundary, h handle.Handle, opts Options) (value.Value, error) {
	d := decoder{b: b, maxDepth: opts.maxDepth()}
	return d.decode(h, nil, 0)
}

type decoder struct {
	b        Boundary
	maxDepth int
}

func (d *decoder) failExtract(path []string, want string) error {
	return errors.New(errors.PhaseDecode, errors.KindConversionFailure).
		Path(path...).
		Want(want).
		Detail("boundary extraction failed: %s", d.b.LastError()).
		Build()
}

func (d *decoder) decode(h handle.Handle, path []string, depth int) (value.Value, error) {
	if h == 0 {
		return value.Value{}, errors.NullHandle(errors.PhaseDecode, path)
	}
	if depth > d.maxDepth {
		return value.Value{}, errors.DepthExceeded(errors.PhaseDecode, path, d.maxDepth)
	}

	typ, ok := d.b.Type(h)
	if !ok {
		return value.Value{}, errors.ConversionFailure(errors.PhaseDecode, path, "invalid handle")
	}

	switch {
	case typ == handle.TypeNull:
		return value.Null(), nil

	case typ == handle.TypeBool:
		v, ok := d.b.AsBool(h)
		if !ok {
			return value.Value{}, d.failExtract(path, "bool")
		}
		return value.Bool(v), nil

	case typ.IsInt():
		// Every sub-width normalizes through the widest signed form.
		v, ok := d.b.AsI64(h)
		if !ok {
			return value.Value{}, d.failExtract(path, "i64")
		}
		return value.Int(v), nil

	case typ.IsFloat():
		// f32 payloads are widened; original precision is not preserved.
		v, ok := d.b.AsF64(h)
		if !ok {
			return value.Value{}, d.failExtract(path, "f64")
		}
		return value.Float(v), nil

	case typ == handle.TypeStr:
		v, ok := d.b.AsString(h)
		if !ok {
			return value.Value{}, d.failExtract(path, "string")
		}
		return value.String(v), nil

	case typ == handle.TypeObject:
		return d.decodeObject(h, path, depth)

	case typ == handle.TypeArray:
		return d.decodeArray(h, path, depth)
	}

	return value.Value{}, errors.New(errors.PhaseDecode, errors.KindConversionFailure).
		Path(path...).
		Detail("unknown boundary type tag %d", typ).
		Build()
}

func (d *decoder) decodeObject(h handle.Handle, path []string, depth int) (value.Value, error) {
	arr, n := d.b.ObjectKeys(h)
	if arr == nil {
		return value.Value{}, errors.ConversionFailure(errors.PhaseDecode, path, "key enumeration failed")
	}
	keys := handle.OwnKeys(d.b, arr)
	defer keys.Release()

	obj := make(map[string]value.Value, n)
	for i := 0; i < n; i++ {
		key := keys.At(i)
		childPath := append(path[:len(path):len(path)], key)

		// Borrowed reference; freed with its container, never here.
		child := d.b.ObjectGet(h, key)
		if child == 0 {
			return value.Value{}, errors.New(errors.PhaseDecode, errors.KindConversionFailure).
				Path(path...).
				Detail("no value for enumerated key %q", key).
				Build()
		}

		decoded, err := d.decode(child, childPath, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		obj[key] = decoded
	}

	return value.Object(obj), nil
}

func (d *decoder) decodeArray(h handle.Handle, path []string, depth int) (value.Value, error) {
	n := d.b.ArrayLen(h)
	elems := make([]value.Value, 0, n)

	for i := 0; i < n; i++ {
		childPath := append(path[:len(path):len(path)], "["+strconv.Itoa(i)+"]")

		child := d.b.ArrayGet(h, i)
		if child == 0 {
			return value.Value{}, errors.New(errors.PhaseDecode, errors.KindConversionFailure).
				Path(path...).
				Detail("no element at index %d (length %d)", i, n).
				Build()
		}

		decoded, err := d.decode(child, childPath, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, decoded)
	}

	return value.Array(elems), nil
}
