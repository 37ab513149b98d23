package wire

import (
	"strconv"
	"strings"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
)

// EmitOptions controls text layout.
type EmitOptions struct {
	// Pretty emits one entry per line with indentation; the default is
	// the compact MINI form with no whitespace.
	Pretty bool
	// Indent is the number of spaces per nesting level in pretty mode.
	// Zero selects 2.
	Indent int
}

// Emit serialises a handle tree to GBLN text. The handle is borrowed.
func Emit(s *handle.Store, h handle.Handle, opts EmitOptions) (string, error) {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	e := emitter{s: s, opts: opts}
	if err := e.emitRoot(h); err != nil {
		return "", err
	}
	return e.b.String(), nil
}

type emitter struct {
	s    *handle.Store
	b    strings.Builder
	opts EmitOptions
}

func (e *emitter) fail(h handle.Handle, what string) error {
	return errors.New(errors.PhaseEmit, errors.KindConversionFailure).
		Want(what).
		Detail("boundary extraction failed: %s", e.s.LastError()).
		Build()
}

func (e *emitter) indent(level int) {
	if e.opts.Pretty {
		for i := 0; i < level*e.opts.Indent; i++ {
			e.b.WriteByte(' ')
		}
	}
}

func (e *emitter) newline() {
	if e.opts.Pretty {
		e.b.WriteByte('\n')
	}
}

// emitRoot writes an object as a bare entry list and anything else as a
// single unkeyed element.
func (e *emitter) emitRoot(h handle.Handle) error {
	typ, ok := e.s.Type(h)
	if !ok {
		return errors.NullHandle(errors.PhaseEmit, nil)
	}
	if typ == handle.TypeObject {
		return e.emitEntries(h, 0)
	}
	if err := e.emitValue(h, 0); err != nil {
		return err
	}
	e.newline()
	return nil
}

func (e *emitter) emitEntries(h handle.Handle, level int) error {
	arr, n := e.s.ObjectKeys(h)
	if arr == nil {
		return e.fail(h, "object keys")
	}
	keys := handle.OwnKeys(e.s, arr)
	defer keys.Release()

	for i := 0; i < n; i++ {
		key := keys.At(i)
		child := e.s.ObjectGet(h, key)
		if child == 0 {
			return errors.New(errors.PhaseEmit, errors.KindConversionFailure).
				Detail("no value for enumerated key %q", key).
				Build()
		}
		e.indent(level)
		e.b.WriteString(key)
		if err := e.emitValue(child, level); err != nil {
			return err
		}
		e.newline()
	}
	return nil
}

// emitValue writes the tagged form of a node, without its key.
func (e *emitter) emitValue(h handle.Handle, level int) error {
	typ, ok := e.s.Type(h)
	if !ok {
		return errors.NullHandle(errors.PhaseEmit, nil)
	}

	switch {
	case typ == handle.TypeNull:
		e.b.WriteString("<n>()")

	case typ == handle.TypeBool:
		v, ok := e.s.AsBool(h)
		if !ok {
			return e.fail(h, "bool")
		}
		if v {
			e.b.WriteString("<b>(t)")
		} else {
			e.b.WriteString("<b>(f)")
		}

	case typ.IsInt():
		e.b.WriteByte('<')
		e.b.WriteString(typ.String())
		e.b.WriteString(">(")
		if typ.IsSigned() {
			v, ok := e.s.AsI64(h)
			if !ok {
				return e.fail(h, "i64")
			}
			e.b.WriteString(strconv.FormatInt(v, 10))
		} else {
			v, ok := e.s.AsU64(h)
			if !ok {
				return e.fail(h, "u64")
			}
			e.b.WriteString(strconv.FormatUint(v, 10))
		}
		e.b.WriteByte(')')

	case typ.IsFloat():
		v, ok := e.s.AsF64(h)
		if !ok {
			return e.fail(h, "f64")
		}
		bits := 64
		if typ == handle.TypeF32 {
			bits = 32
		}
		e.b.WriteByte('<')
		e.b.WriteString(typ.String())
		e.b.WriteString(">(")
		e.b.WriteString(strconv.FormatFloat(v, 'g', -1, bits))
		e.b.WriteByte(')')

	case typ == handle.TypeStr:
		v, ok := e.s.AsString(h)
		if !ok {
			return e.fail(h, "string")
		}
		class, ok := e.s.StringCap(h)
		if !ok {
			return e.fail(h, "string capacity")
		}
		e.b.WriteString("<s")
		e.b.WriteString(strconv.Itoa(class))
		e.b.WriteString(">(")
		e.b.WriteString(escape(v))
		e.b.WriteByte(')')

	case typ == handle.TypeObject:
		e.b.WriteByte('{')
		e.newline()
		if err := e.emitEntries(h, level+1); err != nil {
			return err
		}
		e.indent(level)
		e.b.WriteByte('}')

	case typ == handle.TypeArray:
		e.b.WriteByte('[')
		e.newline()
		n := e.s.ArrayLen(h)
		for i := 0; i < n; i++ {
			child := e.s.ArrayGet(h, i)
			if child == 0 {
				return errors.New(errors.PhaseEmit, errors.KindConversionFailure).
					Detail("no element at index %d (length %d)", i, n).
					Build()
			}
			e.indent(level + 1)
			if err := e.emitValue(child, level+1); err != nil {
				return err
			}
			e.newline()
		}
		e.indent(level)
		e.b.WriteByte(']')
	}

	return nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escape(s string) string {
	return escaper.Replace(s)
}
