package gbln

import (
	"github.com/gbln-format/gbln-go/convert"
	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/gblnio"
	"github.com/gbln-format/gbln-go/handle"
	"github.com/gbln-format/gbln-go/value"
	"github.com/gbln-format/gbln-go/wire"
)

// Value is the tree representation of a GBLN document.
type Value = value.Value

// Kind discriminates the seven Value variants.
type Kind = value.Kind

// Config controls rendering and storage, see gblnio.Config.
type Config = gblnio.Config

// Error is the structured error type returned by all operations.
type Error = errors.Error

// IODefault returns the machine-interchange configuration: mini text,
// zstd-compressed container.
func IODefault() Config { return gblnio.IODefault() }

// SourceDefault returns the human-edited-file configuration: pretty
// text, no container.
func SourceDefault() Config { return gblnio.SourceDefault() }

// Parse reads GBLN text into a Value.
func Parse(input string) (Value, error) {
	s := handle.NewStore()
	defer s.Close()

	h, err := wire.Parse(s, input)
	if err != nil {
		return Value{}, err
	}
	defer s.Free(h)
	return convert.Decode(s, h)
}

// ToString renders v as compact GBLN text.
func ToString(v Value) (string, error) {
	return render(v, wire.EmitOptions{})
}

// ToStringPretty renders v as indented GBLN text. Zero indent selects 2.
func ToStringPretty(v Value, indent int) (string, error) {
	return render(v, wire.EmitOptions{Pretty: true, Indent: indent})
}

func render(v Value, opts wire.EmitOptions) (string, error) {
	s := handle.NewStore()
	defer s.Close()

	h, err := convert.Encode(s, v)
	if err != nil {
		return "", err
	}
	defer s.Free(h)
	return wire.Emit(s, h, opts)
}

// ReadFile loads a document from path, accepting both plain text
// sources and compressed containers.
func ReadFile(path string) (Value, error) {
	s := handle.NewStore()
	defer s.Close()

	h, err := gblnio.ReadFile(path, s)
	if err != nil {
		return Value{}, err
	}
	defer s.Free(h)
	return convert.Decode(s, h)
}

// WriteFile stores v at path per cfg.
func WriteFile(path string, v Value, cfg Config) error {
	s := handle.NewStore()
	defer s.Close()

	h, err := convert.Encode(s, v)
	if err != nil {
		return err
	}
	defer s.Free(h)
	return gblnio.WriteFile(path, s, h, cfg)
}
