package gblnio

import (
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/handle"
	"github.com/gbln-format/gbln-go/wire"
)

// Render serialises a handle tree to text per cfg, wrapping it in a
// compressed container when cfg.Compress is set.
func Render(s *handle.Store, h handle.Handle, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	text, err := wire.Emit(s, h, wire.EmitOptions{
		Pretty: !cfg.MiniMode,
		Indent: cfg.Indent,
	})
	if err != nil {
		return nil, err
	}
	if !cfg.Compress {
		return []byte(text), nil
	}
	return Pack([]byte(text), cfg.Codec, cfg.Level)
}

// Load parses blob into a handle tree owned by the caller. Container
// blobs are unpacked first; anything else is treated as plain text.
func Load(s *handle.Store, blob []byte) (handle.Handle, error) {
	if IsContainer(blob) {
		text, err := Unpack(blob, DefaultMaxUncompressed)
		if err != nil {
			return 0, err
		}
		return wire.Parse(s, string(text))
	}
	return wire.Parse(s, string(blob))
}

// WriteFile renders a handle tree and writes it to path.
func WriteFile(path string, s *handle.Store, h handle.Handle, cfg Config) (err error) {
	blob, err := Render(s, h, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.PhaseIO, errors.KindIOFailure).
			Cause(err).
			Detail("create %s", path).
			Build()
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.Write(blob); err != nil {
		return errors.New(errors.PhaseIO, errors.KindIOFailure).
			Cause(err).
			Detail("write %s", path).
			Build()
	}

	Logger().Debug("wrote document",
		zap.String("path", path),
		zap.Int("bytes", len(blob)),
		zap.Bool("compressed", cfg.Compress),
		zap.Stringer("codec", cfg.Codec))
	return nil
}

// ReadFile reads path and parses it into a handle tree owned by the
// caller. Both container files and plain text sources are accepted.
func ReadFile(path string, s *handle.Store) (handle.Handle, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.New(errors.PhaseIO, errors.KindIOFailure).
			Cause(err).
			Detail("read %s", path).
			Build()
	}

	h, err := Load(s, blob)
	if err != nil {
		return 0, err
	}

	Logger().Debug("read document",
		zap.String("path", path),
		zap.Int("bytes", len(blob)),
		zap.Bool("container", IsContainer(blob)))
	return h, nil
}
