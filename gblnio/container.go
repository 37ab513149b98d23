package gblnio

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gbln-format/gbln-go/errors"
)

// Container layout: magic, version byte, codec byte, little-endian
// uint64 uncompressed length, then the codec-compressed text.
const (
	magic      = "GBLN"
	version    = 1
	headerSize = len(magic) + 2 + 8
)

// DefaultMaxUncompressed bounds how far Unpack will inflate a payload.
const DefaultMaxUncompressed = 1 << 30

// IsContainer reports whether blob starts with the container magic.
func IsContainer(blob []byte) bool {
	return len(blob) >= len(magic) && string(blob[:len(magic)]) == magic
}

// Pack wraps rendered text in a container, compressing it with codec at
// the given effort level (0 selects the codec default).
func Pack(text []byte, codec Codec, level int) ([]byte, error) {
	var compressed []byte
	var err error
	switch codec {
	case CodecNone:
		compressed = text
	case CodecZstd:
		compressed, err = zstdCompress(text, level)
	case CodecLZ4:
		compressed, err = lz4Compress(text, level)
	case CodecBrotli:
		compressed, err = brotliCompress(text, level)
	default:
		return nil, errors.InvalidConfig("unknown codec %d", codec)
	}
	if err != nil {
		return nil, errors.New(errors.PhaseIO, errors.KindIOFailure).
			Cause(err).
			Detail("%s compression failed", codec).
			Build()
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magic...)
	out = append(out, version, byte(codec))
	out = binary.LittleEndian.AppendUint64(out, uint64(len(text)))
	return append(out, compressed...), nil
}

// Unpack validates the container header and inflates the payload back
// to text. Payloads that claim more than maxUncompressed bytes, or
// inflate past their claim, are rejected.
func Unpack(blob []byte, maxUncompressed uint64) ([]byte, error) {
	if len(blob) < headerSize {
		return nil, errors.New(errors.PhaseIO, errors.KindUnexpectedEOF).
			Detail("container truncated: %d bytes, need at least %d", len(blob), headerSize).
			Build()
	}
	if !IsContainer(blob) {
		return nil, errors.New(errors.PhaseIO, errors.KindInvalidSyntax).
			Detail("bad magic, not a GBLN container").
			Build()
	}
	if v := blob[len(magic)]; v != version {
		return nil, errors.New(errors.PhaseIO, errors.KindInvalidSyntax).
			Detail("unsupported container version %d, want %d", v, version).
			Build()
	}
	codec := Codec(blob[len(magic)+1])
	size := binary.LittleEndian.Uint64(blob[len(magic)+2 : headerSize])
	if size > maxUncompressed {
		return nil, errors.LimitExceeded(errors.PhaseIO,
			"uncompressed length %d exceeds limit %d", size, maxUncompressed)
	}
	payload := blob[headerSize:]

	var out []byte
	var err error
	switch codec {
	case CodecNone:
		out = payload
	case CodecZstd:
		out, err = zstdDecompress(payload, size)
	case CodecLZ4:
		out, err = lz4Decompress(payload, size)
	case CodecBrotli:
		out, err = brotliDecompress(payload, size)
	default:
		return nil, errors.New(errors.PhaseIO, errors.KindInvalidSyntax).
			Detail("unknown codec byte %d", byte(codec)).
			Build()
	}
	if err != nil {
		return nil, errors.New(errors.PhaseIO, errors.KindIOFailure).
			Cause(err).
			Detail("%s decompression failed", codec).
			Build()
	}
	if uint64(len(out)) != size {
		return nil, errors.New(errors.PhaseIO, errors.KindInvalidSyntax).
			Detail("inflated length %d does not match header claim %d", len(out), size).
			Build()
	}
	return out, nil
}

func zstdCompress(in []byte, level int) ([]byte, error) {
	opts := []zstd.EOption{}
	if level > 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	// Length mismatches against the header claim are caught by Unpack.
	return dec.DecodeAll(in, nil)
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

func lz4Compress(in []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if level > 0 && level < len(lz4Levels) {
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
			return nil, err
		}
	}
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	return io.ReadAll(io.LimitReader(r, int64(expected)+1))
}

func brotliCompress(in []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, level)
	if _, err := bw.Write(in); err != nil {
		_ = bw.Close()
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	return io.ReadAll(io.LimitReader(r, int64(expected)+1))
}
