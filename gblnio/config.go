package gblnio

import "github.com/gbln-format/gbln-go/errors"

// Codec identifies the compression algorithm of a container payload.
type Codec byte

const (
	CodecNone Codec = iota
	CodecZstd
	CodecLZ4
	CodecBrotli
)

var codecNames = map[Codec]string{
	CodecNone:   "none",
	CodecZstd:   "zstd",
	CodecLZ4:    "lz4",
	CodecBrotli: "brotli",
}

func (c Codec) String() string {
	if n, ok := codecNames[c]; ok {
		return n
	}
	return "unknown"
}

// CodecByName resolves a codec from its textual name.
func CodecByName(name string) (Codec, error) {
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return 0, errors.InvalidConfig("unknown codec %q", name)
}

// Config controls how a document is rendered and stored.
type Config struct {
	// MiniMode renders the compact form with no whitespace. When false
	// the output is pretty-printed with Indent spaces per level.
	MiniMode bool
	// Compress wraps the rendered text in a container with Codec.
	Compress bool
	Codec    Codec
	// Level is the compression effort, 0 (codec default) through 9.
	Level int
	// Indent is the pretty-print indentation width, 0 through 16.
	// Ignored in mini mode; zero selects 2.
	Indent int
	// StripComments is kept for symmetry with source-to-source tools.
	// Parsing always discards comments, so round-tripped output never
	// contains them regardless of this setting.
	StripComments bool
}

// IODefault returns the configuration for machine interchange: mini
// text, zstd-compressed.
func IODefault() Config {
	return Config{
		MiniMode: true,
		Compress: true,
		Codec:    CodecZstd,
		Level:    6,
	}
}

// SourceDefault returns the configuration for human-edited files:
// pretty text, no container.
func SourceDefault() Config {
	return Config{
		Indent:        2,
		StripComments: false,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Level < 0 || c.Level > 9 {
		return errors.InvalidConfig("compression level %d out of range 0..9", c.Level)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return errors.InvalidConfig("indent %d out of range 0..16", c.Indent)
	}
	if _, ok := codecNames[c.Codec]; !ok {
		return errors.InvalidConfig("unknown codec %d", c.Codec)
	}
	return nil
}
