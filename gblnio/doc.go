// Package gblnio stores GBLN documents on disk, either as plain text
// sources or inside a compressed binary container.
//
// The container starts with the magic "GBLN", a version byte, a codec
// byte and the little-endian uncompressed length of the mini-serialised
// text, followed by the compressed payload. Supported codecs are zstd
// (the interchange default), lz4, brotli and none. Unpack caps how far
// a payload may inflate, so a hostile header cannot force unbounded
// allocation.
//
// ReadFile accepts both forms and dispatches on the magic, so callers
// do not need to know how a file was written.
package gblnio
