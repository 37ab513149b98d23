// Package value defines the in-memory tagged-union representation of a
// GBLN document.
//
// A Value is exactly one of seven variants: Null, Bool, Int, Float,
// String, Object or Array. The model is a tree: containers own their
// children exclusively and no node is shared between two parents.
//
// The single Int variant collapses all wire integer widths (i8-i64,
// u8-u64) and the single Float variant collapses f32/f64; the compact wire
// width is chosen again from the value itself when encoding (see the
// convert package).
//
// Type predicates (IsBool, IsObject, ...) never fail. Typed accessors
// (AsBool, AsObject, ...) panic with a structured type_mismatch error when
// the variant differs - requesting the wrong variant is a programming
// error, not a recoverable condition.
package value
