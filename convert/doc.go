// Package convert implements the bidirectional conversion engine between
// the in-memory Value model and the handle-based boundary representation.
//
//	┌──────────────┐   Encode    ┌───────────────────┐
//	│ value.Value  │ ──────────► │ handle tree       │
//	│ (7 variants) │ ◄────────── │ (sub-typed nodes) │
//	└──────────────┘   Decode    └───────────────────┘
//
// # Normalization
//
// Decode collapses the boundary's fine-grained typing: every integer
// sub-width extracts as i64, both float widths as f64 (f32 is widened).
// Encode re-derives the compact wire type from the value itself:
//
//   - IntType picks the smallest unsigned width for non-negative values
//     and the smallest signed width for negative ones, so 200 encodes as
//     u8 and -200 as i16.
//   - StringClass counts Unicode characters (not bytes) and picks the
//     smallest capacity class from {2,4,...,1024}; malformed UTF-8 fails
//     with invalid_encoding before any class decision, and counts over
//     1024 fail with string_too_long.
//
// Both selections are pure functions of value content, never of caller
// intent, because they determine the on-wire encoding.
//
// # Ownership under partial failure
//
// Encode builds composites under scoped guards: when a container
// insertion is rejected, the freshly encoded child and the partially
// built parent are both released before the error propagates, so a failed
// conversion leaks nothing. Decode releases every key enumeration through
// a guard on all exit paths and treats child handles as borrowed.
//
// # Depth
//
// Recursion depth equals value nesting depth. Both directions enforce
// Options.MaxDepth (default 512) and fail with depth_exceeded instead of
// exhausting the stack on hostile input.
//
// The engine is synchronous, holds no global state, and is reentrant; a
// Boundary (normally a *handle.Store) must not be shared across
// goroutines.
package convert
