// Package handle implements the boundary side of the GBLN value model:
// an arena of typed nodes addressed by opaque handles, plus the scoped
// ownership guards that make releasing them automatic.
//
// # Handles
//
// A Handle is an opaque uint32; 0 is always invalid. Unlike the value
// package, nodes keep the fine-grained wire typing: integer sub-widths
// (i8-i64, u8-u64), float sub-widths (f32/f64) and string capacity
// classes.
//
//	s := handle.NewStore()
//	h := s.NewU32(12345)
//	t, _ := s.Type(h)        // handle.TypeU32
//	n, ok := s.AsI64(h)      // 12345, true
//	s.Free(h)                // freeing 0 or twice is a no-op
//
// # Ownership
//
// Container insertion follows a two-outcome rule: on CodeOK the parent
// owns the child and freeing the parent frees the whole subtree; on any
// other code ownership stays with the caller, who must free both the
// child and any partially built parent.
//
// Handles returned by ObjectGet and ArrayGet are borrowed - their
// lifetime is tied to the container and they must never be freed
// independently.
//
// # Guards
//
// Owned and Keys bind a handle (or an enumerated key array) to a lexical
// scope:
//
//	g := handle.Own(s, s.NewObject())
//	defer g.Release()
//	...
//	return g.Detach(), nil // transfer to caller; deferred Release is a no-op
//
// Guard misuse (owning the zero handle, indexing keys out of range) is an
// assertion-class contract violation and panics with a structured error.
//
// # Instrumentation
//
// Store.Live reports the number of live allocations (nodes plus unfreed
// key arrays), which the conversion tests use to prove that partial
// failures leak nothing.
package handle
