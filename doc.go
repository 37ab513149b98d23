// Package gbln implements the GBLN typed data-interchange format.
//
// GBLN documents are trees of typed values: null, bool, sized integers
// (i8-i64, u8-u64), floats (f32/f64), capacity-classed strings,
// key-ordered objects and arrays. The text form tags every scalar with
// its wire type, so a document states exactly how wide each field is.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	gbln/            Root package with the high-level document API
//	├── value/       Tagged-union Value tree (the application-side model)
//	├── handle/      Handle-table store, the ownership boundary layer
//	├── convert/     Value <-> handle tree conversion engine
//	├── wire/        Text grammar: parser and emitter
//	├── gblnio/      Compressed container format and file I/O
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Parse a document and read fields:
//
//	v, err := gbln.Parse("user{id<u32>(12345)name<s64>(Alice)}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	user, _ := v.Get("user")
//	name, _ := user.Get("name")
//	fmt.Println(name.AsString()) // "Alice"
//
// Build a document and store it compressed:
//
//	doc := value.Object(map[string]value.Value{
//	    "id":   value.Int(12345),
//	    "name": value.String("Alice"),
//	})
//	err := gbln.WriteFile("user.gbln.io", doc, gbln.IODefault())
//
// # Type Selection
//
// When a Value is encoded, integers take the smallest width that holds
// them (unsigned preferred for non-negative values) and strings take
// the smallest capacity class (2, 4, ..., 1024 characters) that holds
// their character count. A round trip through text therefore
// normalizes widths rather than preserving them.
//
// # Ownership Model
//
// The handle package exposes the boundary layer directly for callers
// that manage node lifetimes themselves. Child handles transfer to
// their parent on insertion; freeing a root frees the whole tree.
// The root package API hides all of this: each call runs against a
// private store that is released before the call returns.
//
// # Thread Safety
//
// Values are immutable once built and safe to share. A handle.Store is
// NOT thread-safe and should be confined to a single goroutine, or
// access must be synchronized.
package gbln
