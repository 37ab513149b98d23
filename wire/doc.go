// Package wire implements the GBLN text grammar over handle trees.
//
// The grammar is a flat sequence of typed entries:
//
//	user{
//	  id<u32>(12345)
//	  name<s8>(Alice)
//	  active<b>(t)
//	  tags[
//	    <s4>(go)
//	    <s4>(ffi)
//	  ]
//	}
//
// An entry is key<tag>(payload) for scalars, key{...} for objects and
// key[...] for arrays; array elements carry no key. Type tags are the
// integer sub-widths i8-i64 and u8-u64, f32/f64, b (bool, payload t or
// f), n (null, empty payload) and s<N> where N is a string capacity
// class (2, 4, ..., 1024) measured in Unicode characters. The root is a
// bare entry list forming an object, or a single unkeyed element. A #
// starts a line comment; whitespace between entries is insignificant.
// Inside string payloads, parentheses and backslashes are escaped as
// \(, \) and \\.
//
// Parse builds a handle tree bottom-up under scoped guards, so a syntax
// error midway releases everything allocated so far. Emit walks a
// borrowed handle tree through the boundary extraction contract and
// writes either the compact MINI form (no whitespace) or the pretty
// form (one entry per line, indented).
package wire
