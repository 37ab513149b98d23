package handle

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// Store is an arena of typed nodes addressed by opaque handles. It is the
// in-process stand-in for the native boundary: every operation mirrors the
// boundary contract exactly, including the two-outcome ownership rule on
// container insertion and the out-of-band last-error message.
//
// A Store maintains internal state and is not safe for concurrent use;
// create one per conversion.
type Store struct {
	nodes    []node
	freeList []Handle
	lastErr  string
	liveKeys int
}

type node struct {
	s      string
	keys   []string          // object key order, sorted
	obj    map[string]Handle // object entries
	arr    []Handle          // array elements
	i      int64             // signed integer payload
	u      uint64            // unsigned integer payload
	f      float64
	strCap int
	b      bool
	typ    Type
	valid  bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nodes:    make([]node, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *Store) alloc(n node) Handle {
	n.valid = true
	if len(s.freeList) > 0 {
		h := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.nodes[h-1] = n
		return h
	}
	s.nodes = append(s.nodes, n)
	return Handle(len(s.nodes))
}

func (s *Store) get(h Handle) *node {
	if h == 0 || int(h) > len(s.nodes) {
		return nil
	}
	n := &s.nodes[h-1]
	if !n.valid {
		return nil
	}
	return n
}

func (s *Store) setErr(format string, args ...any) {
	s.lastErr = fmt.Sprintf(format, args...)
}

// LastError returns the message recorded by the most recent failing
// operation. The next failing operation overwrites it.
func (s *Store) LastError() string {
	return s.lastErr
}

// Live returns the number of live allocations: valid nodes plus unfreed
// key arrays. Used to verify leak freedom around partial failures.
func (s *Store) Live() int {
	count := s.liveKeys
	for i := range s.nodes {
		if s.nodes[i].valid {
			count++
		}
	}
	return count
}

/* Constructors. One per (type, sub-width) combination, like the native
   boundary. Allocation itself never fails. */

func (s *Store) NewNull() Handle {
	return s.alloc(node{typ: TypeNull})
}

func (s *Store) NewBool(b bool) Handle {
	return s.alloc(node{typ: TypeBool, b: b})
}

func (s *Store) NewI8(v int8) Handle {
	return s.alloc(node{typ: TypeI8, i: int64(v)})
}

func (s *Store) NewI16(v int16) Handle {
	return s.alloc(node{typ: TypeI16, i: int64(v)})
}

func (s *Store) NewI32(v int32) Handle {
	return s.alloc(node{typ: TypeI32, i: int64(v)})
}

func (s *Store) NewI64(v int64) Handle {
	return s.alloc(node{typ: TypeI64, i: v})
}

func (s *Store) NewU8(v uint8) Handle {
	return s.alloc(node{typ: TypeU8, u: uint64(v)})
}

func (s *Store) NewU16(v uint16) Handle {
	return s.alloc(node{typ: TypeU16, u: uint64(v)})
}

func (s *Store) NewU32(v uint32) Handle {
	return s.alloc(node{typ: TypeU32, u: uint64(v)})
}

func (s *Store) NewU64(v uint64) Handle {
	return s.alloc(node{typ: TypeU64, u: v})
}

func (s *Store) NewF32(v float32) Handle {
	return s.alloc(node{typ: TypeF32, f: float64(v)})
}

func (s *Store) NewF64(v float64) Handle {
	return s.alloc(node{typ: TypeF64, f: v})
}

// NewString creates a string node with the given capacity class. Returns
// the zero handle and records the last error if the string is not valid
// UTF-8, maxChars is not positive, or the character count exceeds
// maxChars.
func (s *Store) NewString(str string, maxChars int) Handle {
	if maxChars <= 0 {
		s.setErr("invalid string capacity %d", maxChars)
		return 0
	}
	if !utf8.ValidString(str) {
		s.setErr("string is not valid UTF-8")
		return 0
	}
	if n := utf8.RuneCountInString(str); n > maxChars {
		s.setErr("string is %d characters, capacity %d", n, maxChars)
		return 0
	}
	return s.alloc(node{typ: TypeStr, s: str, strCap: maxChars})
}

func (s *Store) NewObject() Handle {
	return s.alloc(node{typ: TypeObject, obj: make(map[string]Handle)})
}

func (s *Store) NewArray() Handle {
	return s.alloc(node{typ: TypeArray})
}

// Free releases a node and, for containers, all of its children. Freeing
// the zero handle or an already-freed handle is a no-op.
func (s *Store) Free(h Handle) {
	n := s.get(h)
	if n == nil {
		return
	}
	switch n.typ {
	case TypeObject:
		for _, child := range n.obj {
			s.Free(child)
		}
	case TypeArray:
		for _, child := range n.arr {
			s.Free(child)
		}
	}
	*n = node{}
	s.freeList = append(s.freeList, h)
}

// Close frees every remaining allocation.
func (s *Store) Close() {
	for i := range s.nodes {
		s.nodes[i] = node{}
	}
	s.nodes = s.nodes[:0]
	s.freeList = s.freeList[:0]
	s.liveKeys = 0
}

/* Introspection and extraction. Extraction never panics: failure is
   signalled through the ok flag so the caller decides severity. */

// Type returns the node's type tag.
func (s *Store) Type(h Handle) (Type, bool) {
	n := s.get(h)
	if n == nil {
		return 0, false
	}
	return n.typ, true
}

// StringCap returns the capacity class of a string node.
func (s *Store) StringCap(h Handle) (int, bool) {
	n := s.get(h)
	if n == nil || n.typ != TypeStr {
		return 0, false
	}
	return n.strCap, true
}

func (s *Store) AsBool(h Handle) (bool, bool) {
	n := s.get(h)
	if n == nil || n.typ != TypeBool {
		s.setErr("not a bool value")
		return false, false
	}
	return n.b, true
}

// AsI64 extracts any integer sub-width as the widest signed form. An
// unsigned payload above math.MaxInt64 does not fit and fails.
func (s *Store) AsI64(h Handle) (int64, bool) {
	n := s.get(h)
	if n == nil || !n.typ.IsInt() {
		s.setErr("not an integer value")
		return 0, false
	}
	if !n.typ.IsSigned() {
		if n.u > math.MaxInt64 {
			s.setErr("u64 value %d out of i64 range", n.u)
			return 0, false
		}
		return int64(n.u), true
	}
	return n.i, true
}

// AsU64 extracts an unsigned payload, or a non-negative signed one.
func (s *Store) AsU64(h Handle) (uint64, bool) {
	n := s.get(h)
	if n == nil || !n.typ.IsInt() {
		s.setErr("not an integer value")
		return 0, false
	}
	if n.typ.IsSigned() {
		if n.i < 0 {
			s.setErr("negative value %d out of u64 range", n.i)
			return 0, false
		}
		return uint64(n.i), true
	}
	return n.u, true
}

func (s *Store) AsF32(h Handle) (float32, bool) {
	n := s.get(h)
	if n == nil || !n.typ.IsFloat() {
		s.setErr("not a float value")
		return 0, false
	}
	return float32(n.f), true
}

// AsF64 extracts either float sub-width; f32 payloads are widened.
func (s *Store) AsF64(h Handle) (float64, bool) {
	n := s.get(h)
	if n == nil || !n.typ.IsFloat() {
		s.setErr("not a float value")
		return 0, false
	}
	return n.f, true
}

func (s *Store) AsString(h Handle) (string, bool) {
	n := s.get(h)
	if n == nil || n.typ != TypeStr {
		s.setErr("not a string value")
		return "", false
	}
	return n.s, true
}

/* Container mutation. Two-outcome ownership rule: CodeOK transfers the
   child to the parent; any other code leaves the child with the caller. */

// ObjectInsert inserts child under key. On CodeOK the object owns the
// child and the caller must not free it independently.
func (s *Store) ObjectInsert(parent Handle, key string, child Handle) Code {
	p := s.get(parent)
	if p == nil {
		s.setErr("invalid object handle")
		return CodeInvalidHandle
	}
	if p.typ != TypeObject {
		s.setErr("insert target is %s, not object", p.typ)
		return CodeTypeMismatch
	}
	if child == 0 {
		s.setErr("cannot insert null handle")
		return CodeNullValue
	}
	if s.get(child) == nil {
		s.setErr("invalid child handle")
		return CodeInvalidHandle
	}
	if _, exists := p.obj[key]; exists {
		s.setErr("duplicate key %q", key)
		return CodeDuplicateKey
	}
	idx := sort.SearchStrings(p.keys, key)
	p.keys = append(p.keys, "")
	copy(p.keys[idx+1:], p.keys[idx:])
	p.keys[idx] = key
	p.obj[key] = child
	return CodeOK
}

// ArrayPush appends child to the array. Same ownership rule as
// ObjectInsert.
func (s *Store) ArrayPush(parent Handle, child Handle) Code {
	p := s.get(parent)
	if p == nil {
		s.setErr("invalid array handle")
		return CodeInvalidHandle
	}
	if p.typ != TypeArray {
		s.setErr("push target is %s, not array", p.typ)
		return CodeTypeMismatch
	}
	if child == 0 {
		s.setErr("cannot push null handle")
		return CodeNullValue
	}
	if s.get(child) == nil {
		s.setErr("invalid child handle")
		return CodeInvalidHandle
	}
	p.arr = append(p.arr, child)
	return CodeOK
}

/* Enumeration. Child handles obtained here are borrowed: their lifetime
   is tied to the container and they must not be freed independently. */

// ObjectLen returns the number of entries, or 0 for non-objects.
func (s *Store) ObjectLen(h Handle) int {
	n := s.get(h)
	if n == nil || n.typ != TypeObject {
		return 0
	}
	return len(n.obj)
}

// ObjectKeys returns the object's keys in sorted order as an owned
// KeyArray that must be released with FreeKeys, plus the key count. A
// non-object handle yields a nil array and count 0.
func (s *Store) ObjectKeys(h Handle) (*KeyArray, int) {
	n := s.get(h)
	if n == nil || n.typ != TypeObject {
		s.setErr("not an object value")
		return nil, 0
	}
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	s.liveKeys++
	return &KeyArray{keys: keys}, len(keys)
}

// FreeKeys releases a key array. Nil or already-freed arrays are no-ops.
func (s *Store) FreeKeys(k *KeyArray) {
	if k == nil || k.freed {
		return
	}
	k.freed = true
	k.keys = nil
	s.liveKeys--
}

// ObjectGet returns the borrowed child for key, or the zero handle if the
// key is absent or h is not an object.
func (s *Store) ObjectGet(h Handle, key string) Handle {
	n := s.get(h)
	if n == nil || n.typ != TypeObject {
		return 0
	}
	return n.obj[key]
}

// ArrayLen returns the element count, or 0 for non-arrays.
func (s *Store) ArrayLen(h Handle) int {
	n := s.get(h)
	if n == nil || n.typ != TypeArray {
		return 0
	}
	return len(n.arr)
}

// ArrayGet returns the borrowed element at index i, or the zero handle if
// i is out of range or h is not an array.
func (s *Store) ArrayGet(h Handle, i int) Handle {
	n := s.get(h)
	if n == nil || n.typ != TypeArray {
		return 0
	}
	if i < 0 || i >= len(n.arr) {
		return 0
	}
	return n.arr[i]
}
