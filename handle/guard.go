package handle

import (
	"github.com/gbln-format/gbln-go/errors"
)

// Freer is the narrow release surface a guard needs. *Store implements
// it; tests may interpose their own.
type Freer interface {
	Free(Handle)
	FreeKeys(*KeyArray)
}

// Owned binds a handle's lifetime to a lexical scope. Release in a defer
// guarantees the handle is freed on every exit path; Detach transfers
// ownership out (after a successful container insertion, or to hand the
// finished tree to the caller).
//
// An Owned must not be duplicated: two guards over the same handle would
// double-free it. Move ownership with Detach or Move instead.
type Owned struct {
	f Freer
	h Handle
}

// Own takes ownership of h. Taking ownership of the zero handle or using
// a nil Freer is a contract violation and panics with invalid_argument.
func Own(f Freer, h Handle) Owned {
	if f == nil {
		panic(errors.InvalidArgument(errors.PhaseValue, "cannot create guard with nil boundary"))
	}
	if h == 0 {
		panic(errors.InvalidArgument(errors.PhaseValue, "cannot take ownership of a null handle"))
	}
	return Owned{f: f, h: h}
}

// Handle returns the guarded handle, or the zero handle after Detach or
// Release.
func (o *Owned) Handle() Handle {
	return o.h
}

// Empty reports whether ownership has been released or transferred away.
func (o *Owned) Empty() bool {
	return o.h == 0
}

// Detach transfers the handle out of the guard. The guard becomes empty
// and a later Release frees nothing.
func (o *Owned) Detach() Handle {
	h := o.h
	o.h = 0
	return h
}

// Move transfers ownership into a fresh guard, leaving the source empty.
func (o *Owned) Move() Owned {
	return Owned{f: o.f, h: o.Detach()}
}

// Release frees the handle if the guard still owns it. Safe to call more
// than once.
func (o *Owned) Release() {
	if o.h != 0 {
		o.f.Free(o.h)
		o.h = 0
	}
}

// Keys binds a key enumeration result to a lexical scope. The whole array
// is released with a single FreeKeys call, never key by key.
type Keys struct {
	f   Freer
	arr *KeyArray
}

// OwnKeys takes ownership of a key array. A nil array is a contract
// violation and panics with invalid_argument.
func OwnKeys(f Freer, arr *KeyArray) Keys {
	if f == nil {
		panic(errors.InvalidArgument(errors.PhaseValue, "cannot create guard with nil boundary"))
	}
	if arr == nil {
		panic(errors.InvalidArgument(errors.PhaseValue, "cannot take ownership of a nil key array"))
	}
	return Keys{f: f, arr: arr}
}

// Len returns the number of enumerated keys.
func (k *Keys) Len() int {
	if k.arr == nil {
		return 0
	}
	return len(k.arr.keys)
}

// At returns the key at index i. Access beyond the enumerated count is a
// contract violation and panics with index_out_of_range.
func (k *Keys) At(i int) string {
	if k.arr == nil || i < 0 || i >= len(k.arr.keys) {
		panic(errors.IndexOutOfRange(errors.PhaseValue, i, k.Len()))
	}
	return k.arr.keys[i]
}

// Release frees the key array. Safe to call more than once.
func (k *Keys) Release() {
	if k.arr != nil {
		k.f.FreeKeys(k.arr)
		k.arr = nil
	}
}
