package convert

import (
	"github.com/gbln-format/gbln-go/handle"
)

// Boundary is the operation contract the conversion engine consumes. It
// is the engine's sole external dependency; *handle.Store satisfies it,
// and tests substitute wrappers to force insertion failures.
type Boundary interface {
	handle.Freer

	NewNull() handle.Handle
	NewBool(bool) handle.Handle
	NewI8(int8) handle.Handle
	NewI16(int16) handle.Handle
	NewI32(int32) handle.Handle
	NewI64(int64) handle.Handle
	NewU8(uint8) handle.Handle
	NewU16(uint16) handle.Handle
	NewU32(uint32) handle.Handle
	NewU64(uint64) handle.Handle
	NewF64(float64) handle.Handle
	NewString(string, int) handle.Handle
	NewObject() handle.Handle
	NewArray() handle.Handle

	Type(handle.Handle) (handle.Type, bool)
	AsBool(handle.Handle) (bool, bool)
	AsI64(handle.Handle) (int64, bool)
	AsF64(handle.Handle) (float64, bool)
	AsString(handle.Handle) (string, bool)

	ObjectInsert(handle.Handle, string, handle.Handle) handle.Code
	ArrayPush(handle.Handle, handle.Handle) handle.Code

	ObjectKeys(handle.Handle) (*handle.KeyArray, int)
	ObjectGet(handle.Handle, string) handle.Handle
	ArrayLen(handle.Handle) int
	ArrayGet(handle.Handle, int) handle.Handle

	LastError() string
}

// Options tunes a conversion.
type Options struct {
	// MaxDepth bounds container nesting on both conversion directions.
	// Zero selects DefaultMaxDepth. Exceeding the limit fails with
	// depth_exceeded rather than exhausting the call stack.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit applied when Options.MaxDepth is
// zero.
const DefaultMaxDepth = 512

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
