// Package errors provides structured error types for the gbln library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: value path, got/want type
// names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindConversionFailure).
//		Path("user", "age").
//		Detail("insert rejected by boundary").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseValue, path, "string", "int")
//	err := errors.StringTooLong(errors.PhaseEncode, path, 1025, 1024)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so sentinel comparisons like
//
//	errors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindStringTooLong})
//
// work without inspecting the message.
//
// Assertion-class conditions (accessor type mismatch, guard construction from
// a null handle, key-array index out of range) are raised as panics carrying
// a *Error payload; they indicate contract violations, not runtime faults.
package errors
