package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValue  Phase = "value"  // Value construction and access
	PhaseEncode Phase = "encode" // Value to handle tree
	PhaseDecode Phase = "decode" // handle tree to Value
	PhaseParse  Phase = "parse"  // text to handle tree
	PhaseEmit   Phase = "emit"   // handle tree to text
	PhaseIO     Phase = "io"     // container read/write
	PhaseConfig Phase = "config" // configuration validation
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch      Kind = "type_mismatch"
	KindConversionFailure Kind = "conversion_failure"
	KindInvalidEncoding   Kind = "invalid_encoding"
	KindStringTooLong     Kind = "string_too_long"
	KindInvalidArgument   Kind = "invalid_argument"
	KindIndexOutOfRange   Kind = "index_out_of_range"
	KindDepthExceeded     Kind = "depth_exceeded"
	KindDuplicateKey      Kind = "duplicate_key"
	KindIntOutOfRange     Kind = "int_out_of_range"
	KindUnexpectedChar    Kind = "unexpected_char"
	KindUnexpectedEOF     Kind = "unexpected_eof"
	KindUnexpectedToken   Kind = "unexpected_token"
	KindInvalidSyntax     Kind = "invalid_syntax"
	KindIOFailure         Kind = "io_failure"
	KindInvalidConfig     Kind = "invalid_config"
	KindNullHandle        Kind = "null_handle"
	KindLimitExceeded     Kind = "limit_exceeded"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Got    string
	Want   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Got != "" || e.Want != "" {
		b.WriteString(": ")
		if e.Got != "" && e.Want != "" {
			b.WriteString("got ")
			b.WriteString(e.Got)
			b.WriteString(", want ")
			b.WriteString(e.Want)
		} else if e.Got != "" {
			b.WriteString("got ")
			b.WriteString(e.Got)
		} else {
			b.WriteString("want ")
			b.WriteString(e.Want)
		}
	}

	if e.Detail != "" {
		if e.Got != "" || e.Want != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Got sets the type or token that was actually found
func (b *Builder) Got(t string) *Builder {
	b.err.Got = t
	return b
}

// Want sets the type or token that was expected
func (b *Builder) Want(t string) *Builder {
	b.err.Want = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, got, want string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTypeMismatch,
		Path:  path,
		Got:   got,
		Want:  want,
	}
}

// ConversionFailure creates a boundary conversion error
func ConversionFailure(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConversionFailure,
		Path:   path,
		Detail: detail,
	}
}

// InvalidEncoding creates an invalid UTF-8 error
func InvalidEncoding(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// StringTooLong creates an error for strings over the largest capacity class
func StringTooLong(phase Phase, path []string, count, max int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStringTooLong,
		Path:   path,
		Detail: fmt.Sprintf("string is %d characters, max %d", count, max),
		Value:  count,
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// IndexOutOfRange creates an out-of-range index error
func IndexOutOfRange(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// DepthExceeded creates a nesting depth error
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("nesting exceeds depth limit %d", limit),
	}
}

// DuplicateKey creates a duplicate object key error
func DuplicateKey(phase Phase, path []string, key string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateKey,
		Path:   path,
		Detail: fmt.Sprintf("duplicate key %q", key),
		Value:  key,
	}
}

// IntOutOfRange creates an error for integers outside a declared width
func IntOutOfRange(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIntOutOfRange,
		Path:   path,
		Want:   targetType,
		Detail: fmt.Sprintf("value %v does not fit %s", value, targetType),
		Value:  value,
	}
}

// NullHandle creates an error for a null handle where a value was required
func NullHandle(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullHandle,
		Path:   path,
		Detail: "null handle",
	}
}

// InvalidConfig creates a configuration validation error
func InvalidConfig(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// LimitExceeded creates a resource limit error
func LimitExceeded(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLimitExceeded,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
