package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // type object to descriptor
	PhaseDecode  Phase = "decode"  // bytes to host object
	PhaseEncode  Phase = "encode"  // host object to bytes
	PhaseMemory  Phase = "memory"  // buffer provider access
	PhaseSchema  Phase = "schema"  // declarative layout loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidType           Kind = "invalid_type"
	KindNoType                Kind = "no_type"
	KindUnsupportedIdentifier Kind = "unsupported_identifier"
	KindMissingAttribute      Kind = "missing_attribute"
	KindSliceConversion       Kind = "slice_conversion"
	KindHostModel             Kind = "host_model"
	KindInvalidData           Kind = "invalid_data"
	KindOutOfBounds           Kind = "out_of_bounds"
	KindNilPointer            Kind = "nil_pointer"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Name     string
	TypeName string
	Detail   string
	Path     []string
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

	if e.Name != "" || e.TypeName != "" {
		b.WriteString(": ")
		if e.Name != "" && e.TypeName != "" {
			fmt.Fprintf(&b, "%q of type %s", e.Name, e.TypeName)
		} else if e.Name != "" {
			fmt.Fprintf(&b, "%q", e.Name)
		} else {
			b.WriteString("type ")
			b.WriteString(e.TypeName)
		}
	}

	if e.Detail != "" {
		if e.Name != "" || e.TypeName != "" {
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

// Is reports whether target matches this error. A target with an empty
// Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && t.Phase != e.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	return stderrors.Is(err, &Error{Kind: kind})
}

// KindOf returns the kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
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

// Name sets the offending identifier (field, attribute or type code)
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// TypeName sets the descriptor or host type name
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
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

// InvalidType creates an error for an unrecognized base-type name
func InvalidType(path []string, baseName string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindInvalidType,
		Path:     path,
		TypeName: baseName,
		Detail:   "unrecognized base type",
	}
}

// NoType creates an error for a structure field declared without a type
func NoType(path []string, field string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNoType,
		Path:   path,
		Name:   field,
		Detail: "field has no type",
	}
}

// UnsupportedIdentifier creates an error for a type code whose conversion
// is deliberately not implemented
func UnsupportedIdentifier(phase Phase, path []string, ident, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedIdentifier,
		Path:   path,
		Name:   ident,
		Detail: detail,
	}
}

// MissingAttribute creates an error for an attribute absent from an object being encoded
func MissingAttribute(path []string, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindMissingAttribute,
		Path:   path,
		Name:   name,
		Detail: "object has no attribute",
		Cause:  cause,
	}
}

// SliceConversion creates an error for a buffer whose length differs from the layout size
func SliceConversion(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSliceConversion,
		Path:   path,
		Detail: fmt.Sprintf("expected %d bytes, got %d", want, got),
		Value:  got,
	}
}

// HostModel wraps a failure reported by the host object model. Errors that
// are already structured pass through unchanged.
func HostModel(phase Phase, path []string, cause error) error {
	var e *Error
	if stderrors.As(cause, &e) {
		return cause
	}
	return &Error{
		Phase: phase,
		Kind:  KindHostModel,
		Path:  path,
		Cause: cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error for a memory access
func OutOfBounds(phase Phase, addr uint64, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("access of %d bytes at 0x%x out of bounds", length, addr),
		Value:  addr,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		Detail: "nil " + what,
	}
}
