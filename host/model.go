package host

import "errors"

// Object is an opaque host value. The codec never inspects it directly.
type Object = any

// ErrNoAttribute is wrapped by GetAttr implementations for absent names.
var ErrNoAttribute = errors.New("no such attribute")

// KwArg is a single named constructor argument. Keyword arguments are
// passed as an ordered slice so hosts can observe declaration order.
type KwArg struct {
	Value Object
	Name  string
}

// Types exposes the structural shape of host type objects.
type Types interface {
	// BaseName returns the name of the type object's immediate base class.
	BaseName(tok *Token, typ Object) (string, error)
}

// Attrs reads attributes by name.
type Attrs interface {
	GetAttr(tok *Token, obj Object, name string) (Object, error)
}

// Sequences provides positional access.
type Sequences interface {
	Len(tok *Token, obj Object) (int, error)
	Index(tok *Token, obj Object, i int) (Object, error)
}

// Scalars converts between host values and Go scalars. Extraction is
// range-checked against the requested bit width. The float32 pair must
// preserve bit patterns, NaN payloads included.
type Scalars interface {
	Str(tok *Token, obj Object) (string, error)
	ExtractInt(tok *Token, obj Object, bits int) (int64, error)
	ExtractUint(tok *Token, obj Object, bits int) (uint64, error)
	ExtractFloat(tok *Token, obj Object) (float64, error)
	ExtractFloat32(tok *Token, obj Object) (float32, error)
	FromInt(tok *Token, v int64) (Object, error)
	FromUint(tok *Token, v uint64) (Object, error)
	FromFloat(tok *Token, v float64) (Object, error)
	FromFloat32(tok *Token, v float32) (Object, error)
}

// Callables invokes constructors and other callable host objects.
type Callables interface {
	Call(tok *Token, fn Object, args ...Object) (Object, error)
	CallKw(tok *Token, fn Object, kwargs []KwArg) (Object, error)
}

// Model is the complete host object model consumed by the codec.
type Model interface {
	Types
	Attrs
	Sequences
	Scalars
	Callables

	// Acquire enters the model's exclusive section.
	Acquire() *Token
}
