package dynobj

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/internal/abi"
)

// Host-side failures. Each is wrapped with context by the method reporting it.
var (
	ErrNotHeld             = errors.New("exclusive section not held")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrOverflow            = errors.New("integer overflow")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrNotSequence         = errors.New("object is not a sequence")
	ErrNotCallable         = errors.New("object is not callable")
	ErrUnexpectedKeyword   = errors.New("unexpected keyword argument")
	ErrTooManyInitializers = errors.New("too many initializers")
	ErrArgumentCount       = errors.New("wrong number of arguments")
)

// Runtime is a dynamic object model. The zero value is not usable; call New.
type Runtime struct {
	lock      host.Lock
	mu        sync.Mutex
	scalars   map[string]*Class
	simple    *Class
	pointer   *Class
	array     *Class
	structure *Class
}

var _ host.Model = (*Runtime)(nil)

// New creates a runtime with the ctypes-style base classes.
func New() *Runtime {
	root := NewClass("object", nil, nil)
	return &Runtime{
		scalars:   make(map[string]*Class),
		simple:    NewClass("_SimpleCData", root, scalarConstructor),
		pointer:   NewClass("Pointer", root, pointerConstructor),
		array:     NewClass("Array", root, arrayConstructor),
		structure: NewClass("Structure", root, StructConstructor),
	}
}

// Acquire enters the runtime's exclusive section.
func (r *Runtime) Acquire() *host.Token {
	return r.lock.Acquire()
}

// With runs fn inside the runtime's exclusive section.
func (r *Runtime) With(fn func(tok *host.Token) error) error {
	return r.lock.With(fn)
}

func (r *Runtime) check(tok *host.Token) error {
	if !tok.Holds(&r.lock) {
		return ErrNotHeld
	}
	return nil
}

func (r *Runtime) SimpleCData() *Class   { return r.simple }
func (r *Runtime) PointerBase() *Class   { return r.pointer }
func (r *Runtime) ArrayBase() *Class     { return r.array }
func (r *Runtime) StructureBase() *Class { return r.structure }

func (r *Runtime) BaseName(tok *host.Token, typ host.Object) (string, error) {
	if err := r.check(tok); err != nil {
		return "", err
	}
	cls, ok := typ.(*Class)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a class", ErrTypeMismatch, abi.TypeName(typ))
	}
	if cls.base == nil {
		return "", fmt.Errorf("%w: class %s has no base", ErrTypeMismatch, cls.Name)
	}
	return cls.base.Name, nil
}

func (r *Runtime) GetAttr(tok *host.Token, obj host.Object, name string) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Class:
		if name == "__name__" {
			return o.Name, nil
		}
		if v, ok := o.Attr(name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: class %s has no attribute %q", host.ErrNoAttribute, o.Name, name)
	case *Object:
		if v, ok := o.Attr(name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: %s object has no attribute %q", host.ErrNoAttribute, o.class.Name, name)
	}
	return nil, fmt.Errorf("%w: %s has no attribute %q", host.ErrNoAttribute, abi.TypeName(obj), name)
}

func (r *Runtime) Len(tok *host.Token, obj host.Object) (int, error) {
	if err := r.check(tok); err != nil {
		return 0, err
	}
	items, err := sequence(obj)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *Runtime) Index(tok *host.Token, obj host.Object, i int) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	items, err := sequence(obj)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(items) {
		return nil, fmt.Errorf("%w: index %d (length %d)", ErrIndexOutOfRange, i, len(items))
	}
	return items[i], nil
}

func sequence(obj host.Object) ([]any, error) {
	switch o := obj.(type) {
	case Tuple:
		return o, nil
	case []any:
		return o, nil
	case *Object:
		if o.IsSequence() {
			return o.items, nil
		}
		return nil, fmt.Errorf("%w: %s object", ErrNotSequence, o.class.Name)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotSequence, abi.TypeName(obj))
}

func (r *Runtime) Str(tok *host.Token, obj host.Object) (string, error) {
	if err := r.check(tok); err != nil {
		return "", err
	}
	switch o := obj.(type) {
	case string:
		return o, nil
	case *Class:
		return o.Name, nil
	case fmt.Stringer:
		return o.String(), nil
	}
	return fmt.Sprint(obj), nil
}

func (r *Runtime) ExtractInt(tok *host.Token, obj host.Object, bits int) (int64, error) {
	if err := r.check(tok); err != nil {
		return 0, err
	}
	v, ok := abi.CoerceInt(obj, bits)
	if !ok {
		return 0, integerError(obj, "int", bits)
	}
	return v, nil
}

func (r *Runtime) ExtractUint(tok *host.Token, obj host.Object, bits int) (uint64, error) {
	if err := r.check(tok); err != nil {
		return 0, err
	}
	v, ok := abi.CoerceUint(obj, bits)
	if !ok {
		return 0, integerError(obj, "uint", bits)
	}
	return v, nil
}

func integerError(obj host.Object, kind string, bits int) error {
	_, isInt := abi.CoerceInt(obj, 64)
	_, isUint := abi.CoerceUint(obj, 64)
	if isInt || isUint {
		return fmt.Errorf("%w: %v does not fit %s%d", ErrOverflow, obj, kind, bits)
	}
	return fmt.Errorf("%w: cannot extract %s%d from %s", ErrTypeMismatch, kind, bits, abi.TypeName(obj))
}

func (r *Runtime) ExtractFloat(tok *host.Token, obj host.Object) (float64, error) {
	if err := r.check(tok); err != nil {
		return 0, err
	}
	v, ok := abi.CoerceFloat(obj)
	if !ok {
		return 0, fmt.Errorf("%w: cannot extract float from %s", ErrTypeMismatch, abi.TypeName(obj))
	}
	return v, nil
}

func (r *Runtime) ExtractFloat32(tok *host.Token, obj host.Object) (float32, error) {
	if err := r.check(tok); err != nil {
		return 0, err
	}
	v, ok := abi.CoerceFloat32(obj)
	if !ok {
		return 0, fmt.Errorf("%w: cannot extract float32 from %s", ErrTypeMismatch, abi.TypeName(obj))
	}
	return v, nil
}

func (r *Runtime) FromInt(tok *host.Token, v int64) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Runtime) FromUint(tok *host.Token, v uint64) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Runtime) FromFloat(tok *host.Token, v float64) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Runtime) FromFloat32(tok *host.Token, v float32) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Runtime) Call(tok *host.Token, fn host.Object, args ...host.Object) (host.Object, error) {
	return r.invoke(tok, fn, args, nil)
}

func (r *Runtime) CallKw(tok *host.Token, fn host.Object, kwargs []host.KwArg) (host.Object, error) {
	return r.invoke(tok, fn, nil, kwargs)
}

func (r *Runtime) invoke(tok *host.Token, fn host.Object, args []any, kwargs []host.KwArg) (host.Object, error) {
	if err := r.check(tok); err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case *Class:
		return f.constructor()(tok, f, args, kwargs)
	case Callable:
		return f(tok, args, kwargs)
	case func(tok *host.Token, args []any, kwargs []host.KwArg) (any, error):
		return f(tok, args, kwargs)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotCallable, abi.TypeName(fn))
}

func argCountError(name string, want, got int) error {
	return fmt.Errorf("%w: %s takes %d positional arguments, got %d", ErrArgumentCount, name, want, got)
}
