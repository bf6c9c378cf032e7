package dynobj

import (
	"fmt"
	"strconv"

	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/internal/abi"
)

var scalarNames = map[string]string{
	"c_byte":       "b",
	"c_int8":       "b",
	"c_ubyte":      "B",
	"c_uint8":      "B",
	"c_bool":       "?",
	"c_char":       "c",
	"c_wchar":      "u",
	"c_double":     "d",
	"c_longdouble": "g",
	"c_float":      "f",
	"c_short":      "h",
	"c_int16":      "h",
	"c_ushort":     "H",
	"c_uint16":     "H",
	"c_int":        "i",
	"c_int32":      "i",
	"c_uint":       "I",
	"c_uint32":     "I",
	"c_long":       "l",
	"c_ulong":      "L",
	"c_longlong":   "q",
	"c_int64":      "q",
	"c_ulonglong":  "Q",
	"c_uint64":     "Q",
	"c_char_p":     "z",
	"c_wchar_p":    "Z",
}

// canonical class name per code; aliases above resolve to the same class.
var codeNames = map[string]string{
	"b": "c_byte",
	"B": "c_ubyte",
	"?": "c_bool",
	"c": "c_char",
	"u": "c_wchar",
	"d": "c_double",
	"g": "c_longdouble",
	"f": "c_float",
	"h": "c_short",
	"H": "c_ushort",
	"i": "c_int",
	"I": "c_uint",
	"l": "c_long",
	"L": "c_ulong",
	"q": "c_longlong",
	"Q": "c_ulonglong",
	"z": "c_char_p",
	"Z": "c_wchar_p",
}

// FieldDecl declares a structure member for StructType. A nil Type
// produces a malformed one-element field entry.
type FieldDecl struct {
	Type *Class
	Name string
}

// OffsetDecl declares a member placed at an explicit byte offset.
type OffsetDecl struct {
	Type   *Class
	Name   string
	Offset uint32
}

// StructOptions configures StructType.
type StructOptions struct {
	// Init replaces the default keyword constructor.
	Init    Constructor
	Offsets []OffsetDecl
}

// Scalar returns the simple class for a type code. Classes are cached, so
// repeated calls return the same *Class. Unknown codes still produce a
// class, named c_<code>.
func (r *Runtime) Scalar(code string) *Class {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cls, ok := r.scalars[code]; ok {
		return cls
	}
	name, ok := codeNames[code]
	if !ok {
		name = "c_" + code
	}
	cls := NewClass(name, r.simple, nil)
	cls.SetAttr("_type_", code)
	r.scalars[code] = cls
	return cls
}

// ScalarNamed returns the simple class for a ctypes name such as c_int.
func (r *Runtime) ScalarNamed(name string) (*Class, bool) {
	code, ok := scalarNames[name]
	if !ok {
		return nil, false
	}
	return r.Scalar(code), true
}

// PointerType creates a pointer class. A zero byteness leaves _byteness_
// unset so the native address width applies.
func (r *Runtime) PointerType(name string, byteness uint32) *Class {
	cls := NewClass(name, r.pointer, nil)
	if byteness != 0 {
		cls.SetAttr("_byteness_", int64(byteness))
	}
	return cls
}

// ArrayType creates a fixed-length array class of n elements of elem.
func (r *Runtime) ArrayType(elem *Class, n int) *Class {
	name := "Array_" + strconv.Itoa(n)
	if elem != nil {
		name = elem.Name + "_Array_" + strconv.Itoa(n)
	}
	cls := NewClass(name, r.array, nil)
	cls.SetAttr("_type_", elem)
	cls.SetAttr("_length_", int64(n))
	return cls
}

// StructType creates a structure class with the given declared fields.
func (r *Runtime) StructType(name string, fields []FieldDecl, opts *StructOptions) *Class {
	var ctor Constructor
	if opts != nil {
		ctor = opts.Init
	}
	cls := NewClass(name, r.structure, ctor)

	decl := make(Tuple, 0, len(fields))
	for _, f := range fields {
		if f.Type == nil {
			decl = append(decl, Tuple{f.Name})
			continue
		}
		decl = append(decl, Tuple{f.Name, f.Type})
	}
	cls.SetAttr("_fields_", decl)

	if opts != nil && len(opts.Offsets) > 0 {
		offs := make(Tuple, 0, len(opts.Offsets))
		for _, o := range opts.Offsets {
			offs = append(offs, Tuple{int64(o.Offset), o.Name, o.Type})
		}
		cls.SetAttr("_offsets_", offs)
	}
	return cls
}

func scalarConstructor(_ *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%w: %s takes no keyword arguments", ErrUnexpectedKeyword, cls.Name)
	}
	switch len(args) {
	case 0:
		code, _ := cls.Attr("_type_")
		s, _ := code.(string)
		return zeroScalar(s), nil
	case 1:
		return args[0], nil
	}
	return nil, argCountError(cls.Name, 1, len(args))
}

func zeroScalar(code string) any {
	switch code {
	case "b", "c", "h", "i", "l", "q":
		return int64(0)
	case "f":
		return float32(0)
	case "d", "g":
		return float64(0)
	case "z", "Z":
		return nil
	}
	return uint64(0)
}

func pointerConstructor(_ *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error) {
	if len(args) > 1 {
		return nil, argCountError(cls.Name, 1, len(args))
	}
	var addr any = uint64(0)
	if len(args) == 1 {
		addr = args[0]
	}
	for _, kw := range kwargs {
		if kw.Name != "addr" || len(args) == 1 {
			return nil, fmt.Errorf("%w: %s got %q", ErrUnexpectedKeyword, cls.Name, kw.Name)
		}
		addr = kw.Value
	}
	o := NewObject(cls)
	o.SetAttr("addr", addr)
	return o, nil
}

func arrayConstructor(tok *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%w: %s takes no keyword arguments", ErrUnexpectedKeyword, cls.Name)
	}
	n, err := arrayLength(cls)
	if err != nil {
		return nil, err
	}
	if len(args) > n {
		return nil, fmt.Errorf("%w: %s holds %d elements, got %d", ErrTooManyInitializers, cls.Name, n, len(args))
	}
	items := make([]any, n)
	copy(items, args)
	if len(args) < n {
		elemAttr, _ := cls.Attr("_type_")
		elem, ok := elemAttr.(*Class)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no element class", ErrTypeMismatch, cls.Name)
		}
		for i := len(args); i < n; i++ {
			if items[i], err = zeroValue(tok, elem); err != nil {
				return nil, err
			}
		}
	}
	return NewSequence(cls, items), nil
}

func arrayLength(cls *Class) (int, error) {
	v, _ := cls.Attr("_length_")
	n, ok := abi.CoerceInt(v, 32)
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %s has invalid _length_ %v", ErrTypeMismatch, cls.Name, v)
	}
	return int(n), nil
}

func zeroValue(tok *host.Token, cls *Class) (any, error) {
	return cls.constructor()(tok, cls, nil, nil)
}

type member struct {
	cls  *Class
	name string
}

// members lists declared field names in resolution order: _fields_ first,
// then _offsets_ entries not already declared.
func members(cls *Class) []member {
	var out []member
	seen := make(map[string]int)
	add := func(name string, typ any) {
		c, _ := typ.(*Class)
		if i, ok := seen[name]; ok {
			out[i].cls = c
			return
		}
		seen[name] = len(out)
		out = append(out, member{name: name, cls: c})
	}
	if v, ok := cls.Attr("_fields_"); ok {
		if fields, ok := v.(Tuple); ok {
			for _, f := range fields {
				if t, ok := f.(Tuple); ok && len(t) >= 1 {
					name, _ := t[0].(string)
					var typ any
					if len(t) > 1 {
						typ = t[1]
					}
					add(name, typ)
				}
			}
		}
	}
	if v, ok := cls.Attr("_offsets_"); ok {
		if offs, ok := v.(Tuple); ok {
			for _, e := range offs {
				if t, ok := e.(Tuple); ok && len(t) == 3 {
					name, _ := t[1].(string)
					add(name, t[2])
				}
			}
		}
	}
	return out
}

// StructConstructor is the default structure constructor. Positional
// arguments fill members in declaration order, keywords fill members by
// name and unnamed members receive their type's zero value. Keywords that
// name no member are rejected.
func StructConstructor(tok *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error) {
	ms := members(cls)
	if len(args) > len(ms) {
		return nil, fmt.Errorf("%w: %s has %d fields, got %d", ErrTooManyInitializers, cls.Name, len(ms), len(args))
	}
	values := make(map[string]any, len(ms))
	for i, a := range args {
		values[ms[i].name] = a
	}
	for _, kw := range kwargs {
		if !hasMember(ms, kw.Name) {
			return nil, fmt.Errorf("%w: %s got %q", ErrUnexpectedKeyword, cls.Name, kw.Name)
		}
		values[kw.Name] = kw.Value
	}

	o := NewObject(cls)
	for _, m := range ms {
		v, ok := values[m.name]
		if !ok && m.cls != nil {
			var err error
			if v, err = zeroValue(tok, m.cls); err != nil {
				return nil, fmt.Errorf("zero value for %s.%s: %w", cls.Name, m.name, err)
			}
		}
		o.SetAttr(m.name, v)
	}
	return o, nil
}

func hasMember(ms []member, name string) bool {
	for _, m := range ms {
		if m.name == name {
			return true
		}
	}
	return false
}
