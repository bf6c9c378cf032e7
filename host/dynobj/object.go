package dynobj

import (
	"github.com/wippyai/cdata/host"
)

// Constructor builds an instance of cls from positional and keyword arguments.
type Constructor func(tok *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error)

// Callable adapts a Go function into a callable host object.
type Callable func(tok *host.Token, args []any, kwargs []host.KwArg) (any, error)

// Tuple is the runtime's immutable sequence type.
type Tuple []any

// Class is a host type object.
type Class struct {
	base  *Class
	attrs map[string]any
	ctor  Constructor
	Name  string
}

// NewClass creates a class deriving from base. A nil ctor makes calls
// produce a plain object whose attributes are the keyword arguments.
func NewClass(name string, base *Class, ctor Constructor) *Class {
	return &Class{
		Name:  name,
		base:  base,
		attrs: make(map[string]any),
		ctor:  ctor,
	}
}

// Base returns the immediate base class, or nil for a root class.
func (c *Class) Base() *Class {
	return c.base
}

// Subclass derives a new class from c that inherits its attributes and
// constructor.
func (c *Class) Subclass(name string) *Class {
	return NewClass(name, c, c.ctor)
}

// Attr looks name up on c and then along its base chain.
func (c *Class) Attr(name string) (any, bool) {
	for cls := c; cls != nil; cls = cls.base {
		if v, ok := cls.attrs[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetAttr sets a class attribute.
func (c *Class) SetAttr(name string, v any) {
	c.attrs[name] = v
}

// DelAttr removes an attribute set directly on c.
func (c *Class) DelAttr(name string) {
	delete(c.attrs, name)
}

func (c *Class) constructor() Constructor {
	for cls := c; cls != nil; cls = cls.base {
		if cls.ctor != nil {
			return cls.ctor
		}
	}
	return plainConstructor
}

func (c *Class) String() string {
	return "<class '" + c.Name + "'>"
}

// Object is an instance with ordered attributes.
type Object struct {
	class *Class
	attrs map[string]any
	items []any
	names []string
}

// NewObject creates an empty instance of cls.
func NewObject(cls *Class) *Object {
	return &Object{class: cls, attrs: make(map[string]any)}
}

// NewSequence creates an instance of cls holding items positionally.
func NewSequence(cls *Class, items []any) *Object {
	o := NewObject(cls)
	if items == nil {
		items = []any{}
	}
	o.items = items
	return o
}

func (o *Object) Class() *Class {
	return o.class
}

// Attr looks name up on the instance and then on its class.
func (o *Object) Attr(name string) (any, bool) {
	if v, ok := o.attrs[name]; ok {
		return v, true
	}
	if o.class != nil {
		return o.class.Attr(name)
	}
	return nil, false
}

// SetAttr sets an instance attribute, preserving first-assignment order.
func (o *Object) SetAttr(name string, v any) {
	if _, ok := o.attrs[name]; !ok {
		o.names = append(o.names, name)
	}
	o.attrs[name] = v
}

// Names returns instance attribute names in assignment order.
func (o *Object) Names() []string {
	return append([]string(nil), o.names...)
}

// Items returns the positional items of a sequence instance.
func (o *Object) Items() []any {
	return o.items
}

// IsSequence reports whether o supports len and indexing.
func (o *Object) IsSequence() bool {
	return o.items != nil
}

func plainConstructor(_ *host.Token, cls *Class, args []any, kwargs []host.KwArg) (any, error) {
	if len(args) > 0 {
		return nil, argCountError(cls.Name, 0, len(args))
	}
	o := NewObject(cls)
	for _, kw := range kwargs {
		o.SetAttr(kw.Name, kw.Value)
	}
	return o, nil
}
