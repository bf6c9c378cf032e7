package types

import (
	"strconv"
	"strings"
)

// Descriptor is one node of a resolved type tree. A resolved tree is
// shared by every decode and encode of its type and must not be modified.
//
// Owner is the host class that produced the node. The codec only ever calls
// it as a constructor. Width is set for scalars, Byteness for pointers,
// Elem and Len for arrays, Fields for structures.
type Descriptor struct {
	Owner    any
	Elem     *Descriptor
	Code     string
	Fields   []Field
	Len      uint32
	Byteness uint32
	Width    uint32
	Kind     Kind
}

// Field is a structure member. Offsets are absolute within the structure.
type Field struct {
	Type   *Descriptor
	Name   string
	Offset uint32
}

// FieldSet collects structure members while a descriptor is built.
type FieldSet struct {
	index  map[string]int
	fields []Field
}

// Put appends f, or replaces the member with the same name in place so
// that it keeps its original position.
func (s *FieldSet) Put(f Field) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[f.Name]; ok {
		s.fields[i] = f
		return
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
}

// Fields returns the members in order.
func (s *FieldSet) Fields() []Field {
	return s.fields
}

// Field looks a structure member up by name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (d *Descriptor) IsScalar() bool {
	return d.Kind.IsScalar()
}

func (d *Descriptor) String() string {
	var b strings.Builder
	d.writeTo(&b)
	return b.String()
}

func (d *Descriptor) writeTo(b *strings.Builder) {
	if d == nil {
		b.WriteString("<nil>")
		return
	}
	switch d.Kind {
	case KindPointer:
		b.WriteString("ptr")
		b.WriteString(strconv.FormatUint(uint64(d.Byteness), 10))
	case KindArray:
		d.Elem.writeTo(b)
		b.WriteByte('[')
		b.WriteString(strconv.FormatUint(uint64(d.Len), 10))
		b.WriteByte(']')
	case KindStructure:
		b.WriteString("struct{")
		for i, f := range d.Fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.Name)
			b.WriteByte('@')
			b.WriteString(strconv.FormatUint(uint64(f.Offset), 10))
			b.WriteByte(':')
			f.Type.writeTo(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString(d.Kind.String())
		if d.Kind == KindLong || d.Kind == KindULong {
			b.WriteString(strconv.FormatUint(uint64(d.Width*8), 10))
		}
	}
}
