package witbridge

import (
	"fmt"
	"strconv"
	"sync"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/cdata/errors"
	"github.com/wippyai/cdata/host/dynobj"
	"github.com/wippyai/cdata/internal/abi"
)

// Layout is the Canonical ABI size and alignment of a type.
type Layout struct {
	Size  uint32
	Align uint32
}

type shape struct {
	cls *dynobj.Class
	Layout
}

// Builder creates classes on a dynobj runtime. Classes for *wit.TypeDef
// values are cached, so the same definition always yields the same class.
type Builder struct {
	rt    *dynobj.Runtime
	cache map[*wit.TypeDef]shape
	str   *shape
	ptr32 *dynobj.Class
	mu    sync.Mutex
}

func NewBuilder(rt *dynobj.Runtime) *Builder {
	return &Builder{
		rt:    rt,
		cache: make(map[*wit.TypeDef]shape),
	}
}

// Class returns the class describing t's memory layout.
func (b *Builder) Class(t wit.Type) (*dynobj.Class, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, err := b.build(t, nil)
	if err != nil {
		return nil, err
	}
	return s.cls, nil
}

// Layout returns t's Canonical ABI size and alignment.
func (b *Builder) Layout(t wit.Type) (Layout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, err := b.build(t, nil)
	if err != nil {
		return Layout{}, err
	}
	return s.Layout, nil
}

func (b *Builder) build(t wit.Type, path []string) (shape, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return b.scalar("?", 1), nil
	case wit.U8:
		return b.scalar("B", 1), nil
	case wit.S8:
		return b.scalar("b", 1), nil
	case wit.U16:
		return b.scalar("H", 2), nil
	case wit.S16:
		return b.scalar("h", 2), nil
	case wit.U32, wit.Char:
		return b.scalar("I", 4), nil
	case wit.S32:
		return b.scalar("i", 4), nil
	case wit.U64:
		return b.scalar("Q", 8), nil
	case wit.S64:
		return b.scalar("q", 8), nil
	case wit.F32:
		return b.scalar("f", 4), nil
	case wit.F64:
		return b.scalar("d", 8), nil
	case wit.String:
		return b.stringShape(), nil
	case *wit.TypeDef:
		return b.buildTypeDef(typ, path)
	case nil:
		return shape{}, errors.NilPointer(errors.PhaseResolve, path, "WIT type")
	default:
		return shape{}, errors.InvalidType(path, fmt.Sprintf("%T", t))
	}
}

func (b *Builder) scalar(code string, size uint32) shape {
	return shape{cls: b.rt.Scalar(code), Layout: Layout{Size: size, Align: size}}
}

func (b *Builder) buildTypeDef(t *wit.TypeDef, path []string) (shape, error) {
	if cached, ok := b.cache[t]; ok {
		return cached, nil
	}

	name := typeName(t)
	var (
		s   shape
		err error
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		s, err = b.record(name, kind, path)
	case *wit.Tuple:
		s, err = b.tuple(name, kind, path)
	case *wit.Option:
		s, err = b.option(name, kind, path)
	case *wit.Result:
		s, err = b.result(name, kind, path)
	case *wit.Variant:
		s, err = b.variant(name, kind, path)
	case *wit.List:
		s, err = b.list(name, kind, path)
	case *wit.Enum:
		size := abi.DiscriminantSize(len(kind.Cases))
		s = b.scalar(unsignedCode(size), size)
	case *wit.Flags:
		s, err = b.flags(name, kind, path)
	case *wit.Own, *wit.Borrow:
		s = b.scalar("I", 4)
	case wit.Type:
		s, err = b.build(kind, path)
	default:
		err = errors.InvalidType(path, fmt.Sprintf("%T", t.Kind))
	}
	if err != nil {
		return shape{}, err
	}
	b.cache[t] = s
	return s, nil
}

func typeName(t *wit.TypeDef) string {
	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}
	switch t.Kind.(type) {
	case *wit.Record:
		return "record"
	case *wit.Tuple:
		return "tuple"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Variant:
		return "variant"
	case *wit.List:
		return "list"
	case *wit.Flags:
		return "flags"
	}
	return "type"
}

func unsignedCode(size uint32) string {
	switch size {
	case 1:
		return "B"
	case 2:
		return "H"
	case 4:
		return "I"
	default:
		return "Q"
	}
}

// member is one explicitly placed structure entry.
type member struct {
	cls    *dynobj.Class
	name   string
	offset uint32
}

func (b *Builder) structure(name string, members []member, l Layout) shape {
	offs := make([]dynobj.OffsetDecl, 0, len(members))
	for _, m := range members {
		offs = append(offs, dynobj.OffsetDecl{Offset: m.offset, Name: m.name, Type: m.cls})
	}
	return shape{
		cls:    b.rt.StructType(name, nil, &dynobj.StructOptions{Offsets: offs}),
		Layout: l,
	}
}

// sequential lays named members out back to back with Canonical ABI
// alignment.
func (b *Builder) sequential(name string, names []string, types []wit.Type, path []string) (shape, error) {
	members := make([]member, 0, len(types))
	offset, align := uint32(0), uint32(1)
	for i, t := range types {
		s, err := b.build(t, appendPath(path, names[i]))
		if err != nil {
			return shape{}, err
		}
		offset = abi.AlignTo(offset, s.Align)
		members = append(members, member{cls: s.cls, name: names[i], offset: offset})
		offset += s.Size
		if s.Align > align {
			align = s.Align
		}
	}
	return b.structure(name, members, Layout{Size: abi.AlignTo(offset, align), Align: align}), nil
}

func (b *Builder) record(name string, r *wit.Record, path []string) (shape, error) {
	names := make([]string, len(r.Fields))
	types := make([]wit.Type, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
		types[i] = f.Type
	}
	return b.sequential(name, names, types, path)
}

func (b *Builder) tuple(name string, t *wit.Tuple, path []string) (shape, error) {
	names := make([]string, len(t.Types))
	for i := range t.Types {
		names[i] = "f" + strconv.Itoa(i)
	}
	return b.sequential(name, names, t.Types, path)
}

type alternative struct {
	typ  wit.Type
	name string
}

// tagged lays out a discriminant followed by overlapping payloads.
// Alternatives without a type have no member.
func (b *Builder) tagged(name string, numCases int, alts []alternative, path []string) (shape, error) {
	disc := abi.DiscriminantSize(numCases)
	align, size := disc, uint32(0)

	shapes := make([]shape, len(alts))
	for i, alt := range alts {
		if alt.typ == nil {
			continue
		}
		s, err := b.build(alt.typ, appendPath(path, alt.name))
		if err != nil {
			return shape{}, err
		}
		shapes[i] = s
		if s.Align > align {
			align = s.Align
		}
		if s.Size > size {
			size = s.Size
		}
	}

	payload := abi.AlignTo(disc, align)
	members := []member{{cls: b.rt.Scalar(unsignedCode(disc)), name: "tag", offset: 0}}
	for i, alt := range alts {
		if alt.typ == nil {
			continue
		}
		members = append(members, member{cls: shapes[i].cls, name: alt.name, offset: payload})
	}
	return b.structure(name, members, Layout{Size: abi.AlignTo(payload+size, align), Align: align}), nil
}

func (b *Builder) option(name string, o *wit.Option, path []string) (shape, error) {
	return b.tagged(name, 2, []alternative{{name: "some", typ: o.Type}}, path)
}

func (b *Builder) result(name string, r *wit.Result, path []string) (shape, error) {
	return b.tagged(name, 2, []alternative{{name: "ok", typ: r.OK}, {name: "err", typ: r.Err}}, path)
}

func (b *Builder) variant(name string, v *wit.Variant, path []string) (shape, error) {
	alts := make([]alternative, len(v.Cases))
	for i, c := range v.Cases {
		alts[i] = alternative{name: c.Name, typ: c.Type}
	}
	return b.tagged(name, len(v.Cases), alts, path)
}

func (b *Builder) pointer32() *dynobj.Class {
	if b.ptr32 == nil {
		b.ptr32 = b.rt.PointerType("ptr32", 4)
	}
	return b.ptr32
}

func (b *Builder) stringShape() shape {
	if b.str == nil {
		s := b.structure("string", []member{
			{cls: b.pointer32(), name: "ptr", offset: 0},
			{cls: b.rt.Scalar("I"), name: "len", offset: 4},
		}, Layout{Size: 8, Align: 4})
		b.str = &s
	}
	return *b.str
}

func (b *Builder) list(name string, l *wit.List, path []string) (shape, error) {
	elem, err := b.build(l.Type, appendPath(path, "[]"))
	if err != nil {
		return shape{}, err
	}
	ptr := b.rt.PointerType("ptr32<"+elem.cls.Name+">", 4)
	ptr.SetAttr("_type_", elem.cls)
	return b.structure(name, []member{
		{cls: ptr, name: "ptr", offset: 0},
		{cls: b.rt.Scalar("I"), name: "len", offset: 4},
	}, Layout{Size: 8, Align: 4}), nil
}

func (b *Builder) flags(name string, f *wit.Flags, path []string) (shape, error) {
	n := len(f.Flags)
	switch {
	case n == 0:
		return b.structure(name, nil, Layout{Size: 0, Align: 1}), nil
	case n <= 8:
		return b.scalar("B", 1), nil
	case n <= 16:
		return b.scalar("H", 2), nil
	case n <= 32:
		return b.scalar("I", 4), nil
	case n <= 64:
		return b.scalar("Q", 8), nil
	}
	return shape{}, errors.UnsupportedIdentifier(errors.PhaseResolve, path, name,
		"flags with more than 64 members are not supported")
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
