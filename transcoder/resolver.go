package transcoder

import (
	stderrors "errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/cdata/errors"
	"github.com/wippyai/cdata/host"
	"github.com/wippyai/cdata/internal/abi"
	"github.com/wippyai/cdata/transcoder/internal/layout"
	"github.com/wippyai/cdata/transcoder/internal/types"
)

// Base class names recognized by the resolver.
const (
	BaseCData     = "CDataType"
	BaseSimple    = "_SimpleCData"
	BasePointer   = "Pointer"
	BaseArray     = "Array"
	BaseStructure = "Structure"
)

// maxDepth bounds descriptor nesting. Host types that contain themselves by
// value would otherwise recurse forever.
const maxDepth = 128

// MaxArrayLength is the largest element count an array type may declare.
const MaxArrayLength = abi.MaxArrayLength

// Resolver turns host type objects into descriptors.
type Resolver struct {
	model host.Model
	cfg   Config
}

// NewResolver creates a resolver for the native data model.
func NewResolver(model host.Model) *Resolver {
	return &Resolver{model: model, cfg: DefaultConfig()}
}

// NewResolverWithConfig creates a resolver for the given data model. A nil
// cfg is the same as NewResolver.
func NewResolverWithConfig(model host.Model, cfg *Config) (*Resolver, error) {
	c, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Resolver{model: model, cfg: c}, nil
}

// Config returns the data model in effect.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Resolve enters the host's exclusive section and resolves typ.
func (r *Resolver) Resolve(typ host.Object) (*Descriptor, error) {
	tok := r.model.Acquire()
	defer tok.Release()
	return r.ResolveWith(tok, typ)
}

// ResolveWith resolves typ under a token the caller already holds.
func (r *Resolver) ResolveWith(tok *host.Token, typ host.Object) (*Descriptor, error) {
	d, err := r.resolve(tok, typ, nil, 0)
	if err != nil {
		Logger().Debug("resolve failed", zap.Error(err))
		return nil, err
	}
	Logger().Debug("resolved type", zap.Stringer("descriptor", d), zap.Uint32("size", Size(d)))
	return d, nil
}

func (r *Resolver) resolve(tok *host.Token, typ host.Object, path []string, depth int) (*Descriptor, error) {
	if depth > maxDepth {
		return nil, errors.InvalidData(errors.PhaseResolve, path, "type nesting exceeds "+strconv.Itoa(maxDepth)+" levels")
	}
	if typ == nil {
		return nil, errors.NilPointer(errors.PhaseResolve, path, "type object")
	}

	base, err := r.model.BaseName(tok, typ)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}

	switch base {
	case BaseCData, BaseSimple:
		return r.resolveScalar(tok, typ, path)
	case BasePointer:
		return r.resolvePointer(tok, typ, path)
	case BaseArray:
		return r.resolveArray(tok, typ, path, depth)
	case BaseStructure:
		return r.resolveStructure(tok, typ, path, depth)
	default:
		return nil, errors.InvalidType(path, base)
	}
}

func (r *Resolver) resolveScalar(tok *host.Token, typ host.Object, path []string) (*Descriptor, error) {
	attr, err := r.attr(tok, typ, "_type_", path)
	if err != nil {
		return nil, err
	}
	code, err := r.model.Str(tok, attr)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}

	if types.IsStringCode(code) {
		return nil, errors.UnsupportedIdentifier(errors.PhaseResolve, path, code,
			"NUL-terminated strings have no fixed layout; use a string reader")
	}
	kind, ok := types.KindForCode(code)
	if !ok {
		return nil, errors.UnsupportedIdentifier(errors.PhaseResolve, path, code, "unknown type code")
	}

	width := kind.Width()
	if kind == types.KindLong || kind == types.KindULong {
		width = r.cfg.LongWidth
	}
	return &Descriptor{Kind: kind, Code: code, Width: width, Owner: typ}, nil
}

func (r *Resolver) resolvePointer(tok *host.Token, typ host.Object, path []string) (*Descriptor, error) {
	byteness := r.cfg.PointerWidth

	attr, err := r.model.GetAttr(tok, typ, "_byteness_")
	switch {
	case err == nil:
		v, err := r.model.ExtractUint(tok, attr, 32)
		if err != nil {
			return nil, errors.HostModel(errors.PhaseResolve, path, err)
		}
		if v == 0 || v > 8 {
			return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
				Path(path...).
				Name("_byteness_").
				Value(v).
				Detail("pointer byteness must be between 1 and 8").
				Build()
		}
		byteness = uint32(v)
	case !stderrors.Is(err, host.ErrNoAttribute):
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}

	return &Descriptor{Kind: types.KindPointer, Byteness: byteness, Owner: typ}, nil
}

func (r *Resolver) resolveArray(tok *host.Token, typ host.Object, path []string, depth int) (*Descriptor, error) {
	lenAttr, err := r.attr(tok, typ, "_length_", path)
	if err != nil {
		return nil, err
	}
	n, err := r.model.ExtractUint(tok, lenAttr, 32)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}

	if n > MaxArrayLength {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidData).
			Path(path...).
			Detail("array length %d exceeds maximum %d", n, MaxArrayLength).
			Build()
	}

	elemType, err := r.attr(tok, typ, "_type_", path)
	if err != nil {
		return nil, err
	}
	elem, err := r.resolve(tok, elemType, appendPath(path, "[]"), depth+1)
	if err != nil {
		return nil, err
	}

	if _, ok := abi.SafeMulU32(Size(elem), uint32(n)); !ok {
		return nil, errors.InvalidData(errors.PhaseResolve, path, "array size overflows 32 bits")
	}
	return &Descriptor{Kind: types.KindArray, Elem: elem, Len: uint32(n), Owner: typ}, nil
}

func (r *Resolver) resolveStructure(tok *host.Token, typ host.Object, path []string, depth int) (*Descriptor, error) {
	d := &Descriptor{Kind: types.KindStructure, Owner: typ}
	var members types.FieldSet

	fields, err := r.attr(tok, typ, "_fields_", path)
	if err != nil {
		return nil, err
	}
	n, err := r.model.Len(tok, fields)
	if err != nil {
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}

	var offset uint32
	for i := 0; i < n; i++ {
		entry, err := r.model.Index(tok, fields, i)
		if err != nil {
			return nil, errors.HostModel(errors.PhaseResolve, path, err)
		}
		name, ftyp, err := r.fieldEntry(tok, entry, path, i)
		if err != nil {
			return nil, err
		}
		fpath := appendPath(path, name)
		fd, err := r.resolve(tok, ftyp, fpath, depth+1)
		if err != nil {
			return nil, err
		}
		members.Put(Field{Name: name, Offset: offset, Type: fd})
		end, ok := layout.Extent(offset, fd)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseResolve, fpath, "structure size overflows 32 bits")
		}
		offset = end
	}

	offsets, err := r.model.GetAttr(tok, typ, "_offsets_")
	switch {
	case err == nil:
		if err := r.mergeOffsets(tok, &members, offsets, path, depth); err != nil {
			return nil, err
		}
	case !stderrors.Is(err, host.ErrNoAttribute):
		return nil, errors.HostModel(errors.PhaseResolve, path, err)
	}
	d.Fields = members.Fields()
	return d, nil
}

// fieldEntry unpacks a (name, type) pair. A one-element entry has no type.
func (r *Resolver) fieldEntry(tok *host.Token, entry host.Object, path []string, i int) (string, host.Object, error) {
	size, err := r.model.Len(tok, entry)
	if err != nil {
		return "", nil, errors.HostModel(errors.PhaseResolve, path, err)
	}
	if size == 0 {
		return "", nil, errors.InvalidData(errors.PhaseResolve, path, "empty field entry at index "+strconv.Itoa(i))
	}
	nameObj, err := r.model.Index(tok, entry, 0)
	if err != nil {
		return "", nil, errors.HostModel(errors.PhaseResolve, path, err)
	}
	name, err := r.model.Str(tok, nameObj)
	if err != nil {
		return "", nil, errors.HostModel(errors.PhaseResolve, path, err)
	}
	if size < 2 {
		return "", nil, errors.NoType(path, name)
	}
	ftyp, err := r.model.Index(tok, entry, 1)
	if err != nil {
		return "", nil, errors.HostModel(errors.PhaseResolve, path, err)
	}
	return name, ftyp, nil
}

// mergeOffsets applies (offset, name, type) entries. A name already present
// keeps its position in the field order and takes the new offset and type.
// An entry without a type is a no_type error for its name.
func (r *Resolver) mergeOffsets(tok *host.Token, members *types.FieldSet, offsets host.Object, path []string, depth int) error {
	n, err := r.model.Len(tok, offsets)
	if err != nil {
		return errors.HostModel(errors.PhaseResolve, path, err)
	}
	for i := 0; i < n; i++ {
		entry, err := r.model.Index(tok, offsets, i)
		if err != nil {
			return errors.HostModel(errors.PhaseResolve, path, err)
		}
		size, err := r.model.Len(tok, entry)
		if err != nil {
			return errors.HostModel(errors.PhaseResolve, path, err)
		}
		if size < 2 {
			return errors.InvalidData(errors.PhaseResolve, path,
				"offset entry "+strconv.Itoa(i)+" must be (offset, name, type)")
		}

		var parts [3]host.Object
		for j := 0; j < min(size, len(parts)); j++ {
			if parts[j], err = r.model.Index(tok, entry, j); err != nil {
				return errors.HostModel(errors.PhaseResolve, path, err)
			}
		}
		off, err := r.model.ExtractUint(tok, parts[0], 32)
		if err != nil {
			return errors.HostModel(errors.PhaseResolve, path, err)
		}
		name, err := r.model.Str(tok, parts[1])
		if err != nil {
			return errors.HostModel(errors.PhaseResolve, path, err)
		}
		if size < 3 {
			return errors.NoType(path, name)
		}
		fpath := appendPath(path, name)
		fd, err := r.resolve(tok, parts[2], fpath, depth+1)
		if err != nil {
			return err
		}
		if _, ok := layout.Extent(uint32(off), fd); !ok {
			return errors.InvalidData(errors.PhaseResolve, fpath, "structure size overflows 32 bits")
		}
		members.Put(Field{Name: name, Offset: uint32(off), Type: fd})
	}
	return nil
}

// attr reads a required attribute of a type object.
func (r *Resolver) attr(tok *host.Token, obj host.Object, name string, path []string) (host.Object, error) {
	v, err := r.model.GetAttr(tok, obj, name)
	if err == nil {
		return v, nil
	}
	if stderrors.Is(err, host.ErrNoAttribute) {
		return nil, errors.New(errors.PhaseResolve, errors.KindMissingAttribute).
			Path(path...).
			Name(name).
			Cause(err).
			Detail("type object has no attribute").
			Build()
	}
	return nil, errors.HostModel(errors.PhaseResolve, path, err)
}

// appendPath returns a new path; the caller's slice is never shared.
func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
