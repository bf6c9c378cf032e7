package dynobj

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	cerrors "github.com/wippyai/cdata/errors"
)

type schemaFile struct {
	Types []typeDecl `yaml:"types"`
}

type typeDecl struct {
	Pointer *pointerDecl `yaml:"pointer"`
	Name    string       `yaml:"name"`
	Fields  []fieldDecl  `yaml:"fields"`
	Offsets []offsetDecl `yaml:"offsets"`
}

type pointerDecl struct {
	To       string `yaml:"to"`
	Byteness uint32 `yaml:"byteness"`
}

type fieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type offsetDecl struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset uint32 `yaml:"offset"`
}

// Schema holds the classes declared by a YAML layout document.
type Schema struct {
	rt      *Runtime
	classes map[string]*Class
	order   []string
}

// LoadSchema parses a layout document and builds its classes on rt.
//
//	types:
//	  - name: Vec3
//	    fields:
//	      - {name: x, type: c_float}
//	      - {name: y, type: c_float}
//	      - {name: z, type: c_float}
//	  - name: VecPtr
//	    pointer: {byteness: 4, to: Vec3}
//	  - name: Mesh
//	    fields:
//	      - {name: verts, type: "Vec3[3]"}
//	      - {name: next, type: VecPtr}
//	    offsets:
//	      - {offset: 0, name: tag, type: c_uint}
//
// Names may be referenced before they are declared. A structure that
// contains itself by value, directly or through arrays, is rejected.
func LoadSchema(rt *Runtime, data []byte) (*Schema, error) {
	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, cerrors.New(cerrors.PhaseSchema, cerrors.KindInvalidData).
			Detail("parse layout document").
			Cause(err).
			Build()
	}

	s := &Schema{rt: rt, classes: make(map[string]*Class, len(doc.Types))}
	decls := make(map[string]typeDecl, len(doc.Types))

	for _, d := range doc.Types {
		if d.Name == "" {
			return nil, schemaError(nil, "type declaration without a name")
		}
		if _, ok := rt.ScalarNamed(d.Name); ok {
			return nil, schemaError([]string{d.Name}, "name shadows a built-in scalar")
		}
		if _, dup := decls[d.Name]; dup {
			return nil, schemaError([]string{d.Name}, "declared twice")
		}
		if d.Pointer != nil && (len(d.Fields) > 0 || len(d.Offsets) > 0) {
			return nil, schemaError([]string{d.Name}, "pointer declaration cannot have fields")
		}
		decls[d.Name] = d
		s.order = append(s.order, d.Name)
		if d.Pointer != nil {
			s.classes[d.Name] = rt.PointerType(d.Name, d.Pointer.Byteness)
		} else {
			s.classes[d.Name] = NewClass(d.Name, rt.structure, nil)
		}
	}

	for _, name := range s.order {
		if err := s.define(decls[name]); err != nil {
			return nil, err
		}
	}
	if err := s.checkCycles(decls); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) define(d typeDecl) error {
	cls := s.classes[d.Name]
	if d.Pointer != nil {
		if d.Pointer.To != "" {
			target, err := s.typeExpr([]string{d.Name, "to"}, d.Pointer.To)
			if err != nil {
				return err
			}
			cls.SetAttr("_type_", target)
		}
		return nil
	}

	fields := make(Tuple, 0, len(d.Fields))
	for _, f := range d.Fields {
		path := []string{d.Name, f.Name}
		if f.Name == "" {
			return schemaError(path, "field without a name")
		}
		typ, err := s.typeExpr(path, f.Type)
		if err != nil {
			return err
		}
		fields = append(fields, Tuple{f.Name, typ})
	}
	cls.SetAttr("_fields_", fields)

	if len(d.Offsets) > 0 {
		offs := make(Tuple, 0, len(d.Offsets))
		for _, o := range d.Offsets {
			path := []string{d.Name, o.Name}
			if o.Name == "" {
				return schemaError(path, "offset entry without a name")
			}
			typ, err := s.typeExpr(path, o.Type)
			if err != nil {
				return err
			}
			offs = append(offs, Tuple{int64(o.Offset), o.Name, typ})
		}
		cls.SetAttr("_offsets_", offs)
	}
	return nil
}

// typeExpr resolves "name" or "name[n]...". Suffixes apply left to right,
// so "T[2][4]" is four elements of T[2].
func (s *Schema) typeExpr(path []string, expr string) (*Class, error) {
	expr = strings.TrimSpace(expr)
	base, dims, ok := splitDims(expr)
	if !ok {
		return nil, schemaError(path, "malformed type expression "+strconv.Quote(expr))
	}
	cls, ok := s.rt.ScalarNamed(base)
	if !ok {
		if cls, ok = s.classes[base]; !ok {
			return nil, cerrors.New(cerrors.PhaseSchema, cerrors.KindNoType).
				Path(path...).
				Name(base).
				Detail("unknown type name").
				Build()
		}
	}
	for _, n := range dims {
		cls = s.rt.ArrayType(cls, n)
	}
	return cls, nil
}

func splitDims(expr string) (string, []int, bool) {
	i := strings.IndexByte(expr, '[')
	if i < 0 {
		return expr, nil, expr != ""
	}
	base := strings.TrimSpace(expr[:i])
	if base == "" {
		return "", nil, false
	}
	var dims []int
	rest := expr[i:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil || n < 0 {
			return "", nil, false
		}
		dims = append(dims, n)
		rest = strings.TrimSpace(rest[end+1:])
	}
	return base, dims, true
}

func (s *Schema) checkCycles(decls map[string]typeDecl) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(decls))

	var visit func(name string, chain []string) error
	visit = func(name string, chain []string) error {
		switch state[name] {
		case visiting:
			return schemaError(append(chain, name), "structure contains itself by value")
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range s.byValue(decls[name]) {
			if err := visit(dep, append(chain, name)); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, name := range s.order {
		if decls[name].Pointer != nil {
			continue
		}
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// byValue lists declared structures embedded by value in d.
func (s *Schema) byValue(d typeDecl) []string {
	if d.Pointer != nil {
		return nil
	}
	var deps []string
	add := func(expr string) {
		base, _, _ := splitDims(strings.TrimSpace(expr))
		if other, ok := s.classes[base]; ok && other.base == s.rt.structure {
			deps = append(deps, base)
		}
	}
	for _, f := range d.Fields {
		add(f.Type)
	}
	for _, o := range d.Offsets {
		add(o.Type)
	}
	return deps
}

// Class returns a declared class by name.
func (s *Schema) Class(name string) (*Class, bool) {
	cls, ok := s.classes[name]
	return cls, ok
}

// Names returns declared type names in document order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.order...)
}

func schemaError(path []string, detail string) *cerrors.Error {
	return cerrors.InvalidData(cerrors.PhaseSchema, path, detail)
}
