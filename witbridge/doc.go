// Package witbridge builds ctypes-style classes from WIT types.
//
// The classes describe the Canonical ABI memory layout of each type, so a
// value a component stored in linear memory can be read with the
// transcoder:
//
//	b := witbridge.NewBuilder(rt)
//	cls, err := b.Class(recordType)
//	desc, err := transcoder.NewResolver(rt).Resolve(cls)
//	obj, err := memory.NewAccessor(memory.WrapMemory(mem), dec, enc).ReadValue(desc, addr)
//
// Compound types become structures whose members all carry explicit
// offsets:
//
//	WIT             Members
//	─────────────────────────────────────────────
//	record          one per field
//	tuple           f0, f1, ...
//	option<T>       tag, some
//	result<T, E>    tag, ok, err (ok and err overlap)
//	variant         tag, one per case with a payload (overlapping)
//	string          ptr (4-byte pointer), len (u32)
//	list<T>         ptr (4-byte pointer to T), len (u32)
//
// Enums and flags become unsigned scalars of their storage width; owned and
// borrowed handles become u32.
//
// A structure's descriptor size ends at its last member and so excludes any
// trailing alignment padding. Use Builder.Layout for the Canonical ABI size
// and alignment, e.g. as the element stride of a list.
package witbridge
