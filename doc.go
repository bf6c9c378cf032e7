// Package cdata converts between C-ABI binary layouts and dynamic host
// objects.
//
// A layout is described by host type objects in the style of Python's
// ctypes: simple scalars identified by a one-character type code, pointers,
// fixed-length arrays and structures with declared or explicit field
// offsets. The codec resolves such a type into a descriptor and then
// decodes little-endian byte buffers into host objects, or encodes host
// objects back into bytes.
//
// # Architecture Overview
//
//	cdata/               Root package with the Memory and Allocator interfaces
//	├── transcoder/      Resolver, Decoder and Encoder
//	├── host/            Host object model interfaces and exclusive-section token
//	│   └── dynobj/      Dynamic object runtime with ctypes-style classes
//	├── memory/          Byte buffer providers: buffers, wazero memory, snapshots
//	├── witbridge/       Builds ctypes-style classes from WIT types
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	rt := dynobj.New()
//	point := rt.StructType("Point", []dynobj.FieldDecl{
//		{Name: "x", Type: rt.Scalar("i")},
//		{Name: "y", Type: rt.Scalar("i")},
//	}, nil)
//
//	desc, err := transcoder.NewResolver(rt).Resolve(point)
//	if err != nil {
//		return err
//	}
//	obj, err := transcoder.NewDecoder(rt).Decode(desc, data)
//
// Reading straight out of memory:
//
//	acc := memory.NewAccessor(mem, transcoder.NewDecoder(rt), transcoder.NewEncoder(rt))
//	obj, err := acc.ReadValue(desc, addr)
//
// # Error Handling
//
// All failures are *errors.Error values carrying a phase, a kind and the
// field path at which they occurred:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) && e.Kind == errors.KindMissingAttribute {
//		log.Printf("field %s is not set", e.Name)
//	}
//
// # Thread Safety
//
// Every codec operation runs inside the host model's exclusive section.
// Descriptors are immutable and may be shared freely.
package cdata
