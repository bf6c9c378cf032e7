// Package dynobj is a small dynamically typed object runtime implementing
// host.Model.
//
// It models the ctypes-style class shapes the transcoder resolves:
//
//	rt := dynobj.New()
//	point := rt.StructType("Point", []dynobj.FieldDecl{
//		{Name: "x", Type: rt.Scalar("i")},
//		{Name: "y", Type: rt.Scalar("i")},
//	}, nil)
//
// Classes carry attributes (_type_, _length_, _fields_, _offsets_,
// _byteness_) and a constructor. Instances are *Object values with ordered
// attributes and, for arrays, positional items. Scalars are plain Go values:
// signed integers are int64, unsigned uint64, doubles float64 and floats
// float32.
//
// Layouts can also be declared in YAML and loaded with LoadSchema.
//
// # Thread Safety
//
// Every Model method requires a token from Runtime.Acquire. Class
// construction helpers may be used without a token.
package dynobj
