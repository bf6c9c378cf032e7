// Package layout computes the byte size of resolved descriptors.
//
// Sizes are structural: they follow from the descriptor tree alone and are
// never measured from an instance.
//
// # Layout Rules
//
//   - Scalars: their resolved width (wchar=2, long double=16 for layout only)
//   - Pointers: their byteness, independent of the platform address width
//   - Arrays: element size times element count, no padding
//   - Structures: furthest extent over all fields (offset + size), so
//     overlapping and non-contiguous fields are allowed; empty is 0
//
// # Usage
//
//	size := layout.Size(desc)
//
// This package is internal to the transcoder.
package layout
