// Package types defines the resolved type descriptor tree.
//
// Descriptor is a closed tagged variant: scalar kinds, pointer, array and
// structure. A descriptor tree is built once by the resolver from a host
// type object and then only read, so encode and decode paths switch over
// Kind instead of re-inspecting host classes.
//
// # Key Types
//
//   - Descriptor: resolved node with owner handle, children and widths
//   - Field: named structure member at a byte offset
//   - Kind: Type discriminator (scalar kinds, pointer, array, structure)
//
// This package is internal to the transcoder.
package types
