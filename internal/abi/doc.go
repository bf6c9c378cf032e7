// Package abi provides internal utilities for C ABI encoding/decoding.
//
// This package contains value coercion helpers, little-endian width
// helpers and overflow-checked arithmetic used by the transcoder and the
// dynamic object runtime.
//
// # Contents
//
//   - coerce.go: Range-checked conversion of Go numeric values to C widths
//   - bytes.go: Little-endian reads and writes of 1..8 byte integers
//   - helpers.go: Shared utilities for layout and error reporting
//
// This package is internal to the module.
package abi
