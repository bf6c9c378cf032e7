// Package errors provides structured error types for the cdata codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, type name, offending
// identifier and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindMissingAttribute).
//		Path("header", "flags").
//		Name("flags").
//		Detail("object has no attribute").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidType(path, "Union")
//	err := errors.SliceConversion(errors.PhaseDecode, path, 4, 3)
//
// Kinds split into three families so callers can tell a bad schema
// (invalid_type, no_type, unsupported_identifier) from bad data
// (slice_conversion, out_of_bounds) from a host object mismatch
// (missing_attribute, host_model).
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
