// Package errors provides structured error types for the host-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/host type names, and cause chain.
//
// The four kinds every boundary must handle are:
//
//	KindHostError    a host error signal re-raised as a native error
//	KindNativeError  a native error that escaped to a boundary
//	KindOutOfBounds  a proxy index outside [0, length)
//	KindAllocation   a host allocation failure
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseProxy, errors.KindTypeMismatch).
//		GoType("int32").
//		HostType("real").
//		Detail("integer view over real vector").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseProxy, nil, 10, 5)
//	err := errors.HostError("object 'x' not found")
//
// When any of these reaches a boundary, only Message() is reported to the
// host: the originating text, verbatim. All errors implement the standard
// error interface and support errors.Is/As.
package errors
