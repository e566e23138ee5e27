// Package bind registers native Go functions under host-visible names and
// runs them through the full boundary path.
//
// Register reflects over a plain Go function and records its signature:
// ordered parameter kinds, result kind, arity, and a source hint. The
// signature list is stable and sorted, ready for an external glue generator
// or an interactive caller to consume.
//
// Invoke is the host's door: it opens an entry-point bracket, converts the
// incoming references to the function's parameter types (scalars are read
// from element zero of length-1 vectors, proxy parameters get their own
// protection handles), calls the function, and converts the result back.
// Errors, panics, and host signals raised anywhere inside are reported to
// the host as a single error with the originating message.
package bind
