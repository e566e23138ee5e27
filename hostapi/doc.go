// Package hostapi defines the C-level contract between native code and the
// garbage-collected host runtime.
//
// # References
//
// A Ref is an opaque reference to a host-owned object plus a runtime type
// tag (TypeOf). Native code never owns the object; it stays alive only
// while reachable from a host GC root. The protect package turns a RootSet
// registration into per-reference liveness guarantees.
//
// # Error signaling
//
// The host signals errors the way a C API does: with a non-local transfer
// of control. In this contract that transfer is a panic carrying *Signal.
// Raising runs deferred cleanup in every unwound native frame, and the
// boundary package converts the signal into a plain value/error pair before
// control returns to host frames. Host API methods therefore have no error
// returns.
//
// # Missing values
//
// Each element kind has its own missing-value sentinel, configured through
// the Sentinels table. Reading a missing element yields the sentinel value,
// never a raw null. The bit pattern of the missing real is exact: a NaN
// whose low word is the configured payload, distinguishable from ordinary
// NaN data only by bit comparison.
package hostapi
