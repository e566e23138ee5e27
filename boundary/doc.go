// Package boundary converts host error signals and native errors into each
// other at every native-callable entry point.
//
// # The bracket
//
// Every function the host can call runs inside Call:
//
//	ref, sig := boundary.Call(api, "my-func", func() (hostapi.Ref, error) {
//	    h := protect.NewHandle(reg, input)
//	    defer h.Release()
//	    // ... native body, may call back into the host ...
//	    return result, nil
//	})
//
// The bracket walks Entered -> Running -> one of NormalReturn,
// HostErrorCaught, NativeExceptionCaught -> Exited. Anything that escapes
// the body is caught before control returns to host frames and reported as
// a single host error carrying the originating message verbatim.
//
// # Protected host calls
//
// Inside the bracket, native code calls the host through Guard so the
// host's non-local transfer of control becomes an ordinary error:
//
//	n, err := boundary.Protected(func() int { return api.Length(ref) })
//	if err != nil {
//	    // handle, or boundary.Rethrow(err) toward the barrier
//	}
//
// Either way, no frame holding cleanup state is ever skipped: a raised
// signal is a panic, panics run deferred cleanup, and the barrier is the
// only place the panic stops.
package boundary
