package boundary

import (
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
)

// Guard runs fn, which may call into the host, and converts a raised host
// error signal into an ordinary error: KindAllocation for OOM signals,
// KindHostError otherwise. The message text is preserved verbatim.
//
// This is the structured form of a protected host call: native code holding
// cleanup state calls the host only through Guard (or inside a Call
// bracket), so the host's non-local transfer becomes a catchable error and
// deferred cleanup always runs. Panics that are not host signals pass
// through untouched.
func Guard(fn func()) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		s, ok := rec.(*hostapi.Signal)
		if !ok {
			panic(rec)
		}
		if s.OOM {
			err = errors.Wrap(errors.PhaseHost, errors.KindAllocation, nil, s.Msg)
		} else {
			err = errors.HostError(s.Msg)
		}
	}()
	fn()
	return nil
}

// Protected runs a host call producing a value under Guard.
func Protected[T any](fn func() T) (v T, err error) {
	err = Guard(func() { v = fn() })
	return v, err
}

// Rethrow resumes propagation of a caught error toward the enclosing entry
// barrier. Intervening frames unwind with their deferred cleanup running;
// the barrier converts the error back into a host error signal, preserving
// the original message. A nil err is a no-op.
func Rethrow(err error) {
	if err == nil {
		return
	}
	panic(err)
}
