package hostapi

import "strconv"

// Signal is the payload of a host error signal.
//
// A raised Signal is a transfer of control, not a value: host API methods
// panic with *Signal, and the panic unwinds native frames with deferred
// cleanup running, exactly like a native exception. The boundary translator
// is the only place a Signal is converted back into a plain return to the
// host.
type Signal struct {
	Msg string
	// OOM marks allocation failures so the native side can classify them
	// as AllocationError rather than a generic host error.
	OOM bool
}

// Raise raises s as a host error signal. It never returns.
func (s *Signal) Raise() {
	panic(s)
}

// RaiseOOM raises an allocation-failure signal describing the failed request.
func RaiseOOM(t Type, n int) {
	panic(&Signal{Msg: "cannot allocate " + t.String() + " vector of length " + strconv.Itoa(n), OOM: true})
}
