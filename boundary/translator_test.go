package boundary

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/memhost"
	"github.com/wippyai/host-bridge/protect"
)

func recordStates(states *[]State) Option {
	return WithTrace(func(_ string, s State) {
		*states = append(*states, s)
	})
}

func wantStates(t *testing.T, got []State, want ...State) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got states %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("state %d is %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestCall_NormalReturn(t *testing.T) {
	h := memhost.New()
	var states []State

	ref, sig := Call(h, "ok", func() (hostapi.Ref, error) {
		return h.Alloc(hostapi.TypeInteger, 2), nil
	}, recordStates(&states))

	if sig != nil {
		t.Fatalf("unexpected signal: %v", sig.Msg)
	}
	if h.TypeOf(ref) != hostapi.TypeInteger {
		t.Fatal("returned ref lost on the way out")
	}
	wantStates(t, states, StateEntered, StateRunning, StateNormalReturn, StateExited)
}

func TestCall_NativeErrorBecomesHostError(t *testing.T) {
	h := memhost.New()
	var states []State

	ref, sig := Call(h, "boom", func() (hostapi.Ref, error) {
		return hostapi.Invalid, fmt.Errorf("division by zero")
	}, recordStates(&states))

	if ref != hostapi.Invalid {
		t.Fatal("failed call must not return a ref")
	}
	if sig == nil {
		t.Fatal("native error must surface as a host error signal")
	}
	if sig.Msg != "division by zero" {
		t.Fatalf("message altered in transit: %q", sig.Msg)
	}
	wantStates(t, states, StateEntered, StateRunning, StateNativeExceptionCaught, StateExited)
}

func TestCall_NativePanicBecomesHostError(t *testing.T) {
	h := memhost.New()

	_, sig := Call(h, "panic", func() (hostapi.Ref, error) {
		panic("something slipped")
	})

	if sig == nil || sig.Msg != "something slipped" {
		t.Fatalf("panic not translated: %v", sig)
	}
}

func TestCall_RawHostSignalPassesThrough(t *testing.T) {
	h := memhost.New()
	var states []State

	_, sig := Call(h, "raise", func() (hostapi.Ref, error) {
		h.Raise("object not found")
		return hostapi.Invalid, nil
	}, recordStates(&states))

	if sig == nil || sig.Msg != "object not found" {
		t.Fatalf("host signal message must be preserved verbatim, got %v", sig)
	}
	wantStates(t, states, StateEntered, StateRunning, StateHostErrorCaught, StateExited)
}

func TestCall_GuardedHostErrorRethrown(t *testing.T) {
	h := memhost.New()
	var states []State

	_, sig := Call(h, "rethrow", func() (hostapi.Ref, error) {
		err := Guard(func() { h.Raise("invalid subscript") })
		Rethrow(err)
		return hostapi.Invalid, nil
	}, recordStates(&states))

	if sig == nil || sig.Msg != "invalid subscript" {
		t.Fatalf("rethrown host error lost its message: %v", sig)
	}
	// A caught-and-rethrown host error is still a host error, not a
	// native exception.
	wantStates(t, states, StateEntered, StateRunning, StateHostErrorCaught, StateExited)
}

func TestCall_HandlesReleasedOnHostError(t *testing.T) {
	h := memhost.New()
	reg := protect.NewRegistry()
	h.AddRoot(reg)

	_, sig := Call(h, "unwind", func() (hostapi.Ref, error) {
		a := protect.NewHandle(reg, h.Alloc(hostapi.TypeInteger, 1))
		defer a.Release()
		b := protect.NewHandle(reg, h.Alloc(hostapi.TypeReal, 1))
		defer b.Release()
		c := protect.NewHandle(reg, h.Alloc(hostapi.TypeString, 1))
		defer c.Release()

		h.Raise("mid-computation failure")
		return hostapi.Invalid, nil
	})

	if sig == nil {
		t.Fatal("expected a host error signal")
	}
	if reg.Size() != 0 {
		t.Fatalf("registry holds %d nodes after unwind, want 0", reg.Size())
	}
}

func TestCall_HandlesReleasedOnNativeError(t *testing.T) {
	h := memhost.New()
	reg := protect.NewRegistry()
	h.AddRoot(reg)

	_, sig := Call(h, "unwind-native", func() (hostapi.Ref, error) {
		a := protect.NewHandle(reg, h.Alloc(hostapi.TypeList, 2))
		defer a.Release()
		panic(stderrors.New("native failure"))
	})

	if sig == nil || sig.Msg != "native failure" {
		t.Fatalf("unexpected signal: %v", sig)
	}
	if reg.Size() != 0 {
		t.Fatalf("registry holds %d nodes after unwind, want 0", reg.Size())
	}
}

func TestCall_Nesting(t *testing.T) {
	h := memhost.New()

	if Active() {
		t.Fatal("no bracket should be open at rest")
	}
	_, sig := Call(h, "outer", func() (hostapi.Ref, error) {
		if !Active() {
			t.Fatal("bracket not active inside outer body")
		}
		inner, innerSig := Call(h, "inner", func() (hostapi.Ref, error) {
			if !Active() {
				t.Fatal("bracket not active inside inner body")
			}
			return h.Alloc(hostapi.TypeLogical, 1), nil
		})
		if innerSig != nil {
			t.Fatalf("inner call failed: %v", innerSig.Msg)
		}
		return inner, nil
	})
	if sig != nil {
		t.Fatalf("outer call failed: %v", sig.Msg)
	}
	if Active() {
		t.Fatal("bracket still open after return")
	}
}

func TestCall_InnerFailureDoesNotPoisonOuter(t *testing.T) {
	h := memhost.New()

	_, sig := Call(h, "outer", func() (hostapi.Ref, error) {
		_, innerSig := Call(h, "inner", func() (hostapi.Ref, error) {
			h.Raise("inner trouble")
			return hostapi.Invalid, nil
		})
		if innerSig == nil || innerSig.Msg != "inner trouble" {
			t.Fatalf("inner signal not delivered: %v", innerSig)
		}
		// The outer body observed the inner failure and recovers.
		return h.Alloc(hostapi.TypeInteger, 1), nil
	})

	if sig != nil {
		t.Fatalf("outer call must succeed: %v", sig.Msg)
	}
}

func TestCall_StructuredErrorMessageVerbatim(t *testing.T) {
	h := memhost.New()

	_, sig := Call(h, "structured", func() (hostapi.Ref, error) {
		return hostapi.Invalid, errors.OutOfBounds(errors.PhaseProxy, []string{"v"}, 5, 3)
	})

	if sig == nil {
		t.Fatal("expected a signal")
	}
	if sig.Msg != "index 5 out of bounds (length 3)" {
		t.Fatalf("host sees %q, want the originating detail", sig.Msg)
	}
}
