package memhost

import (
	"testing"

	"github.com/wippyai/host-bridge/hostapi"
)

// catchSignal runs fn and returns the host signal it raised, or nil.
func catchSignal(fn func()) (sig *hostapi.Signal) {
	defer func() {
		if rec := recover(); rec != nil {
			s, ok := rec.(*hostapi.Signal)
			if !ok {
				panic(rec)
			}
			sig = s
		}
	}()
	fn()
	return nil
}

func TestAlloc_SentinelFill(t *testing.T) {
	h := New()
	s := h.Sentinels()

	ints := h.Alloc(hostapi.TypeInteger, 3)
	for i := 0; i < 3; i++ {
		if !s.IsNAInt(h.IntElt(ints, i)) {
			t.Fatalf("integer elt %d not missing", i)
		}
	}

	reals := h.Alloc(hostapi.TypeReal, 2)
	for i := 0; i < 2; i++ {
		if !s.IsNAReal(h.RealElt(reals, i)) {
			t.Fatalf("real elt %d not missing", i)
		}
	}

	lst := h.Alloc(hostapi.TypeList, 2)
	for i := 0; i < 2; i++ {
		if h.ListElt(lst, i) != h.NullRef() {
			t.Fatalf("list elt %d not null", i)
		}
	}
}

func TestElementRoundTrip(t *testing.T) {
	h := New()

	ints := h.Alloc(hostapi.TypeInteger, 2)
	h.SetIntElt(ints, 0, 10)
	h.SetIntElt(ints, 1, -3)
	if h.IntElt(ints, 0) != 10 || h.IntElt(ints, 1) != -3 {
		t.Fatal("integer round trip failed")
	}

	strs := h.Alloc(hostapi.TypeString, 1)
	h.SetStrElt(strs, 0, "hello")
	if h.StrElt(strs, 0) != "hello" {
		t.Fatal("string round trip failed")
	}

	lgls := h.Alloc(hostapi.TypeLogical, 1)
	h.SetLglElt(lgls, 0, hostapi.True)
	if h.LglElt(lgls, 0) != hostapi.True {
		t.Fatal("logical round trip failed")
	}
}

func TestTypeAndBoundsChecks(t *testing.T) {
	h := New()
	ints := h.Alloc(hostapi.TypeInteger, 2)

	if sig := catchSignal(func() { h.RealElt(ints, 0) }); sig == nil {
		t.Fatal("type confusion must raise")
	}
	if sig := catchSignal(func() { h.IntElt(ints, 2) }); sig == nil {
		t.Fatal("out-of-bounds access must raise")
	}
	if sig := catchSignal(func() { h.IntElt(hostapi.Invalid, 0) }); sig == nil {
		t.Fatal("invalid ref must raise")
	}
}

func TestAttr(t *testing.T) {
	h := New()
	obj := h.Alloc(hostapi.TypeInteger, 1)

	if h.Attr(obj, hostapi.AttrNames) != h.NullRef() {
		t.Fatal("unset attribute must read as null")
	}

	names := h.Alloc(hostapi.TypeString, 1)
	h.SetStrElt(names, 0, "x")
	h.SetAttr(obj, hostapi.AttrNames, names)

	if h.Attr(obj, hostapi.AttrNames) != names {
		t.Fatal("attribute lost")
	}

	h.SetAttr(obj, hostapi.AttrNames, h.NullRef())
	if h.Attr(obj, hostapi.AttrNames) != h.NullRef() {
		t.Fatal("null assignment must clear the attribute")
	}
}

func TestDuplicate(t *testing.T) {
	h := New()
	src := h.Alloc(hostapi.TypeInteger, 2)
	h.SetIntElt(src, 0, 1)
	h.SetIntElt(src, 1, 2)

	dup := h.Duplicate(src)
	h.SetIntElt(dup, 0, 99)

	if h.IntElt(src, 0) != 1 {
		t.Fatal("duplicate must not alias the source payload")
	}
	if h.IntElt(dup, 1) != 2 {
		t.Fatal("duplicate lost payload")
	}
}

func TestFailAllocs(t *testing.T) {
	h := New()
	h.FailAllocs(1)

	sig := catchSignal(func() { h.Alloc(hostapi.TypeInteger, 8) })
	if sig == nil || !sig.OOM {
		t.Fatalf("expected OOM signal, got %+v", sig)
	}

	// Next allocation succeeds again.
	if ref := h.Alloc(hostapi.TypeInteger, 8); ref == hostapi.Invalid {
		t.Fatal("allocation after injected failure must succeed")
	}
}

func TestMaxObjects(t *testing.T) {
	h := New(WithMaxObjects(2))

	h.Alloc(hostapi.TypeInteger, 1)
	h.Alloc(hostapi.TypeInteger, 1)

	sig := catchSignal(func() { h.Alloc(hostapi.TypeInteger, 1) })
	if sig == nil || !sig.OOM {
		t.Fatal("allocation beyond cap must raise OOM")
	}
}

func TestInterruptCheck(t *testing.T) {
	h := New()
	pending := false
	h.SetInterruptCheck(func() bool { return pending })

	h.Alloc(hostapi.TypeInteger, 1) // no interrupt yet

	pending = true
	sig := catchSignal(func() { h.Alloc(hostapi.TypeInteger, 1) })
	if sig == nil || sig.Msg != "interrupted" {
		t.Fatalf("expected interrupt signal, got %+v", sig)
	}
}
