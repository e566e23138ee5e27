package proxy

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/memhost"
)

func namedList(t *testing.T, h *memhost.Host, names []string, elems []hostapi.Ref) hostapi.Ref {
	t.Helper()
	ref := h.Alloc(hostapi.TypeList, len(elems))
	for i, e := range elems {
		h.SetListElt(ref, i, e)
	}
	if names != nil {
		nm := h.Alloc(hostapi.TypeString, len(names))
		for i, n := range names {
			h.SetStrElt(nm, i, n)
		}
		h.SetAttr(ref, hostapi.AttrNames, nm)
	}
	return ref
}

func TestList_Positional(t *testing.T) {
	h, reg := newEnv(t)
	a := intVector(t, h, 1)
	b := intVector(t, h, 2, 3)

	l, err := NewList(h, reg, namedList(t, h, nil, []hostapi.Ref{a, b}))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	defer l.Release()

	if l.Len() != 2 {
		t.Fatalf("len %d, want 2", l.Len())
	}
	got, err := l.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if got != b {
		t.Fatal("At(1) returned the wrong element")
	}
	if _, err := l.At(2); err == nil {
		t.Fatal("At(2) must be out of bounds")
	}
	if l.Names() != nil {
		t.Fatal("unnamed list must report nil names")
	}
}

func TestList_Named(t *testing.T) {
	h, reg := newEnv(t)
	a := intVector(t, h, 1)
	b := intVector(t, h, 2)

	l, err := NewList(h, reg, namedList(t, h, []string{"x", "y"}, []hostapi.Ref{a, b}))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	defer l.Release()

	got, err := l.Named("y")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if got != b {
		t.Fatal("Named returned the wrong element")
	}

	_, err = l.Named("z")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNotFound {
		t.Fatalf("missing name must be not_found, got %v", err)
	}

	names := l.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("names %v", names)
	}
	names[0] = "mutated"
	if l.Names()[0] != "x" {
		t.Fatal("Names must return a copy")
	}
}

func TestList_TypeMismatch(t *testing.T) {
	h, reg := newEnv(t)
	_, err := NewList(h, reg, intVector(t, h, 1))
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
		t.Fatalf("wrapping an int vector as list must fail, got %v", err)
	}
}

func TestList_HandleAtOutlivesContainer(t *testing.T) {
	h, reg := newEnv(t)
	elem := intVector(t, h, 42)
	l, err := NewList(h, reg, namedList(t, h, nil, []hostapi.Ref{elem}))
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}

	eh, err := l.HandleAt(0)
	if err != nil {
		t.Fatalf("HandleAt: %v", err)
	}
	defer eh.Release()

	l.Release()
	h.GC() // container and its names are gone, the element is rooted

	if h.IntElt(eh.Ref(), 0) != 42 {
		t.Fatal("element handle must keep the element alive past the container")
	}
}

func TestList_MissingElementIsNull(t *testing.T) {
	h, reg := newEnv(t)
	ref := h.Alloc(hostapi.TypeList, 1)

	l, err := NewList(h, reg, ref)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	defer l.Release()

	got, err := l.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	if got != h.NullRef() {
		t.Fatal("unset list element must read as the null reference")
	}
}
