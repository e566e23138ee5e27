package proxy

import (
	"iter"

	"github.com/wippyai/host-bridge/boundary"
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/protect"
)

// Vector is a read-only typed view over a host vector. It owns one
// protection handle for the wrapped reference and caches the length, which
// cannot change behind a read-only view.
type Vector[T Elem] struct {
	api hostapi.API
	reg *protect.Registry
	h   *protect.Handle
	k   kind[T]
	n   int
}

func newVector[T Elem](api hostapi.API, reg *protect.Registry, ref hostapi.Ref, k kind[T]) (*Vector[T], error) {
	var (
		typ hostapi.Type
		n   int
	)
	if err := boundary.Guard(func() {
		typ = api.TypeOf(ref)
		n = api.Length(ref)
	}); err != nil {
		return nil, err
	}
	if typ != k.typ {
		return nil, errors.TypeMismatch(errors.PhaseProxy, k.goName, typ.String())
	}
	return &Vector[T]{
		api: api,
		reg: reg,
		h:   protect.NewHandle(reg, ref),
		k:   k,
		n:   n,
	}, nil
}

// NewInts wraps an integer vector.
func NewInts(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*Vector[int32], error) {
	return newVector(api, reg, ref, intKind)
}

// NewReals wraps a real vector.
func NewReals(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*Vector[float64], error) {
	return newVector(api, reg, ref, realKind)
}

// NewLogicals wraps a logical vector.
func NewLogicals(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*Vector[hostapi.Logical], error) {
	return newVector(api, reg, ref, logicalKind)
}

// NewStrings wraps a string vector.
func NewStrings(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*Vector[string], error) {
	return newVector(api, reg, ref, stringKind)
}

// Len returns the cached element count.
func (v *Vector[T]) Len() int {
	return v.n
}

// At returns the element at i, or KindOutOfBounds when i is outside
// [0, Len()).
func (v *Vector[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= v.n {
		return zero, errors.OutOfBounds(errors.PhaseProxy, []string{v.k.typ.String()}, i, v.n)
	}
	return boundary.Protected(func() T {
		return v.k.get(v.api, v.h.Ref(), i)
	})
}

// IsNA reports whether the element at i is the kind's missing value.
func (v *Vector[T]) IsNA(i int) (bool, error) {
	e, err := v.At(i)
	if err != nil {
		return false, err
	}
	return v.k.isNA(v.api, e), nil
}

// Values returns a restartable sequence over the elements, re-read from the
// handle on every iteration. Elements are fetched with raw host calls, so a
// host error raised mid-iteration unwinds to the enclosing entry bracket.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.k.get(v.api, v.h.Ref(), i)) {
				return
			}
		}
	}
}

// Writable returns a mutable deep copy of the vector's data under a fresh
// handle. The receiver is unaffected.
func (v *Vector[T]) Writable() (*Writable[T], error) {
	dup, err := boundary.Protected(func() hostapi.Ref {
		return v.api.Duplicate(v.h.Ref())
	})
	if err != nil {
		return nil, err
	}
	return &Writable[T]{
		api:      v.api,
		reg:      v.reg,
		h:        protect.NewHandle(v.reg, dup),
		k:        v.k,
		length:   v.n,
		capacity: v.n,
	}, nil
}

// Handle exposes the owning handle, for callers transferring ownership.
func (v *Vector[T]) Handle() *protect.Handle {
	return v.h
}

// Ref unwraps the viewed reference without affecting protection.
func (v *Vector[T]) Ref() hostapi.Ref {
	return v.h.Ref()
}

// Release drops the vector's protection. Idempotent.
func (v *Vector[T]) Release() {
	v.h.Release()
}
