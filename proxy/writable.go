package proxy

import (
	"github.com/wippyai/host-bridge/boundary"
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/protect"
)

// Writable is a mutable typed view with amortized growth. Length is the
// visible element count; capacity is the length of the backing host object.
// Set mutates in place and never reallocates. Push and Resize may swap the
// backing object for a larger one; when they do, the new handle is
// registered before the old one is released, and an allocation failure
// leaves the original object, handle, and length fully intact.
type Writable[T Elem] struct {
	api      hostapi.API
	reg      *protect.Registry
	h        *protect.Handle
	k        kind[T]
	length   int
	capacity int
}

func newWritable[T Elem](api hostapi.API, reg *protect.Registry, n int, k kind[T]) (*Writable[T], error) {
	ref, err := boundary.Protected(func() hostapi.Ref {
		return api.Alloc(k.typ, n)
	})
	if err != nil {
		return nil, err
	}
	return &Writable[T]{
		api:      api,
		reg:      reg,
		h:        protect.NewHandle(reg, ref),
		k:        k,
		length:   n,
		capacity: n,
	}, nil
}

// NewWritableInts allocates a length-n integer vector filled with the
// missing sentinel.
func NewWritableInts(api hostapi.API, reg *protect.Registry, n int) (*Writable[int32], error) {
	return newWritable(api, reg, n, intKind)
}

// NewWritableReals allocates a length-n real vector filled with the missing
// sentinel.
func NewWritableReals(api hostapi.API, reg *protect.Registry, n int) (*Writable[float64], error) {
	return newWritable(api, reg, n, realKind)
}

// NewWritableLogicals allocates a length-n logical vector filled with the
// missing sentinel.
func NewWritableLogicals(api hostapi.API, reg *protect.Registry, n int) (*Writable[hostapi.Logical], error) {
	return newWritable(api, reg, n, logicalKind)
}

// NewWritableStrings allocates a length-n string vector filled with the
// missing sentinel.
func NewWritableStrings(api hostapi.API, reg *protect.Registry, n int) (*Writable[string], error) {
	return newWritable(api, reg, n, stringKind)
}

// Len returns the visible element count.
func (w *Writable[T]) Len() int {
	return w.length
}

// Cap returns the capacity of the backing host object.
func (w *Writable[T]) Cap() int {
	return w.capacity
}

// At returns the element at i, or KindOutOfBounds when i is outside
// [0, Len()).
func (w *Writable[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= w.length {
		return zero, errors.OutOfBounds(errors.PhaseProxy, []string{w.k.typ.String()}, i, w.length)
	}
	return boundary.Protected(func() T {
		return w.k.get(w.api, w.h.Ref(), i)
	})
}

// Set writes the element at i in place. Never reallocates.
func (w *Writable[T]) Set(i int, v T) error {
	if i < 0 || i >= w.length {
		return errors.OutOfBounds(errors.PhaseProxy, []string{w.k.typ.String()}, i, w.length)
	}
	return boundary.Guard(func() {
		w.k.set(w.api, w.h.Ref(), i, v)
	})
}

// SetNA writes the kind's missing value at i.
func (w *Writable[T]) SetNA(i int) error {
	return w.Set(i, w.k.na(w.api))
}

// IsNA reports whether the element at i is the kind's missing value.
func (w *Writable[T]) IsNA(i int) (bool, error) {
	e, err := w.At(i)
	if err != nil {
		return false, err
	}
	return w.k.isNA(w.api, e), nil
}

// Push appends v, doubling capacity when full.
func (w *Writable[T]) Push(v T) error {
	if w.length == w.capacity {
		next := w.capacity * 2
		if next == 0 {
			next = 1
		}
		if err := w.grow(next); err != nil {
			return err
		}
	}
	if err := boundary.Guard(func() {
		w.k.set(w.api, w.h.Ref(), w.length, v)
	}); err != nil {
		return err
	}
	w.length++
	return nil
}

// Resize changes the visible length. Shrinking keeps capacity; extending
// fills the new tail with the missing sentinel, growing the backing object
// when n exceeds capacity.
func (w *Writable[T]) Resize(n int) error {
	if n < 0 {
		return errors.InvalidInput(errors.PhaseProxy, "negative length")
	}
	if n > w.capacity {
		next := w.capacity * 2
		if next < n {
			next = n
		}
		if err := w.grow(next); err != nil {
			return err
		}
		// The extension region is sentinel-filled by the allocation.
		w.length = n
		return nil
	}
	if n > w.length {
		// Slots between the old and new length may hold stale values from
		// an earlier shrink.
		if err := boundary.Guard(func() {
			na := w.k.na(w.api)
			for i := w.length; i < n; i++ {
				w.k.set(w.api, w.h.Ref(), i, na)
			}
		}); err != nil {
			return err
		}
	}
	w.length = n
	return nil
}

// grow swaps in a larger backing object. Allocation happens first; if it
// fails nothing else has changed. The new object is registered before the
// old registration is dropped, so neither is collectible mid-copy.
func (w *Writable[T]) grow(newCap int) error {
	next, err := boundary.Protected(func() hostapi.Ref {
		return w.api.Alloc(w.k.typ, newCap)
	})
	if err != nil {
		return err
	}
	nh := protect.NewHandle(w.reg, next)
	if err := boundary.Guard(func() {
		for i := 0; i < w.length; i++ {
			w.k.set(w.api, next, i, w.k.get(w.api, w.h.Ref(), i))
		}
	}); err != nil {
		nh.Release()
		return err
	}
	w.h.Release()
	w.h = nh
	w.capacity = newCap
	return nil
}

// AsRef materializes the writable as a host reference of exactly Len()
// elements. When length and capacity already agree the backing reference is
// returned directly; otherwise the data moves to an exact-size object and
// the writable re-seats itself on it.
func (w *Writable[T]) AsRef() (hostapi.Ref, error) {
	if w.length != w.capacity {
		next, err := boundary.Protected(func() hostapi.Ref {
			return w.api.Alloc(w.k.typ, w.length)
		})
		if err != nil {
			return hostapi.Invalid, err
		}
		nh := protect.NewHandle(w.reg, next)
		if err := boundary.Guard(func() {
			for i := 0; i < w.length; i++ {
				w.k.set(w.api, next, i, w.k.get(w.api, w.h.Ref(), i))
			}
		}); err != nil {
			nh.Release()
			return hostapi.Invalid, err
		}
		w.h.Release()
		w.h = nh
		w.capacity = w.length
	}
	return w.h.Ref(), nil
}

// Vector returns a read-only view sharing the backing object under its own
// handle. The writable stays usable; in-place writes remain visible through
// the view, so callers wanting isolation should materialize first.
func (w *Writable[T]) Vector() (*Vector[T], error) {
	ref, err := w.AsRef()
	if err != nil {
		return nil, err
	}
	return &Vector[T]{
		api: w.api,
		reg: w.reg,
		h:   protect.NewHandle(w.reg, ref),
		k:   w.k,
		n:   w.length,
	}, nil
}

// Handle exposes the owning handle, for callers transferring ownership.
func (w *Writable[T]) Handle() *protect.Handle {
	return w.h
}

// Ref unwraps the backing reference without affecting protection. Note the
// backing object has Cap() elements; use AsRef for an exact-length result.
func (w *Writable[T]) Ref() hostapi.Ref {
	return w.h.Ref()
}

// Release drops the writable's protection. Idempotent.
func (w *Writable[T]) Release() {
	w.h.Release()
}
