package proxy

import (
	"github.com/wippyai/host-bridge/boundary"
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/protect"
)

// List is a positional view over a host list. Elements stay host-side:
// At returns references, and HandleAt wraps one under its own protection so
// element lifetime is independent of the container's.
type List struct {
	api   hostapi.API
	reg   *protect.Registry
	h     *protect.Handle
	n     int
	names []string
}

// NewList wraps a list reference, caching length and the names attribute.
func NewList(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*List, error) {
	var (
		typ   hostapi.Type
		n     int
		names []string
	)
	if err := boundary.Guard(func() {
		typ = api.TypeOf(ref)
		if typ != hostapi.TypeList {
			return
		}
		n = api.Length(ref)
		names = readNames(api, ref)
	}); err != nil {
		return nil, err
	}
	if typ != hostapi.TypeList {
		return nil, errors.TypeMismatch(errors.PhaseProxy, "proxy.List", typ.String())
	}
	return &List{
		api:   api,
		reg:   reg,
		h:     protect.NewHandle(reg, ref),
		n:     n,
		names: names,
	}, nil
}

// readNames returns the names attribute as a slice, or nil when unset.
// Runs host calls; callers hold the guard.
func readNames(api hostapi.API, ref hostapi.Ref) []string {
	nref := api.Attr(ref, hostapi.AttrNames)
	if nref == api.NullRef() || api.TypeOf(nref) != hostapi.TypeString {
		return nil
	}
	names := make([]string, api.Length(nref))
	for i := range names {
		names[i] = api.StrElt(nref, i)
	}
	return names
}

// Len returns the cached element count.
func (l *List) Len() int {
	return l.n
}

// At returns the element reference at i. The reference is only as alive as
// the container; use HandleAt to keep it past the container's release.
func (l *List) At(i int) (hostapi.Ref, error) {
	if i < 0 || i >= l.n {
		return hostapi.Invalid, errors.OutOfBounds(errors.PhaseProxy, []string{"list"}, i, l.n)
	}
	return boundary.Protected(func() hostapi.Ref {
		return l.api.ListElt(l.h.Ref(), i)
	})
}

// HandleAt returns the element at i under an independent protection handle.
func (l *List) HandleAt(i int) (*protect.Handle, error) {
	ref, err := l.At(i)
	if err != nil {
		return nil, err
	}
	return protect.NewHandle(l.reg, ref), nil
}

// Names returns a copy of the names attribute, or nil when the list is
// unnamed.
func (l *List) Names() []string {
	if l.names == nil {
		return nil
	}
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Index returns the position of name, or -1 when absent. First match wins
// on duplicate names.
func (l *List) Index(name string) int {
	for i, n := range l.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Named returns the element with the given name.
func (l *List) Named(name string) (hostapi.Ref, error) {
	i := l.Index(name)
	if i < 0 {
		return hostapi.Invalid, errors.NotFound(errors.PhaseProxy, "list element", name)
	}
	return l.At(i)
}

// Handle exposes the owning handle, for callers transferring ownership.
func (l *List) Handle() *protect.Handle {
	return l.h
}

// Ref unwraps the container reference without affecting protection.
func (l *List) Ref() hostapi.Ref {
	return l.h.Ref()
}

// Release drops the container's protection. Handles obtained via HandleAt
// are unaffected.
func (l *List) Release() {
	l.h.Release()
}
