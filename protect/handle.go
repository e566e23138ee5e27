package protect

import (
	"github.com/wippyai/host-bridge/hostapi"
)

// Handle owns exactly one registry node for its lifetime. It is the
// ownership wrapper native code holds instead of a raw reference: while the
// handle lives, the wrapped reference is a GC root; when the handle is
// released, the node is unregistered in O(1).
type Handle struct {
	reg  *Registry
	node *Node
	ref  hostapi.Ref
}

// NewHandle registers ref and returns an owning handle.
func NewHandle(reg *Registry, ref hostapi.Ref) *Handle {
	return &Handle{
		reg:  reg,
		node: reg.Insert(ref),
		ref:  ref,
	}
}

// Clone creates an independent registration for the same reference. Each
// copy owns its own node, so each copy's release independently unregisters;
// this is deliberately not a refcount on one node.
func (h *Handle) Clone() *Handle {
	if h == nil || h.node == nil {
		return &Handle{}
	}
	return NewHandle(h.reg, h.ref)
}

// Take transfers node ownership to a new handle. The receiver becomes
// empty and its Release is from then on a no-op.
func (h *Handle) Take() *Handle {
	if h == nil || h.node == nil {
		return &Handle{}
	}
	moved := &Handle{reg: h.reg, node: h.node, ref: h.ref}
	h.node = nil
	h.ref = hostapi.Invalid
	return moved
}

// Release unregisters the handle's node. Idempotent; a no-op on empty
// (released or moved-from) handles, so it is always safe in deferred
// cleanup regardless of unwind order.
func (h *Handle) Release() {
	if h == nil || h.node == nil {
		return
	}
	h.reg.Remove(h.node)
	h.node = nil
	h.ref = hostapi.Invalid
}

// Ref unwraps the raw reference without affecting registration. The caller
// must not assume validity once the originating handle is released.
func (h *Handle) Ref() hostapi.Ref {
	if h == nil {
		return hostapi.Invalid
	}
	return h.ref
}

// Empty reports whether the handle owns no node.
func (h *Handle) Empty() bool {
	return h == nil || h.node == nil
}

// Equal reports whether both handles wrap the same reference. Node
// identity does not matter: two clones compare equal.
func (h *Handle) Equal(o *Handle) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.ref == o.ref
}
