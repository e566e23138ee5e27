package protect

import (
	"github.com/wippyai/host-bridge/hostapi"
)

// Node is one registry entry. Each node grants liveness to exactly one host
// reference for exactly as long as it stays linked. The node itself is part
// of the root structure the host collector walks, so the reference behind a
// linked node is never collected.
type Node struct {
	ref  hostapi.Ref
	prev *Node
	next *Node
}

// Ref returns the reference this node keeps alive.
func (n *Node) Ref() hostapi.Ref {
	if n == nil {
		return hostapi.Invalid
	}
	return n.ref
}

// Registry is the protection registry: a circular doubly-linked list of
// nodes rooted at a sentinel head. Insert and Remove are both O(1) and use
// only stored neighbor pointers, never a traversal. A LIFO protect stack
// cannot serve here because handles are released in whatever order their
// owners are destroyed, including arbitrary order during unwinding.
//
// Registry implements hostapi.RootSet so a host collector can traverse the
// live nodes as roots.
type Registry struct {
	head Node
	size int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.head.prev = &r.head
	r.head.next = &r.head
	return r
}

// Insert links a new node for ref at the tail and returns it. O(1).
func (r *Registry) Insert(ref hostapi.Ref) *Node {
	n := &Node{ref: ref}
	last := r.head.prev

	n.prev = last
	n.next = &r.head
	last.next = n
	r.head.prev = n
	r.size++
	return n
}

// Remove unlinks n. O(1): the stored neighbor pointers are relinked
// directly. Removing nil or an already-unlinked node is a no-op, which is
// what makes released and moved-from handles safe to destroy again.
func (r *Registry) Remove(n *Node) {
	if n == nil || n.next == nil {
		return
	}

	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
	r.size--
}

// Size returns the number of linked nodes.
func (r *Registry) Size() int {
	return r.size
}

// EachRoot implements hostapi.RootSet: it walks every linked node.
func (r *Registry) EachRoot(fn func(hostapi.Ref) bool) {
	for n := r.head.next; n != &r.head; n = n.next {
		if !fn(n.ref) {
			return
		}
	}
}
