// Package protect keeps host-managed objects reachable by the host garbage
// collector for exactly as long as native code holds references to them.
//
// # Registry
//
// The Registry is a circular doubly-linked list whose nodes the host
// collector can traverse as roots (hostapi.RootSet). Registration and
// deregistration are both O(1):
//
//	reg := protect.NewRegistry()
//	node := reg.Insert(ref) // relinks two pointers
//	reg.Remove(node)        // relinks the stored neighbors
//
// A stack-based protect/unprotect discipline only supports LIFO release,
// but native cleanup fires in whatever order owners go out of scope,
// including arbitrary order during unwinding across several held handles.
// The list removes by node identity instead, never by scan.
//
// # Handles
//
// A Handle owns one node. Copying a handle (Clone) creates a second,
// independent node for the same reference; moving one (Take) transfers the
// node and empties the source; Release unregisters and is idempotent.
//
//	h := protect.NewHandle(reg, ref)
//	defer h.Release()
//
// Two handles compare Equal iff they wrap the same reference, independent
// of node identity.
package protect
