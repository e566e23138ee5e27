// Package memhost is the reference in-memory implementation of the host
// runtime contract (hostapi.API).
//
// It exists so the bridge can be exercised end to end without a real host
// process: objects live in a slab with freelist reuse, a mark-and-sweep
// collector traverses the registered root sets (the protection registry),
// and every failure raises a host error signal the way a C-level host
// would.
//
//	host := memhost.New()
//	reg := protect.NewRegistry()
//	host.AddRoot(reg)
//
//	ref := host.Alloc(hostapi.TypeInteger, 3) // sentinel-filled
//	host.SetIntElt(ref, 0, 1)
//
// Objects not reachable from a root set are reclaimed by GC(); objects
// behind a registered protection node survive. FailAllocs and
// SetInterruptCheck inject the failure modes boundary and proxy code must
// survive.
package memhost
