// Package proxy provides typed views over host-managed objects.
//
// A proxy never copies vector payloads to the native side. It wraps a host
// reference under a protection handle, checks the runtime type tag once at
// construction, and forwards element access to the host. Reads are
// bounds-checked against the cached length; a bad index is an ordinary
// out-of-bounds error, not a host fault.
//
// Vector is the read-only view. Writable adds in-place mutation and
// amortized growth with a length/capacity split: Set never reallocates,
// Push doubles capacity when full, and growth swaps backing objects under
// continuous protection so an allocation failure cannot lose the original
// data. List and DataFrame view composite objects positionally; DataFrame
// derives its row count from the row-name attribute, understanding the
// compact sentinel form that encodes n rows without materializing names.
//
// Missing values travel as in-band sentinels supplied by the host's
// Sentinels table; IsNA on any proxy checks the element against its kind's
// encoding.
package proxy
