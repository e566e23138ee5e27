package hostapi

// API is the C-shaped surface of the host runtime.
//
// Every operation that can fail on the host side fails by raising a host
// error signal: a panic carrying *Signal, modeling the host's non-local
// transfer of control. Callers on the native side must only reach these
// methods through boundary.Guard (or inside a boundary.Call bracket) so the
// signal is converted into an ordinary error before it crosses frames that
// hold cleanup state.
type API interface {
	// Alloc creates a new host object of the given type and length.
	// Vector payloads are initialized to the type's missing sentinel
	// (list elements to the null reference). Raises an OOM signal if the
	// host cannot allocate.
	Alloc(t Type, n int) Ref

	// Duplicate makes a deep copy of the object behind ref.
	Duplicate(ref Ref) Ref

	// NullRef returns the distinguished null object reference.
	NullRef() Ref

	TypeOf(ref Ref) Type
	Length(ref Ref) int

	IntElt(ref Ref, i int) int32
	SetIntElt(ref Ref, i int, v int32)
	RealElt(ref Ref, i int) float64
	SetRealElt(ref Ref, i int, v float64)
	LglElt(ref Ref, i int) Logical
	SetLglElt(ref Ref, i int, v Logical)
	StrElt(ref Ref, i int) string
	SetStrElt(ref Ref, i int, v string)
	ListElt(ref Ref, i int) Ref
	SetListElt(ref Ref, i int, v Ref)

	// Attr returns the named attribute, or the null reference if unset.
	Attr(ref Ref, name string) Ref
	SetAttr(ref Ref, name string, value Ref)

	// AddRoot registers a root set the collector traverses on every GC.
	AddRoot(rs RootSet)
	RemoveRoot(rs RootSet)

	// Raise raises a host error signal carrying msg. It never returns.
	Raise(msg string)

	// Sentinels returns the missing-value encoding table this host uses.
	Sentinels() Sentinels
}
