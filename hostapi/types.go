package hostapi

// Ref is an opaque reference to a host-managed object.
// Ref 0 is reserved and always invalid. The referenced object is owned by
// the host garbage collector, never by native code; a Ref stays valid only
// while the host can reach it through a GC root.
type Ref uint32

// Invalid is the reserved never-valid reference.
const Invalid Ref = 0

// Type is the runtime type tag carried by every host object.
type Type uint8

const (
	TypeNull Type = iota
	TypeLogical
	TypeInteger
	TypeReal
	TypeString
	TypeList
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeLogical:
		return "logical"
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// Logical is the host's tri-state logical element: true, false, or missing.
// The missing encoding is supplied by the Sentinels table.
type Logical int32

const (
	False Logical = 0
	True  Logical = 1
)

// Attribute names understood by the proxy layer.
const (
	AttrNames    = "names"
	AttrClass    = "class"
	AttrRowNames = "row.names"
)

// RootSet is a set of references the host GC must treat as roots.
// The protection registry implements this so every registered node keeps
// its reference alive for exactly as long as the node exists.
type RootSet interface {
	// EachRoot calls fn for every rooted reference until fn returns false.
	EachRoot(fn func(Ref) bool)
}
