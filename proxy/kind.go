package proxy

import (
	"github.com/wippyai/host-bridge/hostapi"
)

// Elem is the set of element types the proxies can view: the four vector
// payload kinds plus list elements (references).
type Elem interface {
	int32 | float64 | hostapi.Logical | string | hostapi.Ref
}

// kind bundles the per-element-type operations a generic proxy needs: the
// host type tag, the element accessors, and the missing-value encoding.
type kind[T Elem] struct {
	typ    hostapi.Type
	goName string
	get    func(api hostapi.API, ref hostapi.Ref, i int) T
	set    func(api hostapi.API, ref hostapi.Ref, i int, v T)
	na     func(api hostapi.API) T
	isNA   func(api hostapi.API, v T) bool
}

var intKind = kind[int32]{
	typ:    hostapi.TypeInteger,
	goName: "int32",
	get:    func(api hostapi.API, r hostapi.Ref, i int) int32 { return api.IntElt(r, i) },
	set:    func(api hostapi.API, r hostapi.Ref, i int, v int32) { api.SetIntElt(r, i, v) },
	na:     func(api hostapi.API) int32 { return api.Sentinels().Integer },
	isNA:   func(api hostapi.API, v int32) bool { return api.Sentinels().IsNAInt(v) },
}

var realKind = kind[float64]{
	typ:    hostapi.TypeReal,
	goName: "float64",
	get:    func(api hostapi.API, r hostapi.Ref, i int) float64 { return api.RealElt(r, i) },
	set:    func(api hostapi.API, r hostapi.Ref, i int, v float64) { api.SetRealElt(r, i, v) },
	na:     func(api hostapi.API) float64 { return api.Sentinels().NAReal() },
	isNA:   func(api hostapi.API, v float64) bool { return api.Sentinels().IsNAReal(v) },
}

var logicalKind = kind[hostapi.Logical]{
	typ:    hostapi.TypeLogical,
	goName: "hostapi.Logical",
	get:    func(api hostapi.API, r hostapi.Ref, i int) hostapi.Logical { return api.LglElt(r, i) },
	set:    func(api hostapi.API, r hostapi.Ref, i int, v hostapi.Logical) { api.SetLglElt(r, i, v) },
	na:     func(api hostapi.API) hostapi.Logical { return api.Sentinels().Logical },
	isNA:   func(api hostapi.API, v hostapi.Logical) bool { return api.Sentinels().IsNALogical(v) },
}

var stringKind = kind[string]{
	typ:    hostapi.TypeString,
	goName: "string",
	get:    func(api hostapi.API, r hostapi.Ref, i int) string { return api.StrElt(r, i) },
	set:    func(api hostapi.API, r hostapi.Ref, i int, v string) { api.SetStrElt(r, i, v) },
	na:     func(api hostapi.API) string { return api.Sentinels().String },
	isNA:   func(api hostapi.API, v string) bool { return api.Sentinels().IsNAString(v) },
}

// List elements are references; the missing element is the null reference.
var elemKind = kind[hostapi.Ref]{
	typ:    hostapi.TypeList,
	goName: "hostapi.Ref",
	get:    func(api hostapi.API, r hostapi.Ref, i int) hostapi.Ref { return api.ListElt(r, i) },
	set:    func(api hostapi.API, r hostapi.Ref, i int, v hostapi.Ref) { api.SetListElt(r, i, v) },
	na:     func(api hostapi.API) hostapi.Ref { return api.NullRef() },
	isNA:   func(api hostapi.API, v hostapi.Ref) bool { return v == api.NullRef() },
}
