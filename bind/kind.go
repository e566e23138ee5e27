package bind

import (
	"reflect"

	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/proxy"
)

// Kind names a value shape crossing the native boundary.
type Kind string

const (
	KindNone     Kind = "none" // absent result
	KindRef      Kind = "ref"  // raw host reference
	KindInt      Kind = "int"  // scalar, length-1 integer vector on the wire
	KindReal     Kind = "real"
	KindLogical  Kind = "logical"
	KindString   Kind = "string"
	KindInts     Kind = "ints" // read-only vector proxies
	KindReals    Kind = "reals"
	KindLogicals Kind = "logicals"
	KindStrings  Kind = "strings"
)

var (
	refType     = reflect.TypeOf(hostapi.Ref(0))
	intType     = reflect.TypeOf(int32(0))
	realType    = reflect.TypeOf(float64(0))
	logicalType = reflect.TypeOf(hostapi.Logical(0))
	stringType  = reflect.TypeOf("")
	errorType   = reflect.TypeOf((*error)(nil)).Elem()

	intsType     = reflect.TypeOf((*proxy.Vector[int32])(nil))
	realsType    = reflect.TypeOf((*proxy.Vector[float64])(nil))
	logicalsType = reflect.TypeOf((*proxy.Vector[hostapi.Logical])(nil))
	stringsType  = reflect.TypeOf((*proxy.Vector[string])(nil))
)

// kindOf maps a Go type to its boundary kind. The bool is false for
// unsupported types.
func kindOf(t reflect.Type) (Kind, bool) {
	switch t {
	case refType:
		return KindRef, true
	case intType:
		return KindInt, true
	case realType:
		return KindReal, true
	case logicalType:
		return KindLogical, true
	case stringType:
		return KindString, true
	case intsType:
		return KindInts, true
	case realsType:
		return KindReals, true
	case logicalsType:
		return KindLogicals, true
	case stringsType:
		return KindStrings, true
	default:
		return KindNone, false
	}
}

// scalarType returns the host vector type carrying a scalar kind.
func (k Kind) scalarType() (hostapi.Type, bool) {
	switch k {
	case KindInt:
		return hostapi.TypeInteger, true
	case KindReal:
		return hostapi.TypeReal, true
	case KindLogical:
		return hostapi.TypeLogical, true
	case KindString:
		return hostapi.TypeString, true
	default:
		return hostapi.TypeNull, false
	}
}
