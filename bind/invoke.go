package bind

import (
	"fmt"
	"reflect"

	"github.com/wippyai/host-bridge/boundary"
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/proxy"
)

// Invoke runs the named native function inside an entry-point bracket,
// converting host references to typed arguments and the result back to a
// host reference. Scalar results come back as length-1 vectors; a function
// without a result yields the null reference. Proxy arguments are released
// before control returns to the host, unwind or not.
func (r *Registry) Invoke(name string, args []hostapi.Ref) (hostapi.Ref, *hostapi.Signal) {
	return boundary.Call(r.api, name, func() (hostapi.Ref, error) {
		r.mu.RLock()
		n, ok := r.funcs[name]
		r.mu.RUnlock()
		if !ok {
			return hostapi.Invalid, errors.NotFound(errors.PhaseBind, "native function", name)
		}
		if len(args) != n.sig.Arity {
			return hostapi.Invalid, errors.InvalidInput(errors.PhaseBind,
				fmt.Sprintf("%s expects %d arguments, got %d", name, n.sig.Arity, len(args)))
		}

		var cleanup []func()
		defer func() {
			for _, f := range cleanup {
				f()
			}
		}()

		in := make([]reflect.Value, len(args))
		for i, ref := range args {
			v, release, err := r.convertArg(n.sig.Params[i], ref)
			if err != nil {
				return hostapi.Invalid, err
			}
			if release != nil {
				cleanup = append(cleanup, release)
			}
			in[i] = v
		}

		out := n.fn.Call(in)
		if n.hasErr {
			if errv := out[len(out)-1]; !errv.IsNil() {
				return hostapi.Invalid, errv.Interface().(error)
			}
		}
		if n.sig.Result == KindNone {
			return r.api.NullRef(), nil
		}
		return r.convertResult(n.sig.Result, out[0])
	})
}

// convertArg turns a host reference into the typed argument a native
// function expects. Scalars are element zero of a non-empty vector of the
// matching type; proxy arguments carry a release func the invoker defers.
func (r *Registry) convertArg(k Kind, ref hostapi.Ref) (reflect.Value, func(), error) {
	switch k {
	case KindRef:
		return reflect.ValueOf(ref), nil, nil

	case KindInts:
		v, err := proxy.NewInts(r.api, r.preg, ref)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return reflect.ValueOf(v), v.Release, nil
	case KindReals:
		v, err := proxy.NewReals(r.api, r.preg, ref)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return reflect.ValueOf(v), v.Release, nil
	case KindLogicals:
		v, err := proxy.NewLogicals(r.api, r.preg, ref)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return reflect.ValueOf(v), v.Release, nil
	case KindStrings:
		v, err := proxy.NewStrings(r.api, r.preg, ref)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return reflect.ValueOf(v), v.Release, nil
	}

	want, ok := k.scalarType()
	if !ok {
		return reflect.Value{}, nil, errors.InvalidInput(errors.PhaseBind, fmt.Sprintf("unconvertible kind %q", k))
	}
	if got := r.api.TypeOf(ref); got != want {
		return reflect.Value{}, nil, errors.TypeMismatch(errors.PhaseBind, string(k), got.String())
	}
	if r.api.Length(ref) < 1 {
		return reflect.Value{}, nil, errors.InvalidInput(errors.PhaseBind, "zero-length argument for scalar parameter")
	}

	switch k {
	case KindInt:
		return reflect.ValueOf(r.api.IntElt(ref, 0)), nil, nil
	case KindReal:
		return reflect.ValueOf(r.api.RealElt(ref, 0)), nil, nil
	case KindLogical:
		return reflect.ValueOf(r.api.LglElt(ref, 0)), nil, nil
	default:
		return reflect.ValueOf(r.api.StrElt(ref, 0)), nil, nil
	}
}

// convertResult turns a native return value into a host reference.
func (r *Registry) convertResult(k Kind, v reflect.Value) (hostapi.Ref, error) {
	switch k {
	case KindRef:
		return v.Interface().(hostapi.Ref), nil
	case KindInts, KindReals, KindLogicals, KindStrings:
		if v.IsNil() {
			return r.api.NullRef(), nil
		}
		return v.Interface().(interface{ Ref() hostapi.Ref }).Ref(), nil
	}

	t, ok := k.scalarType()
	if !ok {
		return hostapi.Invalid, errors.InvalidInput(errors.PhaseBind, fmt.Sprintf("unconvertible result kind %q", k))
	}
	ref := r.api.Alloc(t, 1)
	switch k {
	case KindInt:
		r.api.SetIntElt(ref, 0, v.Interface().(int32))
	case KindReal:
		r.api.SetRealElt(ref, 0, v.Interface().(float64))
	case KindLogical:
		r.api.SetLglElt(ref, 0, v.Interface().(hostapi.Logical))
	default:
		r.api.SetStrElt(ref, 0, v.Interface().(string))
	}
	return ref, nil
}
