package bind

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"sync"

	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/protect"
)

// Signature is the host-visible shape of a registered native function: the
// contract consumed by glue generators and interactive callers.
type Signature struct {
	Name   string
	Params []Kind
	Result Kind
	Arity  int
	// Source is a file:line hint pointing at the Go function.
	Source string
}

// String renders the signature in a compact declaration form.
func (s Signature) String() string {
	out := s.Name + "("
	for i, p := range s.Params {
		if i > 0 {
			out += ", "
		}
		out += string(p)
	}
	out += ")"
	if s.Result != KindNone {
		out += " -> " + string(s.Result)
	}
	return out
}

type native struct {
	sig    Signature
	fn     reflect.Value
	hasErr bool
}

// Registry maps host-visible names to native Go functions with fixed
// arities.
type Registry struct {
	api   hostapi.API
	preg  *protect.Registry
	mu    sync.RWMutex
	funcs map[string]*native
}

// NewRegistry creates a registry whose invocations protect intermediate
// objects through preg.
func NewRegistry(api hostapi.API, preg *protect.Registry) *Registry {
	return &Registry{
		api:   api,
		preg:  preg,
		funcs: make(map[string]*native),
	}
}

// Register makes fn callable from the host under name. fn must be a
// non-variadic func whose parameters and results are boundary kinds; an
// error is allowed as the trailing result.
func (r *Registry) Register(name string, fn any) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseBind, "name cannot be empty")
	}

	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return errors.Registration(name, fmt.Errorf("not a func: %s", rt))
	}
	if rt.IsVariadic() {
		return errors.Registration(name, fmt.Errorf("variadic functions are not supported"))
	}

	sig := Signature{
		Name:   name,
		Arity:  rt.NumIn(),
		Result: KindNone,
		Source: sourceHint(rv),
	}
	for i := 0; i < rt.NumIn(); i++ {
		k, ok := kindOf(rt.In(i))
		if !ok {
			return errors.Registration(name, fmt.Errorf("parameter %d: unsupported type %s", i, rt.In(i)))
		}
		sig.Params = append(sig.Params, k)
	}

	hasErr := false
	switch rt.NumOut() {
	case 0:
	case 1:
		if rt.Out(0) == errorType {
			hasErr = true
		} else {
			k, ok := kindOf(rt.Out(0))
			if !ok {
				return errors.Registration(name, fmt.Errorf("unsupported result type %s", rt.Out(0)))
			}
			sig.Result = k
		}
	case 2:
		if rt.Out(1) != errorType {
			return errors.Registration(name, fmt.Errorf("second result must be error, got %s", rt.Out(1)))
		}
		k, ok := kindOf(rt.Out(0))
		if !ok {
			return errors.Registration(name, fmt.Errorf("unsupported result type %s", rt.Out(0)))
		}
		sig.Result = k
		hasErr = true
	default:
		return errors.Registration(name, fmt.Errorf("too many results: %d", rt.NumOut()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.funcs[name]; dup {
		return errors.Registration(name, fmt.Errorf("already registered"))
	}
	r.funcs[name] = &native{sig: sig, fn: rv, hasErr: hasErr}
	return nil
}

// MustRegister is Register for wiring done at startup.
func (r *Registry) MustRegister(name string, fn any) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the signature registered under name.
func (r *Registry) Lookup(name string) (Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.funcs[name]
	if !ok {
		return Signature{}, false
	}
	return n.sig, true
}

// Signatures returns every registered signature, sorted by name.
func (r *Registry) Signatures() []Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Signature, 0, len(r.funcs))
	for _, n := range r.funcs {
		out = append(out, n.sig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

func sourceHint(fn reflect.Value) string {
	pc := fn.Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	file, line := f.FileLine(pc)
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
