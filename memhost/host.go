package memhost

import (
	"go.uber.org/zap"

	"github.com/wippyai/host-bridge/hostapi"
)

// Host is the in-memory reference implementation of hostapi.API.
//
// Objects live in a slab indexed by Ref with a freelist for reuse. Failure
// behavior mirrors a real C-level host: every invalid access, type
// confusion, or allocation failure raises a host error signal instead of
// returning an error value.
type Host struct {
	cfg       config
	objects   []object
	freeList  []hostapi.Ref
	roots     []hostapi.RootSet
	nullRef   hostapi.Ref
	allocs    int
	failNext  int
	interrupt func() bool
	collected int
	log       *zap.Logger
}

type object struct {
	typ   hostapi.Type
	ints  []int32
	reals []float64
	lgls  []hostapi.Logical
	strs  []string
	refs  []hostapi.Ref
	attrs []attribute
	valid bool
	mark  bool
}

// Attributes keep insertion order; hosts of this shape expose them as an
// ordered pair list, not a map.
type attribute struct {
	name  string
	value hostapi.Ref
}

type config struct {
	sentinels  hostapi.Sentinels
	gcEvery    int
	maxObjects int
}

// Option configures a Host.
type Option func(*config)

// WithSentinels overrides the missing-value encoding table.
func WithSentinels(s hostapi.Sentinels) Option {
	return func(c *config) { c.sentinels = s }
}

// WithGCEvery runs a collection automatically every n allocations.
// Zero disables automatic collection (tests drive GC explicitly).
func WithGCEvery(n int) Option {
	return func(c *config) { c.gcEvery = n }
}

// WithMaxObjects caps the number of live objects; allocation beyond the
// cap raises an OOM signal.
func WithMaxObjects(n int) Option {
	return func(c *config) { c.maxObjects = n }
}

// New creates a host with the default sentinel table.
func New(opts ...Option) *Host {
	cfg := config{sentinels: hostapi.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Host{
		cfg:      cfg,
		objects:  make([]object, 0, 64),
		freeList: make([]hostapi.Ref, 0, 16),
		log:      Logger(),
	}

	// The distinguished null object. Always valid, never swept.
	h.nullRef = h.newObject(hostapi.TypeNull, 0)
	return h
}

func (h *Host) newObject(t hostapi.Type, n int) hostapi.Ref {
	obj := object{typ: t, valid: true}

	s := h.cfg.sentinels
	switch t {
	case hostapi.TypeNull:
		// no payload
	case hostapi.TypeLogical:
		obj.lgls = make([]hostapi.Logical, n)
		for i := range obj.lgls {
			obj.lgls[i] = s.Logical
		}
	case hostapi.TypeInteger:
		obj.ints = make([]int32, n)
		for i := range obj.ints {
			obj.ints[i] = s.Integer
		}
	case hostapi.TypeReal:
		obj.reals = make([]float64, n)
		for i := range obj.reals {
			obj.reals[i] = s.NAReal()
		}
	case hostapi.TypeString:
		obj.strs = make([]string, n)
		for i := range obj.strs {
			obj.strs[i] = s.String
		}
	case hostapi.TypeList:
		obj.refs = make([]hostapi.Ref, n)
		for i := range obj.refs {
			obj.refs[i] = h.nullRef
		}
	}

	if len(h.freeList) > 0 {
		ref := h.freeList[len(h.freeList)-1]
		h.freeList = h.freeList[:len(h.freeList)-1]
		h.objects[ref-1] = obj
		return ref
	}

	h.objects = append(h.objects, obj)
	return hostapi.Ref(len(h.objects))
}

func (h *Host) lookup(ref hostapi.Ref) *object {
	if ref == hostapi.Invalid || int(ref) > len(h.objects) {
		h.Raise("invalid reference")
	}
	obj := &h.objects[ref-1]
	if !obj.valid {
		h.Raise("invalid reference")
	}
	return obj
}

func (h *Host) lookupTyped(ref hostapi.Ref, t hostapi.Type, i int) *object {
	obj := h.lookup(ref)
	if obj.typ != t {
		h.Raise(t.String() + " operation on " + obj.typ.String() + " object")
	}
	if i < 0 || i >= h.payloadLen(obj) {
		h.Raise("subscript out of bounds")
	}
	return obj
}

func (h *Host) payloadLen(obj *object) int {
	switch obj.typ {
	case hostapi.TypeLogical:
		return len(obj.lgls)
	case hostapi.TypeInteger:
		return len(obj.ints)
	case hostapi.TypeReal:
		return len(obj.reals)
	case hostapi.TypeString:
		return len(obj.strs)
	case hostapi.TypeList:
		return len(obj.refs)
	default:
		return 0
	}
}

// Alloc implements hostapi.API.
func (h *Host) Alloc(t hostapi.Type, n int) hostapi.Ref {
	h.checkInterrupt()

	if n < 0 {
		h.Raise("negative length in allocation")
	}
	if h.failNext > 0 {
		h.failNext--
		hostapi.RaiseOOM(t, n)
	}
	if h.cfg.maxObjects > 0 && h.LiveObjects() >= h.cfg.maxObjects {
		hostapi.RaiseOOM(t, n)
	}

	h.allocs++
	if h.cfg.gcEvery > 0 && h.allocs%h.cfg.gcEvery == 0 {
		h.GC()
	}

	return h.newObject(t, n)
}

// Duplicate implements hostapi.API.
func (h *Host) Duplicate(ref hostapi.Ref) hostapi.Ref {
	src := h.lookup(ref)
	n := h.payloadLen(src)

	dst := h.Alloc(src.typ, n)
	obj := &h.objects[dst-1]
	copy(obj.ints, h.objects[ref-1].ints)
	copy(obj.reals, h.objects[ref-1].reals)
	copy(obj.lgls, h.objects[ref-1].lgls)
	copy(obj.strs, h.objects[ref-1].strs)
	copy(obj.refs, h.objects[ref-1].refs)
	obj.attrs = append([]attribute(nil), h.objects[ref-1].attrs...)
	return dst
}

// NullRef implements hostapi.API.
func (h *Host) NullRef() hostapi.Ref {
	return h.nullRef
}

// TypeOf implements hostapi.API.
func (h *Host) TypeOf(ref hostapi.Ref) hostapi.Type {
	return h.lookup(ref).typ
}

// Length implements hostapi.API.
func (h *Host) Length(ref hostapi.Ref) int {
	return h.payloadLen(h.lookup(ref))
}

// IntElt implements hostapi.API.
func (h *Host) IntElt(ref hostapi.Ref, i int) int32 {
	return h.lookupTyped(ref, hostapi.TypeInteger, i).ints[i]
}

// SetIntElt implements hostapi.API.
func (h *Host) SetIntElt(ref hostapi.Ref, i int, v int32) {
	h.lookupTyped(ref, hostapi.TypeInteger, i).ints[i] = v
}

// RealElt implements hostapi.API.
func (h *Host) RealElt(ref hostapi.Ref, i int) float64 {
	return h.lookupTyped(ref, hostapi.TypeReal, i).reals[i]
}

// SetRealElt implements hostapi.API.
func (h *Host) SetRealElt(ref hostapi.Ref, i int, v float64) {
	h.lookupTyped(ref, hostapi.TypeReal, i).reals[i] = v
}

// LglElt implements hostapi.API.
func (h *Host) LglElt(ref hostapi.Ref, i int) hostapi.Logical {
	return h.lookupTyped(ref, hostapi.TypeLogical, i).lgls[i]
}

// SetLglElt implements hostapi.API.
func (h *Host) SetLglElt(ref hostapi.Ref, i int, v hostapi.Logical) {
	h.lookupTyped(ref, hostapi.TypeLogical, i).lgls[i] = v
}

// StrElt implements hostapi.API.
func (h *Host) StrElt(ref hostapi.Ref, i int) string {
	return h.lookupTyped(ref, hostapi.TypeString, i).strs[i]
}

// SetStrElt implements hostapi.API.
func (h *Host) SetStrElt(ref hostapi.Ref, i int, v string) {
	h.lookupTyped(ref, hostapi.TypeString, i).strs[i] = v
}

// ListElt implements hostapi.API.
func (h *Host) ListElt(ref hostapi.Ref, i int) hostapi.Ref {
	return h.lookupTyped(ref, hostapi.TypeList, i).refs[i]
}

// SetListElt implements hostapi.API.
func (h *Host) SetListElt(ref hostapi.Ref, i int, v hostapi.Ref) {
	h.lookup(v)
	h.lookupTyped(ref, hostapi.TypeList, i).refs[i] = v
}

// Attr implements hostapi.API.
func (h *Host) Attr(ref hostapi.Ref, name string) hostapi.Ref {
	obj := h.lookup(ref)
	for _, a := range obj.attrs {
		if a.name == name {
			return a.value
		}
	}
	return h.nullRef
}

// SetAttr implements hostapi.API. Setting the null reference clears.
func (h *Host) SetAttr(ref hostapi.Ref, name string, value hostapi.Ref) {
	h.lookup(value)
	obj := h.lookup(ref)

	if value == h.nullRef {
		for i, a := range obj.attrs {
			if a.name == name {
				obj.attrs = append(obj.attrs[:i], obj.attrs[i+1:]...)
				return
			}
		}
		return
	}

	for i, a := range obj.attrs {
		if a.name == name {
			obj.attrs[i].value = value
			return
		}
	}
	obj.attrs = append(obj.attrs, attribute{name: name, value: value})
}

// AddRoot implements hostapi.API.
func (h *Host) AddRoot(rs hostapi.RootSet) {
	h.roots = append(h.roots, rs)
}

// RemoveRoot implements hostapi.API.
func (h *Host) RemoveRoot(rs hostapi.RootSet) {
	for i, r := range h.roots {
		if r == rs {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}

// Raise implements hostapi.API. It never returns.
func (h *Host) Raise(msg string) {
	(&hostapi.Signal{Msg: msg}).Raise()
}

// Sentinels implements hostapi.API.
func (h *Host) Sentinels() hostapi.Sentinels {
	return h.cfg.sentinels
}

// FailAllocs makes the next n allocations raise an OOM signal. Test hook
// for exercising allocation-failure paths.
func (h *Host) FailAllocs(n int) {
	h.failNext = n
}

// SetInterruptCheck installs fn; when it reports true, the next host call
// that observes interrupts raises an ordinary host error signal.
func (h *Host) SetInterruptCheck(fn func() bool) {
	h.interrupt = fn
}

func (h *Host) checkInterrupt() {
	if h.interrupt != nil && h.interrupt() {
		h.Raise("interrupted")
	}
}

// LiveObjects returns the number of valid objects, excluding the null
// object.
func (h *Host) LiveObjects() int {
	count := 0
	for i := range h.objects {
		if h.objects[i].valid {
			count++
		}
	}
	return count - 1
}

var _ hostapi.API = (*Host)(nil)
