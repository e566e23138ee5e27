package memhost

import (
	"go.uber.org/zap"

	"github.com/wippyai/host-bridge/hostapi"
)

// GC runs a full mark-and-sweep collection and returns the number of
// objects reclaimed. Roots are the registered root sets; reachability
// follows list elements and attribute values.
func (h *Host) GC() int {
	for i := range h.objects {
		h.objects[i].mark = false
	}

	h.markRef(h.nullRef)
	for _, rs := range h.roots {
		rs.EachRoot(func(ref hostapi.Ref) bool {
			h.markRef(ref)
			return true
		})
	}

	swept := 0
	for i := range h.objects {
		obj := &h.objects[i]
		if obj.valid && !obj.mark {
			*obj = object{}
			h.freeList = append(h.freeList, hostapi.Ref(i+1))
			swept++
		}
	}

	h.collected += swept
	h.log.Debug("collection finished",
		zap.Int("swept", swept),
		zap.Int("live", h.LiveObjects()),
	)
	return swept
}

func (h *Host) markRef(ref hostapi.Ref) {
	if ref == hostapi.Invalid || int(ref) > len(h.objects) {
		return
	}
	obj := &h.objects[ref-1]
	if !obj.valid || obj.mark {
		return
	}
	obj.mark = true

	for _, child := range obj.refs {
		h.markRef(child)
	}
	for _, a := range obj.attrs {
		h.markRef(a.value)
	}
}

// Collected returns the total number of objects reclaimed so far.
func (h *Host) Collected() int {
	return h.collected
}
