package proxy

import (
	"github.com/wippyai/host-bridge/boundary"
	"github.com/wippyai/host-bridge/errors"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/protect"
)

// ClassDataFrame is the class attribute value marking tabular lists.
const ClassDataFrame = "data.frame"

// DataFrame views a host list as a table of equal-length columns.
type DataFrame struct {
	*List
}

// NewDataFrame wraps a list reference as a data frame.
func NewDataFrame(api hostapi.API, reg *protect.Registry, ref hostapi.Ref) (*DataFrame, error) {
	l, err := NewList(api, reg, ref)
	if err != nil {
		return nil, err
	}
	return &DataFrame{List: l}, nil
}

// NRow returns the row count. The row-name attribute is authoritative:
// the compact form, an integer pair of the missing sentinel and a count
// of either sign, means abs(count) rows without materializing names; any
// other non-null row-name vector contributes its length. Without row names
// the container length decides, which makes an empty frame zero rows.
func (d *DataFrame) NRow() (int, error) {
	return boundary.Protected(func() int {
		ref := d.h.Ref()
		rn := d.api.Attr(ref, hostapi.AttrRowNames)
		if rn == d.api.NullRef() {
			return d.api.Length(ref)
		}
		if d.api.TypeOf(rn) == hostapi.TypeInteger && d.api.Length(rn) == 2 {
			first := d.api.IntElt(rn, 0)
			second := d.api.IntElt(rn, 1)
			if d.api.Sentinels().IsNAInt(first) {
				// Compact form: the second element carries the row
				// count; its sign is not significant.
				if second < 0 {
					return int(-second)
				}
				return int(second)
			}
		}
		return d.api.Length(rn)
	})
}

// NCol returns the column count.
func (d *DataFrame) NCol() int {
	return d.Len()
}

// Col returns the column reference at i.
func (d *DataFrame) Col(i int) (hostapi.Ref, error) {
	return d.At(i)
}

// ColNamed returns the column with the given name.
func (d *DataFrame) ColNamed(name string) (hostapi.Ref, error) {
	return d.Named(name)
}

// NewWritableDataFrame builds a data frame from named columns: the list
// gets the names, the data.frame class, and row names 1..n derived from
// the column length. Columns must all have the same length.
func NewWritableDataFrame(api hostapi.API, reg *protect.Registry, names []string, cols []hostapi.Ref) (*DataFrame, error) {
	if len(names) != len(cols) {
		return nil, errors.InvalidInput(errors.PhaseProxy, "column names and values differ in count")
	}

	nrow := 0
	if err := boundary.Guard(func() {
		for i, c := range cols {
			n := api.Length(c)
			if i == 0 {
				nrow = n
			} else if n != nrow {
				api.Raise("columns differ in length")
			}
		}
	}); err != nil {
		return nil, err
	}

	var h *protect.Handle
	err := boundary.Guard(func() {
		ref := api.Alloc(hostapi.TypeList, len(cols))
		h = protect.NewHandle(reg, ref)
		for i, c := range cols {
			api.SetListElt(ref, i, c)
		}

		nm := api.Alloc(hostapi.TypeString, len(names))
		for i, n := range names {
			api.SetStrElt(nm, i, n)
		}
		api.SetAttr(ref, hostapi.AttrNames, nm)

		cls := api.Alloc(hostapi.TypeString, 1)
		api.SetStrElt(cls, 0, ClassDataFrame)
		api.SetAttr(ref, hostapi.AttrClass, cls)

		rn := api.Alloc(hostapi.TypeInteger, nrow)
		for i := 0; i < nrow; i++ {
			api.SetIntElt(rn, i, int32(i+1))
		}
		api.SetAttr(ref, hostapi.AttrRowNames, rn)
	})
	if err != nil {
		if h != nil {
			h.Release()
		}
		return nil, err
	}

	nameCopy := make([]string, len(names))
	copy(nameCopy, names)
	return &DataFrame{List: &List{
		api:   api,
		reg:   reg,
		h:     h,
		n:     len(cols),
		names: nameCopy,
	}}, nil
}
