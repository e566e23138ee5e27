package main

import (
	"fmt"
	"strings"

	hostbridge "github.com/wippyai/host-bridge"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/proxy"
)

// registerDemoFuncs wires a small native function set covering every value
// shape the binder supports.
func registerDemoFuncs(b *hostbridge.Bridge) {
	b.Funcs.MustRegister("add", func(x, y int32) int32 {
		return x + y
	})

	b.Funcs.MustRegister("sum", func(xs *proxy.Vector[float64]) float64 {
		var total float64
		for v := range xs.Values() {
			total += v
		}
		return total
	})

	b.Funcs.MustRegister("seq-len", func(n int32) (hostapi.Ref, error) {
		if n < 0 {
			return hostapi.Invalid, fmt.Errorf("length cannot be negative")
		}
		w, err := proxy.NewWritableInts(b.API, b.Protect, 0)
		if err != nil {
			return hostapi.Invalid, err
		}
		defer w.Release()
		for i := int32(1); i <= n; i++ {
			if err := w.Push(i); err != nil {
				return hostapi.Invalid, err
			}
		}
		return w.AsRef()
	})

	b.Funcs.MustRegister("paste", func(xs *proxy.Vector[string], sep string) (string, error) {
		parts := make([]string, 0, xs.Len())
		for i := 0; i < xs.Len(); i++ {
			v, err := xs.At(i)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		}
		return strings.Join(parts, sep), nil
	})

	b.Funcs.MustRegister("any-missing", func(xs *proxy.Vector[int32]) (hostapi.Logical, error) {
		for i := 0; i < xs.Len(); i++ {
			na, err := xs.IsNA(i)
			if err != nil {
				return hostapi.False, err
			}
			if na {
				return hostapi.True, nil
			}
		}
		return hostapi.False, nil
	})

	b.Funcs.MustRegister("divide", func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return x / y, nil
	})

	b.Funcs.MustRegister("frame", func(labels *proxy.Vector[string], values *proxy.Vector[float64]) (hostapi.Ref, error) {
		df, err := proxy.NewWritableDataFrame(b.API, b.Protect,
			[]string{"label", "value"},
			[]hostapi.Ref{labels.Ref(), values.Ref()},
		)
		if err != nil {
			return hostapi.Invalid, err
		}
		defer df.Release()
		return df.Ref(), nil
	})
}
