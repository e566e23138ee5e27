// Package hostbridge connects native Go code to a garbage-collected host
// runtime: protected object handles, typed vector proxies, and error
// translation at every entry point.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	hostbridge/          Root package wiring a host, registry, and functions
//	├── hostapi/         The C-shaped host surface: refs, types, sentinels
//	├── protect/         O(1) protection registry and owning handles
//	├── proxy/           Typed read-only and writable views over host objects
//	├── boundary/        Host-signal / native-error translation brackets
//	├── bind/            Native function registration and invocation
//	├── memhost/         In-process reference host with a tracing collector
//	├── hostcfg/         HCL configuration for sentinels and host tuning
//	└── errors/          Structured error types with phase and kind
//
// # Quick Start
//
//	b, err := hostbridge.New(hostcfg.Default())
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	b.Funcs.MustRegister("add", func(a, b int32) int32 { return a + b })
//	ref, sig := b.Funcs.Invoke("add", []hostapi.Ref{x, y})
//
// # Memory Model
//
// Host objects are owned by the host collector, never by Go. Native code
// keeps an object alive by holding a protect.Handle, which registers the
// reference in a circular doubly-linked root list with O(1) insert and
// remove in any order. Proxies hold a handle for exactly as long as they
// live; releasing is idempotent and safe during unwinds.
//
// # Error Model
//
// The host reports failure by raising a signal that unwinds the native
// stack as a panic; boundary.Guard converts it into an ordinary error, and
// boundary.Call converts escaping errors back into host signals at the
// entry point. Messages cross the boundary verbatim in both directions.
package hostbridge
