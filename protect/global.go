package protect

import "sync"

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the process-wide registry, created on first use. A single
// instance serves the process lifetime because the call model is one
// logical stack; no locking guards the list itself.
func Global() *Registry {
	globalOnce.Do(func() {
		if global == nil {
			global = NewRegistry()
		}
	})
	return global
}

// ResetGlobal tears down the process-wide registry and lets the next
// Global call build a fresh one. Intended for module unload and tests.
func ResetGlobal() {
	global = nil
	globalOnce = sync.Once{}
}
