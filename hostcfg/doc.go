// Package hostcfg loads the declarative host configuration: collector
// tuning and the missing-value sentinel table, in HCL.
//
// A complete file:
//
//	host {
//	  gc_every    = 64
//	  max_objects = 100000
//	}
//
//	sentinels {
//	  integer      = min_int32
//	  logical      = min_int32
//	  real_payload = default_real_payload
//	  string       = "<na>"
//	}
//
// Every field is optional; unset sentinel fields keep the built-in
// defaults. The eval context provides min_int32, max_int32, and
// default_real_payload so encodings can be declared by name instead of by
// magic number.
package hostcfg
