package hostapi

import "math"

// Sentinels is the configuration table of missing-value encodings.
//
// The exact bit patterns are host-specific: a reimplementation that must
// stay wire-compatible with a given host supplies its own table instead of
// hard-coding the defaults. Default matches the common numeric conventions
// of statistical hosts: integer and logical missing are the minimum int32,
// and the real missing value is a NaN with a recognizable mantissa payload.
type Sentinels struct {
	Integer int32
	Logical Logical
	// RealPayload is the low 32 bits of the missing-real NaN.
	RealPayload uint32
	// String is the distinguished missing string value. The default keeps
	// a NUL marker so ordinary data cannot collide with it.
	String string
}

// DefaultRealPayload is the historical NaN payload (the year 1954).
const DefaultRealPayload uint32 = 1954

// Default returns the default sentinel table.
func Default() Sentinels {
	return Sentinels{
		Integer:     math.MinInt32,
		Logical:     Logical(math.MinInt32),
		RealPayload: DefaultRealPayload,
		String:      "\x00NA\x00",
	}
}

// NARealBits returns the exact bit pattern of the missing real value.
func (s Sentinels) NARealBits() uint64 {
	return 0x7FF0000000000000 | uint64(s.RealPayload)
}

// NAReal returns the missing real value.
func (s Sentinels) NAReal() float64 {
	return math.Float64frombits(s.NARealBits())
}

// IsNAReal reports whether v is the missing real value. Only the exact bit
// pattern counts: other NaNs are ordinary not-a-number data.
func (s Sentinels) IsNAReal(v float64) bool {
	return math.Float64bits(v) == s.NARealBits()
}

// IsNAInt reports whether v is the missing integer value.
func (s Sentinels) IsNAInt(v int32) bool {
	return v == s.Integer
}

// IsNALogical reports whether v is the missing logical value.
func (s Sentinels) IsNALogical(v Logical) bool {
	return v == s.Logical
}

// IsNAString reports whether v is the missing string value.
func (s Sentinels) IsNAString(v string) bool {
	return v == s.String
}
