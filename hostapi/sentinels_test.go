package hostapi

import (
	"math"
	"testing"
)

func TestDefaultSentinels(t *testing.T) {
	s := Default()

	if s.Integer != math.MinInt32 {
		t.Fatalf("integer sentinel: got %d", s.Integer)
	}
	if s.Logical != Logical(math.MinInt32) {
		t.Fatalf("logical sentinel: got %d", s.Logical)
	}
	if s.NARealBits() != 0x7FF00000000007A2 {
		t.Fatalf("real sentinel bits: got %#x", s.NARealBits())
	}
}

func TestIsNAReal_ExactBitPattern(t *testing.T) {
	s := Default()

	if !s.IsNAReal(s.NAReal()) {
		t.Fatal("NAReal must match itself")
	}
	if s.IsNAReal(math.NaN()) {
		t.Fatal("ordinary NaN must not be missing")
	}
	if s.IsNAReal(0.0) || s.IsNAReal(math.Inf(1)) {
		t.Fatal("finite/inf values must not be missing")
	}
	if !math.IsNaN(s.NAReal()) {
		t.Fatal("missing real must still be a NaN")
	}
}

func TestCustomPayload(t *testing.T) {
	s := Default()
	s.RealPayload = 7

	if s.IsNAReal(Default().NAReal()) {
		t.Fatal("payload change must change the bit pattern")
	}
	if !s.IsNAReal(math.Float64frombits(0x7FF0000000000007)) {
		t.Fatal("custom payload not honored")
	}
}

func TestTypeString(t *testing.T) {
	names := map[Type]string{
		TypeNull:    "null",
		TypeLogical: "logical",
		TypeInteger: "integer",
		TypeReal:    "real",
		TypeString:  "string",
		TypeList:    "list",
	}
	for typ, want := range names {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
