package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseProxy,
				Kind:     KindTypeMismatch,
				Path:     []string{"df", "col", "x"},
				GoType:   "int32",
				HostType: "real",
				Detail:   "integer view over real vector",
			},
			contains: []string{"[proxy]", "type_mismatch", "df.col.x", "int32", "real", "integer view over real vector"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseProtect,
				Kind:  KindAllocation,
			},
			contains: []string{"[protect]", "allocation"},
		},
		{
			name: "with cause",
			err: &Error{
				Phase:  PhaseBoundary,
				Kind:   KindNativeError,
				Detail: "argument check failed",
				Cause:  errors.New("boom"),
			},
			contains: []string{"[boundary]", "native_error", "argument check failed", "caused by: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error message %q missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := HostError("object 'x' not found")

	if !errors.Is(err, &Error{Phase: PhaseHost, Kind: KindHostError}) {
		t.Error("expected Is to match on phase+kind")
	}
	if errors.Is(err, &Error{Phase: PhaseHost, Kind: KindAllocation}) {
		t.Error("expected Is to reject different kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Native(cause)

	if !errors.Is(err, cause) {
		t.Error("expected Unwrap chain to reach cause")
	}
}

func TestError_Message(t *testing.T) {
	if got := HostError("bad things").Message(); got != "bad things" {
		t.Fatalf("expected verbatim message, got %q", got)
	}

	cause := errors.New("wrapped text")
	err := &Error{Phase: PhaseBoundary, Kind: KindNativeError, Cause: cause}
	if got := err.Message(); got != "wrapped text" {
		t.Fatalf("expected cause text, got %q", got)
	}
}

func TestOutOfBounds(t *testing.T) {
	err := OutOfBounds(PhaseProxy, nil, 3, 3)

	if err.Kind != KindOutOfBounds {
		t.Fatalf("wrong kind: %s", err.Kind)
	}
	if !strings.Contains(err.Error(), "index 3 out of bounds (length 3)") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if err.Value != 3 {
		t.Fatalf("expected offending index in Value, got %v", err.Value)
	}
}

func TestAllocationFailed(t *testing.T) {
	err := AllocationFailed(PhaseProxy, "integer", 1024)

	if err.Kind != KindAllocation {
		t.Fatalf("wrong kind: %s", err.Kind)
	}
	if !strings.Contains(err.Error(), "integer") || !strings.Contains(err.Error(), "1024") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBind, KindRegistration).
		Path("fns", "sum").
		GoType("func(int) int").
		Detail("arity %d not supported", 9).
		Cause(cause).
		Build()

	if err.Phase != PhaseBind || err.Kind != KindRegistration {
		t.Fatal("builder lost phase/kind")
	}
	if err.Detail != "arity 9 not supported" {
		t.Fatalf("detail formatting broken: %q", err.Detail)
	}
	if err.Cause != cause {
		t.Fatal("builder lost cause")
	}
}
