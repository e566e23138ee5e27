package protect

import (
	"math/rand"
	"testing"

	"github.com/wippyai/host-bridge/hostapi"
)

func TestRegistry_InsertRemove(t *testing.T) {
	reg := NewRegistry()

	if reg.Size() != 0 {
		t.Fatal("new registry must be empty")
	}

	n := reg.Insert(hostapi.Ref(7))
	if reg.Size() != 1 {
		t.Fatalf("size after insert: %d", reg.Size())
	}
	if n.Ref() != 7 {
		t.Fatalf("node ref: %d", n.Ref())
	}

	reg.Remove(n)
	if reg.Size() != 0 {
		t.Fatalf("size after remove: %d", reg.Size())
	}
}

func TestRegistry_NetZeroRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(hostapi.Ref(1)) // pre-existing entry

	before := reg.Size()
	for ref := hostapi.Ref(10); ref < 20; ref++ {
		n := reg.Insert(ref)
		reg.Remove(n)
	}
	if reg.Size() != before {
		t.Fatalf("round trips changed size: %d != %d", reg.Size(), before)
	}
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	n := reg.Insert(hostapi.Ref(3))

	reg.Remove(n)
	reg.Remove(n)
	reg.Remove(nil)

	if reg.Size() != 0 {
		t.Fatalf("size: %d", reg.Size())
	}
}

func TestRegistry_ArbitraryRemovalOrder(t *testing.T) {
	// Unwinding destroys handles in arbitrary order; the list must stay
	// consistent no matter which node goes first.
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(42))

	nodes := make([]*Node, 100)
	for i := range nodes {
		nodes[i] = reg.Insert(hostapi.Ref(i + 1))
	}

	rng.Shuffle(len(nodes), func(i, j int) {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	})

	for i, n := range nodes {
		reg.Remove(n)
		if reg.Size() != len(nodes)-i-1 {
			t.Fatalf("size after %d removals: %d", i+1, reg.Size())
		}
	}
}

func TestRegistry_EachRootOrder(t *testing.T) {
	reg := NewRegistry()
	want := []hostapi.Ref{4, 5, 6}
	for _, ref := range want {
		reg.Insert(ref)
	}

	var got []hostapi.Ref
	reg.EachRoot(func(r hostapi.Ref) bool {
		got = append(got, r)
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("walked %d roots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("root %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRegistry_EachRootEarlyStop(t *testing.T) {
	reg := NewRegistry()
	for i := 1; i <= 5; i++ {
		reg.Insert(hostapi.Ref(i))
	}

	count := 0
	reg.EachRoot(func(hostapi.Ref) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("walk did not stop early: %d", count)
	}
}

func TestRegistry_SameRefTwice(t *testing.T) {
	reg := NewRegistry()
	a := reg.Insert(hostapi.Ref(9))
	b := reg.Insert(hostapi.Ref(9))

	if reg.Size() != 2 {
		t.Fatal("two registrations of one ref must be two nodes")
	}
	reg.Remove(a)
	if reg.Size() != 1 {
		t.Fatal("removing one node must leave the other")
	}
	seen := false
	reg.EachRoot(func(r hostapi.Ref) bool {
		seen = r == 9
		return false
	})
	if !seen {
		t.Fatal("remaining node must still root ref 9")
	}
	reg.Remove(b)
}

func TestGlobal(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	a := Global()
	b := Global()
	if a != b {
		t.Fatal("Global must return the same instance")
	}

	a.Insert(hostapi.Ref(1))
	ResetGlobal()
	if Global().Size() != 0 {
		t.Fatal("ResetGlobal must produce a fresh registry")
	}
}
