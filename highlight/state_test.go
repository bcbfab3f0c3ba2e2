package highlight

import (
	"testing"

	"github.com/dpinela/relight/grammar"
	"pgregory.net/rapid"
)

func TestPackStateRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		obs := rapid.IntRange(0, observableMask).Draw(t, "obs")
		depth := rapid.IntRange(0, 1<<20).Draw(t, "depth")
		bits := packState(obs, depth)
		if bits < 0 {
			t.Fatalf("packState(%d, %d) = %d, negative", obs, depth, bits)
		}
		if got := observableState(bits); got != obs {
			t.Fatalf("observableState(packState(%d, %d)) = %d", obs, depth, got)
		}
		if got := regionDepth(bits); got != depth {
			t.Fatalf("regionDepth(packState(%d, %d)) = %d", obs, depth, got)
		}
	})
}

func TestPackStateClampsDepth(t *testing.T) {
	if got := regionDepth(packState(stateDefault, -5)); got != 0 {
		t.Errorf("negative depth packed as %d", got)
	}
	if got := regionDepth(packState(stateDefault, maxRegionDepth+1)); got != maxRegionDepth {
		t.Errorf("overlarge depth packed as %d, want %d", got, maxRegionDepth)
	}
}

func TestUnsetSlotReadsAsDefault(t *testing.T) {
	if observableState(-1) != stateDefault || regionDepth(-1) != 0 {
		t.Error("a negative stored slot does not read as (Default, 0)")
	}
}

// fakeStack builds a context stack from bare names; captures mark dynamic
// entries.
func fakeStack(names []string, captures map[int][]string) contextStack {
	st := make(contextStack, len(names))
	for i, n := range names {
		st[i] = stackEntry{ctx: &grammar.Context{Name: n}, captures: captures[i]}
	}
	return st
}

func TestInternInjectivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sess := newSession()
		nameGen := rapid.SampledFrom([]string{"Normal", "String", "Comment", "Tag"})
		seen := map[string]int{}
		n := rapid.IntRange(1, 40).Draw(t, "n")
		for i := 0; i < n; i++ {
			names := rapid.SliceOfN(nameGen, 2, 5).Draw(t, "names")
			st := fakeStack(names, nil)
			k := sess.intern(st)
			if k < statePersistentStart {
				t.Fatalf("persistent key %d below the start of the range", k)
			}
			if prev, ok := seen[st.key()]; ok {
				if prev != k {
					t.Fatalf("sequence %q interned twice: %d and %d", st.key(), prev, k)
				}
			} else {
				for s, other := range seen {
					if other == k {
						t.Fatalf("sequences %q and %q share key %d", s, st.key(), k)
					}
				}
				seen[st.key()] = k
			}
		}
		if len(sess.stacks) != len(seen) {
			t.Fatalf("reverse table has %d entries, want %d", len(sess.stacks), len(seen))
		}
	})
}

func TestInternDistinguishesCaptures(t *testing.T) {
	sess := newSession()
	a := sess.intern(fakeStack([]string{"Normal", "Tag"}, map[int][]string{1: {"div"}}))
	b := sess.intern(fakeStack([]string{"Normal", "Tag"}, map[int][]string{1: {"span"}}))
	c := sess.intern(fakeStack([]string{"Normal", "Tag"}, map[int][]string{1: {"div"}}))
	if a == b {
		t.Error("different captures interned to the same key")
	}
	if a != c {
		t.Error("equal captures interned to different keys")
	}
	st, ok := sess.lookup(a)
	if !ok {
		t.Fatal("interned key not found in the reverse table")
	}
	if got := st[1].captures[0]; got != "div" {
		t.Errorf("reverse table lost the capture: %q", got)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	sess := newSession()
	if _, ok := sess.lookup(17); ok {
		t.Error("lookup of a never-assigned key succeeded")
	}
}

func TestLookupReturnsACopy(t *testing.T) {
	sess := newSession()
	k := sess.intern(fakeStack([]string{"Normal", "String"}, nil))
	st, _ := sess.lookup(k)
	st[1] = stackEntry{ctx: &grammar.Context{Name: "Clobbered"}}
	st2, _ := sess.lookup(k)
	if st2[1].ctx.Name != "String" {
		t.Error("mutating a lookup result corrupted the intern table")
	}
}
