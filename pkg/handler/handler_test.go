package handler

import (
	"testing"

	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/normalizer"
)

func acceptAll(ua string, ctx *classifier.Context) bool { return true }

// TestHandlerExactRecall verifies that every UA fed through Filter is
// recalled to its own id on Match, unchanged by the normalizer pipeline
// in between.
func TestHandlerExactRecall(t *testing.T) {
	h := NewHandler("Test", acceptAll, normalizer.New())

	uas := map[string]deviceid.ID{
		"Mozilla/5.0 (A) Foo/1.0": "foo_one",
		"Mozilla/5.0 (B) Bar/2.0": "bar_two",
		"Mozilla/5.0 (C) Baz/3.0": "baz_three",
	}

	for ua, id := range uas {
		h.Filter(ua, id, classifier.New(ua))
	}
	h.Seal()

	for ua, id := range uas {
		if got := h.Match(ua, classifier.New(ua)); got != id {
			t.Fatalf("Match(%q) = %q, want %q", ua, got, id)
		}
	}
}

// TestHandlerMatchIsDeterministic checks that repeated Match calls for the
// same UA always return the same id.
func TestHandlerMatchIsDeterministic(t *testing.T) {
	h := NewHandler("Test", acceptAll, normalizer.New())
	h.Filter("Mozilla/5.0 Foo/9.0", "foo_nine", classifier.New("Mozilla/5.0 Foo/9.0"))
	h.Seal()

	first := h.Match("Mozilla/5.0 Foo/9.0", classifier.New("Mozilla/5.0 Foo/9.0"))
	for i := 0; i < 5; i++ {
		if got := h.Match("Mozilla/5.0 Foo/9.0", classifier.New("Mozilla/5.0 Foo/9.0")); got != first {
			t.Fatalf("Match is not deterministic: run %d got %q, first was %q", i, got, first)
		}
	}
}

// TestHandlerSortedKeysIsOrderedAndMemoized confirms SortedKeys returns an
// ascending view and that it is rebuilt after new entries are filtered in.
func TestHandlerSortedKeysIsOrderedAndMemoized(t *testing.T) {
	h := NewHandler("Test", acceptAll, normalizer.New())
	h.Filter("zzz/1.0", "z", classifier.New("zzz/1.0"))
	h.Filter("aaa/1.0", "a", classifier.New("aaa/1.0"))

	keys := h.SortedKeys()
	if len(keys) != 2 || keys[0] != "aaa/1.0" || keys[1] != "zzz/1.0" {
		t.Fatalf("expected sorted keys [aaa/1.0 zzz/1.0], got %v", keys)
	}

	h.Filter("mmm/1.0", "m", classifier.New("mmm/1.0"))
	keys = h.SortedKeys()
	if len(keys) != 3 || keys[1] != "mmm/1.0" {
		t.Fatalf("expected sorted keys to include new entry in order, got %v", keys)
	}
}

// TestHandlerFiltersToNextOnReject confirms a handler that rejects a UA
// forwards it down the chain rather than swallowing it.
func TestHandlerFiltersToNextOnReject(t *testing.T) {
	reject := func(ua string, ctx *classifier.Context) bool { return false }
	first := NewHandler("First", reject, normalizer.New())
	second := NewHandler("Second", acceptAll, normalizer.New())
	first.Next = second

	first.Filter("Mozilla/5.0 Foo/1.0", "foo", classifier.New("Mozilla/5.0 Foo/1.0"))
	second.Seal()

	if got := second.Match("Mozilla/5.0 Foo/1.0", classifier.New("Mozilla/5.0 Foo/1.0")); got != "foo" {
		t.Fatalf("expected second handler to own the forwarded UA, got %q", got)
	}
	if len(first.SortedKeys()) != 0 {
		t.Fatalf("rejecting handler should not have recorded the UA, got keys %v", first.SortedKeys())
	}
}

// TestHandlerNoMatchAtChainEnd confirms a handler with no Next and a
// rejecting CanHandle returns NoMatch rather than panicking.
func TestHandlerNoMatchAtChainEnd(t *testing.T) {
	reject := func(ua string, ctx *classifier.Context) bool { return false }
	h := NewHandler("Dead end", reject, normalizer.New())
	if got := h.Match("anything", classifier.New("anything")); got != deviceid.NoMatch {
		t.Fatalf("expected NoMatch at an exhausted chain, got %q", got)
	}
}

// TestHandlerRecoveryFallsBackToDefaultWhenIDInvalid confirms a Recovery
// result outside ConstantIDs is replaced by Default rather than trusted.
func TestHandlerRecoveryFallsBackToDefaultWhenIDInvalid(t *testing.T) {
	h := NewHandler("Test", acceptAll, normalizer.New())
	h.Recovery = func(h *Handler, ua string, ctx *classifier.Context) deviceid.ID {
		return "not_a_real_id"
	}
	h.ConstantIDs = map[deviceid.ID]bool{"some_real_id": true}
	h.Default = "some_real_id"
	h.Seal()

	got := h.Match("totally unknown ua", classifier.New("totally unknown ua"))
	if got != "some_real_id" {
		t.Fatalf("expected recovered id outside ConstantIDs to fall back to Default, got %q", got)
	}
}

// TestHandlerConclusiveMatchUsesFirstSlashTolerance exercises the default
// conclusive tier against a near-miss UA that should still resolve via
// RIS tolerance bounded by the first '/'.
func TestHandlerConclusiveMatchUsesFirstSlashTolerance(t *testing.T) {
	h := NewHandler("Test", acceptAll, normalizer.New())
	h.Filter("Foo/1.0.0.0", "foo_exact", classifier.New("Foo/1.0.0.0"))
	h.Seal()

	got := h.Match("Foo/1.0.0.9", classifier.New("Foo/1.0.0.9"))
	if got != "foo_exact" {
		t.Fatalf("expected RIS tolerance to recover a near-miss trailing difference, got %q", got)
	}
}

// TestHandlerCatchAllAlwaysAccepts asserts the catch-all handler's
// CanHandle accepts any UA, the partitioning invariant's terminal case.
func TestHandlerCatchAllAlwaysAccepts(t *testing.T) {
	ca := newCatchAllHandler()
	if !ca.CanHandle("literally anything at all", classifier.New("literally anything at all")) {
		t.Fatalf("CatchAll handler must accept every UA")
	}
}

func TestIndexOfOrLength(t *testing.T) {
	cases := []struct {
		s, target string
		from, want int
	}{
		{"Foo/1.0", "/", 0, 3},
		{"Foo1.0", "/", 0, 6},
		{"Foo/1.0/2.0", "/", 4, 7},
		{"Foo/1.0", "/", 10, 7},
	}
	for _, c := range cases {
		if got := IndexOfOrLength(c.s, c.target, c.from); got != c.want {
			t.Fatalf("IndexOfOrLength(%q, %q, %d) = %d, want %d", c.s, c.target, c.from, got, c.want)
		}
	}
}

func TestIndexOfAnyOrLength(t *testing.T) {
	got := IndexOfAnyOrLength("Foo/1.0-beta", []string{"-", "/"}, 0)
	if got != 3 {
		t.Fatalf("expected earliest match among targets at index 3, got %d", got)
	}
	got = IndexOfAnyOrLength("Foo1.0", []string{"-", "/"}, 0)
	if got != len("Foo1.0") {
		t.Fatalf("expected length fallback when no target occurs, got %d", got)
	}
}
