package tests

import (
	"sort"
	"testing"

	"github.com/aretw0/devconsole/pkg/ports"
)

// IDSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.IDSource.
// want is the set of ids the adapter was seeded with.
func IDSourceContractTest(t *testing.T, src ports.IDSource, want []string) {
	t.Helper()

	// 1. Test IDs (content)
	t.Run("IDs_Content", func(t *testing.T) {
		got := sorted(src.IDs())
		expected := sorted(want)
		if len(got) != len(expected) {
			t.Fatalf("expected %d ids, got %d (%v)", len(expected), len(got), got)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("id mismatch at %d. got %q, want %q", i, got[i], expected[i])
			}
		}
	})

	// 2. Test IDs (fresh slice per call)
	t.Run("IDs_FreshSlice", func(t *testing.T) {
		first := src.IDs()
		if len(first) == 0 {
			t.Skip("source is empty")
		}
		first[0] = "mutated-by-caller"
		for _, id := range src.IDs() {
			if id == "mutated-by-caller" {
				t.Fatal("source returned a slice shared with a previous call")
			}
		}
	})
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
