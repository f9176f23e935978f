package browse

import (
	"testing"

	"pgregory.net/rapid"
)

func TestLocateFindsSlug(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "c"})

	if got := n.Locate("b"); got != 1 {
		t.Fatalf("Locate = %d, want 1", got)
	}
	if !n.CanPrev() || !n.CanNext() {
		t.Error("middle position should navigate both ways")
	}
}

func TestNavigationEnablementAtBounds(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "c"})

	n.Locate("a")
	if n.CanPrev() {
		t.Error("CanPrev at index 0")
	}
	if next, ok := n.Next(); !ok || next != "b" {
		t.Errorf("Next = %q, %v", next, ok)
	}

	n.Locate("c")
	if n.CanNext() {
		t.Error("CanNext at the last index")
	}
	if prev, ok := n.Prev(); !ok || prev != "b" {
		t.Errorf("Prev = %q, %v", prev, ok)
	}
}

func TestEmptySequenceNavigatesNowhere(t *testing.T) {
	var n Navigator
	if n.CanNext() || n.CanPrev() {
		t.Error("empty navigator claims neighbors")
	}
	if _, ok := n.Next(); ok {
		t.Error("Next on empty sequence")
	}
	if _, ok := n.Prev(); ok {
		t.Error("Prev on empty sequence")
	}
}

func TestSingleItemSequence(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"only"})
	n.Locate("only")
	if n.CanNext() || n.CanPrev() {
		t.Error("single-item sequence should navigate nowhere")
	}
}

func TestAbsentSlugRetainsLastKnownIndex(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "x", "d", "e"})
	if got := n.Locate("x"); got != 2 {
		t.Fatalf("Locate = %d, want 2", got)
	}

	// The collection is refetched and "x" is gone. The index must stay
	// put rather than reset, so the displayed item does not jump.
	n.SetSequence([]string{"a", "b", "d", "e"})
	if got := n.Locate("x"); got != 2 {
		t.Fatalf("index after refetch = %d, want 2", got)
	}
	if n.Index() != 2 {
		t.Fatalf("Index = %d, want 2", n.Index())
	}

	// Neighbors come from the retained position in the new sequence.
	prev, next := n.Neighbors()
	if prev != "b" || next != "e" {
		t.Errorf("Neighbors = %q, %q", prev, next)
	}
}

func TestSequenceShrinkClampsIndex(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "c", "d"})
	n.Locate("d")

	n.SetSequence([]string{"a", "b"})
	if n.Index() != 1 {
		t.Fatalf("Index after shrink = %d, want 1", n.Index())
	}
	if n.CanNext() {
		t.Error("CanNext past the shrunken end")
	}
}

func TestResetClearsPosition(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "c"})
	n.Locate("c")
	n.Reset()

	if n.Len() != 0 || n.Index() != 0 {
		t.Errorf("after Reset: len=%d index=%d", n.Len(), n.Index())
	}
}

func TestNeighborsAtEdges(t *testing.T) {
	var n Navigator
	n.SetSequence([]string{"a", "b", "c"})

	n.Locate("a")
	prev, next := n.Neighbors()
	if prev != "" || next != "b" {
		t.Errorf("at start: %q, %q", prev, next)
	}

	n.Locate("c")
	prev, next = n.Neighbors()
	if prev != "b" || next != "" {
		t.Errorf("at end: %q, %q", prev, next)
	}
}

// The index is always a valid position, and enablement agrees with the
// boundary conditions, no matter how the sequence churns.
func TestPropNavigatorInvariants(t *testing.T) {
	slugGen := rapid.StringMatching(`[a-z]{1,4}`)

	rapid.Check(t, func(t *rapid.T) {
		var n Navigator
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				n.SetSequence(rapid.SliceOfN(slugGen, 0, 8).Draw(t, "seq"))
			case 1:
				n.Locate(slugGen.Draw(t, "slug"))
			case 2:
				n.Reset()
			}

			idx, l := n.Index(), n.Len()
			if idx < 0 || (l > 0 && idx >= l) || (l == 0 && idx != 0) {
				t.Fatalf("index %d invalid for length %d", idx, l)
			}
			if n.CanNext() != (idx < l-1) {
				t.Fatalf("CanNext inconsistent: index %d, len %d", idx, l)
			}
			if n.CanPrev() != (idx > 0) {
				t.Fatalf("CanPrev inconsistent: index %d, len %d", idx, l)
			}
		}
	})
}
