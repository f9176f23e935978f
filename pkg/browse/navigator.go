package browse

// Navigator tracks sequential position within the full unfiltered slug
// sequence of the active entity. Position is keyed by slug identity, never
// by raw index, so the route stays the source of truth; stepping returns
// the neighbor's slug for the caller to navigate to.
type Navigator struct {
	slugs []string
	index int
}

// SetSequence replaces the ordered slug sequence. The current index is
// clamped into the new bounds; relocating the displayed slug is the
// caller's job via Locate.
func (n *Navigator) SetSequence(slugs []string) {
	n.slugs = slugs
	if n.index >= len(slugs) {
		n.index = len(slugs) - 1
	}
	if n.index < 0 {
		n.index = 0
	}
}

// Locate positions the navigator at the given slug and returns the index.
// When the slug is absent from the sequence — typically because a refetch
// excluded the currently displayed item — the last known valid index is
// retained rather than resetting, so the surface does not jump.
func (n *Navigator) Locate(slug string) int {
	for i, s := range n.slugs {
		if s == slug {
			n.index = i
			return i
		}
	}
	return n.index
}

// Index returns the current position.
func (n *Navigator) Index() int { return n.index }

// Len returns the sequence length.
func (n *Navigator) Len() int { return len(n.slugs) }

// Reset returns the navigator to the start of an empty sequence. Used on
// tab switches, where the position of one entity must not leak into the
// other.
func (n *Navigator) Reset() {
	n.slugs = nil
	n.index = 0
}

// CanNext reports whether a following item exists.
func (n *Navigator) CanNext() bool {
	return n.index >= 0 && n.index < len(n.slugs)-1
}

// CanPrev reports whether a preceding item exists.
func (n *Navigator) CanPrev() bool {
	return n.index > 0 && len(n.slugs) > 0
}

// Next returns the slug after the current position without moving; the
// caller navigates to it, and Locate commits the move.
func (n *Navigator) Next() (string, bool) {
	if !n.CanNext() {
		return "", false
	}
	return n.slugs[n.index+1], true
}

// Prev returns the slug before the current position without moving.
func (n *Navigator) Prev() (string, bool) {
	if !n.CanPrev() {
		return "", false
	}
	return n.slugs[n.index-1], true
}

// Neighbors returns the prefetch targets around the current position:
// the immediate previous and next slugs, either possibly empty.
func (n *Navigator) Neighbors() (prev, next string) {
	if p, ok := n.Prev(); ok {
		prev = p
	}
	if nx, ok := n.Next(); ok {
		next = nx
	}
	return prev, next
}
