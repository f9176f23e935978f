// Package browse implements the navigation core of the directory client:
// the tagged browse-surface state machine, the route codec, the sequential
// detail navigator, and the embedded-project cross filter. Everything here
// is synchronous and side-effect free; transitions describe their side
// effects as hints for the shell to execute.
package browse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vanderheijden86/guildview/pkg/filter"
)

// Entity selects which collection a browse surface shows.
type Entity int

const (
	People Entity = iota
	Projects
)

// String returns the route prefix spelling.
func (e Entity) String() string {
	if e == Projects {
		return "projects"
	}
	return "people"
}

// TopicParam returns the wire name of the entity's topic facet dimension.
func (e Entity) TopicParam() string {
	if e == Projects {
		return filter.ParamSectors
	}
	return filter.ParamIndustries
}

// Other returns the opposite entity.
func (e Entity) Other() Entity {
	if e == People {
		return Projects
	}
	return People
}

// Layout selects how the active collection is presented.
type Layout int

const (
	LayoutGrid Layout = iota
	LayoutList
	LayoutDetail
)

func (l Layout) String() string {
	switch l {
	case LayoutList:
		return "list"
	case LayoutDetail:
		return "detail"
	default:
		return "grid"
	}
}

// State is the single tagged browse-surface value. The detail variant is
// the only one carrying a payload: the selected slug travels with the
// layout, so a detail state without a target cannot be represented.
// Construct via Grid, List, Detail, or FromRoute; the zero value is the
// people grid.
type State struct {
	entity Entity
	layout Layout
	slug   string // non-empty exactly when layout == LayoutDetail
	from   Layout // collection layout a detail surface returns to
}

// Grid returns the grid collection state for an entity.
func Grid(e Entity) State {
	return State{entity: e, layout: LayoutGrid, from: LayoutGrid}
}

// List returns the list collection state for an entity.
func List(e Entity) State {
	return State{entity: e, layout: LayoutList, from: LayoutList}
}

// Detail returns the detail state for a slug. An empty slug degrades to
// the grid state: the invariant that detail always has a target is kept
// here rather than checked everywhere downstream.
func Detail(e Entity, slug string, from Layout) State {
	if slug == "" {
		return Grid(e)
	}
	if from == LayoutDetail {
		from = LayoutGrid
	}
	return State{entity: e, layout: LayoutDetail, slug: slug, from: from}
}

// Entity returns the active entity tab.
func (s State) Entity() Entity { return s.entity }

// Layout returns the active layout.
func (s State) Layout() Layout { return s.layout }

// Slug returns the selected detail slug, empty outside the detail layout.
func (s State) Slug() string { return s.slug }

// ReturnLayout returns the collection layout a detail surface came from.
func (s State) ReturnLayout() Layout {
	if s.layout == LayoutDetail {
		return s.from
	}
	return s.layout
}

// IsDetail reports whether the detail surface is up.
func (s State) IsDetail() bool { return s.layout == LayoutDetail }

// Route returns the address of the state combined with the given filter
// query. Detail navigation changes only the path segment; the query rides
// along untouched.
func (s State) Route(query url.Values) Route {
	return Route{Entity: s.entity, Slug: s.slug, Query: query}
}

// Hint is a side-effect request emitted by a transition. The shell executes
// hints in order; transitions themselves never touch the environment.
type Hint interface{ isHint() }

// FetchPageHint asks the shell to (re)load the active collection page.
type FetchPageHint struct{}

// FetchDetailHint asks the shell to drop any loaded detail entity and
// fetch the named one. Dropping first prevents a stale record from
// showing while the refetch runs.
type FetchDetailHint struct{ Slug string }

// ResetPageHint asks the shell to reset the active pagination to page 0.
type ResetPageHint struct{}

// ResetScrollHint asks the shell to scroll the surface back to the top.
type ResetScrollHint struct{}

// LockScrollHint asks the shell to lock or unlock collection scrolling
// while a detail surface is up. Presentation-only; the machine itself
// never reads it back.
type LockScrollHint struct{ Locked bool }

// SyncRouteHint asks the shell to re-serialize the current route.
type SyncRouteHint struct{}

func (FetchPageHint) isHint()   {}
func (FetchDetailHint) isHint() {}
func (ResetPageHint) isHint()   {}
func (ResetScrollHint) isHint() {}
func (LockScrollHint) isHint()  {}
func (SyncRouteHint) isHint()   {}

// FromRoute derives the initial state from an incoming route: a slug
// forces the detail layout, absence forces grid.
func FromRoute(r Route) (State, []Hint) {
	if r.Slug != "" {
		s := Detail(r.Entity, r.Slug, LayoutGrid)
		return s, []Hint{FetchDetailHint{Slug: r.Slug}, LockScrollHint{Locked: true}, ResetScrollHint{}}
	}
	return Grid(r.Entity), []Hint{FetchPageHint{}}
}

// ToggleLayout moves to the target layout. Entering detail with no current
// selection synthesizes the target from firstFiltered, the leading item of
// the filtered collection; with nothing to synthesize from, the toggle is
// a no-op. Toggling to the current layout is always a no-op.
func (s State) ToggleLayout(target Layout, firstFiltered string) (State, []Hint) {
	if target == s.layout {
		return s, nil
	}

	if target == LayoutDetail {
		slug := s.slug
		if slug == "" {
			slug = firstFiltered
		}
		if slug == "" {
			return s, nil
		}
		next := Detail(s.entity, slug, s.layout)
		return next, []Hint{
			FetchDetailHint{Slug: slug},
			LockScrollHint{Locked: true},
			ResetScrollHint{},
			SyncRouteHint{},
		}
	}

	// Collection target: page size differs between grid and list, so the
	// pagination resets and the page reloads.
	next := State{entity: s.entity, layout: target, from: target}
	hints := []Hint{ResetPageHint{}, FetchPageHint{}, ResetScrollHint{}, SyncRouteHint{}}
	if s.layout == LayoutDetail {
		hints = append([]Hint{LockScrollHint{Locked: false}}, hints...)
	}
	return next, hints
}

// SwitchEntity switches tabs. The target tab lands on its collection
// layout with page 0; the filters of the entity being left stay untouched
// for its return.
func (s State) SwitchEntity(target Entity) (State, []Hint) {
	if target == s.entity {
		return s, nil
	}

	layout := s.ReturnLayout()
	next := State{entity: target, layout: layout, from: layout}
	hints := []Hint{ResetPageHint{}, FetchPageHint{}, ResetScrollHint{}, SyncRouteHint{}}
	if s.layout == LayoutDetail {
		hints = append([]Hint{LockScrollHint{Locked: false}}, hints...)
	}
	return next, hints
}

// Activate opens the detail surface for the chosen slug, remembering the
// collection layout to return to. Stepping between details keeps the
// original return layout. Activating the already-shown slug is a no-op.
func (s State) Activate(slug string) (State, []Hint) {
	if slug == "" || (s.layout == LayoutDetail && s.slug == slug) {
		return s, nil
	}
	next := Detail(s.entity, slug, s.ReturnLayout())
	return next, []Hint{
		FetchDetailHint{Slug: slug},
		LockScrollHint{Locked: true},
		ResetScrollHint{},
		SyncRouteHint{},
	}
}

// Back leaves the detail surface for the collection layout it came from.
// In a collection layout it is a no-op.
func (s State) Back() (State, []Hint) {
	if s.layout != LayoutDetail {
		return s, nil
	}
	next := State{entity: s.entity, layout: s.from, from: s.from}
	return next, []Hint{LockScrollHint{Locked: false}, FetchPageHint{}, ResetScrollHint{}, SyncRouteHint{}}
}

// Route is the navigable address of a browse surface: an entity prefix,
// an optional detail slug, and the filter query.
type Route struct {
	Entity Entity
	Slug   string
	Query  url.Values
}

// ParseRoute parses addresses like "/people", "projects/atlas", or
// "/people?skills=Go&openToWork=true". An empty path is the people grid.
func ParseRoute(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("failed to parse route %q: %w", raw, err)
	}

	r := Route{Query: u.Query()}
	segments := splitPath(u.Path)
	if len(segments) == 0 {
		return r, nil
	}

	switch segments[0] {
	case "people":
		r.Entity = People
	case "projects":
		r.Entity = Projects
	default:
		return Route{}, fmt.Errorf("unknown route prefix %q", segments[0])
	}

	if len(segments) > 1 {
		r.Slug = segments[1]
	}
	if len(segments) > 2 {
		return Route{}, fmt.Errorf("route %q has trailing segments", raw)
	}
	return r, nil
}

// String serializes the route: path segment plus the filter query.
func (r Route) String() string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(r.Entity.String())
	if r.Slug != "" {
		b.WriteString("/")
		b.WriteString(url.PathEscape(r.Slug))
	}
	if enc := r.Query.Encode(); enc != "" {
		b.WriteString("?")
		b.WriteString(enc)
	}
	return b.String()
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
