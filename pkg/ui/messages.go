package ui

import (
	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/source"
)

// Every async result carries the sequence number that was current when its
// fetch was issued. Update compares it against the live counter and drops
// stale deliveries, so an abandoned fetch can never overwrite newer state.

// profilesPageMsg delivers one page of the people collection.
type profilesPageMsg struct {
	seq  int
	page source.ProfilePage
	err  error
}

// projectsPageMsg delivers one page of the projects collection.
type projectsPageMsg struct {
	seq  int
	page source.ProjectPage
	err  error
}

// profileDetailMsg delivers a single profile looked up by slug. A nil
// profile with a nil err means the slug does not exist in the dataset.
type profileDetailMsg struct {
	seq     int
	slug    string
	profile *directory.Profile
	err     error
}

// projectDetailMsg is the project counterpart of profileDetailMsg.
type projectDetailMsg struct {
	seq     int
	slug    string
	project *directory.Project
	err     error
}

// facetsMsg delivers both facet vocabularies in one shot. They are loaded
// together because the pickers for either tab can open before the other
// tab has ever been visited.
type facetsMsg struct {
	people   directory.Facets
	projects directory.Facets
	err      error
}

// sequenceMsg delivers the unfiltered slug ordering for one entity, plus
// the full collection it was derived from (kept for the related index).
// It is guarded by the dataset generation rather than a fetch sequence:
// the ordering only goes stale when the underlying data file changes.
type sequenceMsg struct {
	entity   browse.Entity
	gen      int
	slugs    []string
	profiles []directory.Profile
	projects []directory.Project
	err      error
}

// searchDebounceMsg fires when the search input has been idle for the
// configured debounce window. Only the newest edit's seq commits.
type searchDebounceMsg struct {
	seq int
}

// prefetchSettleMsg fires after the detail surface has been stable for the
// configured settle window; the handler then warms the neighbor slugs.
type prefetchSettleMsg struct {
	seq int
}

// dataFileChangedMsg is emitted by the watcher bridge when the offline
// data file is rewritten on disk.
type dataFileChangedMsg struct{}

// reloadDoneMsg reports the outcome of re-reading the data file.
type reloadDoneMsg struct {
	err error
}
