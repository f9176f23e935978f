// Package source provides the read-oriented data-access collaborators the
// browse client consumes: an HTTP client for the companion API, an offline
// file-backed source, and a warming cache that makes neighbor prefetches
// pay off. All collaborators expose the same Source interface, so the UI
// never knows which one it is talking to.
package source

import (
	"context"
	"errors"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
)

// ErrNotFound marks a slug that does not resolve to an entity. Compare
// with errors.Is; the browse surfaces render it as a terminal not-found
// state rather than a retryable failure.
var ErrNotFound = errors.New("not found")

// ProfilePage is one server-filtered slice of the people collection plus
// the authoritative total across all pages.
type ProfilePage struct {
	Items []directory.Profile `json:"items"`
	Total int                 `json:"total"`
}

// ProjectPage is one server-filtered slice of the project collection.
type ProjectPage struct {
	Items []directory.Project `json:"items"`
	Total int                 `json:"total"`
}

// Source is the data-access collaborator: filtered pages, facet
// vocabularies, and slug lookups, per entity type. Implementations are
// safe for use from multiple goroutines; reads are idempotent, so callers
// may drop late results instead of cancelling.
type Source interface {
	Profiles(ctx context.Context, f filter.Filters, page, size int) (ProfilePage, error)
	Projects(ctx context.Context, f filter.Filters, page, size int) (ProjectPage, error)
	ProfileFacets(ctx context.Context) (directory.Facets, error)
	ProjectFacets(ctx context.Context) (directory.Facets, error)
	ProfileBySlug(ctx context.Context, slug string) (*directory.Profile, error)
	ProjectBySlug(ctx context.Context, slug string) (*directory.Project, error)
}
