package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/metrics"
)

// DefaultCacheTTL keeps warmed entries around long enough to cover a
// stretch of sequential stepping without serving a whole stale session.
const DefaultCacheTTL = 5 * time.Minute

// WarmCache wraps a Source with a slug-keyed TTL cache. The detail
// prefetcher warms it ahead of the user; stepping to a warmed neighbor
// then resolves without a visible fetch. Collection pages and facets pass
// through uncached. Concurrent lookups for the same slug collapse into
// one upstream call, so overlapping prefetches cannot stampede.
type WarmCache struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	group    singleflight.Group
	mu       sync.Mutex
	profiles map[string]profileEntry
	projects map[string]projectEntry
}

type profileEntry struct {
	value   *directory.Profile
	expires time.Time
}

type projectEntry struct {
	value   *directory.Project
	expires time.Time
}

// NewWarmCache wraps inner. A non-positive ttl uses DefaultCacheTTL.
func NewWarmCache(inner Source, ttl time.Duration) *WarmCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &WarmCache{
		inner:    inner,
		ttl:      ttl,
		now:      time.Now,
		profiles: make(map[string]profileEntry),
		projects: make(map[string]projectEntry),
	}
}

// Profiles passes through to the wrapped source.
func (c *WarmCache) Profiles(ctx context.Context, f filter.Filters, page, size int) (ProfilePage, error) {
	return c.inner.Profiles(ctx, f, page, size)
}

// Projects passes through to the wrapped source.
func (c *WarmCache) Projects(ctx context.Context, f filter.Filters, page, size int) (ProjectPage, error) {
	return c.inner.Projects(ctx, f, page, size)
}

// ProfileFacets passes through to the wrapped source.
func (c *WarmCache) ProfileFacets(ctx context.Context) (directory.Facets, error) {
	return c.inner.ProfileFacets(ctx)
}

// ProjectFacets passes through to the wrapped source.
func (c *WarmCache) ProjectFacets(ctx context.Context) (directory.Facets, error) {
	return c.inner.ProjectFacets(ctx)
}

// ProfileBySlug serves from the cache when fresh, otherwise fetches and
// stores. Errors are never cached: a failed prefetch must not poison the
// user's own navigation to the same slug.
func (c *WarmCache) ProfileBySlug(ctx context.Context, slug string) (*directory.Profile, error) {
	c.mu.Lock()
	if e, ok := c.profiles[slug]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		metrics.DetailCache.Hit()
		return e.value, nil
	}
	c.mu.Unlock()
	metrics.DetailCache.Miss()

	v, err, _ := c.group.Do("profile:"+slug, func() (any, error) {
		defer metrics.Timer(metrics.DetailFetch)()
		p, err := c.inner.ProfileBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.profiles[slug] = profileEntry{value: p, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*directory.Profile), nil
}

// ProjectBySlug mirrors ProfileBySlug for projects.
func (c *WarmCache) ProjectBySlug(ctx context.Context, slug string) (*directory.Project, error) {
	c.mu.Lock()
	if e, ok := c.projects[slug]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		metrics.DetailCache.Hit()
		return e.value, nil
	}
	c.mu.Unlock()
	metrics.DetailCache.Miss()

	v, err, _ := c.group.Do("project:"+slug, func() (any, error) {
		defer metrics.Timer(metrics.DetailFetch)()
		p, err := c.inner.ProjectBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.projects[slug] = projectEntry{value: p, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*directory.Project), nil
}

// WarmProfile prefetches one profile into the cache. Best effort: the
// error is swallowed here so callers cannot be tempted to surface it.
func (c *WarmCache) WarmProfile(ctx context.Context, slug string) {
	if slug == "" {
		return
	}
	_, _ = c.ProfileBySlug(ctx, slug)
}

// WarmProject prefetches one project into the cache.
func (c *WarmCache) WarmProject(ctx context.Context, slug string) {
	if slug == "" {
		return
	}
	_, _ = c.ProjectBySlug(ctx, slug)
}

// Invalidate drops every cached entry. Called when the underlying dataset
// is known to have changed, e.g. after a live reload.
func (c *WarmCache) Invalidate() {
	c.mu.Lock()
	c.profiles = make(map[string]profileEntry)
	c.projects = make(map[string]projectEntry)
	c.mu.Unlock()
}
