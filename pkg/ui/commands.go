package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/metrics"
	"github.com/vanderheijden86/guildview/pkg/source"
	"github.com/vanderheijden86/guildview/pkg/watcher"
)

// sequenceFetchSize is large enough to pull an entire guild directory in
// one request. The HTTP source caps page sizes at this same value.
const sequenceFetchSize = 500

// Fetches run on context.Background: results are never cancelled, only
// dropped when their seq no longer matches (soft cancellation).

func fetchProfilesCmd(src source.Source, f filter.Filters, page, size, seq int) tea.Cmd {
	return func() tea.Msg {
		defer metrics.Timer(metrics.PageFetch)()
		p, err := src.Profiles(context.Background(), f, page, size)
		return profilesPageMsg{seq: seq, page: p, err: err}
	}
}

func fetchProjectsCmd(src source.Source, f filter.Filters, page, size, seq int) tea.Cmd {
	return func() tea.Msg {
		defer metrics.Timer(metrics.PageFetch)()
		p, err := src.Projects(context.Background(), f, page, size)
		return projectsPageMsg{seq: seq, page: p, err: err}
	}
}

func fetchProfileDetailCmd(src source.Source, slug string, seq int) tea.Cmd {
	return func() tea.Msg {
		p, err := src.ProfileBySlug(context.Background(), slug)
		return profileDetailMsg{seq: seq, slug: slug, profile: p, err: err}
	}
}

func fetchProjectDetailCmd(src source.Source, slug string, seq int) tea.Cmd {
	return func() tea.Msg {
		p, err := src.ProjectBySlug(context.Background(), slug)
		return projectDetailMsg{seq: seq, slug: slug, project: p, err: err}
	}
}

// fetchFacetsCmd loads both vocabularies in parallel. A failure of either
// fails the whole message; facets degrade gracefully so the first error is
// enough signal.
func fetchFacetsCmd(src source.Source) tea.Cmd {
	return func() tea.Msg {
		defer metrics.Timer(metrics.FacetsFetch)()
		var msg facetsMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.people, err = src.ProfileFacets(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.projects, err = src.ProjectFacets(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// fetchSequenceCmd pulls the unfiltered collection for one entity so the
// detail surface can order prev/next steps and rank related entries.
func fetchSequenceCmd(src source.Source, entity browse.Entity, gen int) tea.Cmd {
	return func() tea.Msg {
		msg := sequenceMsg{entity: entity, gen: gen}
		if entity == browse.People {
			page, err := src.Profiles(context.Background(), filter.Filters{}, 0, sequenceFetchSize)
			msg.err = err
			msg.profiles = page.Items
			msg.slugs = directory.ProfileSlugs(page.Items)
			return msg
		}
		page, err := src.Projects(context.Background(), filter.Filters{}, 0, sequenceFetchSize)
		msg.err = err
		msg.projects = page.Items
		msg.slugs = directory.ProjectSlugs(page.Items)
		return msg
	}
}

func debounceCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func prefetchSettleCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return prefetchSettleMsg{seq: seq}
	})
}

// warmNeighborsCmd fills the cache for the slugs adjacent to the current
// detail entry. Warming is best effort and emits no message.
func warmNeighborsCmd(cache *source.WarmCache, entity browse.Entity, slugs ...string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		for _, slug := range slugs {
			if slug == "" {
				continue
			}
			if entity == browse.People {
				cache.WarmProfile(ctx, slug)
			} else {
				cache.WarmProject(ctx, slug)
			}
		}
		return nil
	}
}

// watchCmd blocks on the watcher's change channel and surfaces one change
// notification. The reload handler re-arms it.
func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-w.Changed()
		if !ok {
			return nil
		}
		return dataFileChangedMsg{}
	}
}

func reloadCmd(fs *source.FileSource, cache *source.WarmCache) tea.Cmd {
	return func() tea.Msg {
		err := fs.Reload()
		if err == nil && cache != nil {
			cache.Invalidate()
		}
		return reloadDoneMsg{err: err}
	}
}
