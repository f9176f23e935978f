package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/metrics"
	"github.com/vanderheijden86/guildview/pkg/paging"
)

// Dataset is the on-disk document an offline browse session reads. Media
// fields in the file may use any of the accepted polymorphic forms; they
// arrive here already normalized by the directory decoders.
type Dataset struct {
	Profiles []directory.Profile `json:"profiles"`
	Projects []directory.Project `json:"projects"`
}

// FileSource serves the browse surfaces from a single dataset file, with
// filtering through the shared predicates and pagination by slicing. The
// loaded dataset is swapped wholesale on Reload, never mutated in place,
// so readers always see one consistent snapshot.
type FileSource struct {
	path string

	mu   sync.RWMutex
	data Dataset
}

// OpenFile loads the dataset at path.
func OpenFile(path string) (*FileSource, error) {
	s := &FileSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the dataset file path.
func (s *FileSource) Path() string { return s.path }

// ReadDataset decodes the dataset document at path. It is the one decode
// path for dataset files; seeding and offline browsing share it.
func ReadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return data, nil
}

// Reload re-reads the dataset file and swaps it in. On failure the
// previous dataset stays live, so a half-written file during an editor
// save never blanks the running session.
func (s *FileSource) Reload() error {
	defer metrics.Timer(metrics.DatasetReload)()

	data, err := ReadDataset(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Counts returns the unfiltered collection sizes.
func (s *FileSource) Counts() (profiles, projects int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Profiles), len(s.data.Projects)
}

// Profiles serves one filtered page of people.
func (s *FileSource) Profiles(_ context.Context, f filter.Filters, page, size int) (ProfilePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := filter.FilterProfiles(s.data.Profiles, f)
	return ProfilePage{Items: paging.Window(matched, page, size), Total: len(matched)}, nil
}

// Projects serves one filtered page of projects.
func (s *FileSource) Projects(_ context.Context, f filter.Filters, page, size int) (ProjectPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := filter.FilterProjects(s.data.Projects, f)
	return ProjectPage{Items: paging.Window(matched, page, size), Total: len(matched)}, nil
}

// ProfileFacets derives the people vocabulary from the loaded dataset.
func (s *FileSource) ProfileFacets(context.Context) (directory.Facets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return directory.FacetsFromProfiles(s.data.Profiles), nil
}

// ProjectFacets derives the project vocabulary from the loaded dataset.
func (s *FileSource) ProjectFacets(context.Context) (directory.Facets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return directory.FacetsFromProjects(s.data.Projects), nil
}

// ProfileBySlug returns a copy of the matching profile or ErrNotFound.
func (s *FileSource) ProfileBySlug(_ context.Context, slug string) (*directory.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.data.Profiles {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", slug, ErrNotFound)
}

// ProjectBySlug returns a copy of the matching project or ErrNotFound.
func (s *FileSource) ProjectBySlug(_ context.Context, slug string) (*directory.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.data.Projects {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", slug, ErrNotFound)
}

