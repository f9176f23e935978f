package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vanderheijden86/guildview/pkg/filter"
)

const testDataset = `{
	"profiles": [
		{"slug": "ada", "name": "Ada Lovelace", "title": "Engineer", "skills": ["Go", "Math"], "industries": ["Education"], "openToWork": true},
		{"slug": "bo", "name": "Bo Chen", "title": "Designer", "skills": ["Figma"], "industries": ["Health"]},
		{"slug": "cleo", "name": "Cleo Park", "title": "Engineer", "skills": ["go", "Rust"], "industries": ["Energy"]},
		{"slug": "dev", "name": "Devi Rao", "title": "Researcher", "skills": ["Python"], "industries": ["Health"]},
		{"slug": "eli", "name": "Eli Novak", "title": "Engineer", "skills": ["Go"], "industries": ["Energy"]}
	],
	"projects": [
		{"slug": "atlas", "title": "Atlas", "summary": "Mapping platform", "skills": ["Go"], "sectors": ["Energy"], "images": ["atlas.png"]},
		{"slug": "beacon", "title": "Beacon", "summary": "Health alerts", "skills": ["Python"], "sectors": ["Health"]}
	]
}`

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for a missing dataset file")
	}
}

func TestFileSourcePagination(t *testing.T) {
	s, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	page, err := s.Profiles(context.Background(), filter.Filters{}, 1, 2)
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("total = %d, want 5", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Slug != "cleo" || page.Items[1].Slug != "dev" {
		t.Errorf("page 1 items = %+v", page.Items)
	}

	// Pages past the end stay empty but keep reporting the full total.
	page, err = s.Profiles(context.Background(), filter.Filters{}, 99, 2)
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 5 {
		t.Errorf("far page = %d items, total %d", len(page.Items), page.Total)
	}
}

func TestFileSourceFiltersBeforePaging(t *testing.T) {
	s, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	page, err := s.Profiles(context.Background(), filter.Filters{Skills: []string{"Go"}}, 0, 2)
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("filtered total = %d, want 3", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Slug != "ada" || page.Items[1].Slug != "cleo" {
		t.Errorf("filtered page items = %+v", page.Items)
	}

	projects, err := s.Projects(context.Background(), filter.Filters{Search: "alerts"}, 0, 8)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if projects.Total != 1 || projects.Items[0].Slug != "beacon" {
		t.Errorf("project search = %+v", projects)
	}
}

func TestFileSourceFacetsAreDedupedAndSorted(t *testing.T) {
	s, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	facets, err := s.ProfileFacets(context.Background())
	if err != nil {
		t.Fatalf("ProfileFacets: %v", err)
	}
	// "Go" and "go" collapse to the first spelling seen.
	wantSkills := []string{"Figma", "Go", "Math", "Python", "Rust"}
	if !reflect.DeepEqual(facets.Skills, wantSkills) {
		t.Errorf("skills = %v, want %v", facets.Skills, wantSkills)
	}
	wantTopics := []string{"Education", "Energy", "Health"}
	if !reflect.DeepEqual(facets.Topics, wantTopics) {
		t.Errorf("topics = %v, want %v", facets.Topics, wantTopics)
	}

	projectFacets, err := s.ProjectFacets(context.Background())
	if err != nil {
		t.Fatalf("ProjectFacets: %v", err)
	}
	if !reflect.DeepEqual(projectFacets.Topics, []string{"Energy", "Health"}) {
		t.Errorf("project topics = %v", projectFacets.Topics)
	}
}

func TestFileSourceBySlug(t *testing.T) {
	s, err := OpenFile(writeDataset(t, testDataset))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	p, err := s.ProjectBySlug(context.Background(), "atlas")
	if err != nil {
		t.Fatalf("ProjectBySlug: %v", err)
	}
	if p.Title != "Atlas" || len(p.Images) != 1 {
		t.Errorf("project = %+v", p)
	}

	if _, err := s.ProfileBySlug(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing profile error = %v, want ErrNotFound", err)
	}
}

func TestFileSourceReload(t *testing.T) {
	path := writeDataset(t, testDataset)
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"profiles":[{"slug":"zoe","name":"Zoe"}],"projects":[]}`), 0o644); err != nil {
		t.Fatalf("rewriting dataset: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	profiles, projects := s.Counts()
	if profiles != 1 || projects != 0 {
		t.Errorf("counts after reload = %d profiles, %d projects", profiles, projects)
	}

	// A broken rewrite must not take down the serving snapshot.
	if err := os.WriteFile(path, []byte(`{"profiles": [truncated`), 0o644); err != nil {
		t.Fatalf("rewriting dataset: %v", err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("expected a decode error from the broken dataset")
	}
	profiles, _ = s.Counts()
	if profiles != 1 {
		t.Errorf("profiles after failed reload = %d, want 1", profiles)
	}
}
