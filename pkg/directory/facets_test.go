package directory

import (
	"reflect"
	"testing"
)

func TestFacetsFromProfiles(t *testing.T) {
	profiles := []Profile{
		{Skills: []string{"Go", "Math", " "}, Industries: []string{"Education"}},
		{Skills: []string{"go", "Figma"}, Industries: []string{"health", "Education"}},
	}

	facets := FacetsFromProfiles(profiles)

	// "go" collapses into the first-seen "Go"; blank entries vanish.
	if want := []string{"Figma", "Go", "Math"}; !reflect.DeepEqual(facets.Skills, want) {
		t.Errorf("skills = %v, want %v", facets.Skills, want)
	}
	if want := []string{"Education", "health"}; !reflect.DeepEqual(facets.Topics, want) {
		t.Errorf("topics = %v, want %v", facets.Topics, want)
	}
	if facets.IsEmpty() {
		t.Error("populated facets reported empty")
	}
}

func TestFacetsFromProjects(t *testing.T) {
	projects := []Project{
		{Skills: []string{"Rust"}, Sectors: []string{"Energy"}},
		{Sectors: []string{"energy", "Health"}},
	}

	facets := FacetsFromProjects(projects)

	if want := []string{"Energy", "Health"}; !reflect.DeepEqual(facets.Topics, want) {
		t.Errorf("topics = %v, want %v", facets.Topics, want)
	}
}

func TestFacetsFromEmptyDataset(t *testing.T) {
	if !FacetsFromProfiles(nil).IsEmpty() {
		t.Error("empty dataset produced facets")
	}
}
