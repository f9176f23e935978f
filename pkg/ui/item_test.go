package ui_test

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/ui"
)

func TestProfileItemTitle(t *testing.T) {
	tests := []struct {
		name     string
		profile  directory.Profile
		expected string
	}{
		{
			name:     "returns the person's name",
			profile:  directory.Profile{Slug: "mara-voss", Name: "Mara Voss"},
			expected: "Mara Voss",
		},
		{
			name:     "empty name returns empty string",
			profile:  directory.Profile{Slug: "anon"},
			expected: "",
		},
		{
			name:     "unicode name preserved",
			profile:  directory.Profile{Slug: "yuki", Name: "結城 ゆかり"},
			expected: "結城 ゆかり",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ui.ProfileItem{Profile: tt.profile}
			if result := item.Title(); result != tt.expected {
				t.Errorf("ProfileItem.Title() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestProfileItemDescription(t *testing.T) {
	item := ui.ProfileItem{Profile: directory.Profile{
		Slug:  "mara-voss",
		Name:  "Mara Voss",
		Title: "Platform Engineer",
	}}
	if result := item.Description(); result != "Platform Engineer" {
		t.Errorf("ProfileItem.Description() = %q, want %q", result, "Platform Engineer")
	}
}

func TestProfileItemFilterValue(t *testing.T) {
	tests := []struct {
		name          string
		profile       directory.Profile
		shouldContain []string
	}{
		{
			name: "all field groups included",
			profile: directory.Profile{
				Slug:       "mara-voss",
				Name:       "Mara Voss",
				Title:      "Platform Engineer",
				Skills:     []string{"Go", "Kubernetes"},
				Industries: []string{"Logistics"},
			},
			shouldContain: []string{"Mara Voss", "Platform Engineer", "Go", "Kubernetes", "Logistics"},
		},
		{
			name:          "name only profile",
			profile:       directory.Profile{Slug: "anon", Name: "Anonymous"},
			shouldContain: []string{"Anonymous"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ui.ProfileItem{Profile: tt.profile}
			value := item.FilterValue()
			for _, s := range tt.shouldContain {
				if !strings.Contains(value, s) {
					t.Errorf("ProfileItem.FilterValue() = %q, want to contain %q", value, s)
				}
			}
		})
	}
}

func TestProjectItemTitle(t *testing.T) {
	item := ui.ProjectItem{Project: directory.Project{
		Slug:  "atlas-routing",
		Title: "Atlas Routing",
	}}
	if result := item.Title(); result != "Atlas Routing" {
		t.Errorf("ProjectItem.Title() = %q, want %q", result, "Atlas Routing")
	}
}

func TestProjectItemDescription(t *testing.T) {
	item := ui.ProjectItem{Project: directory.Project{
		Slug:    "atlas-routing",
		Title:   "Atlas Routing",
		Summary: "Route planning for freight fleets",
	}}
	if result := item.Description(); result != "Route planning for freight fleets" {
		t.Errorf("ProjectItem.Description() = %q, want %q", result, "Route planning for freight fleets")
	}
}

func TestProjectItemFilterValue(t *testing.T) {
	item := ui.ProjectItem{Project: directory.Project{
		Slug:    "atlas-routing",
		Title:   "Atlas Routing",
		Summary: "Route planning for freight fleets",
		Skills:  []string{"Go", "Postgres"},
		Sectors: []string{"Logistics"},
	}}
	value := item.FilterValue()
	for _, s := range []string{"Atlas Routing", "Route planning", "Go", "Postgres", "Logistics"} {
		if !strings.Contains(value, s) {
			t.Errorf("ProjectItem.FilterValue() = %q, want to contain %q", value, s)
		}
	}
}
