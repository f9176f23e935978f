package server

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/source"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "guild.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedDatasetDecodes(t *testing.T) {
	ds, err := SeedDataset()
	if err != nil {
		t.Fatalf("SeedDataset: %v", err)
	}
	if len(ds.Profiles) != 8 || len(ds.Projects) != 6 {
		t.Fatalf("seed sizes = %d profiles, %d projects", len(ds.Profiles), len(ds.Projects))
	}

	// Polymorphic media forms in the file all normalize on decode.
	for _, p := range ds.Projects {
		if p.Slug != "halo-pavilion" {
			continue
		}
		if len(p.Images) != 2 || p.Images[1].Caption == "" {
			t.Errorf("halo images = %+v", p.Images)
		}
		if len(p.Videos) != 1 {
			t.Errorf("halo videos = %+v", p.Videos)
		}
		if p.Icon == nil {
			t.Error("halo icon missing")
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := tempStore(t)
	ds, err := SeedDataset()
	if err != nil {
		t.Fatalf("SeedDataset: %v", err)
	}

	if err := s.ReplaceAll(context.Background(), ds); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	loaded, err := s.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	if len(loaded.Profiles) != len(ds.Profiles) || len(loaded.Projects) != len(ds.Projects) {
		t.Fatalf("loaded %d/%d, want %d/%d",
			len(loaded.Profiles), len(loaded.Projects), len(ds.Profiles), len(ds.Projects))
	}

	byName := map[string]directory.Profile{}
	for _, p := range loaded.Profiles {
		byName[p.Slug] = p
	}
	mara := byName["mara-voss"]
	if !mara.OpenToWork || mara.Photo == nil || mara.Photo.URL == "" {
		t.Errorf("mara round trip = %+v", mara)
	}
	if !reflect.DeepEqual(mara.Skills, []string{"Lighting Design", "Go", "TouchDesigner"}) {
		t.Errorf("skills = %v", mara.Skills)
	}
	if len(mara.Projects) != 1 || mara.Projects[0].Slug != "halo-pavilion" {
		t.Errorf("embedded projects = %+v", mara.Projects)
	}
	if len(mara.Experience) != 2 || mara.Experience[0].Organization != "Studio Droom" {
		t.Errorf("experience = %+v", mara.Experience)
	}

	// Fields that were absent stay absent, not zero-valued JSON husks.
	sanne := byName["sanne-de-wit"]
	if sanne.Photo != nil || sanne.Projects != nil || sanne.Experience != nil {
		t.Errorf("empty columns materialized: %+v", sanne)
	}

	for _, p := range loaded.Projects {
		if p.Slug != "halo-pavilion" {
			continue
		}
		if p.Partner == nil || p.Partner.Name != "Lichtfest Utrecht" {
			t.Errorf("partner = %+v", p.Partner)
		}
		if len(p.Images) != 2 || p.Images[1].Caption != "Opening night, full tilt" {
			t.Errorf("images = %+v", p.Images)
		}
		if len(p.Participants) != 3 {
			t.Errorf("participants = %+v", p.Participants)
		}
	}
}

func TestStoreOrdersByName(t *testing.T) {
	s := tempStore(t)
	ds := source.Dataset{
		Profiles: []directory.Profile{
			{Slug: "z", Name: "zoe"},
			{Slug: "a", Name: "Ada"},
			{Slug: "m", Name: "Mara"},
		},
	}
	if err := s.ReplaceAll(context.Background(), ds); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	loaded, err := s.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	got := []string{loaded.Profiles[0].Name, loaded.Profiles[1].Name, loaded.Profiles[2].Name}
	if !reflect.DeepEqual(got, []string{"Ada", "Mara", "zoe"}) {
		t.Errorf("order = %v", got)
	}
}

func TestReplaceAllOverwrites(t *testing.T) {
	s := tempStore(t)
	ds, err := SeedDataset()
	if err != nil {
		t.Fatalf("SeedDataset: %v", err)
	}
	if err := s.ReplaceAll(context.Background(), ds); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	small := source.Dataset{Profiles: []directory.Profile{{Slug: "only", Name: "Only One"}}}
	if err := s.ReplaceAll(context.Background(), small); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}

	profiles, projects, err := s.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if profiles != 1 || projects != 0 {
		t.Errorf("counts = %d/%d, want 1/0", profiles, projects)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guild.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	ds := source.Dataset{Profiles: []directory.Profile{{Slug: "ada", Name: "Ada", Skills: []string{"Go"}}}}
	if err := s.ReplaceAll(context.Background(), ds); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(loaded.Profiles) != 1 || loaded.Profiles[0].Skills[0] != "Go" {
		t.Errorf("persisted dataset = %+v", loaded)
	}
}
