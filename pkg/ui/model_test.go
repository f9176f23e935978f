package ui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/config"
	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/source"
	"github.com/vanderheijden86/guildview/pkg/ui"
)

func testDataset() source.Dataset {
	return source.Dataset{
		Profiles: []directory.Profile{
			{
				Slug: "nadia-osei", Name: "Nadia Osei", Title: "Distributed Systems Engineer",
				Bio:    "Builds consensus layers for freight routing.",
				Skills: []string{"Go", "Raft"}, Industries: []string{"Logistics"},
				OpenToWork: true,
				Projects: []directory.ProjectSummary{
					{Slug: "freight-mesh", Title: "Freight Mesh", Skills: []string{"Go"}, Sectors: []string{"Logistics"}},
				},
			},
			{
				Slug: "piotr-lindgren", Name: "Piotr Lindgren", Title: "Site Reliability Engineer",
				Skills: []string{"Terraform", "Go"}, Industries: []string{"Energy"},
			},
			{
				Slug: "sofia-marchetti", Name: "Sofia Marchetti", Title: "Frontend Engineer",
				Skills: []string{"TypeScript"}, Industries: []string{"Media"},
				OpenToWork: true,
			},
		},
		Projects: []directory.Project{
			{
				Slug: "freight-mesh", Title: "Freight Mesh", Summary: "Routing fabric for cargo fleets",
				Skills: []string{"Go", "Raft"}, Sectors: []string{"Logistics"},
				Participants: []directory.Participant{{Slug: "nadia-osei", Name: "Nadia Osei"}},
			},
			{
				Slug: "solar-ledger", Title: "Solar Ledger", Summary: "Billing engine for community solar",
				Skills: []string{"Go"}, Sectors: []string{"Energy"},
			},
		},
	}
}

func writeDataset(t *testing.T, ds source.Dataset) string {
	t.Helper()
	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(t.TempDir(), "guild.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func browserConfig(path string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Client = config.ClientConfig{DataFile: path}
	cfg.Browse.GridPageSize = 4
	cfg.Browse.ListPageSize = 10
	cfg.Browse.DebounceMS = 0
	cfg.Browse.PrefetchDelayMS = 0
	return cfg
}

func newBrowser(t *testing.T, startRoute string) ui.Model {
	t.Helper()
	path := writeDataset(t, testDataset())
	fs, err := source.OpenFile(path)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	m := ui.New(ui.Options{
		Source:     fs,
		FileSource: fs,
		Config:     browserConfig(path),
		StartRoute: startRoute,
	})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return drain(t, sized.(ui.Model), m.Init())
}

// drain executes commands synchronously, feeding their messages back in
// until everything settles, standing in for the Bubble Tea runtime.
func drain(t *testing.T, m ui.Model, cmd tea.Cmd) ui.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		updated, follow := m.Update(msg)
		m = updated.(ui.Model)
		queue = append(queue, follow)
	}
	return m
}

func press(t *testing.T, m ui.Model, keys ...string) ui.Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = drain(t, updated.(ui.Model), cmd)
	}
	return m
}

func TestLaunchLoadsPeopleGrid(t *testing.T) {
	m := newBrowser(t, "")

	st := m.BrowseState()
	if st.Entity() != browse.People {
		t.Errorf("Expected the people tab on launch, got %v", st.Entity())
	}
	if st.Layout() != browse.LayoutGrid {
		t.Errorf("Expected the grid layout on launch, got %v", st.Layout())
	}
	if got := len(m.CurrentProfiles()); got != 3 {
		t.Errorf("Expected 3 profiles, got %d", got)
	}
	if _, total := m.ActivePage(); total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if m.RouteString() != "/people" {
		t.Errorf("Expected route /people, got %q", m.RouteString())
	}
}

func TestEnterOpensDetailAndEscReturns(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "enter")
	if !m.BrowseState().IsDetail() {
		t.Fatal("Expected enter to open the detail surface")
	}
	p := m.DetailedProfile()
	if p == nil || p.Slug != "nadia-osei" {
		t.Fatalf("Expected nadia-osei detail, got %+v", p)
	}
	if m.RouteString() != "/people/nadia-osei" {
		t.Errorf("Expected route /people/nadia-osei, got %q", m.RouteString())
	}

	m = press(t, m, "esc")
	if m.BrowseState().Layout() != browse.LayoutGrid {
		t.Errorf("Expected esc to return to the grid, got %v", m.BrowseState().Layout())
	}
}

func TestTabTogglesEntity(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "tab")
	if m.BrowseState().Entity() != browse.Projects {
		t.Fatalf("Expected the projects tab, got %v", m.BrowseState().Entity())
	}
	if got := len(m.CurrentProjects()); got != 2 {
		t.Errorf("Expected 2 projects, got %d", got)
	}
	if m.RouteString() != "/projects" {
		t.Errorf("Expected route /projects, got %q", m.RouteString())
	}

	m = press(t, m, "tab")
	if m.BrowseState().Entity() != browse.People {
		t.Errorf("Expected to be back on people, got %v", m.BrowseState().Entity())
	}
}

func TestLayoutKeysSwitchCollectionLayouts(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "l")
	if m.BrowseState().Layout() != browse.LayoutList {
		t.Errorf("Expected the list layout after l, got %v", m.BrowseState().Layout())
	}

	m = press(t, m, "g")
	if m.BrowseState().Layout() != browse.LayoutGrid {
		t.Errorf("Expected the grid layout after g, got %v", m.BrowseState().Layout())
	}
}

func TestDetailKeyOpensSelection(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "d")
	if !m.BrowseState().IsDetail() {
		t.Fatal("Expected d to open the detail surface")
	}
	if p := m.DetailedProfile(); p == nil || p.Slug != "nadia-osei" {
		t.Errorf("Expected the selected card's detail, got %+v", p)
	}
}

func TestSearchNarrowsAndClearRestores(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "/")
	if !m.SearchFocused() {
		t.Fatal("Expected / to focus the search input")
	}
	m = press(t, m, "s", "o", "f", "enter")
	if m.SearchFocused() {
		t.Error("Expected enter to blur the search input")
	}
	if got := m.ActiveFilters().Search; got != "sof" {
		t.Errorf("Expected the committed term %q, got %q", "sof", got)
	}
	if got := len(m.CurrentProfiles()); got != 1 {
		t.Fatalf("Expected 1 match, got %d", got)
	}
	if m.CurrentProfiles()[0].Slug != "sofia-marchetti" {
		t.Errorf("Expected sofia-marchetti, got %s", m.CurrentProfiles()[0].Slug)
	}
	if !strings.Contains(m.RouteString(), "search=sof") {
		t.Errorf("Expected the route to carry the term, got %q", m.RouteString())
	}

	m = press(t, m, "c")
	if !m.ActiveFilters().IsZero() {
		t.Error("Expected c to clear all filters")
	}
	if got := len(m.CurrentProfiles()); got != 3 {
		t.Errorf("Expected the full collection back, got %d", got)
	}
}

func TestSkillPickerTogglesFacet(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "s")
	if !m.PickerOpen() {
		t.Fatal("Expected s to open the skill picker")
	}

	// Fuzzy query "ra" ranks the prefix match Raft first.
	m = press(t, m, "r", "a", "enter")
	got := m.ActiveFilters().Skills
	if len(got) != 1 || got[0] != "Raft" {
		t.Fatalf("Expected the Raft skill toggled on, got %v", got)
	}
	if !m.PickerOpen() {
		t.Error("Expected the picker to stay open for stacking values")
	}
	if got := len(m.CurrentProfiles()); got != 1 {
		t.Errorf("Expected 1 profile with Raft, got %d", got)
	}

	// A second enter on the same value toggles it back off.
	m = press(t, m, "enter")
	if len(m.ActiveFilters().Skills) != 0 {
		t.Errorf("Expected the skill toggled off, got %v", m.ActiveFilters().Skills)
	}

	m = press(t, m, "esc")
	if m.PickerOpen() {
		t.Error("Expected esc to close the picker")
	}
}

func TestIndustryFilterOnPeople(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "i", "l", "o", "g", "enter", "esc")
	got := m.ActiveFilters().Topics
	if len(got) != 1 || got[0] != "Logistics" {
		t.Fatalf("Expected the Logistics industry toggled on, got %v", got)
	}
	if got := len(m.CurrentProfiles()); got != 1 {
		t.Errorf("Expected 1 profile in Logistics, got %d", got)
	}
	if !strings.Contains(m.RouteString(), "industries=Logistics") {
		t.Errorf("Expected an industries route param, got %q", m.RouteString())
	}
}

func TestSectorFilterOnProjects(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "tab", "i", "e", "n", "e", "r", "enter", "esc")
	got := m.ActiveFilters().Topics
	if len(got) != 1 || got[0] != "Energy" {
		t.Fatalf("Expected the Energy sector toggled on, got %v", got)
	}
	if got := len(m.CurrentProjects()); got != 1 {
		t.Fatalf("Expected 1 project in Energy, got %d", got)
	}
	if m.CurrentProjects()[0].Slug != "solar-ledger" {
		t.Errorf("Expected solar-ledger, got %s", m.CurrentProjects()[0].Slug)
	}
	if !strings.Contains(m.RouteString(), "sectors=Energy") {
		t.Errorf("Expected a sectors route param, got %q", m.RouteString())
	}
}

func TestOpenToWorkToggle(t *testing.T) {
	m := newBrowser(t, "")

	m = press(t, m, "w")
	if got := len(m.CurrentProfiles()); got != 2 {
		t.Fatalf("Expected 2 open-to-work profiles, got %d", got)
	}
	if !strings.Contains(m.RouteString(), "openToWork=true") {
		t.Errorf("Expected the availability route param, got %q", m.RouteString())
	}

	m = press(t, m, "w")
	if got := len(m.CurrentProfiles()); got != 3 {
		t.Errorf("Expected the full collection after toggling off, got %d", got)
	}
	if strings.Contains(m.RouteString(), "openToWork") {
		t.Errorf("Expected a clean route after toggling off, got %q", m.RouteString())
	}
}

func TestStartRouteDeepLinksToDetail(t *testing.T) {
	m := newBrowser(t, "/projects/solar-ledger")

	if !m.BrowseState().IsDetail() {
		t.Fatal("Expected the start route to open detail directly")
	}
	p := m.DetailedProject()
	if p == nil || p.Slug != "solar-ledger" {
		t.Fatalf("Expected solar-ledger detail, got %+v", p)
	}

	m = press(t, m, "esc")
	st := m.BrowseState()
	if st.Entity() != browse.Projects || st.Layout() != browse.LayoutGrid {
		t.Errorf("Expected esc to land on the projects grid, got %v/%v", st.Entity(), st.Layout())
	}
}

func TestStartRouteAppliesQueryFilters(t *testing.T) {
	m := newBrowser(t, "/people?skills=Go&openToWork=true")

	f := m.ActiveFilters()
	if len(f.Skills) != 1 || f.Skills[0] != "Go" || !f.OpenToWork {
		t.Fatalf("Expected skills=Go plus availability from the route, got %+v", f)
	}
	if got := len(m.CurrentProfiles()); got != 1 {
		t.Fatalf("Expected 1 profile matching both constraints, got %d", got)
	}
	if m.CurrentProfiles()[0].Slug != "nadia-osei" {
		t.Errorf("Expected nadia-osei, got %s", m.CurrentProfiles()[0].Slug)
	}
}

func TestBadStartRouteFallsBack(t *testing.T) {
	m := newBrowser(t, "/teams/unknown")

	st := m.BrowseState()
	if st.Entity() != browse.People || st.Layout() != browse.LayoutGrid {
		t.Errorf("Expected the fallback people grid, got %v/%v", st.Entity(), st.Layout())
	}
	msg, isErr := m.Status()
	if !isErr || msg == "" {
		t.Errorf("Expected an error status about the ignored route, got %q", msg)
	}
}

func TestDetailSteppingFollowsSequence(t *testing.T) {
	m := newBrowser(t, "/people/nadia-osei")

	m = press(t, m, "right")
	if m.RouteString() != "/people/piotr-lindgren" {
		t.Fatalf("Expected to step to piotr-lindgren, got %q", m.RouteString())
	}
	m = press(t, m, "right")
	if m.RouteString() != "/people/sofia-marchetti" {
		t.Fatalf("Expected to step to sofia-marchetti, got %q", m.RouteString())
	}

	// Last entry; stepping further stays put.
	m = press(t, m, "right")
	if m.RouteString() != "/people/sofia-marchetti" {
		t.Errorf("Expected to stay at the end of the sequence, got %q", m.RouteString())
	}

	m = press(t, m, "left")
	if m.RouteString() != "/people/piotr-lindgren" {
		t.Errorf("Expected to step back, got %q", m.RouteString())
	}
}

func TestManualReloadPicksUpFileChanges(t *testing.T) {
	ds := testDataset()
	path := writeDataset(t, ds)
	fs, err := source.OpenFile(path)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	m := ui.New(ui.Options{Source: fs, FileSource: fs, Config: browserConfig(path)})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = drain(t, sized.(ui.Model), m.Init())

	ds.Profiles = append(ds.Profiles, directory.Profile{
		Slug: "june-akintola", Name: "June Akintola", Title: "Data Analyst",
	})
	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("rewrite dataset: %v", err)
	}

	m = press(t, m, "r")
	if got := len(m.CurrentProfiles()); got != 4 {
		t.Errorf("Expected 4 profiles after reload, got %d", got)
	}
	msg, isErr := m.Status()
	if isErr || !strings.Contains(msg, "reloaded") {
		t.Errorf("Expected a reload status, got %q (error=%v)", msg, isErr)
	}
}

func TestViewRendersChrome(t *testing.T) {
	m := newBrowser(t, "")

	out := m.View()
	for _, want := range []string{"gv", "People", "Projects", "Nadia Osei", "/people"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected the view to contain %q", want)
		}
	}

	m = press(t, m, "enter")
	out = m.View()
	if !strings.Contains(out, "Nadia Osei") {
		t.Error("Expected the detail view to show the profile name")
	}
}

func TestEmptyDirectoryDoesNotPanic(t *testing.T) {
	path := writeDataset(t, source.Dataset{})
	fs, err := source.OpenFile(path)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	m := ui.New(ui.Options{Source: fs, FileSource: fs, Config: browserConfig(path)})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = drain(t, sized.(ui.Model), m.Init())

	keys := []string{"enter", "d", "tab", "g", "l", "s", "esc", "i", "esc", "w", "c", "up", "down", "left", "right", "?", "esc", "y", "r"}
	for _, k := range keys {
		t.Run(k, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Panic on key %q: %v", k, r)
				}
			}()
			m = press(t, m, k)
		})
	}

	// The sweep left the model on the projects tab.
	out := m.View()
	if !strings.Contains(out, "No projects in the directory yet") {
		t.Error("Expected the empty-state message")
	}
}

// Helper to create a KeyMsg
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}
