// Package ui implements the gv terminal browser: a Bubble Tea program
// over the guild directory with grid, list, and detail layouts, faceted
// filtering, debounced search, and slug-sequence navigation.
//
// The Bubble Tea loop is the concurrency model. Update and View never run
// concurrently; every fetch is a tea.Cmd whose result message carries the
// sequence number captured at issue time. Stale results are dropped, never
// cancelled (reads are idempotent, soft cancellation is enough).
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/config"
	"github.com/vanderheijden86/guildview/pkg/debug"
	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/paging"
	"github.com/vanderheijden86/guildview/pkg/related"
	"github.com/vanderheijden86/guildview/pkg/source"
	"github.com/vanderheijden86/guildview/pkg/watcher"
)

// facetDim selects which vocabulary the picker is editing.
type facetDim int

const (
	dimSkills facetDim = iota
	dimTopics
)

// Options wires the browser to its collaborators. Source is required;
// everything else degrades gracefully when absent.
type Options struct {
	Source     source.Source
	Cache      *source.WarmCache  // neighbor prefetch target; nil disables warming
	FileSource *source.FileSource // offline dataset, enables manual reload
	Watcher    *watcher.Watcher   // live reload notifications, offline mode only
	Config     config.Config
	StartRoute string // e.g. "/projects/atlas?skills=Go"; bad routes fall back to the people grid
}

// Model is the complete state of the browser.
type Model struct {
	src   source.Source
	cache *source.WarmCache
	fsrc  *source.FileSource
	watch *watcher.Watcher
	cfg   config.Config

	state browse.State
	// Per-entity filters, indexed by browse.Entity. The inactive tab's
	// filters survive untouched across switches.
	filters [2]filter.Filters
	// Independent pagination per entity and per collection layout.
	gridPager [2]*paging.Controller
	listPager [2]*paging.Controller

	// Current page of the active collection.
	people   []directory.Profile
	projects []directory.Project

	peopleFacets  directory.Facets
	projectFacets directory.Facets
	facetsLoaded  bool

	// Unfiltered slug orderings plus the collections they came from,
	// fetched lazily on first detail entry per entity. The collections
	// feed the related-entries index.
	seqSlugs    [2][]string
	seqLoaded   [2]bool
	allProfiles []directory.Profile
	allProjects []directory.Project
	related     *related.Index

	// Detail surface.
	detailProfile *directory.Profile
	detailProject *directory.Project
	detailErr     error
	detailLoading bool
	nav           browse.Navigator

	// Monotonic guards for async results. dataGen tracks dataset
	// generations: a reload bumps it and orphans in-flight sequence
	// fetches.
	pageSeq   int
	detailSeq int
	searchSeq int
	dataGen   int

	pageLoading bool
	pageErr     error

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	dots     paginator.Model
	search   textinput.Model
	help     help.Model
	keys     keyMap
	picker   FacetPickerModel
	renderer *MarkdownRenderer
	theme    Theme

	// Grid cursor, an index into the current page.
	gridIndex int

	searchFocused bool
	showPicker    bool
	pickerDim     facetDim
	showHelp      bool
	scrollLocked  bool

	width  int
	height int
	ready  bool

	statusMsg     string
	statusIsError bool

	// Serialized current route: footer display, clipboard, session file.
	route string

	initCmds []tea.Cmd
}

// New builds the browser model. The start route is resolved immediately;
// the data behind it arrives through Init's commands.
func New(opts Options) Model {
	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	cfg := opts.Config

	l := list.New([]list.Item{}, ProfileDelegate{Theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.PrimaryBold

	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = theme.Renderer.NewStyle().Foreground(theme.Primary).Render("●")
	dots.InactiveDot = theme.Renderer.NewStyle().Foreground(theme.Muted).Render("○")

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 36

	m := Model{
		src:     opts.Source,
		cache:   opts.Cache,
		fsrc:    opts.FileSource,
		watch:   opts.Watcher,
		cfg:     cfg,
		list:    l,
		spinner: sp,
		dots:    dots,
		search:  ti,
		help:    help.New(),
		keys:    newKeyMap(),
		picker:  NewFacetPickerModel(theme),
		theme:   theme,
		width:   120,
		height:  40,
	}
	m.gridPager[browse.People] = paging.New(cfg.Browse.GridPageSize)
	m.gridPager[browse.Projects] = paging.New(cfg.Browse.GridPageSize)
	m.listPager[browse.People] = paging.New(cfg.Browse.ListPageSize)
	m.listPager[browse.Projects] = paging.New(cfg.Browse.ListPageSize)
	m.renderer = NewMarkdownRenderer(m.contentWidth())

	route, err := browse.ParseRoute(opts.StartRoute)
	if err != nil {
		route = browse.Route{}
		m.statusMsg = fmt.Sprintf("Ignoring start route: %v", err)
		m.statusIsError = true
	}
	m.filters[route.Entity] = filter.ParseQuery(route.Query, route.Entity.TopicParam())

	state, hints := browse.FromRoute(route)
	m.state = state
	m.search.SetValue(m.filters[state.Entity()].Search)
	m.syncRoute()

	m.initCmds = append(m.initCmds, m.applyHints(hints)...)
	m.initCmds = append(m.initCmds, fetchFacetsCmd(m.src))
	if m.watch != nil {
		m.initCmds = append(m.initCmds, watchCmd(m.watch))
	}
	m.syncDots()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{}, m.initCmds...)
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

// ─── Accessors (exercised by cmd/gv and the tests) ───────────────────────

// BrowseState returns the current browse state value.
func (m Model) BrowseState() browse.State { return m.state }

// RouteString returns the serialized current route.
func (m Model) RouteString() string { return m.route }

// ActiveFilters returns the filters applied to the active entity.
func (m Model) ActiveFilters() filter.Filters { return m.filters[m.state.Entity()] }

// Status returns the footer status message and whether it is an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

// SearchFocused reports whether the search input owns the keyboard.
func (m Model) SearchFocused() bool { return m.searchFocused }

// PickerOpen reports whether the facet picker overlay is showing.
func (m Model) PickerOpen() bool { return m.showPicker }

// HelpOpen reports whether the help overlay is showing.
func (m Model) HelpOpen() bool { return m.showHelp }

// GridIndex returns the grid cursor position within the current page.
func (m Model) GridIndex() int { return m.gridIndex }

// ScrollLocked reports whether the collection scroll is locked behind an
// open detail surface.
func (m Model) ScrollLocked() bool { return m.scrollLocked }

// PageLoading reports whether a collection fetch is in flight.
func (m Model) PageLoading() bool { return m.pageLoading }

// DetailLoading reports whether a detail fetch is in flight.
func (m Model) DetailLoading() bool { return m.detailLoading }

// CurrentProfiles returns the people on the current page.
func (m Model) CurrentProfiles() []directory.Profile { return m.people }

// CurrentProjects returns the projects on the current page.
func (m Model) CurrentProjects() []directory.Project { return m.projects }

// DetailedProfile returns the loaded detail profile, nil before commit.
func (m Model) DetailedProfile() *directory.Profile { return m.detailProfile }

// DetailedProject returns the loaded detail project, nil before commit.
func (m Model) DetailedProject() *directory.Project { return m.detailProject }

// DetailError returns the error of the last detail fetch, if any.
func (m Model) DetailError() error { return m.detailErr }

// ActivePage returns the active pagination controller's page and total.
func (m Model) ActivePage() (page, total int) {
	p := m.activePager()
	return p.Page(), p.Total()
}

// ─── Internal state helpers ──────────────────────────────────────────────

func (m *Model) activeFilters() filter.Filters {
	return m.filters[m.state.Entity()]
}

func (m *Model) setActiveFilters(f filter.Filters) {
	m.filters[m.state.Entity()] = f
}

// activePager resolves to the collection layout's controller; in detail
// that is the layout the browser returns to.
func (m *Model) activePager() *paging.Controller {
	if m.state.ReturnLayout() == browse.LayoutList {
		return m.listPager[m.state.Entity()]
	}
	return m.gridPager[m.state.Entity()]
}

func (m *Model) activeFacets() directory.Facets {
	if m.state.Entity() == browse.People {
		return m.peopleFacets
	}
	return m.projectFacets
}

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 3 {
		h = 3
	}
	return h
}

// contentWidth is the inner width available to detail markdown, inside
// the panel border and padding.
func (m Model) contentWidth() int {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

func (m *Model) syncRoute() {
	q := m.activeFilters().Values(m.state.Entity().TopicParam())
	m.route = m.state.Route(q).String()
}

func (m *Model) syncDots() {
	p := m.activePager()
	m.dots.Page = p.Page()
	m.dots.TotalPages = p.MaxPage() + 1
}

func (m *Model) saveSession() {
	// Best effort: a failed save must not block quitting.
	err := SaveSession(config.SessionPath(), Session{Route: m.route, SavedAt: time.Now()})
	debug.LogErr("saving session", err)
}

// refreshList mirrors the active entity's current page into the bubbles
// list, swapping the delegate when the entity changed.
func (m *Model) refreshList() {
	if m.state.Entity() == browse.People {
		items := make([]list.Item, len(m.people))
		for i, p := range m.people {
			items[i] = ProfileItem{Profile: p}
		}
		m.list.SetDelegate(ProfileDelegate{Theme: m.theme})
		m.list.SetItems(items)
		return
	}
	items := make([]list.Item, len(m.projects))
	for i, p := range m.projects {
		items[i] = ProjectItem{Project: p}
	}
	m.list.SetDelegate(ProjectDelegate{Theme: m.theme})
	m.list.SetItems(items)
}

func (m *Model) refreshDetail() {
	if !m.state.IsDetail() {
		return
	}
	m.viewport.SetContent(m.renderDetailContent())
}

func (m *Model) rebuildRelated() {
	m.related = related.NewIndex(m.allProfiles, m.allProjects)
}

func (m *Model) clampGridIndex() {
	n := len(m.people)
	if m.state.Entity() == browse.Projects {
		n = len(m.projects)
	}
	if n == 0 {
		m.gridIndex = 0
		return
	}
	if m.gridIndex >= n {
		m.gridIndex = n - 1
	}
	if m.gridIndex < 0 {
		m.gridIndex = 0
	}
}

// selectedSlug resolves the slug under the cursor in the current
// collection layout; empty when the page is empty.
func (m *Model) selectedSlug() string {
	switch m.state.Layout() {
	case browse.LayoutList:
		switch it := m.list.SelectedItem().(type) {
		case ProfileItem:
			return it.Profile.Slug
		case ProjectItem:
			return it.Project.Slug
		}
	case browse.LayoutGrid:
		if m.state.Entity() == browse.People {
			if m.gridIndex < len(m.people) {
				return m.people[m.gridIndex].Slug
			}
		} else if m.gridIndex < len(m.projects) {
			return m.projects[m.gridIndex].Slug
		}
	}
	return ""
}

// ─── Fetch plumbing ──────────────────────────────────────────────────────

// fetchActivePage issues the collection fetch for the active entity,
// filters and page, bumping the page seq so slower in-flight results die.
func (m *Model) fetchActivePage() tea.Cmd {
	m.pageSeq++
	m.pageLoading = true
	m.pageErr = nil
	p := m.activePager()
	f := m.activeFilters()
	if m.state.Entity() == browse.People {
		return tea.Batch(fetchProfilesCmd(m.src, f, p.Page(), p.Size(), m.pageSeq), m.spinner.Tick)
	}
	return tea.Batch(fetchProjectsCmd(m.src, f, p.Page(), p.Size(), m.pageSeq), m.spinner.Tick)
}

func (m *Model) fetchDetail(slug string) tea.Cmd {
	m.detailSeq++
	m.detailLoading = true
	if m.state.Entity() == browse.People {
		return tea.Batch(fetchProfileDetailCmd(m.src, slug, m.detailSeq), m.spinner.Tick)
	}
	return tea.Batch(fetchProjectDetailCmd(m.src, slug, m.detailSeq), m.spinner.Tick)
}

// commitFilterChange is the shared tail of every filter mutation: back to
// page zero, fresh fetch, route resync.
func (m *Model) commitFilterChange() tea.Cmd {
	m.activePager().Reset()
	m.syncDots()
	m.syncRoute()
	return m.fetchActivePage()
}

func (m Model) commitSearch() (Model, tea.Cmd) {
	f := m.activeFilters()
	next := strings.TrimSpace(m.search.Value())
	if f.Search == next {
		return m, nil
	}
	f.Search = next
	m.setActiveFilters(f)
	return m, m.commitFilterChange()
}

// ─── Transitions ─────────────────────────────────────────────────────────

func (m Model) finishTransition(next browse.State, hints []browse.Hint) (Model, tea.Cmd) {
	cmds := m.applyTransition(next, hints)
	return m, tea.Batch(cmds...)
}

// applyTransition installs the next state and executes its hints. Entity
// switches additionally reset the navigator and swap the search input to
// the target entity's term.
func (m *Model) applyTransition(next browse.State, hints []browse.Hint) []tea.Cmd {
	prev := m.state
	m.state = next
	if next.Entity() != prev.Entity() {
		m.nav.Reset()
		if m.seqLoaded[next.Entity()] {
			m.nav.SetSequence(m.seqSlugs[next.Entity()])
		}
		m.search.SetValue(m.filters[next.Entity()].Search)
		m.searchSeq++ // orphan a debounce pending for the old tab
	}
	cmds := m.applyHints(hints)
	m.syncDots()
	return cmds
}

// applyHints executes the state machine's declarative side-effect
// requests. This is the only place hints turn into fetches or resets.
func (m *Model) applyHints(hints []browse.Hint) []tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range hints {
		switch h := h.(type) {
		case browse.FetchPageHint:
			cmds = append(cmds, m.fetchActivePage())
		case browse.FetchDetailHint:
			m.detailProfile = nil
			m.detailProject = nil
			m.detailErr = nil
			cmds = append(cmds, m.fetchDetail(h.Slug))
			e := m.state.Entity()
			if m.seqLoaded[e] {
				m.nav.SetSequence(m.seqSlugs[e])
			} else {
				cmds = append(cmds, fetchSequenceCmd(m.src, e, m.dataGen))
			}
		case browse.ResetPageHint:
			m.activePager().Reset()
		case browse.ResetScrollHint:
			m.viewport.GotoTop()
			m.gridIndex = 0
			m.list.Select(0)
		case browse.LockScrollHint:
			m.scrollLocked = h.Locked
		case browse.SyncRouteHint:
			m.syncRoute()
		}
	}
	return cmds
}

// ─── Update ──────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// The list gives up one row to the paging strip below it.
		m.list.SetSize(m.width, m.bodyHeight()-1)
		m.viewport.Width = m.width
		m.viewport.Height = m.bodyHeight()
		m.picker.SetSize(m.width, m.height-1)
		m.help.Width = m.width
		if m.renderer.Width() != m.contentWidth() {
			m.renderer = NewMarkdownRenderer(m.contentWidth())
			m.refreshDetail()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.pageLoading || m.detailLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		next, cmd := m.commitSearch()
		return next, cmd

	case profilesPageMsg:
		if msg.seq != m.pageSeq {
			return m, nil
		}
		m.pageLoading = false
		if msg.err != nil {
			// Keep whatever page was already showing.
			m.pageErr = msg.err
			return m, nil
		}
		m.pageErr = nil
		m.people = msg.page.Items
		m.activePager().SetTotal(msg.page.Total)
		m.clampGridIndex()
		m.syncDots()
		m.refreshList()
		return m, nil

	case projectsPageMsg:
		if msg.seq != m.pageSeq {
			return m, nil
		}
		m.pageLoading = false
		if msg.err != nil {
			m.pageErr = msg.err
			return m, nil
		}
		m.pageErr = nil
		m.projects = msg.page.Items
		m.activePager().SetTotal(msg.page.Total)
		m.clampGridIndex()
		m.syncDots()
		m.refreshList()
		return m, nil

	case profileDetailMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.detailLoading = false
		m.detailProfile = msg.profile
		m.detailErr = msg.err
		if msg.err == nil && msg.profile != nil {
			m.nav.Locate(msg.slug)
		}
		m.refreshDetail()
		if msg.err == nil && m.cache != nil {
			return m, prefetchSettleCmd(m.cfg.Browse.PrefetchDelay(), m.detailSeq)
		}
		return m, nil

	case projectDetailMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.detailLoading = false
		m.detailProject = msg.project
		m.detailErr = msg.err
		if msg.err == nil && msg.project != nil {
			m.nav.Locate(msg.slug)
		}
		m.refreshDetail()
		if msg.err == nil && m.cache != nil {
			return m, prefetchSettleCmd(m.cfg.Browse.PrefetchDelay(), m.detailSeq)
		}
		return m, nil

	case facetsMsg:
		if msg.err != nil {
			// Facets are an enhancement; browsing works without them.
			m.setStatus(fmt.Sprintf("Facets unavailable: %v", msg.err), true)
			return m, nil
		}
		m.peopleFacets = msg.people
		m.projectFacets = msg.projects
		m.facetsLoaded = true
		return m, nil

	case sequenceMsg:
		if msg.gen != m.dataGen || msg.err != nil {
			return m, nil
		}
		m.seqSlugs[msg.entity] = msg.slugs
		m.seqLoaded[msg.entity] = true
		if msg.entity == browse.People {
			m.allProfiles = msg.profiles
		} else {
			m.allProjects = msg.projects
		}
		m.rebuildRelated()
		if msg.entity == m.state.Entity() {
			m.nav.SetSequence(msg.slugs)
			if m.state.IsDetail() {
				m.nav.Locate(m.state.Slug())
				m.refreshDetail()
			}
		}
		return m, nil

	case prefetchSettleMsg:
		if msg.seq != m.detailSeq || !m.state.IsDetail() || m.cache == nil {
			return m, nil
		}
		prev, next := m.nav.Neighbors()
		if prev == "" && next == "" {
			return m, nil
		}
		return m, warmNeighborsCmd(m.cache, m.state.Entity(), prev, next)

	case dataFileChangedMsg:
		if m.fsrc == nil {
			return m, nil
		}
		return m, reloadCmd(m.fsrc, m.cache)

	case reloadDoneMsg:
		var cmds []tea.Cmd
		if m.watch != nil {
			cmds = append(cmds, watchCmd(m.watch))
		}
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.refetchAll()...)
		m.setStatus("🔄 Data file reloaded", false)
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// refetchAll re-issues every fetch the current surfaces depend on after
// the dataset changed underneath them.
func (m *Model) refetchAll() []tea.Cmd {
	m.dataGen++
	m.seqLoaded = [2]bool{}
	cmds := []tea.Cmd{m.fetchActivePage(), fetchFacetsCmd(m.src)}
	if m.state.IsDetail() {
		cmds = append(cmds,
			m.fetchDetail(m.state.Slug()),
			fetchSequenceCmd(m.src, m.state.Entity(), m.dataGen))
	}
	return cmds
}

// ─── Key handling ────────────────────────────────────────────────────────

// handleKeys routes keys by focus: overlays first, then the search input,
// then the global bindings, and only then the focused bubbles component.
// Keys the switch consumes never reach the list, so its built-in bindings
// cannot shadow ours.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.saveSession()
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.showPicker {
		return m.handlePickerKeys(msg)
	}

	if m.searchFocused {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveSession()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.SwitchTab):
		return m.finishTransition(m.state.SwitchEntity(m.state.Entity().Other()))

	case key.Matches(msg, m.keys.GridLayout):
		return m.finishTransition(m.state.ToggleLayout(browse.LayoutGrid, ""))

	case key.Matches(msg, m.keys.ListLayout):
		return m.finishTransition(m.state.ToggleLayout(browse.LayoutList, ""))

	case key.Matches(msg, m.keys.Detail):
		return m.finishTransition(m.state.ToggleLayout(browse.LayoutDetail, m.selectedSlug()))

	case key.Matches(msg, m.keys.Open):
		if m.state.IsDetail() {
			return m, nil
		}
		return m.finishTransition(m.state.Activate(m.selectedSlug()))

	case key.Matches(msg, m.keys.Back):
		return m.finishTransition(m.state.Back())

	case key.Matches(msg, m.keys.PrevPage):
		if m.state.IsDetail() {
			if slug, ok := m.nav.Prev(); ok {
				return m.finishTransition(m.state.Activate(slug))
			}
			return m, nil
		}
		if m.activePager().Prev() {
			m.syncDots()
			return m, m.fetchActivePage()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.state.IsDetail() {
			if slug, ok := m.nav.Next(); ok {
				return m.finishTransition(m.state.Activate(slug))
			}
			return m, nil
		}
		if m.activePager().Next() {
			m.syncDots()
			return m, m.fetchActivePage()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.state.IsDetail() {
			return m, nil
		}
		m.searchFocused = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Skills):
		if m.state.IsDetail() {
			return m, nil
		}
		m.pickerDim = dimSkills
		m.picker.Open("Filter by Skill", m.activeFacets().Skills, m.activeFilters().Skills)
		m.showPicker = true
		return m, nil

	case key.Matches(msg, m.keys.Topics):
		if m.state.IsDetail() {
			return m, nil
		}
		title := "Filter by Industry"
		if m.state.Entity() == browse.Projects {
			title = "Filter by Sector"
		}
		m.pickerDim = dimTopics
		m.picker.Open(title, m.activeFacets().Topics, m.activeFilters().Topics)
		m.showPicker = true
		return m, nil

	case key.Matches(msg, m.keys.OpenToWork):
		// Availability only means something for people.
		if m.state.IsDetail() || m.state.Entity() != browse.People {
			return m, nil
		}
		f := m.activeFilters()
		f.OpenToWork = !f.OpenToWork
		m.setActiveFilters(f)
		return m, m.commitFilterChange()

	case key.Matches(msg, m.keys.ClearAll):
		if m.state.IsDetail() {
			return m, nil
		}
		if m.activeFilters().IsZero() {
			return m, nil
		}
		m.setActiveFilters(filter.Filters{})
		m.search.SetValue("")
		m.searchSeq++
		return m, m.commitFilterChange()

	case key.Matches(msg, m.keys.CopyLink):
		m.copyRoute()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.fsrc != nil {
			return m, reloadCmd(m.fsrc, m.cache)
		}
		return m, tea.Batch(m.refetchAll()...)

	case key.Matches(msg, m.keys.Up):
		if m.state.Layout() == browse.LayoutGrid {
			m.gridMove(-1)
			return m, nil
		}

	case key.Matches(msg, m.keys.Down):
		if m.state.Layout() == browse.LayoutGrid {
			m.gridMove(1)
			return m, nil
		}
	}

	// Everything else belongs to the focused component: viewport scroll in
	// detail, cursor movement in the list.
	var cmd tea.Cmd
	if m.state.IsDetail() {
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if m.state.Layout() == browse.LayoutList {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		// Abandon the pending edit; the committed term stays.
		m.searchFocused = false
		m.search.Blur()
		m.searchSeq++
		m.search.SetValue(m.activeFilters().Search)
		return m, nil
	case tea.KeyEnter:
		m.searchFocused = false
		m.search.Blur()
		m.searchSeq++
		next, cmd := m.commitSearch()
		return next, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	if d := m.cfg.Browse.Debounce(); d > 0 {
		return m, tea.Batch(cmd, debounceCmd(d, m.searchSeq))
	}
	// Zero debounce commits every keystroke immediately.
	next, commit := m.commitSearch()
	return next, tea.Batch(cmd, commit)
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showPicker = false
		return m, nil
	case "down", "ctrl+n":
		m.picker.MoveDown()
		return m, nil
	case "up", "ctrl+p":
		m.picker.MoveUp()
		return m, nil
	case "enter":
		v := m.picker.SelectedValue()
		if v == "" {
			return m, nil
		}
		f := m.activeFilters()
		if m.pickerDim == dimSkills {
			f = f.ToggleSkill(v)
			m.setActiveFilters(f)
			m.picker.SetActive(f.Skills)
		} else {
			f = f.ToggleTopic(v)
			m.setActiveFilters(f)
			m.picker.SetActive(f.Topics)
		}
		// Picker stays open so several values can be stacked.
		return m, m.commitFilterChange()
	default:
		// Remaining keys feed the fuzzy query.
		m.picker.UpdateInput(msg)
		return m, nil
	}
}

// copyRoute puts a shareable address on the clipboard: the full URL when
// a server is configured, the bare route in offline mode.
func (m *Model) copyRoute() {
	link := m.route
	if base := strings.TrimRight(m.cfg.Client.BaseURL, "/"); base != "" && !m.cfg.Offline() {
		link = base + m.route
	}
	if err := clipboard.WriteAll(link); err != nil {
		m.setStatus(fmt.Sprintf("❌ Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("📋 Copied %s", link), false)
}

// ─── Grid cursor ─────────────────────────────────────────────────────────

// gridColumns picks the column count from the terminal width; the card
// renderer uses the same breakpoints.
func (m Model) gridColumns() int {
	switch {
	case m.width >= 150:
		return 4
	case m.width >= 110:
		return 3
	case m.width >= 70:
		return 2
	default:
		return 1
	}
}

// gridMove walks the cursor linearly through the row-major card grid, so
// every card is reachable with up/down alone.
func (m *Model) gridMove(delta int) {
	n := len(m.people)
	if m.state.Entity() == browse.Projects {
		n = len(m.projects)
	}
	if n == 0 {
		return
	}
	next := m.gridIndex + delta
	if next < 0 || next >= n {
		return
	}
	m.gridIndex = next
}
