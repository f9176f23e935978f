package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the browse client reacts to. The help footer
// renders it through bubbles/help; context-dependent bindings (paging vs
// detail stepping share the arrow keys) carry the collection-side help text.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Open       key.Binding
	Back       key.Binding
	SwitchTab  key.Binding
	GridLayout key.Binding
	ListLayout key.Binding
	Detail     key.Binding
	Search     key.Binding
	Skills     key.Binding
	Topics     key.Binding
	OpenToWork key.Binding
	ClearAll   key.Binding
	CopyLink   key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		PrevPage:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next page")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		SwitchTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "people/projects")),
		GridLayout: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		ListLayout: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
		Detail:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detail")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Skills:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skills")),
		Topics:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "industries/sectors")),
		OpenToWork: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "open to work")),
		ClearAll:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		CopyLink:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp is the single-line footer set.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Search, k.Open, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp feeds the expanded help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open, k.Back, k.SwitchTab, k.GridLayout, k.ListLayout, k.Detail},
		// Filtering
		{k.Search, k.Skills, k.Topics, k.OpenToWork, k.ClearAll},
		// App
		{k.CopyLink, k.Reload, k.Help, k.Quit, k.ForceQuit},
	}
}
