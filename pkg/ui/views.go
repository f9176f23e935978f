package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/guildview/pkg/browse"
)

// Fixed chrome heights: tab row + search row above the body, status/route
// row + key hint row below it.
const (
	headerHeight = 2
	footerHeight = 2
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	isOverlay := false // overlays replace the body and drop the header

	if m.showPicker {
		body = m.picker.View()
		isOverlay = true
	} else if m.showHelp {
		body = m.renderHelpOverlay()
		isOverlay = true
	} else if m.state.IsDetail() {
		body = m.viewport.View()
	} else if m.state.Layout() == browse.LayoutList {
		body = m.renderListBody()
	} else {
		body = m.renderGrid()
	}

	footer := m.renderFooter()

	// Clamp the composed frame to the terminal so the header can never be
	// pushed off the top.
	finalStyle := m.theme.Renderer.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)

	if isOverlay {
		return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	}
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, footer))
}

func (m Model) renderListBody() string {
	if m.pageErr != nil {
		return m.renderPageError()
	}
	empty := len(m.people) == 0
	if m.state.Entity() == browse.Projects {
		empty = len(m.projects) == 0
	}
	if empty {
		return m.renderEmptyCollection()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.renderPagingStrip())
}

// renderHeader is the two-line chrome above the body: app name with the
// entity tabs and filter count, then the search input with the active
// filter badges.
func (m Model) renderHeader() string {
	t := m.theme

	appName := t.Renderer.NewStyle().Bold(true).Foreground(ColorText).Render("gv")
	sep := t.MutedText.Render(" | ")

	peopleTab := t.TabInactive.Render("People")
	projectsTab := t.TabInactive.Render("Projects")
	if m.state.Entity() == browse.People {
		peopleTab = t.TabActive.Render("People")
	} else {
		projectsTab = t.TabActive.Render("Projects")
	}
	left := appName + sep + peopleTab + " " + projectsTab

	var right string
	if n := m.activeFilters().CountActive(); n > 0 {
		right = RenderFilterCountBadge(n)
	}
	layoutLabel := t.MutedText.Render(m.state.Layout().String() + " layout")
	if right != "" {
		right += "  " + layoutLabel
	} else {
		right = layoutLabel
	}

	fill := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if fill < 1 {
		fill = 1
	}
	line1 := t.Renderer.NewStyle().Width(m.width).Background(ColorBgHighlight).Render(
		left + strings.Repeat(" ", fill) + right)

	return lipgloss.JoinVertical(lipgloss.Left, line1, m.renderSearchRow())
}

// renderSearchRow shows the search input and, space permitting, badges
// for every active facet so the current constraints stay visible.
func (m Model) renderSearchRow() string {
	parts := []string{m.search.View()}
	f := m.activeFilters()

	remaining := m.width - lipgloss.Width(parts[0]) - 2
	if f.OpenToWork && remaining > 14 {
		b := RenderAvailableBadge()
		parts = append(parts, b)
		remaining -= lipgloss.Width(b) + 1
	}
	if len(f.Skills) > 0 && remaining > 10 {
		b := renderBadgeRow(f.Skills, remaining, RenderSkillBadge)
		parts = append(parts, b)
		remaining -= lipgloss.Width(b) + 1
	}
	if len(f.Topics) > 0 && remaining > 10 {
		parts = append(parts, renderBadgeRow(f.Topics, remaining, RenderTopicBadge))
	}
	return " " + strings.Join(parts, " ")
}

// renderFooter is the two-line chrome below the body: a status takeover
// or the route and detail position, then the key hints.
func (m Model) renderFooter() string {
	var top string
	if m.statusMsg != "" {
		top = m.renderStatusLine()
	} else {
		top = m.renderRouteLine()
	}
	h := m.help
	h.ShowAll = false
	return lipgloss.JoinVertical(lipgloss.Left, top, h.View(m.keys))
}

func (m Model) renderStatusLine() string {
	var msgStyle lipgloss.Style
	prefix := "✓ "
	if m.statusIsError {
		prefix = "✗ "
		msgStyle = m.theme.Renderer.NewStyle().
			Background(ColorBgSubtle).
			Foreground(ColorDanger).
			Bold(true).
			Padding(0, 2)
	} else {
		msgStyle = m.theme.Renderer.NewStyle().
			Background(ColorBgSubtle).
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 2)
	}
	section := msgStyle.Render(prefix + m.statusMsg)
	remaining := m.width - lipgloss.Width(section)
	if remaining < 0 {
		remaining = 0
	}
	filler := m.theme.Renderer.NewStyle().Width(remaining).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, section, filler)
}

// renderRouteLine shows the shareable route; in detail it adds the
// position within the unfiltered sequence.
func (m Model) renderRouteLine() string {
	route := m.theme.SecondaryText.Render(m.route)
	if !m.state.IsDetail() {
		return " " + route
	}
	pos := ""
	if m.nav.Len() > 0 && m.nav.Index() >= 0 {
		pos = m.theme.MutedText.Render(fmt.Sprintf("  %d/%d · ←/→ step", m.nav.Index()+1, m.nav.Len()))
	}
	if m.detailLoading {
		pos += "  " + m.spinner.View()
	}
	return " " + route + pos
}

func (m Model) renderHelpOverlay() string {
	t := m.theme

	title := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1).
		Render("Keyboard Shortcuts")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3)

	h := m.help
	h.ShowAll = true
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, h.View(m.keys)))
	return lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, box)
}
