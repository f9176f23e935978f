package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/directory"
)

// renderGrid draws the active entity's card grid with the paging strip
// underneath. Cards flow row-major; the cursor card gets the highlight
// treatment.
func (m Model) renderGrid() string {
	if m.pageErr != nil {
		return m.renderPageError()
	}

	cols := m.gridColumns()
	// One space of gutter between columns; border and padding live inside
	// the card width.
	cardW := (m.width - (cols - 1)) / cols
	if cardW < 24 {
		cardW = 24
	}
	textW := cardW - 4

	var cards []string
	if m.state.Entity() == browse.People {
		for i, p := range m.people {
			cards = append(cards, m.renderProfileCard(p, textW, i == m.gridIndex))
		}
	} else {
		for i, p := range m.projects {
			cards = append(cards, m.renderProjectCard(p, textW, i == m.gridIndex))
		}
	}

	if len(cards) == 0 {
		return m.renderEmptyCollection()
	}

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		row := cards[start]
		for _, c := range cards[start+1 : end] {
			row = lipgloss.JoinHorizontal(lipgloss.Top, row, " ", c)
		}
		rows = append(rows, row)
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.JoinVertical(lipgloss.Left, grid, m.renderPagingStrip())
}

// renderProfileCard draws one person as a three-line card: availability
// dot and name, role, then a skill badge row.
func (m Model) renderProfileCard(p directory.Profile, textW int, selected bool) string {
	t := m.theme

	dot := "  "
	if p.OpenToWork {
		dot = t.AvailableText.Render("●") + " "
	}

	nameStyle := t.Renderer.NewStyle().Bold(true)
	if selected {
		nameStyle = nameStyle.Foreground(t.Primary)
	} else {
		nameStyle = nameStyle.Foreground(t.Base.GetForeground())
	}
	line1 := dot + nameStyle.Render(truncateRunesHelper(p.Name, textW-2, "…"))

	line2 := t.SecondaryText.Render(truncateRunesHelper(p.Title, textW, "…"))

	line3 := renderBadgeRow(p.Skills, textW, RenderSkillBadge)

	return m.cardFrame(selected, p.OpenToWork, false, textW, line1, line2, line3)
}

// renderProjectCard draws one project: title, teaser, then partner badge
// and sector badges.
func (m Model) renderProjectCard(p directory.Project, textW int, selected bool) string {
	t := m.theme

	titleStyle := t.Renderer.NewStyle().Bold(true)
	if selected {
		titleStyle = titleStyle.Foreground(t.Primary)
	} else {
		titleStyle = titleStyle.Foreground(t.Base.GetForeground())
	}
	line1 := titleStyle.Render(truncateRunesHelper(p.Title, textW, "…"))

	line2 := t.SecondaryText.Render(truncateRunesHelper(p.Summary, textW, "…"))

	var meta []string
	badgeW := textW
	if p.Partner != nil {
		badge := RenderPartnerBadge(truncateRunesHelper(p.Partner.Name, 14, "…"))
		meta = append(meta, badge)
		badgeW -= lipgloss.Width(badge) + 1
	}
	if badgeW > 8 && len(p.Sectors) > 0 {
		meta = append(meta, renderBadgeRow(p.Sectors, badgeW, RenderTopicBadge))
	}
	line3 := strings.Join(meta, " ")

	return m.cardFrame(selected, false, p.Partner != nil, textW, line1, line2, line3)
}

// cardFrame applies the shared card chrome: thick border colored by
// state, highlight background when selected, every line clamped and
// padded to the exact text width so the border never wobbles.
func (m Model) cardFrame(selected, available, partnered bool, textW int, lines ...string) string {
	t := m.theme

	var borderColor lipgloss.TerminalColor
	switch {
	case selected:
		borderColor = t.Primary
	case available:
		borderColor = t.Available
	case partnered:
		borderColor = t.Partner
	default:
		borderColor = t.Border
	}

	cardStyle := t.Renderer.NewStyle().
		Padding(0, 1).
		MarginBottom(1).
		Border(lipgloss.ThickBorder()).
		BorderForeground(borderColor)
	if selected {
		cardStyle = cardStyle.Background(t.Highlight)
	}

	clamp := t.Renderer.NewStyle().MaxWidth(textW)
	padLine := func(s string) string {
		c := clamp.Render(s)
		if pad := textW - lipgloss.Width(c); pad > 0 {
			c += strings.Repeat(" ", pad)
		}
		return c
	}

	padded := make([]string, len(lines))
	for i, l := range lines {
		padded[i] = padLine(l)
	}
	return cardStyle.Render(strings.Join(padded, "\n"))
}

// renderPagingStrip is the line under the grid: page dots, position, and
// the in-flight spinner.
func (m Model) renderPagingStrip() string {
	p := m.activePager()

	var parts []string
	if p.MaxPage() > 0 {
		parts = append(parts, m.dots.View())
	}
	noun := "people"
	if m.state.Entity() == browse.Projects {
		noun = "projects"
	}
	parts = append(parts, m.theme.MutedText.Render(
		fmt.Sprintf("Page %d/%d · %d %s", p.Page()+1, p.MaxPage()+1, p.Total(), noun)))
	if m.pageLoading {
		parts = append(parts, m.spinner.View())
	}
	return " " + strings.Join(parts, "  ")
}

// renderEmptyCollection distinguishes "nothing matches" from a failed
// load; zero matches is a normal outcome, not an error.
func (m Model) renderEmptyCollection() string {
	if m.pageLoading {
		return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+m.theme.MutedText.Render("Loading…"))
	}
	noun := "people"
	if m.state.Entity() == browse.Projects {
		noun = "projects"
	}
	msg := fmt.Sprintf("No %s match the current filters", noun)
	if m.activeFilters().IsZero() {
		msg = fmt.Sprintf("No %s in the directory yet", noun)
	}
	hint := m.theme.MutedText.Render("c clears filters · / searches")
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.SecondaryText.Render(msg), "", hint)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderPageError() string {
	noun := "people"
	if m.state.Entity() == browse.Projects {
		noun = "projects"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.DangerText.Render(fmt.Sprintf("✗ Failed to load %s", noun)),
		"",
		m.theme.MutedText.Render(truncateRunesHelper(m.pageErr.Error(), m.width-8, "…")),
		"",
		m.theme.MutedText.Render("r retries"))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}
