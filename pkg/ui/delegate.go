package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProfileDelegate renders people rows in the list layout
type ProfileDelegate struct {
	Theme Theme
}

func (d ProfileDelegate) Height() int  { return 1 }
func (d ProfileDelegate) Spacing() int { return 0 }

func (d ProfileDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d ProfileDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(ProfileItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()
	p := i.Profile

	// Layout: [sel] [●] [name] [role...] [skills] [slug]
	var rightParts []string
	rightWidth := 0

	if width > 100 && len(p.Skills) > 0 {
		skills := truncateRunesHelper(strings.Join(p.Skills, ","), 28, "…")
		badge := t.Renderer.NewStyle().
			Foreground(ColorSkillFg).
			Background(ColorBgSubtle).
			Padding(0, 1).
			Render(skills)
		rightParts = append(rightParts, badge)
		rightWidth += lipgloss.Width(badge) + 1
	}

	if width > 60 {
		slug := t.SecondaryText.Render(fmt.Sprintf("%-16s", truncateRunesHelper(p.Slug, 16, "…")))
		rightParts = append(rightParts, slug)
		rightWidth += 17
	}

	// Left side: selector + availability dot + name
	leftFixedWidth := 2 + 2 // selector(2) + dot(2)

	nameWidth := 24
	name := truncateRunesHelper(p.Name, nameWidth, "…")
	leftFixedWidth += nameWidth + 1

	// Role gets everything in between
	roleWidth := width - leftFixedWidth - rightWidth - 2
	if roleWidth < 5 {
		roleWidth = 5
	}
	role := truncateRunesHelper(p.Title, roleWidth, "…")
	if pad := roleWidth - lipgloss.Width(role); pad > 0 {
		role += strings.Repeat(" ", pad)
	}

	var leftSide strings.Builder
	if isSelected {
		leftSide.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		leftSide.WriteString("  ")
	}

	if p.OpenToWork {
		leftSide.WriteString(t.AvailableText.Render("● "))
	} else {
		leftSide.WriteString("  ")
	}

	nameStyle := t.Renderer.NewStyle().Bold(true)
	if isSelected {
		nameStyle = nameStyle.Foreground(t.Primary)
	}
	leftSide.WriteString(nameStyle.Render(padRight(name, nameWidth)))
	leftSide.WriteString(" ")

	roleStyle := t.Renderer.NewStyle().Foreground(t.Subtext)
	leftSide.WriteString(roleStyle.Render(role))

	writeRow(w, t, width, isSelected, leftSide.String(), strings.Join(rightParts, " "))
}

// ProjectDelegate renders project rows in the list layout
type ProjectDelegate struct {
	Theme Theme
}

func (d ProjectDelegate) Height() int  { return 1 }
func (d ProjectDelegate) Spacing() int { return 0 }

func (d ProjectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d ProjectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(ProjectItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	width = width - 1

	isSelected := index == m.Index()
	p := i.Project

	// Layout: [sel] [◆?] [title] [summary...] [sectors] [slug]
	var rightParts []string
	rightWidth := 0

	if width > 100 && len(p.Sectors) > 0 {
		sectors := truncateRunesHelper(strings.Join(p.Sectors, ","), 24, "…")
		badge := t.Renderer.NewStyle().
			Foreground(ColorTopicFg).
			Background(ColorBgSubtle).
			Padding(0, 1).
			Render(sectors)
		rightParts = append(rightParts, badge)
		rightWidth += lipgloss.Width(badge) + 1
	}

	if width > 60 {
		slug := t.SecondaryText.Render(fmt.Sprintf("%-16s", truncateRunesHelper(p.Slug, 16, "…")))
		rightParts = append(rightParts, slug)
		rightWidth += 17
	}

	leftFixedWidth := 2 + 2 // selector(2) + partner marker(2)

	titleWidth := 28
	title := truncateRunesHelper(p.Title, titleWidth, "…")
	leftFixedWidth += titleWidth + 1

	summaryWidth := width - leftFixedWidth - rightWidth - 2
	if summaryWidth < 5 {
		summaryWidth = 5
	}
	summary := truncateRunesHelper(p.Summary, summaryWidth, "…")
	if pad := summaryWidth - lipgloss.Width(summary); pad > 0 {
		summary += strings.Repeat(" ", pad)
	}

	var leftSide strings.Builder
	if isSelected {
		leftSide.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		leftSide.WriteString("  ")
	}

	if p.Partner != nil {
		leftSide.WriteString(t.Renderer.NewStyle().Foreground(t.Partner).Render("◆ "))
	} else {
		leftSide.WriteString("  ")
	}

	titleStyle := t.Renderer.NewStyle().Bold(true)
	if isSelected {
		titleStyle = titleStyle.Foreground(t.Primary)
	}
	leftSide.WriteString(titleStyle.Render(padRight(title, titleWidth)))
	leftSide.WriteString(" ")

	leftSide.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Render(summary))

	writeRow(w, t, width, isSelected, leftSide.String(), strings.Join(rightParts, " "))
}

// writeRow combines left and right row halves with padding, applies the
// selection background, and clamps to width.
func writeRow(w io.Writer, t Theme, width int, isSelected bool, leftSide, rightSide string) {
	leftLen := lipgloss.Width(leftSide)
	rightLen := lipgloss.Width(rightSide)
	padding := width - leftLen - rightLen
	if padding < 0 {
		padding = 0
	}

	row := leftSide + strings.Repeat(" ", padding) + rightSide

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if isSelected {
		row = rowStyle.Background(t.Highlight).Render(row)
	} else {
		row = rowStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
