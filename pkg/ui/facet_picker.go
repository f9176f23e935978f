package ui

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// FacetPickerModel is a fuzzy-search popup for toggling facet values. It is
// multi-select: enter flips the highlighted value and the popup stays open,
// so several skills or topics can be stacked in one visit.
type FacetPickerModel struct {
	title         string
	allValues     []string
	active        map[string]bool
	filtered      []string
	input         textinput.Model
	selectedIndex int
	width         int
	height        int
	theme         Theme
}

// NewFacetPickerModel creates an empty picker; Open populates it.
func NewFacetPickerModel(theme Theme) FacetPickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 50
	ti.Width = 30
	ti.Focus()

	return FacetPickerModel{
		input: ti,
		theme: theme,
	}
}

// Open loads one facet vocabulary into the picker and clears the query.
// active carries the values already applied so they render with a check.
func (m *FacetPickerModel) Open(title string, values, active []string) {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	m.title = title
	m.allValues = sorted
	m.active = make(map[string]bool, len(active))
	for _, v := range active {
		m.active[v] = true
	}
	m.input.SetValue("")
	m.selectedIndex = 0
	m.filterValues()
}

// SetActive refreshes the check markers after the caller toggled a value.
func (m *FacetPickerModel) SetActive(active []string) {
	m.active = make(map[string]bool, len(active))
	for _, v := range active {
		m.active[v] = true
	}
}

// SetSize updates the picker dimensions
func (m *FacetPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *FacetPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *FacetPickerModel) MoveDown() {
	if m.selectedIndex < len(m.filtered)-1 {
		m.selectedIndex++
	}
}

// SelectedValue returns the currently highlighted facet value
func (m *FacetPickerModel) SelectedValue() string {
	if len(m.filtered) == 0 || m.selectedIndex >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.selectedIndex]
}

// UpdateInput processes a key message for the text input
func (m *FacetPickerModel) UpdateInput(msg interface{}) {
	m.input, _ = m.input.Update(msg)
	m.filterValues()
}

// filterValues narrows the vocabulary by fuzzy-matching the query
func (m *FacetPickerModel) filterValues() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.allValues
		if m.selectedIndex >= len(m.filtered) {
			m.selectedIndex = 0
		}
		return
	}

	type scored struct {
		value string
		score int
	}

	var matches []scored
	for _, v := range m.allValues {
		if score := fuzzyScore(v, query); score > 0 {
			matches = append(matches, scored{v, score})
		}
	}

	// Sort by score (higher is better), then alphabetically
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].value < matches[j].value
	})

	m.filtered = make([]string, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.value
	}

	// Keep selection in bounds
	if m.selectedIndex >= len(m.filtered) {
		m.selectedIndex = len(m.filtered) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
}

// fuzzyScore returns a score for how well query matches value (0 = no match)
// Uses fzf-style scoring: consecutive matches, word boundary bonuses
func fuzzyScore(value, query string) int {
	value = strings.ToLower(value)
	query = strings.ToLower(query)

	// Exact match gets highest score
	if value == query {
		return 1000
	}

	// Prefix match gets high score
	if strings.HasPrefix(value, query) {
		return 500 + len(query)
	}

	// Contains match
	if strings.Contains(value, query) {
		return 200 + len(query)
	}

	// Fuzzy subsequence match
	vi, qi := 0, 0
	score := 0
	consecutive := 0
	lastMatchIdx := -1

	for vi < len(value) && qi < len(query) {
		if value[vi] == query[qi] {
			qi++
			matchScore := 10

			// Bonus for consecutive matches
			if lastMatchIdx == vi-1 {
				consecutive++
				matchScore += consecutive * 5
			} else {
				consecutive = 0
			}

			// Bonus for word boundary match
			if vi == 0 || !unicode.IsLetter(rune(value[vi-1])) {
				matchScore += 15
			}

			score += matchScore
			lastMatchIdx = vi
		}
		vi++
	}

	// Only count as match if all query chars were found
	if qi == len(query) {
		return score
	}
	return 0
}

// ActiveCount returns how many values are currently toggled on
func (m *FacetPickerModel) ActiveCount() int {
	return len(m.active)
}

// View renders the facet picker overlay
func (m *FacetPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 44
	if m.width < 54 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	maxVisible := 10
	if m.height < 15 {
		maxVisible = m.height - 7
	}
	if maxVisible < 3 {
		maxVisible = 3
	}

	var lines []string

	// Title
	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	title := m.title
	if n := len(m.active); n > 0 {
		title += "  ·  " + itoa(n) + " active"
	}
	lines = append(lines, titleStyle.Render(title))
	lines = append(lines, "")

	// Search input
	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(boxWidth - 6)
	lines = append(lines, inputStyle.Render(m.input.View()))
	lines = append(lines, "")

	// Value list with scroll
	if len(m.filtered) == 0 {
		dimStyle := t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true)
		lines = append(lines, dimStyle.Render("  No matching values"))
	} else {
		// Calculate visible window
		start := 0
		if m.selectedIndex >= maxVisible {
			start = m.selectedIndex - maxVisible + 1
		}
		end := start + maxVisible
		if end > len(m.filtered) {
			end = len(m.filtered)
		}

		for i := start; i < end; i++ {
			value := m.filtered[i]
			isSelected := i == m.selectedIndex

			itemStyle := t.Renderer.NewStyle()
			if isSelected {
				itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
			} else {
				itemStyle = itemStyle.Foreground(t.Base.GetForeground())
			}

			prefix := "  "
			if isSelected {
				prefix = "> "
			}
			marker := "  "
			if m.active[value] {
				marker = t.AvailableText.Render("✓") + " "
			}

			displayValue := truncateRunesHelper(value, boxWidth-10, "...")
			lines = append(lines, prefix+marker+itemStyle.Render(displayValue))
		}

		// Show count if scrolling
		if len(m.filtered) > maxVisible {
			countStyle := t.Renderer.NewStyle().
				Foreground(t.Secondary).
				Italic(true)
			lines = append(lines, "")
			lines = append(lines, countStyle.Render(
				"  "+strings.Repeat(" ", boxWidth/2-10)+
					"("+itoa(m.selectedIndex+1)+"/"+itoa(len(m.filtered))+")",
			))
		}
	}

	// Footer with keybindings
	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("↑/↓: navigate | enter: toggle | esc: close"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	box := boxStyle.Render(content)

	// Center in viewport
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// InputValue returns the current input value
func (m *FacetPickerModel) InputValue() string {
	return m.input.Value()
}

// FilteredCount returns the number of values passing the query
func (m *FacetPickerModel) FilteredCount() int {
	return len(m.filtered)
}
