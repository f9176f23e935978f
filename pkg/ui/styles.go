package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors - Light mode uses darker colors for contrast on white backgrounds
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	// Primary accent colors
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Facet badge colors
	ColorSkillFg = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSkillBg = lipgloss.AdaptiveColor{Light: "#D1ECF1", Dark: "#1A3344"}
	ColorTopicFg = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorTopicBg = lipgloss.AdaptiveColor{Light: "#FFE8CC", Dark: "#3D2A1A"}

	// Open-to-work badge (green on subtle green)
	ColorAvailableFg = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorAvailableBg = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}

	// Partner badge (blue on subtle blue)
	ColorPartnerFg = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}
	ColorPartnerBg = lipgloss.AdaptiveColor{Light: "#CCE5FF", Dark: "#1A2A44"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - Cards and split layouts
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels and cards
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for the selected card
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING - Polished, consistent badge styles
// ══════════════════════════════════════════════════════════════════════════════

// RenderSkillBadge returns a styled skill tag
func RenderSkillBadge(skill string) string {
	return lipgloss.NewStyle().
		Foreground(ColorSkillFg).
		Background(ColorSkillBg).
		Padding(0, 1).
		Render(skill)
}

// RenderTopicBadge returns a styled industry/sector tag
func RenderTopicBadge(topic string) string {
	return lipgloss.NewStyle().
		Foreground(ColorTopicFg).
		Background(ColorTopicBg).
		Padding(0, 1).
		Render(topic)
}

// RenderAvailableBadge returns the open-to-work badge
func RenderAvailableBadge() string {
	return lipgloss.NewStyle().
		Foreground(ColorAvailableFg).
		Background(ColorAvailableBg).
		Bold(true).
		Padding(0, 1).
		Render("OPEN TO WORK")
}

// RenderPartnerBadge returns a partner badge like "◆ Studio Droom"
func RenderPartnerBadge(name string) string {
	return lipgloss.NewStyle().
		Foreground(ColorPartnerFg).
		Background(ColorPartnerBg).
		Padding(0, 1).
		Render("◆ " + name)
}

// RenderFilterCountBadge returns the active-filter badge like "3 filters",
// or "" when no constraint is active.
func RenderFilterCountBadge(n int) string {
	if n <= 0 {
		return ""
	}
	label := fmt.Sprintf("%d filters", n)
	if n == 1 {
		label = "1 filter"
	}
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Background(ColorBgSubtle).
		Padding(0, 1).
		Render(label)
}

// renderBadgeRow renders values as badges until maxWidth is exhausted,
// appending a muted "+n" for whatever did not fit. All badges share one
// renderer so skills and topics rows stay visually consistent.
func renderBadgeRow(values []string, maxWidth int, render func(string) string) string {
	if len(values) == 0 || maxWidth <= 0 {
		return ""
	}
	var (
		parts []string
		used  int
	)
	for i, v := range values {
		badge := render(v)
		w := lipgloss.Width(badge)
		if used+w+1 > maxWidth {
			rest := fmt.Sprintf("+%d", len(values)-i)
			if used+len(rest)+1 <= maxWidth {
				parts = append(parts, lipgloss.NewStyle().Foreground(ColorMuted).Render(rest))
			}
			break
		}
		parts = append(parts, badge)
		used += w + 1
	}
	return strings.Join(parts, " ")
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// RenderSubtleDivider renders a more subtle divider using dots
func RenderSubtleDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("·", width))
}
