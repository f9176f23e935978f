package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Domain accents
	Available lipgloss.AdaptiveColor // open-to-work flag
	Partner   lipgloss.AdaptiveColor
	Skill     lipgloss.AdaptiveColor
	Topic     lipgloss.AdaptiveColor // industries / sectors
	Danger    lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Pre-computed styles shared by the delegates and the card renderer.
	// Created once at startup instead of per-frame.
	MutedText     lipgloss.Style // page info, counts, media tallies
	SecondaryText lipgloss.Style // slugs, organizations
	PrimaryBold   lipgloss.Style // selection indicator, names
	AvailableText lipgloss.Style // open-to-work dot
	DangerText    lipgloss.Style // inline fetch failures
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		// Dracula / Light Mode equivalent; light colors tuned for WCAG AA
		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Available: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Partner:   lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}, // Blue
		Skill:     lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Topic:     lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.AvailableText = r.NewStyle().Foreground(t.Available).Bold(true)
	t.DangerText = r.NewStyle().Foreground(t.Danger)
	t.TabActive = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	t.TabInactive = r.NewStyle().
		Foreground(t.Subtext).
		Padding(0, 1)

	return t
}

// TestTheme returns a theme bound to a default renderer for tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
