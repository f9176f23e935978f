package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/guildview/pkg/browse"
	"github.com/vanderheijden86/guildview/pkg/source"
)

// renderDetailContent produces the viewport body for the detail surface.
// Entities render as one markdown document passed through glamour, the
// way the collection's richer fields deserve; loading and failure states
// stay plain styled text.
func (m *Model) renderDetailContent() string {
	if m.detailErr != nil {
		if errors.Is(m.detailErr, source.ErrNotFound) {
			return m.renderDetailNotFound()
		}
		return m.renderDetailFailure()
	}

	if m.state.Entity() == browse.People {
		if m.detailProfile == nil {
			return m.renderDetailLoading()
		}
		return m.renderer.Render(m.profileDocument())
	}
	if m.detailProject == nil {
		return m.renderDetailLoading()
	}
	return m.renderer.Render(m.projectDocument())
}

func (m *Model) profileDocument() string {
	p := m.detailProfile
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n", p.Name))
	if p.Title != "" {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", p.Title))
	}

	avail := "·"
	if p.OpenToWork {
		avail = "● open to work"
	}
	sb.WriteString("| Slug | Availability | Projects |\n|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| `%s` | %s | %d |\n\n", p.Slug, avail, len(p.Projects)))

	if len(p.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("**Skills:** %s\n\n", strings.Join(p.Skills, ", ")))
	}
	if len(p.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("**Industries:** %s\n\n", strings.Join(p.Industries, ", ")))
	}

	if p.Bio != "" {
		sb.WriteString("### Bio\n")
		sb.WriteString(p.Bio + "\n\n")
	}

	if len(p.Experience) > 0 {
		sb.WriteString("### Experience\n")
		for _, e := range p.Experience {
			sb.WriteString(fmt.Sprintf("- **%s**, %s", e.Role, e.Organization))
			if r := FormatExperienceRange(e); r != "" {
				sb.WriteString(" (" + r + ")")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(p.Projects) > 0 {
		// The projects tab's filters narrow this embedded panel too; with
		// no project constraint active everything shows.
		visible := browse.CrossFilter(p.Projects, m.filters[browse.Projects])
		if len(visible) < len(p.Projects) {
			sb.WriteString(fmt.Sprintf("### Select Projects (%d of %d, project filters apply)\n", len(visible), len(p.Projects)))
		} else {
			sb.WriteString(fmt.Sprintf("### Select Projects (%d)\n", len(p.Projects)))
		}
		for _, ps := range visible {
			sb.WriteString(fmt.Sprintf("- **%s** `%s`", ps.Title, ps.Slug))
			if ps.Summary != "" {
				sb.WriteString(": " + ps.Summary)
			}
			sb.WriteString("\n")
		}
		if len(visible) == 0 {
			sb.WriteString("*No embedded projects match the active project filters.*\n")
		}
		sb.WriteString("\n")
	}

	if m.related != nil {
		if matches := m.related.ProfilesLike(p.Skills, p.Industries, p.Slug, 4); len(matches) > 0 {
			sb.WriteString("### Related People\n")
			for _, r := range matches {
				sb.WriteString(fmt.Sprintf("- %s `%s`\n", r.Title, r.Slug))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) projectDocument() string {
	p := m.detailProject
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n", p.Title))
	if p.Partner != nil {
		sb.WriteString(fmt.Sprintf("**With %s**\n\n", p.Partner.Name))
	}

	media := FormatMediaCounts(p.Images, p.Videos)
	if media == "" {
		media = "·"
	}
	sb.WriteString("| Slug | Media | Participants |\n|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| `%s` | %s | %d |\n\n", p.Slug, media, len(p.Participants)))

	if len(p.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("**Skills:** %s\n\n", strings.Join(p.Skills, ", ")))
	}
	if len(p.Sectors) > 0 {
		sb.WriteString(fmt.Sprintf("**Sectors:** %s\n\n", strings.Join(p.Sectors, ", ")))
	}

	if p.Summary != "" {
		sb.WriteString("*" + p.Summary + "*\n\n")
	}
	if p.Description != "" {
		sb.WriteString("### Description\n")
		sb.WriteString(p.Description + "\n\n")
	}

	if len(p.Participants) > 0 {
		sb.WriteString(fmt.Sprintf("### Participants (%d)\n", len(p.Participants)))
		for _, pt := range p.Participants {
			sb.WriteString(fmt.Sprintf("- %s `%s`\n", pt.Name, pt.Slug))
		}
		sb.WriteString("\n")
	}

	if m.related != nil {
		if matches := m.related.ProjectsLike(p.Skills, p.Sectors, p.Slug, 4); len(matches) > 0 {
			sb.WriteString("### Related Projects\n")
			for _, r := range matches {
				sb.WriteString(fmt.Sprintf("- %s `%s`\n", r.Title, r.Slug))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) renderDetailLoading() string {
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
		m.spinner.View()+" "+m.theme.MutedText.Render("Loading "+m.state.Slug()+"…"))
}

// renderDetailNotFound is the terminal state for a slug that does not
// resolve: no retry, no layout unwind, esc leaves.
func (m *Model) renderDetailNotFound() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.DangerText.Render(fmt.Sprintf("✗ No entry at %s/%s", m.state.Entity(), m.state.Slug())),
		"",
		m.theme.MutedText.Render("The link may be stale. esc returns to the collection."))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderDetailFailure() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.DangerText.Render("✗ Failed to load "+m.state.Slug()),
		"",
		m.theme.MutedText.Render(truncateRunesHelper(m.detailErr.Error(), m.width-8, "…")),
		"",
		m.theme.MutedText.Render("r retries · esc goes back"))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}
