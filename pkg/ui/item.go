package ui

import (
	"strings"

	"github.com/vanderheijden86/guildview/pkg/directory"
)

// ProfileItem wraps directory.Profile to implement list.Item
type ProfileItem struct {
	Profile directory.Profile
}

func (i ProfileItem) Title() string {
	return i.Profile.Name
}

func (i ProfileItem) Description() string {
	return i.Profile.Title
}

func (i ProfileItem) FilterValue() string {
	// Name plus role and facets, so the list's built-in match (when enabled)
	// behaves like the server-side search field set.
	var sb strings.Builder
	sb.WriteString(i.Profile.Name)
	if i.Profile.Title != "" {
		sb.WriteString(" ")
		sb.WriteString(i.Profile.Title)
	}
	if len(i.Profile.Skills) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(i.Profile.Skills, " "))
	}
	if len(i.Profile.Industries) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(i.Profile.Industries, " "))
	}
	return sb.String()
}

// ProjectItem wraps directory.Project to implement list.Item
type ProjectItem struct {
	Project directory.Project
}

func (i ProjectItem) Title() string {
	return i.Project.Title
}

func (i ProjectItem) Description() string {
	return i.Project.Summary
}

func (i ProjectItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Project.Title)
	if i.Project.Summary != "" {
		sb.WriteString(" ")
		sb.WriteString(i.Project.Summary)
	}
	if len(i.Project.Skills) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(i.Project.Skills, " "))
	}
	if len(i.Project.Sectors) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(i.Project.Sectors, " "))
	}
	return sb.String()
}
