// Package filter implements the directory's facet filter model: a pure
// conjunction of independent predicates over profiles and projects. Matching
// has no side effects and no hidden state, so the same Filters value applied
// twice always selects the same records.
package filter

import (
	"strings"

	"github.com/vanderheijden86/guildview/pkg/directory"
)

// Filters is the complete set of user-adjustable constraints for one entity
// collection. The zero value matches every record.
type Filters struct {
	// Search is matched case-insensitively as a substring against a fixed
	// per-entity field set. Empty means no text constraint.
	Search string

	// Skills keeps a record when its skill set intersects the selection.
	// An empty selection passes everything; intersection, not containment.
	Skills []string

	// Topics is the second facet dimension: industries for people,
	// sectors for projects. Same intersection semantics as Skills.
	Topics []string

	// OpenToWork, when set, keeps only profiles flagged as open to new
	// collaborations. Projects ignore it.
	OpenToWork bool
}

// IsZero reports whether no constraint is active.
func (f Filters) IsZero() bool {
	return f.Search == "" && len(f.Skills) == 0 && len(f.Topics) == 0 && !f.OpenToWork
}

// CountActive returns the number of active constraints: one per selected
// facet value, plus one each for a search term and the open-to-work flag.
// The browse header uses it for the "n filters" badge.
func (f Filters) CountActive() int {
	n := len(f.Skills) + len(f.Topics)
	if f.Search != "" {
		n++
	}
	if f.OpenToWork {
		n++
	}
	return n
}

// ConstrainsProjects reports whether any project-relevant constraint is
// active. OpenToWork is people-only and does not count.
func (f Filters) ConstrainsProjects() bool {
	return f.Search != "" || len(f.Skills) > 0 || len(f.Topics) > 0
}

// Clone returns a deep copy so callers can mutate facet selections without
// aliasing the original slices.
func (f Filters) Clone() Filters {
	out := f
	if len(f.Skills) > 0 {
		out.Skills = append([]string(nil), f.Skills...)
	}
	if len(f.Topics) > 0 {
		out.Topics = append([]string(nil), f.Topics...)
	}
	return out
}

// ToggleSkill adds the skill to the selection, or removes it if present.
func (f Filters) ToggleSkill(skill string) Filters {
	out := f.Clone()
	out.Skills = toggleValue(out.Skills, skill)
	return out
}

// ToggleTopic adds the topic to the selection, or removes it if present.
func (f Filters) ToggleTopic(topic string) Filters {
	out := f.Clone()
	out.Topics = toggleValue(out.Topics, topic)
	return out
}

func toggleValue(set []string, v string) []string {
	for i, existing := range set {
		if strings.EqualFold(existing, v) {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

// MatchProfile reports whether the profile passes every active constraint.
// Search covers name, title, bio, and the individual skill strings.
func MatchProfile(p directory.Profile, f Filters) bool {
	if !searchMatches(f.Search, profileSearchFields(p)...) {
		return false
	}
	if !intersects(p.Skills, f.Skills) {
		return false
	}
	if !intersects(p.Industries, f.Topics) {
		return false
	}
	if f.OpenToWork && !p.OpenToWork {
		return false
	}
	return true
}

// MatchProject reports whether the project passes every active constraint.
// Search covers title, summary, description, and the individual skill strings.
func MatchProject(p directory.Project, f Filters) bool {
	if !searchMatches(f.Search, projectSearchFields(p)...) {
		return false
	}
	if !intersects(p.Skills, f.Skills) {
		return false
	}
	if !intersects(p.Sectors, f.Topics) {
		return false
	}
	return true
}

// MatchSummary applies the project predicate to an embedded project summary.
func MatchSummary(s directory.ProjectSummary, f Filters) bool {
	if !searchMatches(f.Search, summarySearchFields(s)...) {
		return false
	}
	if !intersects(s.Skills, f.Skills) {
		return false
	}
	if !intersects(s.Sectors, f.Topics) {
		return false
	}
	return true
}

// FilterProfiles returns the profiles passing f, preserving order. The input
// slice is never mutated; with no active constraints it is returned as is.
func FilterProfiles(in []directory.Profile, f Filters) []directory.Profile {
	if f.IsZero() {
		return in
	}
	out := make([]directory.Profile, 0, len(in))
	for _, p := range in {
		if MatchProfile(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// FilterProjects returns the projects passing f, preserving order.
func FilterProjects(in []directory.Project, f Filters) []directory.Project {
	if f.IsZero() {
		return in
	}
	out := make([]directory.Project, 0, len(in))
	for _, p := range in {
		if MatchProject(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// FilterSummaries returns the embedded summaries passing f, preserving order.
func FilterSummaries(in []directory.ProjectSummary, f Filters) []directory.ProjectSummary {
	if f.IsZero() {
		return in
	}
	out := make([]directory.ProjectSummary, 0, len(in))
	for _, s := range in {
		if MatchSummary(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func profileSearchFields(p directory.Profile) []string {
	fields := make([]string, 0, 3+len(p.Skills))
	fields = append(fields, p.Name, p.Title, p.Bio)
	return append(fields, p.Skills...)
}

func projectSearchFields(p directory.Project) []string {
	fields := make([]string, 0, 3+len(p.Skills))
	fields = append(fields, p.Title, p.Summary, p.Description)
	return append(fields, p.Skills...)
}

func summarySearchFields(s directory.ProjectSummary) []string {
	fields := make([]string, 0, 2+len(s.Skills))
	fields = append(fields, s.Title, s.Summary)
	return append(fields, s.Skills...)
}

// searchMatches reports whether any field contains term, case-insensitively.
// An empty term always matches.
func searchMatches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// intersects reports whether the record's values share at least one member
// with the wanted selection. An empty selection passes.
func intersects(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
