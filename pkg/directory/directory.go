// Package directory defines the data model for the guild directory: people
// profiles, the projects they participate in, and the facet vocabularies the
// browse surfaces filter on. Slugs are the sole identity keys; everything that
// routes, looks up, or prefetches an entity does so by slug.
package directory

// Profile is one person in the directory.
type Profile struct {
	// Slug is the stable unique identifier used for routing and lookup.
	// It never changes across fetches.
	Slug string `json:"slug"`

	Name  string `json:"name"`
	Title string `json:"title,omitempty"`

	// Bio is markdown.
	Bio string `json:"bio,omitempty"`

	Skills     []string `json:"skills,omitempty"`
	Industries []string `json:"industries,omitempty"`

	// OpenToWork marks the person as available for new collaborations.
	OpenToWork bool `json:"openToWork,omitempty"`

	Photo *MediaItem `json:"photo,omitempty"`

	// Projects is the ordered "select projects" panel embedded in the
	// profile document, rich enough to filter on without a fetch.
	Projects []ProjectSummary `json:"projects,omitempty"`

	Experience []Experience `json:"experience,omitempty"`
}

// Experience is one role in a profile's history. Dates are free-form
// strings as entered ("2021", "Mar 2021"); an empty End means current.
type Experience struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
}

// Project is one project in the directory.
type Project struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`

	// Summary is the short teaser line; Description is the long
	// markdown body shown in the detail view.
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`

	Skills  []string `json:"skills,omitempty"`
	Sectors []string `json:"sectors,omitempty"`

	// Partner is nil when the project has no external partner.
	Partner *Partner `json:"partner,omitempty"`

	Participants []Participant `json:"participants,omitempty"`

	Icon   *MediaItem `json:"icon,omitempty"`
	Images MediaList  `json:"images,omitempty"`
	Videos MediaList  `json:"videos,omitempty"`
}

// Partner is the external organization a project was built with.
type Partner struct {
	Name string     `json:"name"`
	Logo *MediaItem `json:"logo,omitempty"`
}

// Participant is the profile subset embedded in a project document.
type Participant struct {
	Slug  string     `json:"slug"`
	Name  string     `json:"name"`
	Photo *MediaItem `json:"photo,omitempty"`
}

// ProjectSummary is the project subset embedded in a profile document.
// It carries enough fields for the embedded-project filter to evaluate
// the project predicate locally.
type ProjectSummary struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Skills  []string `json:"skills,omitempty"`
	Sectors []string `json:"sectors,omitempty"`
}

// Facets is the facet vocabulary for one entity collection, fetched once
// per session. Topics holds industries for people and sectors for projects.
type Facets struct {
	Skills []string `json:"skills"`
	Topics []string `json:"topics"`
}

// IsEmpty reports whether the vocabulary has no entries at all.
func (f Facets) IsEmpty() bool {
	return len(f.Skills) == 0 && len(f.Topics) == 0
}

// ProfileSlugs returns the ordered slugs of the given profiles.
func ProfileSlugs(profiles []Profile) []string {
	slugs := make([]string, len(profiles))
	for i, p := range profiles {
		slugs[i] = p.Slug
	}
	return slugs
}

// ProjectSlugs returns the ordered slugs of the given projects.
func ProjectSlugs(projects []Project) []string {
	slugs := make([]string, len(projects))
	for i, p := range projects {
		slugs[i] = p.Slug
	}
	return slugs
}
