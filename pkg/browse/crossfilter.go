package browse

import (
	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
)

// CrossFilter applies the project predicate to the projects embedded in a
// displayed profile, independent of the server-paginated project
// collection. With no project-relevant constraint active the embedded list
// is returned unmodified: at least one active constraint is required
// before anything is excluded, so absent filters never empty the panel.
func CrossFilter(embedded []directory.ProjectSummary, f filter.Filters) []directory.ProjectSummary {
	if !f.ConstrainsProjects() {
		return embedded
	}
	return filter.FilterSummaries(embedded, f)
}
