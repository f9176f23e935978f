package directory

import (
	"sort"
	"strings"
)

// FacetsFromProfiles derives the selectable people vocabulary from a
// dataset snapshot: every skill and industry that appears, deduplicated
// case-insensitively with the first-seen spelling kept, sorted.
func FacetsFromProfiles(profiles []Profile) Facets {
	var skills, topics collector
	for _, p := range profiles {
		skills.add(p.Skills)
		topics.add(p.Industries)
	}
	return Facets{Skills: skills.sorted(), Topics: topics.sorted()}
}

// FacetsFromProjects derives the project vocabulary: skills and sectors.
func FacetsFromProjects(projects []Project) Facets {
	var skills, topics collector
	for _, p := range projects {
		skills.add(p.Skills)
		topics.add(p.Sectors)
	}
	return Facets{Skills: skills.sorted(), Topics: topics.sorted()}
}

// collector accumulates facet values, deduplicating case-insensitively
// while keeping the first-seen spelling.
type collector struct {
	seen   map[string]struct{}
	values []string
}

func (c *collector) add(values []string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if c.seen == nil {
			c.seen = make(map[string]struct{})
		}
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		c.values = append(c.values, v)
	}
}

func (c *collector) sorted() []string {
	sort.Slice(c.values, func(i, j int) bool {
		return strings.ToLower(c.values[i]) < strings.ToLower(c.values[j])
	})
	return c.values
}
