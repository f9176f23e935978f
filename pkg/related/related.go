// Package related ranks directory entries by facet overlap so the detail
// view can show a "related" panel next to the current profile or project.
//
// The index is built once per dataset snapshot: every entry becomes a
// vector over the combined skill/topic vocabulary, and queries score
// candidates by cosine similarity against the anchor's facets.
package related

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/guildview/pkg/directory"
)

// DefaultLimit bounds the related panel when the caller passes limit <= 0.
const DefaultLimit = 4

// Match pairs an entry with its similarity score against the anchor.
// Scores are cosine values in (0, 1]; zero-overlap candidates never appear.
type Match struct {
	Slug  string
	Title string
	Score float64
}

// Index holds precomputed facet vectors for one dataset snapshot.
// Build it with NewIndex and rebuild it whenever the dataset reloads.
type Index struct {
	vocab    map[string]int
	profiles []entry
	projects []entry
}

type entry struct {
	slug  string
	title string
	vec   []float64
	norm  float64
}

// NewIndex builds the shared vocabulary and per-entry vectors.
func NewIndex(profiles []directory.Profile, projects []directory.Project) *Index {
	ix := &Index{vocab: make(map[string]int)}

	// First pass assigns vocabulary slots so all vectors share one layout.
	for _, p := range profiles {
		ix.addTerms(p.Skills)
		ix.addTerms(p.Industries)
	}
	for _, p := range projects {
		ix.addTerms(p.Skills)
		ix.addTerms(p.Sectors)
	}

	for _, p := range profiles {
		ix.profiles = append(ix.profiles, ix.newEntry(p.Slug, p.Name, p.Skills, p.Industries))
	}
	for _, p := range projects {
		ix.projects = append(ix.projects, ix.newEntry(p.Slug, p.Title, p.Skills, p.Sectors))
	}
	return ix
}

// ProfilesLike returns up to limit profiles ranked by similarity to the
// given facets. The excluded slug (usually the anchor itself) never appears.
func (ix *Index) ProfilesLike(skills, topics []string, exclude string, limit int) []Match {
	return ix.rank(ix.profiles, skills, topics, exclude, limit)
}

// ProjectsLike is ProfilesLike for the project side of the index.
func (ix *Index) ProjectsLike(skills, topics []string, exclude string, limit int) []Match {
	return ix.rank(ix.projects, skills, topics, exclude, limit)
}

func (ix *Index) rank(entries []entry, skills, topics []string, exclude string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := ix.vector(skills, topics)
	qNorm := floats.Norm(q, 2)
	if qNorm == 0 {
		return nil
	}

	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		if e.norm == 0 || strings.EqualFold(e.slug, exclude) {
			continue
		}
		score := floats.Dot(q, e.vec) / (qNorm * e.norm)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Slug: e.slug, Title: e.title, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Slug < matches[j].Slug // Alphabetical for ties
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (ix *Index) addTerms(terms []string) {
	for _, t := range terms {
		key := normalizeTerm(t)
		if key == "" {
			continue
		}
		if _, ok := ix.vocab[key]; !ok {
			ix.vocab[key] = len(ix.vocab)
		}
	}
}

func (ix *Index) newEntry(slug, title string, skills, topics []string) entry {
	vec := ix.vector(skills, topics)
	return entry{slug: slug, title: title, vec: vec, norm: floats.Norm(vec, 2)}
}

// vector projects facet terms onto the vocabulary. Unknown terms are
// dropped, repeated terms count once.
func (ix *Index) vector(skills, topics []string) []float64 {
	vec := make([]float64, len(ix.vocab))
	for _, group := range [][]string{skills, topics} {
		for _, t := range group {
			key := normalizeTerm(t)
			if key == "" {
				continue
			}
			if slot, ok := ix.vocab[key]; ok {
				vec[slot] = 1
			}
		}
	}
	return vec
}

func normalizeTerm(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
