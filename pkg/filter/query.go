package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names shared by the browse routes and the companion API.
// The topic dimension keeps its entity-specific spelling on the wire:
// industries for people, sectors for projects.
const (
	ParamSearch     = "search"
	ParamSkills     = "skills"
	ParamIndustries = "industries"
	ParamSectors    = "sectors"
	ParamOpenToWork = "openToWork"
)

// ParseQuery reads filters from query parameters. topicParam selects the
// wire name of the topic dimension (ParamIndustries or ParamSectors).
// Blank values are dropped and repeated values deduplicated, so parsing
// always yields the canonical form.
func ParseQuery(v url.Values, topicParam string) Filters {
	f := Filters{
		Search: strings.TrimSpace(v.Get(ParamSearch)),
		Skills: cleanValues(v[ParamSkills]),
		Topics: cleanValues(v[topicParam]),
	}
	if raw := v.Get(ParamOpenToWork); raw != "" {
		b, err := strconv.ParseBool(raw)
		f.OpenToWork = err == nil && b
	}
	return f
}

// Values serializes the active constraints back to query parameters under
// the same names ParseQuery reads. Inactive constraints are omitted, so a
// zero Filters serializes to an empty set.
func (f Filters) Values(topicParam string) url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set(ParamSearch, f.Search)
	}
	for _, s := range f.Skills {
		v.Add(ParamSkills, s)
	}
	for _, t := range f.Topics {
		v.Add(topicParam, t)
	}
	if f.OpenToWork {
		v.Set(ParamOpenToWork, "true")
	}
	return v
}

// Encode is shorthand for Values(topicParam).Encode().
func (f Filters) Encode(topicParam string) string {
	return f.Values(topicParam).Encode()
}

// cleanValues trims entries, drops blanks, and deduplicates preserving the
// first occurrence's position and spelling.
func cleanValues(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		key := strings.ToLower(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
