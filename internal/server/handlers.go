package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/metrics"
	"github.com/vanderheijden86/guildview/pkg/paging"
)

const (
	defaultPageSize = 8
	maxPageSize     = 500
)

// listResponse is the wire shape of a collection page.
type listResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func pageOf[T any](matched []T, page, size int) listResponse[T] {
	items := paging.Window(matched, page, size)
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: len(matched), Page: page, PageSize: size}
}

// handleListPeople handles GET /api/v1/people
func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseQuery(r.URL.Query(), filter.ParamIndustries)
	page, size := parsePaging(r.URL.Query())

	profiles, _ := s.snapshot()
	matched := filter.FilterProfiles(profiles, f)
	s.respondJSON(w, http.StatusOK, pageOf(matched, page, size))
}

// handleListProjects handles GET /api/v1/projects
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	f := filter.ParseQuery(r.URL.Query(), filter.ParamSectors)
	page, size := parsePaging(r.URL.Query())

	_, projects := s.snapshot()
	matched := filter.FilterProjects(projects, f)
	s.respondJSON(w, http.StatusOK, pageOf(matched, page, size))
}

// handlePeopleFacets handles GET /api/v1/people/facets
func (s *Server) handlePeopleFacets(w http.ResponseWriter, r *http.Request) {
	profiles, _ := s.snapshot()
	s.respondJSON(w, http.StatusOK, directory.FacetsFromProfiles(profiles))
}

// handleProjectFacets handles GET /api/v1/projects/facets
func (s *Server) handleProjectFacets(w http.ResponseWriter, r *http.Request) {
	_, projects := s.snapshot()
	s.respondJSON(w, http.StatusOK, directory.FacetsFromProjects(projects))
}

// handleGetPerson handles GET /api/v1/people/{slug}
func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	profiles, _ := s.snapshot()
	for i := range profiles {
		if profiles[i].Slug == slug {
			s.respondJSON(w, http.StatusOK, profiles[i])
			return
		}
	}
	s.respondError(w, http.StatusNotFound, "profile not found")
}

// handleGetProject handles GET /api/v1/projects/{slug}
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	_, projects := s.snapshot()
	for i := range projects {
		if projects[i].Slug == slug {
			s.respondJSON(w, http.StatusOK, projects[i])
			return
		}
	}
	s.respondError(w, http.StatusNotFound, "project not found")
}

// handleMetrics handles GET /debug/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, metrics.TakeSnapshot())
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	profiles, projects := s.snapshot()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"profiles": len(profiles),
		"projects": len(projects),
	})
}

// parsePaging reads page/pageSize, falling back to sane values on junk.
func parsePaging(q url.Values) (page, size int) {
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(q.Get("pageSize"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

// respondError writes an error JSON response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
