package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/filter"
	"github.com/vanderheijden86/guildview/pkg/metrics"
)

// DefaultHTTPTimeout bounds every request; the client relies on soft
// cancellation, so a hung request must eventually return on its own.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPSource reads from the companion API, or any server honoring the
// same paths and parameter names.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns a source for the given base URL, e.g.
// "http://localhost:8370". A nil client gets a default with
// DefaultHTTPTimeout.
func NewHTTP(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q needs a scheme and host", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPSource{base: u, client: client}, nil
}

// BaseURL returns the configured server address.
func (s *HTTPSource) BaseURL() string {
	return s.base.String()
}

// Profiles fetches one filtered page of people.
func (s *HTTPSource) Profiles(ctx context.Context, f filter.Filters, page, size int) (ProfilePage, error) {
	q := f.Values(filter.ParamIndustries)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))

	var pg ProfilePage
	if err := s.getJSON(ctx, "/api/v1/people", q, &pg); err != nil {
		return ProfilePage{}, fmt.Errorf("failed to list people: %w", err)
	}
	return pg, nil
}

// Projects fetches one filtered page of projects.
func (s *HTTPSource) Projects(ctx context.Context, f filter.Filters, page, size int) (ProjectPage, error) {
	q := f.Values(filter.ParamSectors)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))

	var pg ProjectPage
	if err := s.getJSON(ctx, "/api/v1/projects", q, &pg); err != nil {
		return ProjectPage{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return pg, nil
}

// ProfileFacets fetches the people facet vocabulary.
func (s *HTTPSource) ProfileFacets(ctx context.Context) (directory.Facets, error) {
	var facets directory.Facets
	if err := s.getJSON(ctx, "/api/v1/people/facets", nil, &facets); err != nil {
		return directory.Facets{}, fmt.Errorf("failed to load people facets: %w", err)
	}
	return facets, nil
}

// ProjectFacets fetches the project facet vocabulary.
func (s *HTTPSource) ProjectFacets(ctx context.Context) (directory.Facets, error) {
	var facets directory.Facets
	if err := s.getJSON(ctx, "/api/v1/projects/facets", nil, &facets); err != nil {
		return directory.Facets{}, fmt.Errorf("failed to load project facets: %w", err)
	}
	return facets, nil
}

// ProfileBySlug fetches one profile. A missing slug yields ErrNotFound.
func (s *HTTPSource) ProfileBySlug(ctx context.Context, slug string) (*directory.Profile, error) {
	var p directory.Profile
	if err := s.getJSON(ctx, "/api/v1/people/"+url.PathEscape(slug), nil, &p); err != nil {
		return nil, fmt.Errorf("profile %q: %w", slug, err)
	}
	return &p, nil
}

// ProjectBySlug fetches one project. A missing slug yields ErrNotFound.
func (s *HTTPSource) ProjectBySlug(ctx context.Context, slug string) (*directory.Project, error) {
	var p directory.Project
	if err := s.getJSON(ctx, "/api/v1/projects/"+url.PathEscape(slug), nil, &p); err != nil {
		return nil, fmt.Errorf("project %q: %w", slug, err)
	}
	return &p, nil
}

// getJSON performs one GET and decodes the response body into dst.
func (s *HTTPSource) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	defer metrics.Timer(metrics.APIRequest)()

	u := *s.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
