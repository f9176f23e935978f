package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/guildview/pkg/directory"
	"github.com/vanderheijden86/guildview/pkg/metrics"
	"github.com/vanderheijden86/guildview/pkg/source"
)

// Store persists the directory dataset in a single SQLite file. Facet
// slices and media live in JSON text columns; the schema is owned by gv
// on both ends, so reads are strict rather than forgiving.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func initSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			slug         TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			title        TEXT,
			bio          TEXT,
			skills       TEXT,
			industries   TEXT,
			open_to_work INTEGER NOT NULL DEFAULT 0,
			photo        TEXT,
			projects     TEXT,
			experience   TEXT
		);
		CREATE TABLE IF NOT EXISTS projects (
			slug         TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			summary      TEXT,
			description  TEXT,
			skills       TEXT,
			sectors      TEXT,
			partner      TEXT,
			participants TEXT,
			icon         TEXT,
			images       TEXT,
			videos       TEXT
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored dataset wholesale inside one transaction.
// Used by gv seed; partial failure rolls back to the previous contents.
func (s *Store) ReplaceAll(ctx context.Context, ds source.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"profiles", "projects"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insertProfile, err := tx.PrepareContext(ctx, `
		INSERT INTO profiles
			(slug, name, title, bio, skills, industries, open_to_work, photo, projects, experience)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing profile insert: %w", err)
	}
	defer insertProfile.Close()

	for _, p := range ds.Profiles {
		skills, err := jsonColumn(p.Skills)
		if err != nil {
			return fmt.Errorf("profile %q: %w", p.Slug, err)
		}
		industries, err := jsonColumn(p.Industries)
		if err != nil {
			return fmt.Errorf("profile %q: %w", p.Slug, err)
		}
		photo, err := jsonColumn(p.Photo)
		if err != nil {
			return fmt.Errorf("profile %q: %w", p.Slug, err)
		}
		projects, err := jsonColumn(p.Projects)
		if err != nil {
			return fmt.Errorf("profile %q: %w", p.Slug, err)
		}
		experience, err := jsonColumn(p.Experience)
		if err != nil {
			return fmt.Errorf("profile %q: %w", p.Slug, err)
		}
		_, err = insertProfile.ExecContext(ctx,
			p.Slug, p.Name, nullableText(p.Title), nullableText(p.Bio),
			skills, industries, boolToInt(p.OpenToWork), photo, projects, experience)
		if err != nil {
			return fmt.Errorf("inserting profile %q: %w", p.Slug, err)
		}
	}

	insertProject, err := tx.PrepareContext(ctx, `
		INSERT INTO projects
			(slug, title, summary, description, skills, sectors, partner, participants, icon, images, videos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing project insert: %w", err)
	}
	defer insertProject.Close()

	for _, p := range ds.Projects {
		cols := make([]any, 0, 7)
		for _, v := range []any{p.Skills, p.Sectors, p.Partner, p.Participants, p.Icon, p.Images, p.Videos} {
			col, err := jsonColumn(v)
			if err != nil {
				return fmt.Errorf("project %q: %w", p.Slug, err)
			}
			cols = append(cols, col)
		}
		_, err = insertProject.ExecContext(ctx,
			p.Slug, p.Title, nullableText(p.Summary), nullableText(p.Description),
			cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6])
		if err != nil {
			return fmt.Errorf("inserting project %q: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// LoadDataset reads the full stored dataset. Profiles and projects load
// concurrently; WAL mode keeps the two readers independent.
func (s *Store) LoadDataset(ctx context.Context) (source.Dataset, error) {
	defer metrics.Timer(metrics.StoreLoad)()

	var ds source.Dataset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Profiles, err = s.loadProfiles(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Projects, err = s.loadProjects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return source.Dataset{}, err
	}
	return ds, nil
}

// Counts returns the stored collection sizes.
func (s *Store) Counts(ctx context.Context) (profiles, projects int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&profiles); err != nil {
		return 0, 0, fmt.Errorf("counting profiles: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&projects); err != nil {
		return 0, 0, fmt.Errorf("counting projects: %w", err)
	}
	return profiles, projects, nil
}

func (s *Store) loadProfiles(ctx context.Context) ([]directory.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, title, bio, skills, industries, open_to_work, photo, projects, experience
		FROM profiles
		ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []directory.Profile
	for rows.Next() {
		var p directory.Profile
		var title, bio, skills, industries, photo, projects, experience sql.NullString
		var openToWork int

		err := rows.Scan(&p.Slug, &p.Name, &title, &bio, &skills, &industries,
			&openToWork, &photo, &projects, &experience)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		p.Title = title.String
		p.Bio = bio.String
		p.OpenToWork = openToWork != 0
		if err := decodeColumn(skills, &p.Skills); err != nil {
			return nil, fmt.Errorf("profile %q skills: %w", p.Slug, err)
		}
		if err := decodeColumn(industries, &p.Industries); err != nil {
			return nil, fmt.Errorf("profile %q industries: %w", p.Slug, err)
		}
		if err := decodeColumn(photo, &p.Photo); err != nil {
			return nil, fmt.Errorf("profile %q photo: %w", p.Slug, err)
		}
		if err := decodeColumn(projects, &p.Projects); err != nil {
			return nil, fmt.Errorf("profile %q projects: %w", p.Slug, err)
		}
		if err := decodeColumn(experience, &p.Experience); err != nil {
			return nil, fmt.Errorf("profile %q experience: %w", p.Slug, err)
		}

		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (s *Store) loadProjects(ctx context.Context) ([]directory.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, summary, description, skills, sectors, partner, participants, icon, images, videos
		FROM projects
		ORDER BY title COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []directory.Project
	for rows.Next() {
		var p directory.Project
		var summary, description, skills, sectors, partner, participants, icon, images, videos sql.NullString

		err := rows.Scan(&p.Slug, &p.Title, &summary, &description, &skills,
			&sectors, &partner, &participants, &icon, &images, &videos)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		p.Summary = summary.String
		p.Description = description.String
		for _, col := range []struct {
			src  sql.NullString
			dst  any
			name string
		}{
			{skills, &p.Skills, "skills"},
			{sectors, &p.Sectors, "sectors"},
			{partner, &p.Partner, "partner"},
			{participants, &p.Participants, "participants"},
			{icon, &p.Icon, "icon"},
			{images, &p.Images, "images"},
			{videos, &p.Videos, "videos"},
		} {
			if err := decodeColumn(col.src, col.dst); err != nil {
				return nil, fmt.Errorf("project %q %s: %w", p.Slug, col.name, err)
			}
		}

		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// jsonColumn marshals a value for a JSON text column. Nil pointers and
// empty slices become NULL so the column reads back as the zero value.
func jsonColumn(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding column: %w", err)
	}
	text := string(raw)
	switch text {
	case "null", "[]", "{}":
		return nil, nil
	}
	return text, nil
}

// decodeColumn unmarshals a JSON text column into dst, leaving dst
// untouched for NULL or empty columns.
func decodeColumn(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
