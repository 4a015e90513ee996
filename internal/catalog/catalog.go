// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps an on-disk archive of project records the user has
// explicitly saved. Records land in SQLite with an FTS5 index over title and
// abstract, so saved projects stay searchable without touching the API. The
// API client never reads from here.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gtr/internal/format"
	"github.com/pdiddy/gtr/pkg/gtr"
)

// DefaultLimit bounds Search and List when the caller passes no limit.
const DefaultLimit = 20

const dateFmt = "2006-01-02"

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			abstract TEXT,
			value_pounds REAL,
			fund_start TEXT,
			fund_end TEXT,
			search_query TEXT,
			saved_at TEXT NOT NULL,
			raw TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_saved_at ON projects(saved_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='projects_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE projects_fts USING fts5(title, abstract, content=projects, content_rowid=rowid)`,
			`CREATE TRIGGER projects_ai AFTER INSERT ON projects BEGIN
				INSERT INTO projects_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER projects_ad AFTER DELETE ON projects BEGIN
				INSERT INTO projects_fts(projects_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER projects_au AFTER UPDATE ON projects BEGIN
				INSERT INTO projects_fts(projects_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO projects_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save inserts or updates records, tagging each with the query that found
// it. Progress goes to w, one line per record. Returns how many records
// were written.
func (s *Store) Save(ctx context.Context, query string, projects []gtr.Project, w io.Writer) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO projects (id, title, abstract, value_pounds, fund_start, fund_end, search_query, saved_at, raw)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract,
			value_pounds=excluded.value_pounds, fund_start=excluded.fund_start,
			fund_end=excluded.fund_end, search_query=excluded.search_query,
			saved_at=excluded.saved_at, raw=excluded.raw`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	savedAt := time.Now().UTC().Format(time.RFC3339)
	saved := 0
	for _, p := range projects {
		if p.ID() == "" {
			fmt.Fprintln(w, "skipped a record without an id")
			continue
		}

		raw, err := json.Marshal(p)
		if err != nil {
			return saved, fmt.Errorf("encoding project %s: %w", p.ID(), err)
		}

		value, _ := p.FundValuePounds()
		start := ""
		if ms, ok := p.FundStart(); ok {
			start = time.UnixMilli(ms).UTC().Format(dateFmt)
		}
		end := ""
		if ms, ok := p.FundEnd(); ok {
			end = time.UnixMilli(ms).UTC().Format(dateFmt)
		}

		_, err = stmt.ExecContext(ctx,
			p.ID(), p.Title(), p.AbstractText(), value, start, end,
			query, savedAt, string(raw))
		if err != nil {
			return saved, fmt.Errorf("saving project %s: %w", p.ID(), err)
		}

		fmt.Fprintf(w, "saved %s  %s\n", p.ID(), p.Title())
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return saved, nil
}

// Entry is one catalog row without the raw record.
type Entry struct {
	ID          string
	Title       string
	Abstract    string
	ValuePounds float64
	FundStart   string
	FundEnd     string
	SearchQuery string
	SavedAt     time.Time
}

// Get returns the full saved record for id.
func (s *Store) Get(ctx context.Context, id string) (gtr.Project, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT raw FROM projects WHERE id = ?`, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s is not in the catalog", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", id, err)
	}

	var p gtr.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", id, err)
	}
	return p, nil
}

// Search runs an FTS5 match over titles and abstracts.
func (s *Store) Search(ctx context.Context, match string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.title, p.abstract, p.value_pounds, p.fund_start, p.fund_end, p.search_query, p.saved_at
		 FROM projects_fts
		 JOIN projects p ON p.rowid = projects_fts.rowid
		 WHERE projects_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List returns the most recently saved entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, abstract, value_pounds, fund_start, fund_end, search_query, saved_at
		 FROM projects
		 ORDER BY saved_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt string
		if err := rows.Scan(&e.ID, &e.Title, &e.Abstract, &e.ValuePounds,
			&e.FundStart, &e.FundEnd, &e.SearchQuery, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
			e.SavedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Export writes every saved record to w, oldest first, as YAML (the
// default) or JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, kind string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raw FROM projects ORDER BY saved_at, rowid`)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	defer rows.Close()

	var projects []gtr.Project
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("scanning catalog row: %w", err)
		}
		var p gtr.Project
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return fmt.Errorf("decoding saved record: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	switch kind {
	case "", "yaml":
		return format.YAML(projects, w)
	case "json":
		return format.JSON(projects, w)
	default:
		return fmt.Errorf("unknown export format %q", kind)
	}
}
