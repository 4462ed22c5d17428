// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted patterns in a SQLite index and
// supports full-text retrieval over their agents.
// Implements: prd004-pattern-catalog (R1-R5);
//
//	docs/ARCHITECTURE § Pattern Catalog.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/agento/pkg/types"
)

const (
	normalizedDir = "normalized"
	indexDir      = "index"
	dbFile        = "agento.db"
)

// Store manages the pattern catalog SQLite database.
type Store struct {
	db          *sql.DB
	catalogDir  string
	patternsDir string
	maxResults  int
}

// NewStore opens or creates the catalog database at catalogDir/index/agento.db,
// creating the schema when absent.
func NewStore(cfg types.CatalogConfig, patternsDir string) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:          db,
		catalogDir:  cfg.CatalogDir,
		patternsDir: patternsDir,
		maxResults:  maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS patterns (
			id TEXT PRIMARY KEY,
			readable_name TEXT NOT NULL UNIQUE,
			framework TEXT NOT NULL,
			source_file TEXT,
			title TEXT,
			description TEXT,
			workflow_type TEXT,
			agent_count INTEGER,
			task_count INTEGER,
			tool_count INTEGER,
			extracted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS agents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			pattern_id TEXT NOT NULL REFERENCES patterns(id) ON DELETE CASCADE,
			name TEXT,
			role TEXT,
			goal TEXT,
			language_model TEXT,
			UNIQUE(pattern_id, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agents_pattern_id ON agents(pattern_id)`,
		`CREATE INDEX IF NOT EXISTS idx_patterns_framework ON patterns(framework)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			readable_name TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over agent text, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='agents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE agents_fts USING fts5(name, role, goal, content=agents, content_rowid=rowid)`,
			`CREATE TRIGGER agents_ai AFTER INSERT ON agents BEGIN
				INSERT INTO agents_fts(rowid, name, role, goal) VALUES (new.rowid, new.name, new.role, new.goal);
			END`,
			`CREATE TRIGGER agents_ad AFTER DELETE ON agents BEGIN
				INSERT INTO agents_fts(agents_fts, rowid, name, role, goal) VALUES('delete', old.rowid, old.name, old.role, old.goal);
			END`,
			`CREATE TRIGGER agents_au AFTER UPDATE ON agents BEGIN
				INSERT INTO agents_fts(agents_fts, rowid, name, role, goal) VALUES('delete', old.rowid, old.name, old.role, old.goal);
				INSERT INTO agents_fts(rowid, name, role, goal) VALUES (new.rowid, new.name, new.role, new.goal);
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

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of artifacts processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any artifacts failed to index.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest reads normalized JSON artifacts from patternsDir/normalized/ and
// populates the catalog. Files unchanged since the last run are skipped by
// modification time; changed files are re-indexed in place.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	inDir := filepath.Join(s.patternsDir, normalizedDir)

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading normalized dir %s: %w", inDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(inDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE readable_name = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var p types.Pattern
		if err := json.Unmarshal(data, &p); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestPattern(ctx, name, &p, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d agents)\n", name, len(p.Agents))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d agents)\n", name, len(p.Agents))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) ingestPattern(ctx context.Context, name string, p *types.Pattern, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// A re-extracted pattern carries a fresh id; replace by readable name
	// so the catalog never accumulates stale rows.
	if isUpdate {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM patterns WHERE readable_name = ?`, name); err != nil {
			return fmt.Errorf("deleting old pattern: %w", err)
		}
	}

	workflowType := ""
	if p.WorkflowPattern != nil {
		workflowType = string(p.WorkflowPattern.Type)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO patterns (id, readable_name, framework, source_file, title, description,
			workflow_type, agent_count, task_count, tool_count, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, name, string(p.Framework), p.SourceFile, p.Title, p.Description,
		workflowType, len(p.Agents), len(p.Tasks), len(p.Tools), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting pattern: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO agents (id, pattern_id, name, role, goal, language_model)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range p.Agents {
		if _, err := stmt.ExecContext(ctx,
			a.ID, p.ID, a.Name, a.Role, a.Goal, a.LanguageModel); err != nil {
			return fmt.Errorf("inserting agent %s: %w", a.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (readable_name, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(readable_name) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
