// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/agento/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over agent name, role, and
	// goal text.
	Query string

	// Framework filters by source framework.
	Framework types.Framework

	// PatternID filters by owning pattern.
	PatternID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Framework == "" && q.PatternID == ""
}

// QueryResult is one matching agent with its owning pattern's metadata.
type QueryResult struct {
	AgentID       string          `json:"agent_id" yaml:"agent_id"`
	Name          string          `json:"name" yaml:"name"`
	Role          string          `json:"role" yaml:"role"`
	Goal          string          `json:"goal,omitempty" yaml:"goal,omitempty"`
	LanguageModel string          `json:"language_model,omitempty" yaml:"language_model,omitempty"`
	PatternID     string          `json:"pattern_id" yaml:"pattern_id"`
	ReadableName  string          `json:"readable_name" yaml:"readable_name"`
	Framework     types.Framework `json:"framework" yaml:"framework"`
	WorkflowType  string          `json:"workflow_type,omitempty" yaml:"workflow_type,omitempty"`
}

// Retrieve queries the catalog with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries sort by pattern and agent name.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.id, a.name, a.role, a.goal, a.language_model,
				p.id, p.readable_name, p.framework, p.workflow_type
			FROM agents_fts
			JOIN agents a ON a.rowid = agents_fts.rowid
			JOIN patterns p ON a.pattern_id = p.id
			WHERE agents_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.id, a.name, a.role, a.goal, a.language_model,
				p.id, p.readable_name, p.framework, p.workflow_type
			FROM agents a
			JOIN patterns p ON a.pattern_id = p.id
			WHERE 1=1`)
	}

	if opts.Framework != "" {
		qb.WriteString(` AND p.framework = ?`)
		args = append(args, string(opts.Framework))
	}

	if opts.PatternID != "" {
		qb.WriteString(` AND p.id = ?`)
		args = append(args, opts.PatternID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY agents_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.readable_name, a.name`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr           QueryResult
			goal         sql.NullString
			model        sql.NullString
			workflowType sql.NullString
			framework    string
		)

		if err := rows.Scan(
			&qr.AgentID, &qr.Name, &qr.Role, &goal, &model,
			&qr.PatternID, &qr.ReadableName, &framework, &workflowType,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Framework = types.Framework(framework)
		if goal.Valid {
			qr.Goal = goal.String
		}
		if model.Valid {
			qr.LanguageModel = model.String
		}
		if workflowType.Valid {
			qr.WorkflowType = workflowType.String
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// Artifact returns the full normalized pattern behind a catalog entry,
// read back from its JSON artifact.
func (s *Store) Artifact(ctx context.Context, readableName string) (*types.Pattern, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT readable_name FROM patterns WHERE readable_name = ?`, readableName,
	).Scan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pattern %s not found in catalog", readableName)
		}
		return nil, fmt.Errorf("looking up pattern: %w", err)
	}

	path := filepath.Join(s.patternsDir, normalizedDir, readableName+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p types.Pattern
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing artifact: %w", err)
	}
	return &p, nil
}
