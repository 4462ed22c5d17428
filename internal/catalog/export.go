// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds a catalog agent with pattern metadata for export.
type ExportEntry struct {
	AgentID       string         `json:"agent_id" yaml:"agent_id"`
	Name          string         `json:"name" yaml:"name"`
	Role          string         `json:"role" yaml:"role"`
	Goal          string         `json:"goal,omitempty" yaml:"goal,omitempty"`
	LanguageModel string         `json:"language_model,omitempty" yaml:"language_model,omitempty"`
	Pattern       *ExportPattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// ExportPattern holds the pattern-level fields included in each entry.
type ExportPattern struct {
	ID           string `json:"id" yaml:"id"`
	ReadableName string `json:"readable_name" yaml:"readable_name"`
	Framework    string `json:"framework" yaml:"framework"`
	WorkflowType string `json:"workflow_type,omitempty" yaml:"workflow_type,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes the catalog to catalog/index/export.yaml. It supports
// the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog to catalog/index/export.json. It supports
// the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			AgentID:       r.AgentID,
			Name:          r.Name,
			Role:          r.Role,
			Goal:          r.Goal,
			LanguageModel: r.LanguageModel,
			Pattern: &ExportPattern{
				ID:           r.PatternID,
				ReadableName: r.ReadableName,
				Framework:    string(r.Framework),
				WorkflowType: r.WorkflowType,
			},
		}
	}

	return entries, nil
}
