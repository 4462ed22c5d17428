// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "agento/0.1"). Per prd005-acquisition R4.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AcquisitionConfig holds settings for the source acquisition stage.
// Per prd005-acquisition R1.2, R4.1-R4.3.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// ManifestPath is the YAML manifest listing source URLs per framework
	// (default "patterns/sources.yaml").
	ManifestPath string `json:"manifest_path" yaml:"manifest_path"`

	// PatternsDir is the base directory for patterns (contains raw/, normalized/).
	PatternsDir string `json:"patterns_dir" yaml:"patterns_dir"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// AuthToken is an optional bearer token for private source hosts.
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token,omitempty"`
}

// ExtractionConfig holds settings for the extraction stage.
// Per prd001-extraction R5.1-R5.3.
type ExtractionConfig struct {
	// PatternsDir is the base directory for patterns (contains raw/<framework>/
	// inputs and normalized/ outputs).
	PatternsDir string `json:"patterns_dir" yaml:"patterns_dir"`

	// ExtractorVersion is recorded in each pattern's provenance.
	ExtractorVersion string `json:"extractor_version" yaml:"extractor_version"`
}

// MappingConfig holds settings for the ontology mapping stage.
// Per prd003-ontology-mapping R5.1-R5.2.
type MappingConfig struct {
	// PatternsDir is the base directory containing normalized/ artifacts.
	PatternsDir string `json:"patterns_dir" yaml:"patterns_dir"`

	// GraphsDir is the base directory for Turtle output (contains patterns/
	// per-pattern graphs and the merged dataset).
	GraphsDir string `json:"graphs_dir" yaml:"graphs_dir"`
}

// CatalogConfig holds settings for the pattern catalog stage.
// Per prd004-pattern-catalog R1.2, R2.3.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ReportConfig holds settings for the batch report stage.
// Per prd006-reporting R1.1.
type ReportConfig struct {
	// ReportsDir is the directory for batch report artifacts (default "reports").
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	Mapping     MappingConfig     `json:"mapping" yaml:"mapping"`
	Catalog     CatalogConfig     `json:"catalog" yaml:"catalog"`
	Report      ReportConfig      `json:"report" yaml:"report"`
}
