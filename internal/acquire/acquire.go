// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads raw framework sources listed in a YAML manifest
// into the per-framework raw directories.
// Implements: prd005-acquisition (R1-R4);
//
//	docs/ARCHITECTURE § Acquisition.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/agento/internal/httputil"
	"github.com/pdiddy/agento/pkg/types"
)

const rawDir = "raw"

// Manifest lists source URLs per framework tag. The file maps framework
// names to URL lists:
//
//	crewai:
//	  - https://example.com/samples/research_team.py
//	mastraai:
//	  - https://example.com/configs/support_triage.yaml
type Manifest map[string][]string

// LoadManifest reads and parses the sources manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the total number of sources processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any sources failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// AcquireBatch downloads every manifest source into
// patternsDir/raw/<framework>/, skipping files already on disk and applying
// a polite delay between consecutive downloads. Manifest entries under an
// unsupported framework tag are reported and skipped; per-source failures
// continue the batch. A missing or malformed manifest is fatal.
func AcquireBatch(ctx context.Context, client *http.Client, cfg types.AcquisitionConfig, w io.Writer) (BatchResult, error) {
	manifest, err := LoadManifest(cfg.ManifestPath)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	downloads := 0

	for _, fw := range types.Frameworks {
		sources := manifest[string(fw)]
		if len(sources) == 0 {
			continue
		}

		destDir := filepath.Join(cfg.PatternsDir, rawDir, string(fw))
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return result, fmt.Errorf("creating directory %s: %w", destDir, err)
		}

		for _, source := range sources {
			name, err := sourceFilename(source)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", source, err)
				result.Failed++
				continue
			}
			destPath := filepath.Join(destDir, name)

			if _, err := os.Stat(destPath); err == nil {
				fmt.Fprintf(w, "skipped: %s/%s (already exists)\n", fw, name)
				result.Skipped++
				continue
			}

			if downloads > 0 && cfg.DownloadDelay > 0 {
				select {
				case <-ctx.Done():
					return result, ctx.Err()
				case <-time.After(cfg.DownloadDelay):
				}
			}

			fmt.Fprintf(w, "downloading: %s/%s\n", fw, name)
			if err := downloadFile(ctx, client, source, destPath, cfg, w); err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", source, err)
				result.Failed++
				continue
			}
			downloads++
			result.Downloaded++
		}
	}

	for tag := range manifest {
		if !types.Framework(tag).Valid() {
			fmt.Fprintf(w, "skipped %s: not a supported framework tag\n", tag)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// sourceFilename derives the destination filename from a source URL.
func sourceFilename(source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid source URL: %w", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("source URL %s has no filename", source)
	}
	return name, nil
}

// downloadFile fetches url to destPath using a temporary file, so a failed
// transfer never leaves a partial source behind. It sets User-Agent, sends
// the optional bearer token, and retries rate-limited responses.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.AcquisitionConfig, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AuthToken)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0, w)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
