// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agento/pkg/types"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(manifestPath, patternsDir string) types.AcquisitionConfig {
	return types.AcquisitionConfig{
		HTTPConfig:   types.HTTPConfig{UserAgent: "agento-test/0.1"},
		ManifestPath: manifestPath,
		PatternsDir:  patternsDir,
	}
}

func TestAcquireBatch(t *testing.T) {
	var requests []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		assert.Equal(t, "agento-test/0.1", r.Header.Get("User-Agent"))
		w.Write([]byte("researcher = Agent(role='R')\n"))
	}))
	defer ts.Close()

	base := t.TempDir()
	manifest := writeManifest(t, base, `
crewai:
  - `+ts.URL+`/samples/research_team.py
mastraai:
  - `+ts.URL+`/configs/support_triage.yaml
`)

	var out strings.Builder
	result, err := AcquireBatch(context.Background(), ts.Client(), testConfig(manifest, base), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, requests, 2)

	for _, rel := range []string{
		filepath.Join("raw", "crewai", "research_team.py"),
		filepath.Join("raw", "mastraai", "support_triage.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(base, rel))
		require.NoError(t, err, rel)
		assert.NotEmpty(t, data)
	}
}

func TestAcquireBatchSkipsExisting(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("content"))
	}))
	defer ts.Close()

	base := t.TempDir()
	destDir := filepath.Join(base, "raw", "crewai")
	require.NoError(t, os.MkdirAll(destDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "team.py"), []byte("existing"), 0o644))

	manifest := writeManifest(t, base, `
crewai:
  - `+ts.URL+`/team.py
`)

	var out strings.Builder
	result, err := AcquireBatch(context.Background(), ts.Client(), testConfig(manifest, base), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Downloaded)
	assert.Contains(t, out.String(), "already exists")

	// The existing file was not overwritten.
	data, err := os.ReadFile(filepath.Join(destDir, "team.py"))
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestAcquireBatchContinuesOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("content"))
	}))
	defer ts.Close()

	base := t.TempDir()
	manifest := writeManifest(t, base, `
crewai:
  - `+ts.URL+`/missing.py
  - `+ts.URL+`/good.py
`)

	var out strings.Builder
	result, err := AcquireBatch(context.Background(), ts.Client(), testConfig(manifest, base), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Downloaded)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Contains(t, out.String(), "HTTP 404")
}

func TestAcquireBatchAuthToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("content"))
	}))
	defer ts.Close()

	base := t.TempDir()
	manifest := writeManifest(t, base, `
crewai:
  - `+ts.URL+`/private.py
`)

	cfg := testConfig(manifest, base)
	cfg.AuthToken = "ghp_secret"

	_, err := AcquireBatch(context.Background(), ts.Client(), cfg, &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer ghp_secret", gotAuth)
}

func TestAcquireBatchUnknownFrameworkTag(t *testing.T) {
	base := t.TempDir()
	manifest := writeManifest(t, base, `
langchain:
  - https://example.com/chain.py
`)

	var out strings.Builder
	result, err := AcquireBatch(context.Background(), http.DefaultClient, testConfig(manifest, base), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total())
	assert.Contains(t, out.String(), "skipped langchain")
}

func TestAcquireBatchMissingManifest(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir())
	_, err := AcquireBatch(context.Background(), http.DefaultClient, cfg, &strings.Builder{})
	assert.Error(t, err)
}

func TestSourceFilename(t *testing.T) {
	name, err := sourceFilename("https://example.com/a/b/research_team.py?ref=main")
	require.NoError(t, err)
	assert.Equal(t, "research_team.py", name)

	_, err = sourceFilename("https://example.com/")
	assert.Error(t, err)
}
