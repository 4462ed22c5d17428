// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agento/internal/acquire"
	"github.com/pdiddy/agento/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "agento/0.1"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire",
	Short: "Download raw framework sources listed in the manifest",
	Long: `Acquire downloads every source URL listed in the sources manifest into
patterns/raw/<framework>/. Files already on disk are skipped, and a polite
delay separates consecutive downloads. Private hosts are authenticated with
the git-host-token secret when present.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().String("manifest", "patterns/sources.yaml", "YAML manifest listing source URLs per framework")
	acquireCmd.Flags().String("patterns-dir", "patterns", "base directory for patterns (contains raw/)")
	acquireCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	acquireCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	acquireCmd.Flags().String("auth-token", "", "bearer token for private source hosts (default: git-host-token secret)")

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	patternsDir, _ := cmd.Flags().GetString("patterns-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	authToken, _ := cmd.Flags().GetString("auth-token")

	cfg := types.AcquisitionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		ManifestPath:  manifest,
		PatternsDir:   patternsDir,
		DownloadDelay: delay,
		AuthToken:     secretDefault("git-host-token", authToken),
	}

	client := &http.Client{Timeout: cfg.Timeout}

	result, err := acquire.AcquireBatch(cmd.Context(), client, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return partialFailure(result.Failed, "source(s)")
	}
	return nil
}
