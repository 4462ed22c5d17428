// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the agento CLI.
// Implements: prd005-acquisition, prd001-extraction, prd003-ontology-mapping,
//             prd004-pattern-catalog, prd006-reporting (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/agento/internal/secrets"
	"github.com/pdiddy/agento/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// partialFailure wraps a batch failure count in the partial-failure sentinel
// so main can map it to exit status 2.
func partialFailure(failed int, what string) error {
	return fmt.Errorf("%d %s failed: %w", failed, what, types.ErrPartialFailure)
}

// rootCmd is the base command for the agento CLI.
var rootCmd = &cobra.Command{
	Use:   "agento",
	Short: "Agentic-pattern extraction and ontology mapping pipeline",
	Long: `agento extracts agent pattern descriptions from AI framework sources
(crewai, langgraph, autogen, mastraai), normalizes them into canonical JSON
artifacts, and maps them into an RDF knowledge graph under a fixed ontology.

Each pipeline stage is a subcommand: acquire, extract, map, catalog, and
report. The pipeline command chains extract, map, catalog, and report into
one run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./agento.yaml or ~/.config/agento/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("agento")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "agento"))
		}
	}

	viper.SetEnvPrefix("AGENTO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, types.ErrPartialFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
