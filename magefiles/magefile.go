//go:build mage

// Package main contains Mage build targets for agento developer tooling.
// Implements: docs/ARCHITECTURE § Developer Tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/agento/pkg/types"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"patterns/normalized",
	"graphs/patterns",
	"catalog/index",
	"reports",
	".secrets",
}

// Init creates the project directory structure for the pipeline, including
// one raw source directory per supported framework.
func Init() error {
	dirs := append([]string{}, projectDirs...)
	for _, fw := range types.Frameworks {
		dirs = append(dirs, filepath.Join("patterns", "raw", string(fw)))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "agento"
	cmdPkg  = "./cmd/agento"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	return sh.RunV("go", "build", "-o", out, cmdPkg)
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// All runs lint, tests, and build in order.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}
