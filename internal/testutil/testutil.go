// Package testutil provides shared test helpers.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"testing"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TempConfigFile returns a config file path inside a fresh temp dir.
// The file itself is not created.
func TempConfigFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

// BuildInfoReader returns a stand-in for debug.ReadBuildInfo that reports
// mainPath/mainVersion as the main module and deps (path → version) as
// dependencies.
func BuildInfoReader(mainPath, mainVersion string, deps map[string]string) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		bi := &debug.BuildInfo{Main: debug.Module{Path: mainPath, Version: mainVersion}}
		for p, v := range deps {
			bi.Deps = append(bi.Deps, &debug.Module{Path: p, Version: v})
		}
		return bi, true
	}
}

// MissingBuildInfo mimics a binary built without module support.
func MissingBuildInfo() (*debug.BuildInfo, bool) {
	return nil, false
}
