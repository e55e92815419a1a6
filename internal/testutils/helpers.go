// Package testutils holds fixtures shared by livedoc tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/livedoc/internal/config"
)

// ProjectReadme is the README written by CreateTempProject.
const ProjectReadme = "# Test Project\n\nDocs for the test project.\n"

// CreateTempProject creates a project directory holding README.md and an
// empty pages directory.
func CreateTempProject(t *testing.T) string {
	t.Helper()
	projectDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "pages"), 0755))
	WriteFile(t, projectDir, "README.md", ProjectReadme)

	return projectDir
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// CreateTestConfig returns the default configuration pointed at a project
// from CreateTempProject, with a short debounce for watcher tests.
func CreateTestConfig(t *testing.T, projectDir string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)

	cfg.Site.Title = "Test Docs"
	cfg.Site.Readme = filepath.Join(projectDir, "README.md")
	cfg.Site.SourceDir = filepath.Join(projectDir, "pages")
	cfg.Build.OutputDir = filepath.Join(projectDir, "dist")
	cfg.Development.Debounce = 10 * time.Millisecond
	return cfg
}

// WaitForFileChange waits for a file to be modified after originalModTime.
func WaitForFileChange(t *testing.T, filePath string, originalModTime time.Time, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}
