package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/livedoc/internal/registry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "-f", "text", "--short")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	out, err = execute(t, "version", "-f", "json", "--short=false")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")

	out, err = execute(t, "version", "-f", "text", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: ")
	assert.Contains(t, out, "Build type: ")

	_, err = execute(t, "version", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: text, json")
}

func TestListCommandJSON(t *testing.T) {
	out, err := execute(t, "list", "-f", "json", "--page", "controls", "--widget", "")
	require.NoError(t, err)

	var examples []registry.ExampleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &examples))
	require.NotEmpty(t, examples)
	for _, e := range examples {
		assert.Equal(t, "controls", e.Page)
	}
	assert.Equal(t, "controls-0", examples[0].ID)
}

func TestListCommandWidgetYAML(t *testing.T) {
	out, err := execute(t, "list", "-f", "yaml", "--page", "", "--widget", "Checkbox")
	require.NoError(t, err)

	var examples []registry.ExampleInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &examples))
	require.NotEmpty(t, examples)
	for _, e := range examples {
		assert.Contains(t, e.Widgets, "Checkbox")
	}
}

func TestListCommandTable(t *testing.T) {
	out, err := execute(t, "list", "-f", "table", "--page", "", "--widget", "")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "controls-0")
	assert.Contains(t, out, "Total: 26 examples")

	out, err = execute(t, "list", "-f", "table", "--page", "missing", "--widget", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No examples found.")
}

func TestBuildCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	out, err := execute(t, "build", "-o", dir, "--base-url", "https://docs.example.com", "--clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 6 pages with 26 examples")
	assert.Contains(t, out, "manifest.yaml")

	assert.FileExists(t, filepath.Join(dir, "index.html"))
	assert.FileExists(t, filepath.Join(dir, "docs", "controls", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "manifest.yaml"))
	assert.FileExists(t, filepath.Join(dir, "sitemap.xml"))

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(index), "new WebSocket")
}

func TestServeFlags(t *testing.T) {
	for name, def := range map[string]string{"port": "8080", "host": "localhost", "open": "false", "reload": "true"} {
		flag := serveCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
	assert.Equal(t, "p", serveCmd.Flags().Lookup("port").Shorthand)
}

func TestLoadConfigReportsInitError(t *testing.T) {
	saved := initErr
	t.Cleanup(func() { initErr = saved })

	initErr = errors.New("cannot read configuration file")
	_, err := loadConfig()
	assert.EqualError(t, err, "cannot read configuration file")
}

func TestChoiceValue(t *testing.T) {
	v := newChoiceValue("table", "table", "json")
	assert.Equal(t, "table", v.String())
	assert.Equal(t, "string", v.Type())

	require.NoError(t, v.Set(" JSON "))
	assert.Equal(t, "json", v.String())

	assert.Error(t, v.Set("csv"))
	assert.Equal(t, "json", v.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestValidateCommand(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "info"))
	})

	out, err := execute(t, "validate", "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid.")

	out, err = execute(t, "validate", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, out, "Validation errors:")
	assert.Contains(t, out, "log.level")
}
