package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/livedoc/internal/config"
	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/testutils"
	"github.com/conneroisu/livedoc/internal/watcher"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	cfg.Site.Title = "Test Docs"
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*DocServer, *httptest.Server) {
	t.Helper()
	s := New(cfg, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.hub.Close()
		srv.Close()
	})
	return s, srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func getJSON(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestServePages(t *testing.T) {
	s, srv := newTestServer(t, testConfig(t))
	require.NoError(t, s.Rebuild(context.Background()))

	code, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Test Docs</title>")
	assert.Contains(t, body, "new WebSocket")
	assert.NotContains(t, body, "livedoc-error-overlay")

	code, body = get(t, srv.URL+"/docs/controls/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Controls · Test Docs</title>")
	assert.Contains(t, body, `id="controls-0"`)

	code, _ = get(t, srv.URL+"/docs/controls")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, srv.URL+"/docs/missing")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, srv.URL+"/docs/home")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLiveReloadScriptFollowsConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Development.HotReload = false
	s, srv := newTestServer(t, cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	_, body := get(t, srv.URL+"/")
	assert.NotContains(t, body, "new WebSocket")
}

func TestExamplesAPI(t *testing.T) {
	s, srv := newTestServer(t, testConfig(t))
	require.NoError(t, s.Rebuild(context.Background()))

	var all []registry.ExampleInfo
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/examples", &all))
	assert.Len(t, all, s.Registry().Count())
	assert.Equal(t, "chat-message-0", all[0].ID)

	var controls []registry.ExampleInfo
	getJSON(t, srv.URL+"/api/examples?page=controls", &controls)
	require.NotEmpty(t, controls)
	for _, e := range controls {
		assert.Equal(t, "controls", e.Page)
	}

	var buttons []registry.ExampleInfo
	getJSON(t, srv.URL+"/api/examples?widget=Button", &buttons)
	require.NotEmpty(t, buttons)
	for _, e := range buttons {
		assert.Contains(t, e.Widgets, "Button")
	}

	var none []registry.ExampleInfo
	getJSON(t, srv.URL+"/api/examples?widget=Nope", &none)
	assert.Empty(t, none)

	var one registry.ExampleInfo
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/examples/controls-0", &one))
	assert.Equal(t, "controls-0", one.ID)
	assert.True(t, strings.HasPrefix(one.Code, "```go\n"))

	var missing map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/examples/nope-9", &missing))
	assert.Equal(t, "example not found", missing["error"])

	var widgets map[string][]string
	getJSON(t, srv.URL+"/api/widgets", &widgets)
	assert.Contains(t, widgets["Button"], "controls-0")
}

func TestHealth(t *testing.T) {
	s, srv := newTestServer(t, testConfig(t))

	var health map[string]interface{}
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/health", &health))
	assert.Equal(t, "unavailable", health["status"])

	require.NoError(t, s.Rebuild(context.Background()))
	health = nil
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", &health))
	assert.Equal(t, "healthy", health["status"])
	assert.NotEmpty(t, health["version"])
}

func TestFirstBuildFailureShowsOverlay(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.Readme = filepath.Join(t.TempDir(), "missing.md")
	s, srv := newTestServer(t, cfg)

	require.Error(t, s.Rebuild(context.Background()))
	assert.Nil(t, s.Site())
	assert.True(t, s.Errors().HasErrors())

	code, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "livedoc-error-overlay")

	code, _ = get(t, srv.URL+"/docs/controls")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestFailedRebuildKeepsPreviousSite(t *testing.T) {
	cfg := testConfig(t)
	s, srv := newTestServer(t, cfg)
	require.NoError(t, s.Rebuild(context.Background()))
	first := s.Site()
	count := s.Registry().Count()

	cfg.Site.Readme = filepath.Join(t.TempDir(), "missing.md")
	require.Error(t, s.Rebuild(context.Background()))
	assert.Same(t, first, s.Site())

	code, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "livedoc-error-overlay")

	var health map[string]interface{}
	getJSON(t, srv.URL+"/health", &health)
	assert.Equal(t, "degraded", health["status"])

	cfg.Development.ErrorOverlay = false
	_, body = get(t, srv.URL+"/")
	assert.NotContains(t, body, "livedoc-error-overlay")

	cfg.Site.Readme = ""
	require.NoError(t, s.Rebuild(context.Background()))
	assert.False(t, s.Errors().HasErrors())
	assert.NotSame(t, first, s.Site())
	assert.Equal(t, count, s.Registry().Count())
}

func TestHandleFileChangeRebuilds(t *testing.T) {
	s := New(testConfig(t), nil)
	require.NoError(t, s.handleFileChange([]watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: "README.md"}}))
	assert.NotNil(t, s.Site())
}

func TestWatcherTriggersRebuild(t *testing.T) {
	projectDir := testutils.CreateTempProject(t)
	cfg := testutils.CreateTestConfig(t, projectDir)

	s := New(cfg, nil)
	require.NoError(t, s.Rebuild(context.Background()))
	first := s.Site()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.setupFileWatcher(ctx))
	defer s.Shutdown(context.Background())
	require.NotNil(t, s.watcher)

	testutils.WriteFile(t, cfg.Site.SourceDir, "notes.md", "# notes")
	assert.Eventually(t, func() bool { return s.Site() != first }, 5*time.Second, 20*time.Millisecond)
}

func TestSetupFileWatcherWithoutPaths(t *testing.T) {
	s := New(testConfig(t), nil)
	require.NoError(t, s.setupFileWatcher(context.Background()))
	assert.Nil(t, s.watcher)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Development.HotReload = false

	s := New(cfg, nil)
	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		s.serverMutex.RLock()
		defer s.serverMutex.RUnlock()
		return s.httpServer != nil
	}, 10*time.Second, 10*time.Millisecond)
	assert.NotNil(t, s.Site())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestStartListenError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Host = "256.0.0.1"
	cfg.Development.HotReload = false

	err := New(cfg, nil).Start(context.Background())
	assert.Error(t, err)
}

func TestChangedExamples(t *testing.T) {
	events := make(chan registry.ExampleEvent, 8)
	send := func(typ registry.EventType, id, code string) {
		events <- registry.ExampleEvent{Type: typ, Example: &registry.ExampleInfo{ID: id, Code: code}}
	}
	send(registry.EventTypeRemoved, "a-0", "same")
	send(registry.EventTypeRemoved, "a-1", "old")
	send(registry.EventTypeRemoved, "a-2", "gone")
	send(registry.EventTypeAdded, "a-0", "same")
	send(registry.EventTypeAdded, "a-1", "new")
	send(registry.EventTypeAdded, "b-0", "fresh")
	close(events)

	assert.Equal(t, []string{"a-1", "b-0"}, changedExamples(events))
}

func TestRebuildReportsChangedExamples(t *testing.T) {
	s := New(testConfig(t), nil)
	require.NoError(t, s.Rebuild(context.Background()))
	first := s.Registry().Count()
	require.NotZero(t, first)

	events := s.registry.Watch()
	collected := make(chan []string, 1)
	go func() { collected <- changedExamples(events) }()
	require.NoError(t, s.Rebuild(context.Background()))
	s.registry.UnWatch(events)

	assert.Empty(t, <-collected)
	assert.Equal(t, first, s.Registry().Count())
}
