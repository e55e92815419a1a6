// Package server runs the documentation site with live reload.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/conneroisu/livedoc/internal/config"
	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/site"
	"github.com/conneroisu/livedoc/internal/validation"
	"github.com/conneroisu/livedoc/internal/watcher"
)

// UpdateMessage is sent to every open page after a rebuild.
type UpdateMessage struct {
	Type      string    `json:"type"`
	Content   string    `json:"content,omitempty"`
	// Changed lists the examples whose snippet differs from the
	// previous build.
	Changed   []string  `json:"changed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageReload tells pages to reload themselves.
const MessageReload = "reload"

// DocServer serves the documentation site and rebuilds it when its
// sources change.
type DocServer struct {
	config   *config.Config
	logger   logging.Logger
	registry *registry.ExampleRegistry
	errors   *lderrors.ErrorCollector
	hub      *Hub
	watcher  *watcher.FileWatcher

	site       *site.Site
	siteMutex  sync.RWMutex
	buildMutex sync.Mutex

	httpServer   *http.Server
	serverMutex  sync.RWMutex
	shutdownOnce sync.Once
}

// New creates a server for cfg. The site is built by Start or Rebuild.
func New(cfg *config.Config, logger logging.Logger) *DocServer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DocServer{
		config:   cfg,
		logger:   logger.WithComponent("server"),
		registry: registry.NewExampleRegistry(),
		errors:   lderrors.NewErrorCollector(),
		hub:      NewHub(cfg.Server.AllowedOrigins, logger),
	}
}

// Site returns the last successfully built site, or nil.
func (s *DocServer) Site() *site.Site {
	s.siteMutex.RLock()
	defer s.siteMutex.RUnlock()
	return s.site
}

// Registry returns the registry shared by every rebuild.
func (s *DocServer) Registry() *registry.ExampleRegistry {
	return s.registry
}

// Errors returns the failures of the last rebuild.
func (s *DocServer) Errors() *lderrors.ErrorCollector {
	return s.errors
}

// Rebuild builds the site again and tells open pages to reload. A failed
// build keeps serving the previous site and records the failure for the
// error overlay.
func (s *DocServer) Rebuild(ctx context.Context) error {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	events := s.registry.Watch()
	collected := make(chan []string, 1)
	go func() { collected <- changedExamples(events) }()

	built, err := site.Build(ctx, s.siteOptions())
	s.registry.UnWatch(events)
	changed := <-collected

	if err != nil {
		s.errors.Clear()
		s.errors.AddError(err)
		s.broadcastMessage(UpdateMessage{Type: MessageReload, Content: err.Error(), Timestamp: time.Now()})
		return err
	}

	s.errors.Clear()
	s.siteMutex.Lock()
	s.site = built
	s.siteMutex.Unlock()

	s.logger.Info(ctx, "site rebuilt", "examples", s.registry.Count(), "changed", len(changed))
	s.broadcastMessage(UpdateMessage{Type: MessageReload, Changed: changed, Timestamp: built.Built})
	return nil
}

// changedExamples drains a registry watch channel until it is closed. It
// returns the sorted IDs of examples that were added or whose code
// changed. A page rebuild removes its examples before recording them again.
func changedExamples(events <-chan registry.ExampleEvent) []string {
	removed := make(map[string]string)
	current := make(map[string]string)
	for event := range events {
		id := event.Example.ID
		switch event.Type {
		case registry.EventTypeRemoved:
			if _, seen := removed[id]; !seen {
				removed[id] = event.Example.Code
			}
			delete(current, id)
		default:
			current[id] = event.Example.Code
		}
	}

	var changed []string
	for id, code := range current {
		if old, ok := removed[id]; !ok || old != code {
			changed = append(changed, id)
		}
	}
	sort.Strings(changed)
	return changed
}

func (s *DocServer) siteOptions() site.Options {
	return site.Options{
		Title:      s.config.Site.Title,
		Readme:     s.config.Site.Readme,
		SourceDir:  s.config.Site.SourceDir,
		ImportLine: s.config.Site.ImportLine,
		CodeStyle:  s.config.Site.CodeStyle,
		Registry:   s.registry,
		Logger:     s.logger,
	}
}

func (s *DocServer) broadcastMessage(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error(context.Background(), err, "cannot encode update message")
		data = []byte(`{"type":"reload"}`)
	}
	s.hub.Broadcast(data)
}

// Start builds the site, starts the watcher when hot reload is enabled and
// serves HTTP until Shutdown. A failing first build is shown in the error
// overlay instead of stopping the server.
func (s *DocServer) Start(ctx context.Context) error {
	if err := s.Rebuild(ctx); err != nil {
		s.logger.Error(ctx, err, "initial build failed")
	}

	if s.config.Development.HotReload {
		if err := s.setupFileWatcher(ctx); err != nil {
			s.logger.Warn(ctx, err, "live reload disabled")
		}
	}

	addr := s.config.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return lderrors.WrapIO(err, lderrors.ErrCodeInternalError, "cannot listen on "+addr)
	}

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	address := "http://" + listener.Addr().String()
	s.logger.Info(ctx, "serving documentation", "url", address)
	if s.config.Server.Open {
		go s.openBrowser(address)
	}

	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *DocServer) setupFileWatcher(ctx context.Context) error {
	paths := s.config.WatchPaths()
	if len(paths) == 0 {
		s.logger.Info(ctx, "no readme or source dir configured, nothing to watch")
		return nil
	}

	fw, err := watcher.NewFileWatcher(s.config.Development.Debounce, s.logger)
	if err != nil {
		return err
	}

	readme := s.config.Site.Readme
	fw.AddFilter(func(path string) bool { return path == readme || watcher.SourceFilter(path) })
	fw.AddFilter(watcher.NoTestFilter)
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.NoVendorFilter)
	fw.AddFilter(watcher.NoGitFilter)
	fw.AddHandler(s.handleFileChange)

	if err := fw.Watch(paths...); err != nil {
		fw.Stop()
		return err
	}
	if err := fw.Start(ctx); err != nil {
		fw.Stop()
		return err
	}

	s.serverMutex.Lock()
	s.watcher = fw
	s.serverMutex.Unlock()
	s.logger.Info(ctx, "watching for changes", "paths", paths)
	return nil
}

func (s *DocServer) handleFileChange(events []watcher.ChangeEvent) error {
	ctx := context.Background()
	for _, event := range events {
		s.logger.Debug(ctx, "file changed", "path", event.Path, "type", event.Type.String())
	}
	perf := logging.StartOperation(s.logger, "rebuild")
	if err := s.Rebuild(ctx); err != nil {
		perf.EndWithError(ctx, err)
		return err
	}
	perf.End(ctx, "changed", len(events))
	return nil
}

func (s *DocServer) openBrowser(target string) {
	time.Sleep(100 * time.Millisecond)

	if err := validation.ValidateURL(target); err != nil {
		s.logger.Warn(context.Background(), err, "refusing to open browser", "url", target)
		return
	}

	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", target).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	case "darwin":
		err = exec.Command("open", target).Start()
	default:
		err = fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	if err != nil {
		s.logger.Warn(context.Background(), err, "failed to open browser")
	}
}

// Shutdown stops the watcher, closes live reload connections and shuts the
// HTTP server down.
func (s *DocServer) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "shutting down server")

		s.serverMutex.RLock()
		server, fw := s.httpServer, s.watcher
		s.serverMutex.RUnlock()

		if fw != nil {
			if err := fw.Stop(); err != nil {
				s.logger.Warn(ctx, err, "stopping watcher")
			}
		}
		s.hub.Close()
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}
