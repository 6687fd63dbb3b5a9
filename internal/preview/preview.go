// Package preview serves a built site over HTTP and rebuilds it when the
// source package changes. It is a development aid, not a production server.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/metrics"
)

// debounceWindow coalesces bursts of filesystem events (editors often fire
// several per save) into one rebuild.
const debounceWindow = 300 * time.Millisecond

// RebuildFunc rebuilds the site. It is called serially, never concurrently.
type RebuildFunc func(ctx context.Context) error

// Server watches a source package and serves its output directory.
type Server struct {
	source   string
	out      string
	addr     string
	rebuild  RebuildFunc
	recorder *metrics.PrometheusRecorder

	mu   sync.RWMutex
	last error
}

// New prepares a preview server. recorder may be nil, in which case no
// /metrics endpoint is exposed.
func New(source, out, addr string, rebuild RebuildFunc, recorder *metrics.PrometheusRecorder) *Server {
	return &Server{
		source:   source,
		out:      out,
		addr:     addr,
		rebuild:  rebuild,
		recorder: recorder,
	}
}

// LastError reports the most recent rebuild failure, nil after a good build.
func (s *Server) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Server) setLastError(err error) {
	s.mu.Lock()
	s.last = err
	s.mu.Unlock()
}

// Handler returns the HTTP handler: the site at /, plus /metrics when a
// recorder is attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.recorder != nil {
		mux.Handle("/metrics", s.recorder.Handler())
	}
	mux.Handle("/", http.FileServer(http.Dir(s.out)))
	return mux
}

// Run serves until ctx is canceled. The initial build must already have
// happened; rebuilds are triggered by source changes.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.Handler()}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server failed", logfields.Error(err))
		}
	}()
	slog.Info("preview server listening",
		logfields.URL("http://"+ln.Addr().String()),
		logfields.Path(s.out))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	if err := s.watchRecursive(watcher, s.source); err != nil {
		return err
	}

	rebuildReq := make(chan struct{}, 1)
	trigger := newDebouncer(debounceWindow, rebuildReq)
	go s.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// newDebouncer returns a trigger that forwards to req after the window of
// quiet elapses, collapsing event bursts.
func newDebouncer(window time.Duration, req chan<- struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
}

func (s *Server) rebuildWorker(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			slog.Info("change detected, rebuilding site", logfields.Path(s.source))
			if err := s.rebuild(ctx); err != nil {
				slog.Warn("rebuild failed", logfields.Error(err))
				s.setLastError(err)
				continue
			}
			s.setLastError(nil)
		}
	}
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if s.ignorePath(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = s.watchRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("file change detected", logfields.Path(ev.Name))
	trigger()
}

func (s *Server) watchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if s.ignorePath(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ignorePath filters events that must not trigger rebuilds: anything inside
// the output directory (rebuilds write there, watching it would loop),
// hidden files, and editor temp files.
func (s *Server) ignorePath(path string) bool {
	if within(s.out, path) {
		return true
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return false
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}
