package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/internal/presentation/tui"
	"github.com/aretw0/fpgaflow/pkg/dispatch"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/observability"
	"github.com/aretw0/fpgaflow/pkg/project"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 300 * time.Millisecond

// RunWatch runs ops once and then again every time a project input changes.
// Rebuilds are serialized: filesystem events only enqueue a request.
func RunWatch(ctx context.Context, orch *fpgaflow.Orchestrator, ops []domain.Operation, metrics *observability.Metrics, opts RunOptions, logger *slog.Logger) error {
	tui.PrintBanner(opts.Stdout, strings.TrimSpace(fpgaflow.Version))

	dirs, files := watchTargets(orch.Dir, orch.Config(), orch.ConfigPath())
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			logger.Warn("Cannot watch directory", "dir", d, "err", err)
		}
	}

	status := &buildStatus{}
	if opts.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           newStatusRouter(metrics, status),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Status server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		printSystemMessage(opts.Stdout, "Serving /metrics and /healthz on %s.", opts.MetricsAddr)
	}

	d := dispatch.New(orch.Pipeline(), dispatch.WithLogger(logger))
	rebuild := func() {
		err := d.Dispatch(ctx, ops)
		status.record(err)
		if werr := writeMetrics(metrics, opts.MetricsFile, logger); werr != nil {
			logger.Warn("Metrics export failed", "err", werr)
		}
		if err != nil && ctx.Err() == nil {
			logger.Error("Pipeline failed", "err", err)
		}
		if ctx.Err() == nil {
			printSystemMessage(opts.Stdout, "Waiting for changes...")
		}
	}

	rebuildReq, trigger := newDebouncer(debounceDelay)
	done := make(chan struct{})
	go func() {
		defer close(done)
		rebuild()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				rebuild()
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			<-done
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				<-done
				return nil
			}
			if !isRelevant(event, files) {
				continue
			}
			logger.Info("Change detected", "file", event.Name, "op", event.Op.String())
			printSystemMessage(opts.Stdout, "Change detected in '%s'.", filepath.Base(event.Name))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				<-done
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}

// watchTargets returns the directories to subscribe to and the set of files whose
// changes trigger a rebuild. Build outputs are never in the set, so a build cannot retrigger itself.
func watchTargets(dir string, cfg project.Config, configPath string) ([]string, map[string]bool) {
	files := make(map[string]bool)
	add := func(p string) {
		if p == "" {
			return
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		files[filepath.Clean(p)] = true
	}

	for _, src := range project.NewArtifactSet(cfg).SourceFiles() {
		add(src)
	}
	add(cfg.PinFile)
	add(cfg.ProgrammerConfig)
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			add(abs)
		}
	} else {
		for _, name := range project.DefaultFileNames {
			add(name)
		}
	}

	seen := make(map[string]bool)
	for f := range files {
		seen[filepath.Dir(f)] = true
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, files
}

func isRelevant(event fsnotify.Event, files map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return files[filepath.Clean(event.Name)]
}

// newDebouncer returns a request channel and a trigger that coalesces bursts of
// events into a single request after delay.
func newDebouncer(delay time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}
