package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/fpgaflow/internal/logging"
	"github.com/aretw0/fpgaflow/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger on w.
// Without --debug only warnings and errors reach the terminal, so tool output stays readable.
func createLogger(w io.Writer, debug bool, format string) (*slog.Logger, error) {
	f, err := logging.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(w, level, f), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageStart: func(ctx context.Context, e *domain.StageEvent) {
			logger.Debug("Stage Start", "operation", e.Operation, "stage", e.Stage.Name, "cmd", e.Stage.CommandLine())
		},
		OnStageFinish: func(ctx context.Context, e *domain.StageEvent) {
			if e.Result.Success {
				logger.Debug("Stage Finish", "operation", e.Operation, "stage", e.Stage.Name, "duration", e.Duration)
			} else {
				logger.Debug("Stage Failed", "operation", e.Operation, "stage", e.Stage.Name, "exit_code", e.Result.ExitCode, "err", e.Result.Err)
			}
		},
	}
}
