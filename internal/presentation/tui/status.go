package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/muesli/termenv"
)

// StatusPrinter renders one line per stage transition.
type StatusPrinter struct {
	w   io.Writer
	out *termenv.Output
}

// NewStatusPrinter creates a StatusPrinter writing to w.
func NewStatusPrinter(w io.Writer) *StatusPrinter {
	return &StatusPrinter{w: w, out: NewOutput(w)}
}

// Hooks returns lifecycle hooks that print stage progress.
func (p *StatusPrinter) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOperationStart: func(_ context.Context, e *domain.OperationEvent) {
			fmt.Fprintf(p.w, ">>> %s\n", p.out.String(string(e.Operation)).Bold())
		},
		OnStageStart: func(_ context.Context, e *domain.StageEvent) {
			fmt.Fprintf(p.w, "%s %s\n", p.out.String("▶").Foreground(p.out.Color("#38bdf8")), e.Stage.Name)
		},
		OnStageFinish: func(_ context.Context, e *domain.StageEvent) {
			fmt.Fprintln(p.w, p.stageLine(e))
		},
		OnOperationEnd: func(_ context.Context, e *domain.OperationEvent) {
			if e.Err != nil {
				fmt.Fprintf(p.w, ">>> %s %s\n", e.Operation, p.out.String("failed").Foreground(p.out.Color("#ef4444")))
				return
			}
			fmt.Fprintf(p.w, ">>> %s %s\n", e.Operation, p.out.String("done").Foreground(p.out.Color("#22c55e")))
		},
	}
}

func (p *StatusPrinter) stageLine(e *domain.StageEvent) string {
	dur := e.Duration.Round(10 * time.Millisecond)
	if e.Result.Success {
		return fmt.Sprintf("%s %s (%s)", p.out.String("✔").Foreground(p.out.Color("#22c55e")), e.Stage.Name, dur)
	}
	reason := fmt.Sprintf("exit code %d", e.Result.ExitCode)
	if e.Result.ExitCode < 0 && e.Result.Err != nil {
		reason = e.Result.Err.Error()
	}
	return fmt.Sprintf("%s %s (%s)", p.out.String("✘").Foreground(p.out.Color("#ef4444")), e.Stage.Name, reason)
}
