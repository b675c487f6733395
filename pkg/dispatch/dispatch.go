// Package dispatch turns requested operation names into ordered pipeline calls.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// Target executes a single operation. *pipeline.Pipeline satisfies it.
type Target interface {
	Run(ctx context.Context, op domain.Operation) error
}

// ParseOperations normalizes and validates every name before anything runs.
// No names means a single build. The first unknown name fails with *domain.UnknownCommandError.
func ParseOperations(names []string) ([]domain.Operation, error) {
	if len(names) == 0 {
		return []domain.Operation{domain.DefaultOperation}, nil
	}
	ops := make([]domain.Operation, 0, len(names))
	for _, name := range names {
		op, err := domain.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Dispatcher runs operations in the order given and stops at the first failure.
type Dispatcher struct {
	target Target
	logger *slog.Logger
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher for target.
func New(target Target, opts ...Option) *Dispatcher {
	d := &Dispatcher{target: target}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Dispatch runs ops sequentially. Operations after a failing one are skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, ops []domain.Operation) error {
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.logger.Debug("Dispatching operation", "operation", op, "index", i+1, "total", len(ops))
		if err := d.target.Run(ctx, op); err != nil {
			if skipped := len(ops) - i - 1; skipped > 0 {
				d.logger.Warn("Skipping remaining operations", "failed", op, "skipped", skipped)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// DispatchNames parses names and dispatches them. Unknown names abort before any operation runs.
func (d *Dispatcher) DispatchNames(ctx context.Context, names []string) error {
	ops, err := ParseOperations(names)
	if err != nil {
		return err
	}
	return d.Dispatch(ctx, ops)
}
