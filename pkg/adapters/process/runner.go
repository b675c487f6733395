package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// Runner implements ports.StageRunner by spawning local processes.
// Children inherit the configured standard streams so tool output stays visible.
type Runner struct {
	baseDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	logger  *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithStdio replaces the inherited standard streams. Nil values keep the current stream.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		if stdin != nil {
			r.stdin = stdin
		}
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process Runner bound to the process standard streams.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the tool and blocks until it exits.
// The context is only consulted before the process starts: a running tool is
// never killed by the orchestrator and no timeout applies.
func (r *Runner) Run(ctx context.Context, executable string, args []string) domain.StageResult {
	if err := ctx.Err(); err != nil {
		return domain.StageResult{ExitCode: -1, Err: err}
	}

	path, err := exec.LookPath(executable)
	if err != nil {
		r.logger.Debug("Tool lookup failed", "executable", executable, "err", err)
		return domain.StageResult{ExitCode: -1, Err: &domain.ToolNotFoundError{Path: executable, Err: err}}
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	r.logger.Debug("Starting tool", "executable", path, "args", args, "dir", r.baseDir)
	start := time.Now()

	if err := cmd.Start(); err != nil {
		return domain.StageResult{ExitCode: -1, Err: &domain.ToolNotFoundError{Path: path, Err: err}}
	}

	err = cmd.Wait()
	elapsed := time.Since(start)
	if err == nil {
		r.logger.Debug("Tool finished", "executable", path, "duration", elapsed)
		return domain.Succeeded()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.logger.Debug("Tool exited nonzero", "executable", path, "exit_code", exitErr.ExitCode(), "duration", elapsed)
		return domain.StageResult{ExitCode: exitErr.ExitCode(), Err: fmt.Errorf("%s: %w", path, err)}
	}
	return domain.StageResult{ExitCode: -1, Err: fmt.Errorf("%s: %w", path, err)}
}
