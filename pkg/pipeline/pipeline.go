package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/fpgaflow/pkg/cleanup"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/ports"
	"github.com/aretw0/fpgaflow/pkg/project"
)

// Scanner resolves cleanup patterns and named files against a directory.
type Scanner func(dir string, globs, named []string) ([]string, error)

// Pipeline runs build, upload and clean for one project and one toolchain.
type Pipeline struct {
	cfg       project.Config
	artifacts project.ArtifactSet
	tools     domain.ToolchainLocation
	runner    ports.StageRunner
	remover   ports.Remover
	scan      Scanner
	dir       string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithDir sets the project directory used by clean. Defaults to ".".
func WithDir(dir string) Option {
	return func(p *Pipeline) {
		p.dir = dir
	}
}

// WithRemover replaces the file remover used by clean.
func WithRemover(r ports.Remover) Option {
	return func(p *Pipeline) {
		p.remover = r
	}
}

// WithScanner replaces the pattern scanner used by clean.
func WithScanner(s Scanner) Option {
	return func(p *Pipeline) {
		p.scan = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline. cfg and tools are captured by value and never modified.
func New(cfg project.Config, tools domain.ToolchainLocation, runner ports.StageRunner, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		artifacts: project.NewArtifactSet(cfg),
		tools:     tools,
		runner:    runner,
		remover:   ports.RemoverFunc(cleanup.Remove),
		scan:      cleanup.ScanDir,
		dir:       ".",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Artifacts returns the artifact set of the project.
func (p *Pipeline) Artifacts() project.ArtifactSet { return p.artifacts }

// Toolchain returns the resolved toolchain.
func (p *Pipeline) Toolchain() domain.ToolchainLocation { return p.tools }

// Stages lists the tool invocations of an operation. Clean invokes no tool.
func (p *Pipeline) Stages(op domain.Operation) ([]domain.Stage, error) {
	switch op {
	case domain.OperationBuild:
		return BuildStages(p.cfg, p.artifacts, p.tools), nil
	case domain.OperationUpload:
		return UploadStages(p.cfg, p.tools), nil
	case domain.OperationClean:
		return nil, nil
	}
	return nil, &domain.UnknownCommandError{Name: string(op)}
}

// Run executes one operation.
func (p *Pipeline) Run(ctx context.Context, op domain.Operation) error {
	switch op {
	case domain.OperationBuild:
		return p.Build(ctx)
	case domain.OperationUpload:
		return p.Upload(ctx)
	case domain.OperationClean:
		_, err := p.Clean(ctx)
		return err
	}
	return &domain.UnknownCommandError{Name: string(op)}
}

// Build synthesizes, places and routes, then packs both bitstreams.
func (p *Pipeline) Build(ctx context.Context) error {
	return p.operation(ctx, domain.OperationBuild, func() error {
		return p.runStages(ctx, domain.OperationBuild, BuildStages(p.cfg, p.artifacts, p.tools))
	})
}

// Upload hands the device over to the programmer tool.
func (p *Pipeline) Upload(ctx context.Context) error {
	return p.operation(ctx, domain.OperationUpload, func() error {
		return p.runStages(ctx, domain.OperationUpload, UploadStages(p.cfg, p.tools))
	})
}

// Clean deletes transient artifacts and the named intermediates.
// Running it on a clean directory succeeds with an empty report.
func (p *Pipeline) Clean(ctx context.Context) (cleanup.Report, error) {
	var report cleanup.Report
	err := p.operation(ctx, domain.OperationClean, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files, err := p.scan(p.dir, p.artifacts.TransientGlobs(), p.artifacts.Intermediates())
		if err != nil {
			return err
		}
		report, err = p.remover.Remove(p.dir, files)
		for _, f := range report.Removed {
			p.logger.Debug("Removed artifact", "file", f)
		}
		if err != nil {
			return err
		}
		p.logger.Info("Clean finished", "removed", len(report.Removed), "missing", len(report.Missing))
		return nil
	})
	return report, err
}

func (p *Pipeline) operation(ctx context.Context, op domain.Operation, fn func() error) error {
	if p.hooks.OnOperationStart != nil {
		p.hooks.OnOperationStart(ctx, &domain.OperationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventOperationStart},
			Operation: op,
		})
	}

	err := fn()

	if p.hooks.OnOperationEnd != nil {
		p.hooks.OnOperationEnd(ctx, &domain.OperationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventOperationEnd},
			Operation: op,
			Err:       err,
		})
	}
	return err
}

// runStages executes stages in order and stops at the first one that does not succeed.
func (p *Pipeline) runStages(ctx context.Context, op domain.Operation, stages []domain.Stage) error {
	for _, st := range stages {
		if p.hooks.OnStageStart != nil {
			p.hooks.OnStageStart(ctx, &domain.StageEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageStart},
				Operation: op,
				Stage:     st,
			})
		}
		p.logger.Info("Stage started", "operation", op, "stage", st.Name, "tool", st.Executable)

		t0 := time.Now()
		res := p.runner.Run(ctx, st.Executable, st.Args)
		dur := time.Since(t0)

		if p.hooks.OnStageFinish != nil {
			p.hooks.OnStageFinish(ctx, &domain.StageEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageFinish},
				Operation: op,
				Stage:     st,
				Result:    res,
				Duration:  dur,
			})
		}

		if !res.Success {
			p.logger.Error("Stage failed",
				"operation", op,
				"stage", st.Name,
				"exit_code", res.ExitCode,
				"err", res.Err)
			return &domain.StageFailure{Stage: st.Name, ExitCode: res.ExitCode, Err: res.Err}
		}
		p.logger.Info("Stage completed", "operation", op, "stage", st.Name, "duration", dur)
	}
	return nil
}
