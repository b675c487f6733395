package fpgaflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/fpgaflow/internal/logging"
	"github.com/aretw0/fpgaflow/pkg/adapters/process"
	"github.com/aretw0/fpgaflow/pkg/dispatch"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/pipeline"
	"github.com/aretw0/fpgaflow/pkg/ports"
	"github.com/aretw0/fpgaflow/pkg/project"
	"github.com/aretw0/fpgaflow/pkg/toolchain"
)

// Orchestrator is the high-level entry point for the fpgaflow library.
// It binds one project, one resolved toolchain and one stage runner.
type Orchestrator struct {
	Dir string

	config     *project.Config
	configPath string
	platform   domain.Platform
	lookupEnv  toolchain.LookupEnv
	runner     ports.StageRunner
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	pipeOpts   []pipeline.Option

	tools    domain.ToolchainLocation
	pipeline *pipeline.Pipeline
}

// Option defines a functional option for configuring the Orchestrator.
type Option func(*Orchestrator)

// WithConfig uses cfg instead of loading a project file.
func WithConfig(cfg project.Config) Option {
	return func(o *Orchestrator) {
		o.config = &cfg
	}
}

// WithConfigFile loads the project from path instead of probing the directory.
// A relative path is taken relative to the project directory.
func WithConfigFile(path string) Option {
	return func(o *Orchestrator) {
		o.configPath = path
	}
}

// WithPlatform overrides platform detection.
func WithPlatform(p domain.Platform) Option {
	return func(o *Orchestrator) {
		o.platform = p
	}
}

// WithLookupEnv replaces os.LookupEnv during toolchain resolution.
func WithLookupEnv(lookup toolchain.LookupEnv) Option {
	return func(o *Orchestrator) {
		o.lookupEnv = lookup
	}
}

// WithStageRunner injects a custom StageRunner, bypassing process execution.
func WithStageRunner(r ports.StageRunner) Option {
	return func(o *Orchestrator) {
		o.runner = r
	}
}

// WithLifecycleHooks registers observability hooks. Hooks from repeated calls are chained.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithPipelineOptions forwards options to the underlying pipeline, e.g. pipeline.WithRemover.
func WithPipelineOptions(opts ...pipeline.Option) Option {
	return func(o *Orchestrator) {
		o.pipeOpts = append(o.pipeOpts, opts...)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New loads the project found in dir, resolves the toolchain once and wires the pipeline.
// A missing home variable fails here with *domain.ConfigurationError, before any tool can run.
func New(dir string, opts ...Option) (*Orchestrator, error) {
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	o := &Orchestrator{Dir: absDir, platform: domain.DetectPlatform()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	if o.config == nil {
		path := o.configPath
		if path == "" {
			path = project.Find(absDir)
		} else if !filepath.IsAbs(path) {
			path = filepath.Join(absDir, path)
		}
		cfg, err := project.Load(path)
		if err != nil {
			return nil, err
		}
		if path != "" {
			o.logger.Debug("Loaded project file", "path", path)
		}
		o.configPath = path
		o.config = &cfg
	} else if err := o.config.Validate(); err != nil {
		return nil, err
	}

	o.logger = o.logger.With("project", o.config.Top)

	o.tools, err = toolchain.Resolve(o.platform, o.lookupEnv, toolchain.WithOverrides(o.config.ToolOverrides()))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("Resolved toolchain", "platform", o.tools.Platform, "base_dir", o.tools.BaseDir)

	if o.runner == nil {
		o.runner = process.NewRunner(process.WithBaseDir(absDir), process.WithLogger(o.logger))
	}

	pipeOpts := append([]pipeline.Option{
		pipeline.WithDir(absDir),
		pipeline.WithLifecycleHooks(o.hooks),
		pipeline.WithLogger(o.logger),
	}, o.pipeOpts...)
	o.pipeline = pipeline.New(*o.config, o.tools, o.runner, pipeOpts...)
	return o, nil
}

// Config returns the project configuration.
func (o *Orchestrator) Config() project.Config { return *o.config }

// ConfigPath returns the project file that was loaded, or "" when defaults are in use.
func (o *Orchestrator) ConfigPath() string { return o.configPath }

// Toolchain returns the resolved toolchain.
func (o *Orchestrator) Toolchain() domain.ToolchainLocation { return o.tools }

// Pipeline exposes the underlying pipeline.
func (o *Orchestrator) Pipeline() *pipeline.Pipeline { return o.pipeline }

// Run executes the named operations in order (build when none is given).
// All names are validated first; the first failing operation stops the rest.
func (o *Orchestrator) Run(ctx context.Context, names ...string) error {
	return dispatch.New(o.pipeline, dispatch.WithLogger(o.logger)).DispatchNames(ctx, names)
}
