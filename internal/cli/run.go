package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/internal/presentation/tui"
	"github.com/aretw0/fpgaflow/pkg/adapters/process"
	"github.com/aretw0/fpgaflow/pkg/dispatch"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/observability"
	"github.com/aretw0/fpgaflow/pkg/pipeline"
	"github.com/aretw0/fpgaflow/pkg/ports"
)

// RunOptions contains all the configuration for a pipeline invocation.
type RunOptions struct {
	Dir         string
	ConfigPath  string
	Operations  []string
	Debug       bool
	LogFormat   string
	Platform    string
	DryRun      bool
	Watch       bool
	MetricsFile string
	MetricsAddr string

	// Stdout receives stage status lines. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives log records. Defaults to os.Stderr.
	Stderr io.Writer
	// Runner replaces the process runner (tests).
	Runner ports.StageRunner
	// LookupEnv replaces os.LookupEnv during toolchain resolution (tests).
	LookupEnv func(string) (string, bool)
}

func (o *RunOptions) setDefaults() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Execute handles the root command: it validates the requested operations,
// resolves the toolchain and runs the operations once or in watch mode.
func Execute(ctx context.Context, opts RunOptions) error {
	opts.setDefaults()

	logger, err := createLogger(opts.Stderr, opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}

	loaded, err := loadEnv(opts.Dir)
	if err != nil {
		return err
	}
	if loaded {
		logger.Debug("Loaded .env", "dir", opts.Dir)
	}

	// Unknown names must fail before the toolchain is even looked at.
	ops, err := dispatch.ParseOperations(opts.Operations)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	orch, err := createOrchestrator(opts, logger, metrics)
	if err != nil {
		return err
	}

	if opts.Watch {
		return RunWatch(ctx, orch, ops, metrics, opts, logger)
	}

	runErr := dispatch.New(orch.Pipeline(), dispatch.WithLogger(logger)).Dispatch(ctx, ops)
	if err := writeMetrics(metrics, opts.MetricsFile, logger); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// createOrchestrator wires the library facade with the CLI conventions:
// status lines on Stdout, metrics hooks, and debug hooks when requested.
func createOrchestrator(opts RunOptions, logger *slog.Logger, metrics *observability.Metrics) (*fpgaflow.Orchestrator, error) {
	hooks := tui.NewStatusPrinter(opts.Stdout).Hooks().Merge(metrics.Hooks())
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	orchOpts, err := baseOptions(opts, logger)
	if err != nil {
		return nil, err
	}
	orchOpts = append(orchOpts, fpgaflow.WithLifecycleHooks(hooks))

	if opts.DryRun {
		dry := process.NewDryRunner(opts.Stdout)
		orchOpts = append(orchOpts, fpgaflow.WithPipelineOptions(pipeline.WithRemover(dry)))
		if opts.Runner == nil {
			orchOpts = append(orchOpts, fpgaflow.WithStageRunner(dry))
		}
	}
	if opts.Runner != nil {
		orchOpts = append(orchOpts, fpgaflow.WithStageRunner(opts.Runner))
	}

	orch, err := fpgaflow.New(opts.Dir, orchOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing fpgaflow: %w", err)
	}
	return orch, nil
}

// baseOptions maps the flags shared by every command onto facade options.
func baseOptions(opts RunOptions, logger *slog.Logger) ([]fpgaflow.Option, error) {
	orchOpts := []fpgaflow.Option{fpgaflow.WithLogger(logger)}
	if opts.Platform != "" {
		p, err := domain.ParsePlatform(opts.Platform)
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, fpgaflow.WithPlatform(p))
	}
	if opts.ConfigPath != "" {
		orchOpts = append(orchOpts, fpgaflow.WithConfigFile(opts.ConfigPath))
	}
	if opts.LookupEnv != nil {
		orchOpts = append(orchOpts, fpgaflow.WithLookupEnv(opts.LookupEnv))
	}
	return orchOpts, nil
}

func writeMetrics(metrics *observability.Metrics, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logger.Debug("Metrics written", "path", path)
	return nil
}

// Operations lists the accepted operation names for help output.
func Operations() []string {
	names := make([]string, 0, len(domain.Operations()))
	for _, op := range domain.Operations() {
		names = append(names, string(op))
	}
	return names
}
