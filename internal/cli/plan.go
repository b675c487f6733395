package cli

import (
	"fmt"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/internal/presentation/graph"
	"github.com/aretw0/fpgaflow/pkg/dispatch"
	"github.com/aretw0/fpgaflow/pkg/domain"
)

// RunPlan prints a Mermaid flowchart of the requested operations without running any tool.
// Without operation names it draws build and upload.
func RunPlan(opts RunOptions) error {
	opts.setDefaults()

	names := opts.Operations
	if len(names) == 0 {
		names = []string{string(domain.OperationBuild), string(domain.OperationUpload)}
	}
	ops, err := dispatch.ParseOperations(names)
	if err != nil {
		return err
	}

	logger, err := createLogger(opts.Stderr, opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	if _, err := loadEnv(opts.Dir); err != nil {
		return err
	}

	orchOpts, err := baseOptions(opts, logger)
	if err != nil {
		return err
	}
	orch, err := fpgaflow.New(opts.Dir, orchOpts...)
	if err != nil {
		return err
	}

	plans := make([]graph.Plan, 0, len(ops))
	for _, op := range ops {
		stages, err := orch.Pipeline().Stages(op)
		if err != nil {
			return err
		}
		plans = append(plans, graph.Plan{Operation: op, Stages: stages})
	}
	fmt.Fprint(opts.Stdout, graph.GenerateMermaid(plans, nil))
	return nil
}
