package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/pkg/adapters/mcp"
	"github.com/aretw0/fpgaflow/pkg/adapters/process"
)

// RunMCP serves the pipeline operations as MCP tools over stdio.
// Stdin and Stdout carry JSON-RPC, so tools read nothing and write to Stderr.
func RunMCP(opts RunOptions) error {
	opts.setDefaults()
	logger, err := createLogger(opts.Stderr, opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	if _, err := loadEnv(opts.Dir); err != nil {
		return err
	}

	absDir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	runner := opts.Runner
	if runner == nil {
		runner = process.NewRunner(
			process.WithBaseDir(absDir),
			process.WithStdio(strings.NewReader(""), opts.Stderr, opts.Stderr),
			process.WithLogger(logger),
		)
	}

	orchOpts, err := baseOptions(opts, logger)
	if err != nil {
		return err
	}
	orch, err := fpgaflow.New(absDir, append(orchOpts, fpgaflow.WithStageRunner(runner))...)
	if err != nil {
		return err
	}

	logger.Info("Starting fpgaflow MCP server (stdio)", "dir", absDir)
	return mcp.NewServer(orch.Pipeline()).ServeStdio()
}
