package process

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/cleanup"
	"github.com/aretw0/fpgaflow/pkg/domain"
)

// DryRunner prints each command instead of executing it. Every stage succeeds.
// It also serves as the clean remover, so a dry run never touches the project directory.
type DryRunner struct {
	Out io.Writer
}

// NewDryRunner creates a DryRunner writing to out.
func NewDryRunner(out io.Writer) *DryRunner {
	return &DryRunner{Out: out}
}

// Run prints the command line.
func (d *DryRunner) Run(ctx context.Context, executable string, args []string) domain.StageResult {
	if err := ctx.Err(); err != nil {
		return domain.StageResult{ExitCode: -1, Err: err}
	}
	fmt.Fprintf(d.Out, "$ %s\n", strings.TrimSpace(domain.Stage{Executable: executable, Args: args}.CommandLine()))
	return domain.Succeeded()
}

// Remove prints one rm line per file and deletes nothing.
// The report lists every file as removed so clean summaries read the same as a real run.
func (d *DryRunner) Remove(dir string, files []string) (cleanup.Report, error) {
	var report cleanup.Report
	for _, name := range files {
		fmt.Fprintf(d.Out, "$ rm %s\n", name)
		report.Removed = append(report.Removed, name)
	}
	return report, nil
}
