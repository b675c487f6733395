package ports

import (
	"context"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// StageRunner executes one external tool synchronously.
// Implementations must never return a failure as a panic: a missing executable
// or a nonzero exit status is reported through domain.StageResult.
type StageRunner interface {
	Run(ctx context.Context, executable string, args []string) domain.StageResult
}
