package ports

import (
	"context"
	"testing"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

// StageRunnerFixtures names executables the contract runs.
// Succeed must exit 0, Fail must exit with FailCode, Missing must not exist.
type StageRunnerFixtures struct {
	Succeed     string
	SucceedArgs []string
	Fail        string
	FailArgs    []string
	FailCode    int
	Missing     string
}

// RunStageRunnerContract runs a suite of tests to verify that a StageRunner
// implementation adheres to the defined interface contract.
func RunStageRunnerContract(t *testing.T, runner StageRunner, fx StageRunnerFixtures) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		res := runner.Run(ctx, fx.Succeed, fx.SucceedArgs)
		assert.True(t, res.Success)
		assert.Equal(t, 0, res.ExitCode)
		assert.NoError(t, res.Err)
	})

	t.Run("Nonzero Exit", func(t *testing.T) {
		res := runner.Run(ctx, fx.Fail, fx.FailArgs)
		assert.False(t, res.Success)
		assert.Equal(t, fx.FailCode, res.ExitCode)
		assert.Error(t, res.Err)
	})

	t.Run("Missing Executable", func(t *testing.T) {
		res := runner.Run(ctx, fx.Missing, nil)
		assert.False(t, res.Success)
		assert.Equal(t, -1, res.ExitCode)
		assert.ErrorIs(t, res.Err, domain.ErrToolNotFound)
	})
}
