package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStageFinish(ctx, &domain.StageEvent{
		Operation: domain.OperationBuild,
		Stage:     domain.Stage{Name: domain.StageSynthesize},
		Result:    domain.Succeeded(),
		Duration:  2 * time.Second,
	})
	hooks.OnStageFinish(ctx, &domain.StageEvent{
		Operation: domain.OperationBuild,
		Stage:     domain.Stage{Name: domain.StagePlaceRoute},
		Result:    domain.StageResult{ExitCode: 1},
		Duration:  time.Second,
	})
	hooks.OnOperationEnd(ctx, &domain.OperationEvent{
		EventBase: domain.EventBase{Timestamp: time.Unix(1700000000, 0)},
		Operation: domain.OperationBuild,
		Err:       errors.New("boom"),
	})
	hooks.OnOperationEnd(ctx, &domain.OperationEvent{
		EventBase: domain.EventBase{Timestamp: time.Unix(1700000100, 0)},
		Operation: domain.OperationClean,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageResults.WithLabelValues("build", "synthesize", "true", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageResults.WithLabelValues("build", "place-and-route", "false", "1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("build", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("clean", "success")))
	assert.Equal(t, 1700000100.0, testutil.ToFloat64(m.LastSuccess.WithLabelValues("clean")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.OperationsTotal.WithLabelValues("build", "success").Inc()

	path := filepath.Join(t.TempDir(), "fpgaflow.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fpgaflow_operations_total{operation="build",outcome="success"} 1`)
}
