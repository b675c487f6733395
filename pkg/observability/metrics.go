package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors fed by the pipeline hooks.
type Metrics struct {
	Registry *prometheus.Registry

	StageDuration   *prometheus.HistogramVec
	StageResults    *prometheus.CounterVec
	OperationsTotal *prometheus.CounterVec
	LastSuccess     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fpgaflow_stage_duration_seconds",
				Help:    "Duration of external tool invocations",
				Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"operation", "stage"},
		),
		StageResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fpgaflow_stage_results_total",
				Help: "Stage outcomes by exit code",
			},
			[]string{"operation", "stage", "success", "exit_code"},
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fpgaflow_operations_total",
				Help: "Completed operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		LastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fpgaflow_last_success_timestamp_seconds",
				Help: "Unix time of the last successful operation",
			},
			[]string{"operation"},
		),
	}
	m.Registry.MustRegister(m.StageDuration, m.StageResults, m.OperationsTotal, m.LastSuccess)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageFinish: func(_ context.Context, e *domain.StageEvent) {
			op, stage := string(e.Operation), string(e.Stage.Name)
			m.StageDuration.WithLabelValues(op, stage).Observe(e.Duration.Seconds())
			m.StageResults.WithLabelValues(op, stage, strconv.FormatBool(e.Result.Success), strconv.Itoa(e.Result.ExitCode)).Inc()
		},
		OnOperationEnd: func(_ context.Context, e *domain.OperationEvent) {
			outcome := "success"
			if e.Err != nil {
				outcome = "failure"
			} else {
				m.LastSuccess.WithLabelValues(string(e.Operation)).Set(float64(e.Timestamp.Unix()))
			}
			m.OperationsTotal.WithLabelValues(string(e.Operation), outcome).Inc()
		},
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
