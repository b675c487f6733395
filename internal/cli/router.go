package cli

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/fpgaflow/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildStatus tracks the outcome of the most recent watch-mode run.
type buildStatus struct {
	mu       sync.RWMutex
	runs     int
	lastErr  error
	lastTime time.Time
}

func (s *buildStatus) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	s.lastErr = err
	s.lastTime = time.Now()
}

type healthResponse struct {
	Status  string    `json:"status"`
	Runs    int       `json:"runs"`
	LastRun time.Time `json:"last_run,omitzero"`
	Error   string    `json:"error,omitempty"`
}

func (s *buildStatus) snapshot() (healthResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := healthResponse{Status: "ok", Runs: s.runs, LastRun: s.lastTime}
	if s.lastErr != nil {
		resp.Status = "failing"
		resp.Error = s.lastErr.Error()
		return resp, false
	}
	return resp, true
}

// newStatusRouter exposes the metrics registry and the last build outcome.
// /healthz answers 503 while the latest run is failing.
func newStatusRouter(metrics *observability.Metrics, status *buildStatus) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		resp, healthy := status.snapshot()
		w.Header().Set("Content-Type", "application/json")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	return r
}
