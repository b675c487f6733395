package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Call is one recorded StageRunner invocation.
type Call struct {
	Executable string
	Args       []string
}

// RecordingRunner is a ports.StageRunner fake. It records every call and
// answers from Results, keyed by executable path; unknown executables succeed.
type RecordingRunner struct {
	mu      sync.Mutex
	Calls   []Call
	Results map[string]domain.StageResult
	// FailAt, when > 0, fails the FailAt-th call (1-based) with exit code 1.
	FailAt int
}

// NewRecordingRunner creates an empty RecordingRunner.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{Results: make(map[string]domain.StageResult)}
}

// Run records the call and returns the configured result.
func (r *RecordingRunner) Run(_ context.Context, executable string, args []string) domain.StageResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, Call{Executable: executable, Args: append([]string(nil), args...)})
	if r.FailAt > 0 && len(r.Calls) == r.FailAt {
		return domain.StageResult{ExitCode: 1}
	}
	if res, ok := r.Results[executable]; ok {
		return res
	}
	return domain.Succeeded()
}

// Executables returns the executable of every recorded call, in order.
func (r *RecordingRunner) Executables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Executable
	}
	return out
}

// CallCount returns the number of recorded calls.
func (r *RecordingRunner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}

// FakeToolchain returns a POSIX location whose tools live under /fake/bin.
func FakeToolchain() domain.ToolchainLocation {
	return domain.ToolchainLocation{
		Platform: domain.PlatformPOSIX,
		Home:     "/fake",
		BaseDir:  "/fake/bin",
		Tools: map[domain.Tool]string{
			domain.ToolSynth:      "/fake/bin/yosys",
			domain.ToolPlaceRoute: "/fake/bin/nextpnr-ecp5",
			domain.ToolPack:       "/fake/bin/ecppack",
			domain.ToolProgrammer: "/fake/bin/openocd",
		},
	}
}

// SetupProjectDir creates a temporary directory containing the given files.
// It returns the absolute path and fails the test immediately on error.
func SetupProjectDir(t *testing.T, files ...string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o644))
	}
	return dir
}
