package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
}

func TestRunner_Contract(t *testing.T) {
	skipOnWindows(t)

	var out bytes.Buffer
	runner := NewRunner(WithStdio(nil, &out, &out))

	ports.RunStageRunnerContract(t, runner, ports.StageRunnerFixtures{
		Succeed:     "sh",
		SucceedArgs: []string{"-c", "exit 0"},
		Fail:        "sh",
		FailArgs:    []string{"-c", "exit 3"},
		FailCode:    3,
		Missing:     filepath.Join(t.TempDir(), "nextpnr-missing"),
	})
}

func TestRunner_InheritsConfiguredStreams(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	runner := NewRunner(WithStdio(nil, &stdout, &stderr))

	res := runner.Run(context.Background(), "sh", []string{"-c", "echo synth-ok; echo warn >&2"})

	assert.True(t, res.Success)
	assert.Equal(t, "synth-ok\n", stdout.String())
	assert.Equal(t, "warn\n", stderr.String())
}

func TestRunner_UsesBaseDirAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	runner := NewRunner(
		WithBaseDir(dir),
		WithEnv("FPGAFLOW_TEST=board"),
		WithStdio(nil, &stdout, nil),
	)

	res := runner.Run(context.Background(), "sh", []string{"-c", "pwd; echo $FPGAFLOW_TEST"})

	assert.True(t, res.Success)
	resolved, _ := filepath.EvalSymlinks(dir)
	assert.Contains(t, stdout.String(), filepath.Base(resolved))
	assert.Contains(t, stdout.String(), "board")
}

func TestRunner_CanceledContextNeverStarts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewRunner().Run(ctx, "sh", []string{"-c", "exit 0"})

	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestDryRunner_PrintsCommands(t *testing.T) {
	var out bytes.Buffer
	dry := NewDryRunner(&out)

	res := dry.Run(context.Background(), "/opt/bin/yosys", []string{"-q", "-p", "synth_ecp5 -top top -json top.json", "top.v"})

	assert.Equal(t, domain.Succeeded(), res)
	assert.Equal(t, "$ /opt/bin/yosys -q -p \"synth_ecp5 -top top -json top.json\" top.v\n", out.String())
}

func TestDryRunner_RemoveDeletesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "top.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var out bytes.Buffer
	report, err := NewDryRunner(&out).Remove(dir, []string{"top.json", "a.asc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"top.json", "a.asc"}, report.Removed)
	assert.Equal(t, "$ rm top.json\n$ rm a.asc\n", out.String())
	assert.FileExists(t, path)
}
