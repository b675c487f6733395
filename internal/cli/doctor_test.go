package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/internal/testutils"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorProject(t *testing.T, files ...string) *fpgaflow.Orchestrator {
	t.Helper()
	dir := testutils.SetupProjectDir(t, files...)
	cfg := project.Default()
	cfg.Top = "blinky"
	cfg.Libraries = []string{"pll.v"}

	orch, err := fpgaflow.New(dir,
		fpgaflow.WithConfig(cfg),
		fpgaflow.WithPlatform(domain.PlatformPOSIX),
		fpgaflow.WithLookupEnv(homeEnv(dir)),
		fpgaflow.WithStageRunner(testutils.NewRecordingRunner()),
	)
	require.NoError(t, err)
	return orch
}

func TestDiagnose_AllPresent(t *testing.T) {
	bin := ".platformio/packages/toolchain-icestorm/bin/"
	orch := newDoctorProject(t,
		"blinky.v", "pll.v", "logicbone-rev0.lpf", "logicbone-jlink-windows.cfg",
		bin+"yosys", bin+"nextpnr-ecp5", bin+"ecppack", bin+"openocd",
	)

	report := Diagnose(orch, nil)

	assert.True(t, report.Healthy())
	require.Len(t, report.Tools, 4)
	assert.Empty(t, report.Missing)
	assert.Contains(t, report.Markdown(), "All source, pin and programmer files are present.")
}

func TestDiagnose_ReportsMissingFiles(t *testing.T) {
	orch := newDoctorProject(t, "blinky.v")

	report := Diagnose(orch, nil)

	assert.False(t, report.Healthy())
	assert.Equal(t, []string{"pll.v", "logicbone-rev0.lpf", "logicbone-jlink-windows.cfg"}, report.Missing)
	for _, tool := range report.Tools {
		assert.False(t, tool.Found, tool.Tool)
	}

	md := report.Markdown()
	assert.Contains(t, md, "| synth | `"+filepath.Join(orch.Dir, ".platformio/packages/toolchain-icestorm/bin/yosys")+"` | ✘ not found |")
	assert.Contains(t, md, "- ✘ `pll.v` is missing")
}

func TestDiagnose_DirectoryIsNotATool(t *testing.T) {
	orch := newDoctorProject(t)
	require.NoError(t, os.MkdirAll(orch.Toolchain().Path(domain.ToolSynth), 0o755))

	report := Diagnose(orch, nil)
	assert.Equal(t, "is a directory", report.Tools[0].Detail)
}

func TestRunPlan(t *testing.T) {
	var stdout bytes.Buffer
	err := RunPlan(RunOptions{
		Dir:       testutils.SetupProjectDir(t),
		Stdout:    &stdout,
		Stderr:    &bytes.Buffer{},
		LookupEnv: homeEnv("/home/dev"),
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "subgraph build")
	assert.Contains(t, out, "subgraph upload")
}

func TestRunPlan_UnknownOperation(t *testing.T) {
	err := RunPlan(RunOptions{
		Dir:        testutils.SetupProjectDir(t),
		Operations: []string{"deploy"},
		Stdout:     &bytes.Buffer{},
		Stderr:     &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}
