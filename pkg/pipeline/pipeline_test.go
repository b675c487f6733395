package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/fpgaflow/internal/testutils"
	"github.com/aretw0/fpgaflow/pkg/cleanup"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/pipeline"
	"github.com/aretw0/fpgaflow/pkg/ports"
	"github.com/aretw0/fpgaflow/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RunsAllStagesInOrder(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

	require.NoError(t, p.Build(context.Background()))

	assert.Equal(t, []string{
		"/fake/bin/yosys",
		"/fake/bin/nextpnr-ecp5",
		"/fake/bin/ecppack",
		"/fake/bin/ecppack",
	}, runner.Executables())
}

func TestBuild_ArgumentLists(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	cfg := project.Default()
	p := pipeline.New(cfg, testutils.FakeToolchain(), runner)

	require.NoError(t, p.Build(context.Background()))
	require.Len(t, runner.Calls, 4)

	synth := runner.Calls[0].Args
	assert.Equal(t, []string{"-q", "-p", "synth_ecp5 -top logicbone_ecp5 -json logicbone_ecp5.json"}, synth[:3])
	assert.Equal(t, project.NewArtifactSet(cfg).SourceFiles(), synth[3:])

	assert.Equal(t, []string{
		"--json", "logicbone_ecp5.json",
		"--textcfg", "logicbone_ecp5_out.config",
		"--um5g-45k",
		"--package", "CABGA381",
		"--lpf", "logicbone-rev0.lpf",
	}, runner.Calls[1].Args)

	assert.Equal(t, []string{"--svf", "logicbone_ecp5.svf", "logicbone_ecp5_out.config"}, runner.Calls[2].Args)
	assert.Equal(t, []string{"--compress", "--spimode", "qspi", "logicbone_ecp5_out.config", "logicbone_ecp5.bit"}, runner.Calls[3].Args)
}

func TestBuild_FailFast(t *testing.T) {
	for failAt := 1; failAt <= 4; failAt++ {
		t.Run(string(rune('0'+failAt)), func(t *testing.T) {
			runner := testutils.NewRecordingRunner()
			runner.FailAt = failAt
			p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

			err := p.Build(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStageFailed)
			assert.Equal(t, failAt, runner.CallCount(), "no stage may run after the failing one")

			var failure *domain.StageFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, 1, failure.ExitCode)
		})
	}
}

func TestBuild_MissingToolIsStageFailure(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	runner.Results["/fake/bin/nextpnr-ecp5"] = domain.StageResult{
		ExitCode: -1,
		Err:      &domain.ToolNotFoundError{Path: "/fake/bin/nextpnr-ecp5", Err: errors.New("no such file")},
	}
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

	err := p.Build(context.Background())

	assert.ErrorIs(t, err, domain.ErrStageFailed)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
	assert.Equal(t, 2, runner.CallCount())

	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.StagePlaceRoute, failure.Stage)
}

func TestUpload_UsesProgrammerConfig(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

	require.NoError(t, p.Upload(context.Background()))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "/fake/bin/openocd", runner.Calls[0].Executable)
	assert.Equal(t, []string{"-f", "logicbone-jlink-windows.cfg"}, runner.Calls[0].Args)
}

func TestUpload_MirrorsExitStatus(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	runner.Results["/fake/bin/openocd"] = domain.StageResult{ExitCode: 2}
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

	err := p.Upload(context.Background())

	var failure *domain.StageFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.StageProgram, failure.Stage)
	assert.Equal(t, 2, failure.ExitCode)
}

func TestClean_RemovesTransientAndIntermediateFilesOnly(t *testing.T) {
	dir := testutils.SetupProjectDir(t,
		"a.bin", "b.blif", "c.rpt", "d.asc",
		"logicbone_ecp5.json", "logicbone_ecp5_out.config",
		"logicbone_ecp5.v", "logicbone-rev0.lpf", "logicbone_ecp5.bit", "README.md",
	)
	runner := testutils.NewRecordingRunner()
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner, pipeline.WithDir(dir))

	report, err := p.Clean(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"a.bin", "b.blif", "c.rpt", "d.asc",
		"logicbone_ecp5.json", "logicbone_ecp5_out.config",
	}, report.Removed)
	for _, keep := range []string{"logicbone_ecp5.v", "logicbone-rev0.lpf", "logicbone_ecp5.bit", "README.md"} {
		assert.FileExists(t, filepath.Join(dir, keep))
	}
	assert.Zero(t, runner.CallCount(), "clean invokes no tool")

	again, err := p.Clean(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again.Removed)
}

func TestClean_DeletesInjectedFileList(t *testing.T) {
	var got []string
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), testutils.NewRecordingRunner(),
		pipeline.WithScanner(func(dir string, globs, named []string) ([]string, error) {
			return []string{"x.asc", "logicbone_ecp5.json"}, nil
		}),
		pipeline.WithRemover(ports.RemoverFunc(func(dir string, files []string) (cleanup.Report, error) {
			got = files
			return cleanup.Report{Removed: files}, nil
		})),
	)

	report, err := p.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x.asc", "logicbone_ecp5.json"}, got)
	assert.Len(t, report.Removed, 2)
}

func TestRun_UnknownOperation(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner)

	err := p.Run(context.Background(), domain.Operation("deploy"))

	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Zero(t, runner.CallCount())

	_, err = p.Stages(domain.Operation("deploy"))
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}

func TestLifecycleHooks(t *testing.T) {
	runner := testutils.NewRecordingRunner()
	runner.FailAt = 3

	var started, finished []domain.StageName
	var opErr error
	p := pipeline.New(project.Default(), testutils.FakeToolchain(), runner,
		pipeline.WithLifecycleHooks(domain.LifecycleHooks{
			OnStageStart: func(_ context.Context, e *domain.StageEvent) {
				started = append(started, e.Stage.Name)
			},
			OnStageFinish: func(_ context.Context, e *domain.StageEvent) {
				finished = append(finished, e.Stage.Name)
			},
			OnOperationEnd: func(_ context.Context, e *domain.OperationEvent) {
				opErr = e.Err
			},
		}),
	)

	err := p.Build(context.Background())
	require.Error(t, err)

	want := []domain.StageName{domain.StageSynthesize, domain.StagePlaceRoute, domain.StagePackVerify}
	assert.Equal(t, want, started)
	assert.Equal(t, want, finished)
	assert.Equal(t, err, opErr)
}
