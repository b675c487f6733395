package pipeline

import (
	"fmt"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/project"
)

// BuildStages returns the four build stages in execution order.
func BuildStages(cfg project.Config, set project.ArtifactSet, tools domain.ToolchainLocation) []domain.Stage {
	sources := set.SourceFiles()
	synthArgs := append([]string{
		"-q",
		"-p", fmt.Sprintf("synth_ecp5 -top %s -json %s", cfg.Top, set.Netlist()),
	}, sources...)

	return []domain.Stage{
		{
			Name:       domain.StageSynthesize,
			Tool:       domain.ToolSynth,
			Executable: tools.Path(domain.ToolSynth),
			Args:       synthArgs,
			Inputs:     sources,
			Output:     set.Netlist(),
		},
		{
			Name:       domain.StagePlaceRoute,
			Tool:       domain.ToolPlaceRoute,
			Executable: tools.Path(domain.ToolPlaceRoute),
			Args: []string{
				"--json", set.Netlist(),
				"--textcfg", set.RoutedConfig(),
				"--" + cfg.Device,
				"--package", cfg.Package,
				"--lpf", cfg.PinFile,
			},
			Inputs: []string{set.Netlist(), cfg.PinFile},
			Output: set.RoutedConfig(),
		},
		{
			Name:       domain.StagePackVerify,
			Tool:       domain.ToolPack,
			Executable: tools.Path(domain.ToolPack),
			Args:       []string{"--svf", set.TestBitstream(), set.RoutedConfig()},
			Inputs:     []string{set.RoutedConfig()},
			Output:     set.TestBitstream(),
		},
		{
			Name:       domain.StagePackDeploy,
			Tool:       domain.ToolPack,
			Executable: tools.Path(domain.ToolPack),
			Args:       []string{"--compress", "--spimode", cfg.SPIMode, set.RoutedConfig(), set.Bitstream()},
			Inputs:     []string{set.RoutedConfig()},
			Output:     set.Bitstream(),
		},
	}
}

// UploadStages returns the single programming stage.
func UploadStages(cfg project.Config, tools domain.ToolchainLocation) []domain.Stage {
	return []domain.Stage{
		{
			Name:       domain.StageProgram,
			Tool:       domain.ToolProgrammer,
			Executable: tools.Path(domain.ToolProgrammer),
			Args:       []string{"-f", cfg.ProgrammerConfig},
			Inputs:     []string{cfg.ProgrammerConfig},
		},
	}
}
