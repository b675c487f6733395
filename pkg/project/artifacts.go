package project

import (
	"slices"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// ArtifactSet names every file the pipeline reads or writes for one design.
// It is derived from a Config and never changes afterwards.
type ArtifactSet struct {
	top     string
	sources []string
	globs   []string
}

// NewArtifactSet derives the artifact set of cfg.
func NewArtifactSet(cfg Config) ArtifactSet {
	sources := make([]string, 0, len(cfg.Libraries)+1)
	sources = append(sources, cfg.Top+".v")
	sources = append(sources, cfg.Libraries...)
	return ArtifactSet{
		top:     cfg.Top,
		sources: sources,
		globs:   slices.Clone(cfg.TransientGlobs),
	}
}

// SourceFiles returns the design file followed by the library files.
func (a ArtifactSet) SourceFiles() []string { return slices.Clone(a.sources) }

// TransientGlobs returns the patterns of disposable tool byproducts.
func (a ArtifactSet) TransientGlobs() []string { return slices.Clone(a.globs) }

// Netlist is the synthesis output.
func (a ArtifactSet) Netlist() string { return a.top + ".json" }

// RoutedConfig is the place-and-route output.
func (a ArtifactSet) RoutedConfig() string { return a.top + "_out.config" }

// TestBitstream is the SVF file produced for verification.
func (a ArtifactSet) TestBitstream() string { return a.top + ".svf" }

// Bitstream is the compressed deployable image.
func (a ArtifactSet) Bitstream() string { return a.top + ".bit" }

// Intermediates are the named files clean removes in addition to the globs.
func (a ArtifactSet) Intermediates() []string {
	return []string{a.Netlist(), a.RoutedConfig()}
}

// Outputs maps each build stage to the file it produces.
func (a ArtifactSet) Outputs() map[domain.StageName]string {
	return map[domain.StageName]string{
		domain.StageSynthesize: a.Netlist(),
		domain.StagePlaceRoute: a.RoutedConfig(),
		domain.StagePackVerify: a.TestBitstream(),
		domain.StagePackDeploy: a.Bitstream(),
	}
}
