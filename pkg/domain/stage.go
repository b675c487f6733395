package domain

import "strings"

// StageName identifies a pipeline stage.
type StageName string

const (
	StageSynthesize StageName = "synthesize"
	StagePlaceRoute StageName = "place-and-route"
	StagePackVerify StageName = "pack-for-verification"
	StagePackDeploy StageName = "pack-for-deployment"
	StageProgram    StageName = "program"
)

// Stage is one external tool invocation.
// Inputs are the files it consumes, Output the file it produces (empty for upload).
type Stage struct {
	Name       StageName `json:"name" yaml:"name"`
	Tool       Tool      `json:"tool" yaml:"tool"`
	Executable string    `json:"executable" yaml:"executable"`
	Args       []string  `json:"args" yaml:"args"`
	Inputs     []string  `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Output     string    `json:"output,omitempty" yaml:"output,omitempty"`
}

// CommandLine renders the invocation for display. It is not shell-safe.
func (s Stage) CommandLine() string {
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, s.Executable)
	for _, a := range s.Args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// StageResult is the structured outcome of a tool invocation.
// ExitCode is -1 when the process could not be started.
type StageResult struct {
	Success  bool  `json:"success"`
	ExitCode int   `json:"exit_code"`
	Err      error `json:"-"`
}

// Succeeded builds a successful result.
func Succeeded() StageResult {
	return StageResult{Success: true}
}
