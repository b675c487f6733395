package domain

// Tool names one of the external executables the pipeline depends on.
type Tool string

const (
	ToolSynth      Tool = "synth"   // yosys
	ToolPlaceRoute Tool = "pnr"     // nextpnr-ecp5
	ToolPack       Tool = "pack"    // ecppack
	ToolProgrammer Tool = "program" // openocd
)

// RequiredTools is the fixed, platform-independent set of tools every location must provide.
var RequiredTools = []Tool{ToolSynth, ToolPlaceRoute, ToolPack, ToolProgrammer}

// ToolchainLocation is the single resolved toolchain of a run.
// It is created once at startup and treated as read-only afterwards.
type ToolchainLocation struct {
	Platform Platform        `json:"platform" yaml:"platform"`
	Home     string          `json:"home" yaml:"home"`
	BaseDir  string          `json:"base_dir" yaml:"base_dir"`
	Tools    map[Tool]string `json:"tools" yaml:"tools"`
}

// Path returns the executable path of a tool, or "" if it was never resolved.
func (l ToolchainLocation) Path(t Tool) string {
	return l.Tools[t]
}
