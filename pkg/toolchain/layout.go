package toolchain

import (
	"path"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// Layout describes where a platform keeps its toolchain.
type Layout interface {
	Platform() domain.Platform
	// HomeVar is the environment variable holding the user home directory.
	HomeVar() string
	// BaseDir joins the home directory with the install sub-directory.
	BaseDir(home string) string
	// ToolPath returns the executable of t inside base.
	ToolPath(base string, t domain.Tool) string
}

// LayoutFor returns the layout of a platform.
func LayoutFor(p domain.Platform) (Layout, error) {
	switch p {
	case domain.PlatformPOSIX:
		return posixLayout{}, nil
	case domain.PlatformWindows:
		return windowsLayout{}, nil
	}
	return nil, &domain.ConfigurationError{Key: "platform", Reason: "no toolchain layout for " + string(p)}
}

// posixLayout follows the PlatformIO icestorm package, where every binary sits in one bin directory.
type posixLayout struct{}

var posixTools = map[domain.Tool]string{
	domain.ToolSynth:      "yosys",
	domain.ToolPlaceRoute: "nextpnr-ecp5",
	domain.ToolPack:       "ecppack",
	domain.ToolProgrammer: "openocd",
}

func (posixLayout) Platform() domain.Platform { return domain.PlatformPOSIX }

func (posixLayout) HomeVar() string { return "HOME" }

func (posixLayout) BaseDir(home string) string {
	return path.Join(home, ".platformio", "packages", "toolchain-icestorm", "bin")
}

func (posixLayout) ToolPath(base string, t domain.Tool) string {
	return path.Join(base, posixTools[t])
}

// windowsLayout follows the apio package tree, one package per tool family.
// Paths are joined with a backslash so they stay stable when resolved on a non-Windows host.
type windowsLayout struct{}

var windowsTools = map[domain.Tool]string{
	domain.ToolSynth:      `toolchain-yosys\bin\yosys.exe`,
	domain.ToolPlaceRoute: `toolchain-ecp5\bin\nextpnr-ecp5.exe`,
	domain.ToolPack:       `toolchain-ecp5\bin\ecppack.exe`,
	domain.ToolProgrammer: `toolchain-openocd\bin\openocd.exe`,
}

func (windowsLayout) Platform() domain.Platform { return domain.PlatformWindows }

func (windowsLayout) HomeVar() string { return "HOMEPATH" }

func (windowsLayout) BaseDir(home string) string {
	return joinWindows(home, `.apio\packages`)
}

func (windowsLayout) ToolPath(base string, t domain.Tool) string {
	return joinWindows(base, windowsTools[t])
}

func joinWindows(elems ...string) string {
	parts := make([]string, 0, len(elems))
	for i, e := range elems {
		e = strings.ReplaceAll(e, "/", `\`)
		if i > 0 {
			e = strings.TrimLeft(e, `\`)
		}
		if i < len(elems)-1 {
			e = strings.TrimRight(e, `\`)
		}
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, `\`)
}
