package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies the host flavour used to select a toolchain layout.
type Platform string

const (
	PlatformPOSIX   Platform = "posix"
	PlatformWindows Platform = "windows"
)

// DetectPlatform maps the running GOOS to a Platform.
func DetectPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

// PlatformFor maps a GOOS value to a Platform. Anything that is not Windows is POSIX.
func PlatformFor(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// ParsePlatform converts a user supplied tag into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformPOSIX:
		return PlatformPOSIX, nil
	case PlatformWindows:
		return PlatformWindows, nil
	}
	return "", &ConfigurationError{Key: "platform", Reason: fmt.Sprintf("unknown platform %q", s)}
}

// Platforms lists every supported platform tag.
func Platforms() []Platform {
	return []Platform{PlatformPOSIX, PlatformWindows}
}
