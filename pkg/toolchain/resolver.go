package toolchain

import (
	"os"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// LookupEnv matches os.LookupEnv so tests can inject an environment.
type LookupEnv func(key string) (string, bool)

// Option configures Resolve.
type Option func(*resolveOptions)

type resolveOptions struct {
	overrides map[domain.Tool]string
}

// WithOverrides replaces resolved paths for individual tools.
// Empty values and unknown tools are ignored.
func WithOverrides(overrides map[domain.Tool]string) Option {
	return func(o *resolveOptions) {
		for t, p := range overrides {
			if o.overrides == nil {
				o.overrides = make(map[domain.Tool]string)
			}
			o.overrides[t] = p
		}
	}
}

// Resolve computes the toolchain location for a platform.
// It fails with *domain.ConfigurationError when the platform home variable is unset or empty.
func Resolve(p domain.Platform, lookup LookupEnv, opts ...Option) (domain.ToolchainLocation, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := LayoutFor(p)
	if err != nil {
		return domain.ToolchainLocation{}, err
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	home, ok := lookup(layout.HomeVar())
	if !ok || strings.TrimSpace(home) == "" {
		return domain.ToolchainLocation{}, &domain.ConfigurationError{
			Key:    layout.HomeVar(),
			Reason: "environment variable is unset or empty; the toolchain cannot be located",
		}
	}

	base := layout.BaseDir(home)
	loc := domain.ToolchainLocation{
		Platform: p,
		Home:     home,
		BaseDir:  base,
		Tools:    make(map[domain.Tool]string, len(domain.RequiredTools)),
	}
	for _, t := range domain.RequiredTools {
		loc.Tools[t] = layout.ToolPath(base, t)
		if override := strings.TrimSpace(o.overrides[t]); override != "" {
			loc.Tools[t] = override
		}
	}
	return loc, nil
}
