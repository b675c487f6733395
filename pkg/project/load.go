package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFileNames are probed, in order, when no explicit config path is given.
var DefaultFileNames = []string{"fpgaflow.yaml", "fpgaflow.yml", "fpgaflow.json"}

// Find returns the first default config file present in dir, or "" if there is none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads a project file (YAML or JSON) and layers it over Default().
// An empty path yields the defaults. A missing explicit path is a configuration error.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		reason := "cannot read project file"
		if errors.Is(err, os.ErrNotExist) {
			reason = "project file does not exist"
		}
		return Config{}, &domain.ConfigurationError{Key: path, Reason: reason, Err: err}
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes raw project data. ext selects the format (".json", otherwise YAML).
func Parse(data []byte, ext string) (Config, error) {
	raw := map[string]any{}

	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, &domain.ConfigurationError{Key: "project", Reason: "failed to parse JSON", Err: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, &domain.ConfigurationError{Key: "project", Reason: "failed to parse YAML", Err: err}
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, &domain.ConfigurationError{Key: "project", Reason: "invalid field", Err: err}
	}

	cfg = cfg.withDefaults(Default())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
