package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "logicbone_ecp5", cfg.Top)
	assert.Equal(t, "um5g-45k", cfg.Device)
	assert.Equal(t, "CABGA381", cfg.Package)
	assert.Len(t, cfg.Libraries, 16)
	assert.Equal(t, "logicbone_pll.v", cfg.Libraries[len(cfg.Libraries)-1])
}

func TestValidate_RejectsEmptyFields(t *testing.T) {
	cases := map[string]func(*Config){
		"top":               func(c *Config) { c.Top = "" },
		"device":            func(c *Config) { c.Device = " " },
		"package":           func(c *Config) { c.Package = "" },
		"pin_file":          func(c *Config) { c.PinFile = "" },
		"programmer_config": func(c *Config) { c.ProgrammerConfig = "" },
	}

	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, domain.ErrConfiguration)
			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, key, cfgErr.Key)
		})
	}
}

func TestValidate_RejectsUnknownToolOverride(t *testing.T) {
	cfg := Default()
	cfg.Tools = map[string]string{"iverilog": "/usr/bin/iverilog"}
	assert.ErrorIs(t, cfg.Validate(), domain.ErrConfiguration)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fpgaflow.yaml")
	content := `
top: blinky
libraries:
  - lib/counter.v
pin_file: ulx3s.lpf
tools:
  program: /opt/openocd/bin/openocd
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "blinky", cfg.Top)
	assert.Equal(t, []string{"lib/counter.v"}, cfg.Libraries)
	assert.Equal(t, "ulx3s.lpf", cfg.PinFile)
	assert.Equal(t, "CABGA381", cfg.Package, "unset fields keep defaults")
	assert.Equal(t, Default().TransientGlobs, cfg.TransientGlobs)
	assert.Equal(t, map[domain.Tool]string{domain.ToolProgrammer: "/opt/openocd/bin/openocd"}, cfg.ToolOverrides())
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fpgaflow.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"top":"blinky","libraries":[],"spi_mode":"dual-spi"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blinky", cfg.Top)
	assert.Empty(t, cfg.Libraries)
	assert.Equal(t, "dual-spi", cfg.SPIMode)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("toplevel: oops\n"), ".yaml")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("top: [unterminated\n"), ".yml")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fpgaflow.json"), []byte("{}"), 0o644))
	assert.Equal(t, filepath.Join(dir, "fpgaflow.json"), Find(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fpgaflow.yaml"), []byte(""), 0o644))
	assert.Equal(t, filepath.Join(dir, "fpgaflow.yaml"), Find(dir), "yaml wins over json")
}
