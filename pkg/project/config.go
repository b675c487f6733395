package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/fpgaflow/pkg/domain"
)

// Config is the static description of a design. It is built once at startup
// and never mutated afterwards; pass it by value or through a pointer you do not write to.
type Config struct {
	// Top is the top-level module name. The design file is <Top>.v.
	Top string `mapstructure:"top" yaml:"top" json:"top"`
	// Libraries are the remaining source files, in the order they are handed to synthesis.
	Libraries []string `mapstructure:"libraries" yaml:"libraries" json:"libraries"`
	// Device is the nextpnr device identifier without the leading dashes (e.g. um5g-45k).
	Device string `mapstructure:"device" yaml:"device" json:"device"`
	// Package is the physical package identifier (e.g. CABGA381).
	Package string `mapstructure:"package" yaml:"package" json:"package"`
	// PinFile maps design signals to package pins (LPF).
	PinFile string `mapstructure:"pin_file" yaml:"pin_file" json:"pin_file"`
	// ProgrammerConfig is the openocd interface configuration used by upload.
	ProgrammerConfig string `mapstructure:"programmer_config" yaml:"programmer_config" json:"programmer_config"`
	// SPIMode is the flash access mode of the deployable bitstream.
	SPIMode string `mapstructure:"spi_mode" yaml:"spi_mode" json:"spi_mode"`
	// TransientGlobs select the files clean removes besides the named intermediates.
	TransientGlobs []string `mapstructure:"transient_globs" yaml:"transient_globs" json:"transient_globs"`
	// Tools overrides resolved executable paths, keyed by tool name (synth, pnr, pack, program).
	Tools map[string]string `mapstructure:"tools" yaml:"tools" json:"tools"`
}

const (
	usbDir = "../../usb"
	i2cDir = "../../i2c"
)

// Default returns the logicbone ECP5 board project.
func Default() Config {
	return Config{
		Top: "logicbone_ecp5",
		Libraries: []string{
			usbDir + "/edge_detect.v",
			usbDir + "/usb_fs_in_arb.v",
			usbDir + "/usb_fs_in_pe.v",
			usbDir + "/usb_fs_out_arb.v",
			usbDir + "/usb_fs_out_pe.v",
			usbDir + "/usb_fs_pe.v",
			usbDir + "/usb_fs_rx.v",
			usbDir + "/usb_fs_tx_mux.v",
			usbDir + "/usb_fs_tx.v",
			usbDir + "/usb_reset_det.v",
			usbDir + "/usb_dfu_ctrl_ep.v",
			usbDir + "/usb_spiflash_bridge.v",
			usbDir + "/usb_dfu_core.v",
			usbDir + "/usb_dfu_ecp5.v",
			i2cDir + "/i2c_master.v",
			"logicbone_pll.v",
		},
		Device:           "um5g-45k",
		Package:          "CABGA381",
		PinFile:          "logicbone-rev0.lpf",
		ProgrammerConfig: "logicbone-jlink-windows.cfg",
		SPIMode:          "qspi",
		TransientGlobs:   []string{"*.bin", "*.blif", "*.rpt", "*.asc"},
	}
}

// Validate reports the first missing or malformed field as a *domain.ConfigurationError.
func (c Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"top", c.Top},
		{"device", c.Device},
		{"package", c.Package},
		{"pin_file", c.PinFile},
		{"programmer_config", c.ProgrammerConfig},
		{"spi_mode", c.SPIMode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &domain.ConfigurationError{Key: f.key, Reason: "must not be empty"}
		}
	}
	if strings.ContainsAny(c.Top, `/\`) {
		return &domain.ConfigurationError{Key: "top", Reason: fmt.Sprintf("%q must be a module name, not a path", c.Top)}
	}
	for name := range c.Tools {
		if !slices.Contains(domain.RequiredTools, domain.Tool(name)) {
			return &domain.ConfigurationError{Key: "tools." + name, Reason: "unknown tool"}
		}
	}
	return nil
}

// ToolOverrides converts the Tools map into toolchain override form.
func (c Config) ToolOverrides() map[domain.Tool]string {
	if len(c.Tools) == 0 {
		return nil
	}
	out := make(map[domain.Tool]string, len(c.Tools))
	for name, p := range c.Tools {
		out[domain.Tool(name)] = p
	}
	return out
}

// withDefaults fills every zero field of c from d.
func (c Config) withDefaults(d Config) Config {
	if c.Top == "" {
		c.Top = d.Top
	}
	if c.Libraries == nil {
		c.Libraries = slices.Clone(d.Libraries)
	}
	if c.Device == "" {
		c.Device = d.Device
	}
	if c.Package == "" {
		c.Package = d.Package
	}
	if c.PinFile == "" {
		c.PinFile = d.PinFile
	}
	if c.ProgrammerConfig == "" {
		c.ProgrammerConfig = d.ProgrammerConfig
	}
	if c.SPIMode == "" {
		c.SPIMode = d.SPIMode
	}
	if c.TransientGlobs == nil {
		c.TransientGlobs = slices.Clone(d.TransientGlobs)
	}
	return c
}
