// Package project holds the immutable description of an FPGA design
// (top module, library sources, device, pin file) and the artifact set derived from it.
package project
