/*
Package fpgaflow is a command-driven build orchestrator for FPGA designs.

It sequences the external synthesis (yosys), place-and-route (nextpnr-ecp5),
bitstream packing (ecppack) and programming (openocd) tools into a repeatable
pipeline, and removes the artifacts they leave behind.

# Concept

The orchestrator never looks inside a tool. Each tool is a black box that
receives a list of file paths and flags; its exit status decides whether the
pipeline continues. Operations are strictly sequential and fail fast: the
first failing stage stops its operation and every operation requested after it.

# Key Features

  - Platform Layouts: The toolchain is resolved once from the home directory, with a POSIX and a Windows layout.
  - Fail-Fast Pipeline: build, upload and clean, with typed errors for every failure class.
  - Immutable Project Config: Sources, device and pin file come from one value, loaded from fpgaflow.yaml or defaults.
  - Observability: Lifecycle hooks feed structured logs, terminal status lines and Prometheus metrics.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/fpgaflow"
	)

	func main() {
		// Resolves the toolchain from $HOME and loads ./fpgaflow.yaml when present
		o, err := fpgaflow.New(".")
		if err != nil {
			log.Fatal(err)
		}

		// Same as running: fpgaflow build upload
		if err := o.Run(context.Background(), "build", "upload"); err != nil {
			log.Fatal(err)
		}
	}
*/
package fpgaflow
