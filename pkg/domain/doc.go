/*
Package domain contains the core domain models of the fpgaflow orchestrator.

It defines the vocabulary shared by every other package: the host platform,
the toolchain location, pipeline stages and their results, and the typed
errors that drive the fail-fast policy. This package is kept pure and free of
I/O, following Hexagonal Architecture principles.

# Key Entities

  - Platform: The host flavour (POSIX or WINDOWS) that selects a tool layout.
  - ToolchainLocation: The resolved executable path of every required tool.
  - Stage: One external tool invocation with its inputs, output and arguments.
  - StageResult: The structured outcome of running a Stage.
  - Operation: A user-facing command (build, upload, clean).
*/
package domain
