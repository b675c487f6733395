/*
Package ports defines the driven ports (interfaces) of the fpgaflow pipeline.

These interfaces decouple the pipeline from the operating system, allowing
tests to substitute recording fakes for real tool invocations and file removal.

# Key Interfaces

  - StageRunner: Executes one external tool and reports a structured result.
  - Remover: Deletes a pre-resolved list of files.
*/
package ports
