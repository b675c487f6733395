package fpgaflow

import _ "embed"

// Version is the release of the fpgaflow module, read from the VERSION file.
//
//go:embed VERSION
var Version string
