package espalier

import _ "embed"

// Version is the current Espalier release, read from the VERSION file at the
// repository root. Consumers should strings.TrimSpace it before display.
//
//go:embed VERSION
var Version string
