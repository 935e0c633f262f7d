package meshin

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionFile string

// Version is the current version of the meshin engine.
var Version = strings.TrimSpace(versionFile)
