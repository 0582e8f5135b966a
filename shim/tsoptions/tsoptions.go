// Package tsoptions re-exports the parts of typescript-go's internal
// tsoptions package used through the shim.
package tsoptions

import (
	"github.com/microsoft/typescript-go/internal/tsoptions"
)

type (
	ParseConfigHost   = tsoptions.ParseConfigHost
	ParsedCommandLine = tsoptions.ParsedCommandLine
)

var GetParsedCommandLineOfConfigFile = tsoptions.GetParsedCommandLineOfConfigFile
