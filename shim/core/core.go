// Package core re-exports the parts of typescript-go's internal core package
// used through the shim.
package core

import (
	"github.com/microsoft/typescript-go/internal/core"
)

type (
	CompilerOptions = core.CompilerOptions
	Tristate        = core.Tristate
)

const (
	TSUnknown = core.TSUnknown
	TSFalse   = core.TSFalse
	TSTrue    = core.TSTrue
)
