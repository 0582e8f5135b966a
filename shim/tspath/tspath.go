// Package tspath re-exports the parts of typescript-go's internal tspath
// package used through the shim.
package tspath

import (
	"github.com/microsoft/typescript-go/internal/tspath"
)

var (
	NormalizePath = tspath.NormalizePath
	ResolvePath   = tspath.ResolvePath
)
