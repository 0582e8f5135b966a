// Package ast re-exports the parts of typescript-go's internal ast package
// used through the shim.
package ast

import (
	"github.com/microsoft/typescript-go/internal/ast"
	"github.com/microsoft/typescript-go/internal/diagnostics"
)

type (
	Diagnostic = ast.Diagnostic
	SourceFile = ast.SourceFile
)

func Diagnostic_Category(d *Diagnostic) diagnostics.Category {
	return d.Category()
}
