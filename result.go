package tscsimple

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	shimscanner "github.com/microsoft/typescript-go/shim/scanner"

	"github.com/fictitious/tsc-simple/internal/compiler"
)

// Result is the outcome of one Compile, Parse or CompileMap call. The
// program it carries is owned by the caller; nothing is retained or reused
// across calls.
type Result struct {
	// Program is the engine's fully-built program for this call.
	Program *shimcompiler.Program
	// SourceFile is the parsed synthetic source for single-string calls;
	// nil for CompileMap results.
	SourceFile *ast.SourceFile
	// Diagnostics holds every collected diagnostic, tagged by phase, in
	// collection order.
	Diagnostics []compiler.Diagnostic

	basePath string
}

// FormatDiagnostic renders a diagnostic as
//
//	<file>(<line>,<col>): <Category> TS<code>: <message>
//
// The file name is kept even when the diagnostic has no usable offset; only
// the position is omitted then. The whole location is absent for file-less
// diagnostics. The file name is the literal token "<source>" when the
// diagnostic belongs to the call's own synthetic source file.
func (r *Result) FormatDiagnostic(d compiler.Diagnostic) string {
	var sb strings.Builder
	if f := d.File(); f != nil {
		name := r.logicalName(f.FileName())
		if r.SourceFile != nil && f == r.SourceFile {
			name = "<source>"
		}
		if d.Pos() >= 0 {
			line, col := shimscanner.GetECMALineAndCharacterOfPosition(f, d.Pos())
			writeLocation(&sb, name, line+1, col+1, true)
		} else {
			writeLocation(&sb, name, 0, 0, false)
		}
	}
	fmt.Fprintf(&sb, "%s TS%d: %s", d.Category().Title(), d.Code(), d.Message())
	return sb.String()
}

// writeLocation writes "<name>(<line>,<col>): ", or just "<name>: " when
// the position is not usable.
func writeLocation(sb *strings.Builder, name string, line, col int, hasPos bool) {
	if hasPos {
		fmt.Fprintf(sb, "%s(%d,%d): ", name, line, col)
		return
	}
	fmt.Fprintf(sb, "%s: ", name)
}

// SourceFileNames lists every file in the program: the call's in-memory
// sources (by logical name) and the on-disk files resolved from
// configuration, in program order.
func (r *Result) SourceFileNames() []string {
	files := r.Program.GetSourceFiles()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = r.logicalName(f.FileName())
	}
	return names
}

// GetSourceFile returns the program's source file for a logical or on-disk
// name, or nil when the program has no such file.
func (r *Result) GetSourceFile(name string) *ast.SourceFile {
	return r.Program.GetSourceFile(name)
}

// TypeChecker returns the program's type checker and a release function the
// caller must invoke when done with it.
func (r *Result) TypeChecker(ctx context.Context) (*shimchecker.Checker, func()) {
	return shimcompiler.Program_GetTypeChecker(r.Program, ctx)
}

// logicalName strips the base directory from paths under it, turning the
// absolute path the engine reports back into the caller's logical name.
func (r *Result) logicalName(path string) string {
	if rest, ok := strings.CutPrefix(path, r.basePath+"/"); ok {
		return rest
	}
	return path
}
