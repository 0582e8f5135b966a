// Package compiler re-exports the parts of typescript-go's internal compiler
// package used through the shim.
package compiler

import (
	"context"

	"github.com/microsoft/typescript-go/internal/ast"
	"github.com/microsoft/typescript-go/internal/checker"
	"github.com/microsoft/typescript-go/internal/compiler"
)

type (
	CompilerHost   = compiler.CompilerHost
	EmitOptions    = compiler.EmitOptions
	EmitResult     = compiler.EmitResult
	Program        = compiler.Program
	ProgramOptions = compiler.ProgramOptions
	WriteFile      = compiler.WriteFile
)

var (
	NewCompilerHost = compiler.NewCompilerHost
	NewProgram      = compiler.NewProgram
)

func Program_GetTypeChecker(p *Program, ctx context.Context) (*checker.Checker, func()) {
	return p.GetTypeChecker(ctx)
}

func Program_GetGlobalDiagnostics(p *Program, ctx context.Context) []*ast.Diagnostic {
	return p.GetGlobalDiagnostics(ctx)
}

func Program_GetSyntacticDiagnostics(p *Program, ctx context.Context, sourceFile *ast.SourceFile) []*ast.Diagnostic {
	return p.GetSyntacticDiagnostics(ctx, sourceFile)
}

func Program_GetSemanticDiagnostics(p *Program, ctx context.Context, sourceFile *ast.SourceFile) []*ast.Diagnostic {
	return p.GetSemanticDiagnostics(ctx, sourceFile)
}

func Program_GetDeclarationDiagnostics(p *Program, ctx context.Context, sourceFile *ast.SourceFile) []*ast.Diagnostic {
	return p.GetDeclarationDiagnostics(ctx, sourceFile)
}
