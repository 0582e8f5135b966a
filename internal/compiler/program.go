package compiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/tsoptions"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
)

// DiagnosticType records which checking phase produced a diagnostic.
type DiagnosticType string

const (
	DiagnosticOption      DiagnosticType = "option"
	DiagnosticGlobal      DiagnosticType = "global"
	DiagnosticSyntactic   DiagnosticType = "syntactic"
	DiagnosticSemantic    DiagnosticType = "semantic"
	DiagnosticDeclaration DiagnosticType = "declaration"
)

// Diagnostic is one engine-reported issue tagged with the phase that
// produced it. The engine's category and code are passed through untouched.
type Diagnostic struct {
	Type DiagnosticType
	Diag *ast.Diagnostic
}

// File returns the originating source file, or nil.
func (d Diagnostic) File() *ast.SourceFile { return d.Diag.File() }

// Pos returns the character offset of the diagnostic in its file.
func (d Diagnostic) Pos() int { return d.Diag.Pos() }

// Code returns the engine's numeric diagnostic code.
func (d Diagnostic) Code() int32 { return d.Diag.Code() }

// Category returns the engine's severity category.
func (d Diagnostic) Category() DiagnosticCategory {
	return DiagnosticCategory(ast.Diagnostic_Category(d.Diag))
}

// Message returns the diagnostic's message with any nested message chain
// flattened, one part per line, each nesting level indented two spaces.
func (d Diagnostic) Message() string {
	return FlattenMessage(d.Diag, "\n")
}

// FlattenMessage renders a diagnostic's message tree as a single string
// joined by the given line terminator.
func FlattenMessage(d *ast.Diagnostic, newline string) string {
	var sb strings.Builder
	flattenInto(&sb, d, newline, 0)
	return sb.String()
}

func flattenInto(sb *strings.Builder, d *ast.Diagnostic, newline string, depth int) {
	if depth > 0 {
		sb.WriteString(newline)
		for range depth {
			sb.WriteString("  ")
		}
	}
	sb.WriteString(d.String())
	for _, next := range d.MessageChain() {
		flattenInto(sb, next, newline, depth+1)
	}
}

// ParseConfig parses a tsconfig file through the engine's own JSONC parser
// (comments, trailing commas and extends chains are handled by the engine).
// Configuration diagnostics come back as data, not as an error.
func ParseConfig(fs vfs.FS, cwd string, configPath string, host shimcompiler.CompilerHost) (*tsoptions.ParsedCommandLine, []*ast.Diagnostic, error) {
	resolvedConfigPath := tspath.ResolvePath(cwd, configPath)
	if !fs.FileExists(resolvedConfigPath) {
		return nil, nil, fmt.Errorf("could not find tsconfig at %v", resolvedConfigPath)
	}

	parsed, diagnostics := tsoptions.GetParsedCommandLineOfConfigFile(configPath, &core.CompilerOptions{}, nil, host, nil)
	if len(diagnostics) > 0 {
		return parsed, diagnostics, nil
	}
	if parsed != nil && len(parsed.Errors) > 0 {
		return parsed, parsed.Errors, nil
	}
	return parsed, nil, nil
}

// BuildProgram constructs a program from an already-parsed command line.
// Every call builds a fresh program; nothing is cached across calls.
func BuildProgram(parsed *tsoptions.ParsedCommandLine, host shimcompiler.CompilerHost) (*shimcompiler.Program, error) {
	program := shimcompiler.NewProgram(shimcompiler.ProgramOptions{
		Config:                      parsed,
		SingleThreaded:              core.TSTrue,
		Host:                        host,
		UseSourceOfProjectReference: true,
	})
	if program == nil {
		return nil, errors.New("failed to create program")
	}
	return program, nil
}

// EmitResult reports what the engine emitted through the write callback.
type EmitResult struct {
	EmittedFiles []string
	EmitSkipped  bool
}

// Emit runs the program's emitter. writeFile overrides the emitter's output
// path; when nil, output goes through the host's filesystem.
func Emit(ctx context.Context, program *shimcompiler.Program, writeFile shimcompiler.WriteFile) *EmitResult {
	result := program.Emit(ctx, shimcompiler.EmitOptions{WriteFile: writeFile})
	return &EmitResult{
		EmittedFiles: result.EmittedFiles,
		EmitSkipped:  result.EmitSkipped,
	}
}

// CollectDiagnostics gathers the program's diagnostics classified by phase,
// in a fixed order: option, then (unless parse-only) global, then for every
// source file in program order syntactic, (semantic, (declaration)).
// Semantic and global checking is skipped entirely in parse-only mode;
// declaration diagnostics are gathered only when declaration emit is on.
// configDiags are prepended to the option phase.
func CollectDiagnostics(ctx context.Context, program *shimcompiler.Program, parseOnly bool, declaration bool, configDiags []*ast.Diagnostic) []Diagnostic {
	var out []Diagnostic
	appendAll := func(t DiagnosticType, diags []*ast.Diagnostic) {
		for _, d := range diags {
			out = append(out, Diagnostic{Type: t, Diag: d})
		}
	}

	appendAll(DiagnosticOption, configDiags)
	appendAll(DiagnosticOption, program.GetProgramDiagnostics())

	if !parseOnly {
		appendAll(DiagnosticGlobal, shimcompiler.Program_GetGlobalDiagnostics(program, ctx))
	}

	for _, file := range program.GetSourceFiles() {
		appendAll(DiagnosticSyntactic, shimcompiler.Program_GetSyntacticDiagnostics(program, ctx, file))
		if parseOnly {
			continue
		}
		appendAll(DiagnosticSemantic, shimcompiler.Program_GetSemanticDiagnostics(program, ctx, file))
		if declaration {
			appendAll(DiagnosticDeclaration, shimcompiler.Program_GetDeclarationDiagnostics(program, ctx, file))
		}
	}

	return out
}
