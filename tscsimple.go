// Package tscsimple compiles or syntax-checks in-memory TypeScript sources
// through the tsgo compiler without writing anything to disk. Standard
// library declarations and tsconfig-referenced files are still resolved from
// disk (or the bundled libraries); everything the caller supplies lives in a
// virtual filesystem overlay, and everything the engine emits is captured
// through a callback instead of being persisted.
package tscsimple

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	jsonexp "github.com/go-json-experiment/json"
	"github.com/microsoft/typescript-go/shim/ast"
	"github.com/microsoft/typescript-go/shim/bundled"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"

	"github.com/fictitious/tsc-simple/internal/compiler"
	"github.com/fictitious/tsc-simple/internal/overlay"
)

// SourceFileName is the synthetic name given to the single in-memory source
// of Compile and Parse calls. Formatted diagnostics show it as "<source>".
const SourceFileName = "input.ts"

// configFileName is the virtual tsconfig synthesized for every program
// build. The name is reserved; it cannot be used as an in-memory source.
const configFileName = "tsconfig.tsc-simple.json"

// noInputsCode is the engine's "No inputs were found in config file" code,
// suppressed because in-memory inputs are supplied per call.
const noInputsCode = 18003

// WriteCallback receives each file the engine would have written. Nothing
// is persisted unless the callback does it.
type WriteCallback func(fileName string, text string)

// Options configures a Compiler.
type Options struct {
	// Config is a tsconfig-shaped object (compilerOptions, files, include,
	// extends). Nil means defaults suitable for compiling loose sources.
	Config map[string]any
	// BasePath is the directory relative entries resolve against.
	// Defaults to the current working directory.
	BasePath string
	// DefaultLibLocation overrides the directory holding the engine's
	// default library files. Empty means the bundled libraries.
	DefaultLibLocation string
	// DefaultLibFileName names a single library file to load instead of the
	// engine's target-derived default set. It is resolved against
	// DefaultLibLocation (or the bundled libraries when that is empty).
	DefaultLibFileName string
	// FS overrides the underlying filesystem, primarily for tests.
	FS vfs.FS
}

// Compiler resolves configuration once at construction and then compiles
// in-memory sources against it. Calls are independent; the resolved
// configuration and the filesystem's read cache are the only shared state.
type Compiler struct {
	fs            vfs.FS
	basePath      string
	defaultLibDir string
	config        map[string]any
	explicitFiles []string
}

// New builds a Compiler. Malformed configuration is fatal here: the error
// message is the line-joined flattened text of every configuration
// diagnostic, and no partially-usable compiler is returned.
func New(opts Options) (*Compiler, error) {
	basePath := opts.BasePath
	if basePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not determine working directory: %w", err)
		}
		basePath = cwd
	} else if !strings.HasPrefix(tspath.NormalizePath(basePath), "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not determine working directory: %w", err)
		}
		basePath = tspath.ResolvePath(cwd, basePath)
	}
	basePath = tspath.NormalizePath(basePath)

	fs := opts.FS
	if fs == nil {
		fs = compiler.DefaultFS()
	}

	c := &Compiler{
		fs:            fs,
		basePath:      basePath,
		defaultLibDir: opts.DefaultLibLocation,
		config:        normalizeConfig(opts.Config),
	}

	// The engine host only takes a library directory, so a file-name
	// override is expressed as noLib plus the named file as an explicit
	// root: the engine then loads exactly that library and nothing else.
	var libFile string
	if opts.DefaultLibFileName != "" {
		libDir := opts.DefaultLibLocation
		if libDir == "" {
			libDir = bundled.LibPath()
		}
		libFile = tspath.ResolvePath(libDir, opts.DefaultLibFileName)
		c.config["compilerOptions"].(map[string]any)["noLib"] = true
	}

	// Validate the configuration through the engine exactly once. Anything
	// the engine reports, except "no inputs", is fatal.
	cfgJSON, err := jsonexp.Marshal(c.config)
	if err != nil {
		return nil, fmt.Errorf("could not serialize configuration: %w", err)
	}
	ov, err := overlay.New(c.fs, c.basePath, map[string]string{configFileName: string(cfgJSON)}, nil)
	if err != nil {
		return nil, err
	}
	host := compiler.NewHost(c.basePath, ov, c.defaultLibDir)
	parsed, diags, err := compiler.ParseConfig(ov, c.basePath, configFileName, host)
	if err != nil {
		return nil, err
	}
	if fatal := dropNoInputs(diags); len(fatal) > 0 {
		messages := make([]string, len(fatal))
		for i, d := range fatal {
			messages[i] = compiler.FlattenMessage(d, "\n")
		}
		return nil, fmt.Errorf("%s", strings.Join(messages, "\n"))
	}
	if parsed == nil {
		return nil, fmt.Errorf("could not parse configuration")
	}
	c.explicitFiles = parsed.FileNames()
	if libFile != "" {
		c.explicitFiles = append(c.explicitFiles, libFile)
	}

	return c, nil
}

// Compile type-checks and emits a single in-memory source under the
// synthetic name. Emitted files go to onWrite; diagnostics of every phase
// are returned as data.
func (c *Compiler) Compile(source string, onWrite WriteCallback) (*Result, error) {
	r, err := c.run(map[string]string{SourceFileName: source}, false, onWrite)
	if err != nil {
		return nil, err
	}
	r.SourceFile = r.Program.GetSourceFile(SourceFileName)
	return r, nil
}

// Parse syntax-checks a single in-memory source. Only option and syntactic
// diagnostics are collected; the input is never bound, type-checked or
// emitted.
func (c *Compiler) Parse(source string) (*Result, error) {
	r, err := c.run(map[string]string{SourceFileName: source}, true, nil)
	if err != nil {
		return nil, err
	}
	r.SourceFile = r.Program.GetSourceFile(SourceFileName)
	return r, nil
}

// CompileMap compiles a set of named in-memory sources that may import one
// another by logical name. Names must be flat: no path separators.
func (c *Compiler) CompileMap(sources map[string]string, onWrite WriteCallback) (*Result, error) {
	return c.run(sources, false, onWrite)
}

func (c *Compiler) run(sources map[string]string, parseOnly bool, onWrite WriteCallback) (*Result, error) {
	if _, clash := sources[configFileName]; clash {
		return nil, fmt.Errorf("invalid in-memory source name %q: reserved", configFileName)
	}

	// The per-call command line reuses the construction-validated options
	// with only the root file set substituted: the call's sources first,
	// then the files the configuration resolved at construction time.
	names := slices.Sorted(maps.Keys(sources))
	files := make([]string, 0, len(names)+len(c.explicitFiles))
	files = append(files, names...)
	files = append(files, c.explicitFiles...)

	callCfg := make(map[string]any, len(c.config)+1)
	maps.Copy(callCfg, c.config)
	delete(callCfg, "include")
	delete(callCfg, "exclude")
	callCfg["files"] = files

	cfgJSON, err := jsonexp.Marshal(callCfg)
	if err != nil {
		return nil, fmt.Errorf("could not serialize configuration: %w", err)
	}

	virtual := make(map[string]string, len(sources)+1)
	maps.Copy(virtual, sources)
	virtual[configFileName] = string(cfgJSON)

	var sink overlay.WriteSink
	if onWrite != nil {
		sink = func(name, text string) {
			onWrite(c.trimBase(name), text)
		}
	}

	ov, err := overlay.New(c.fs, c.basePath, virtual, sink)
	if err != nil {
		return nil, err
	}
	host := compiler.NewHost(c.basePath, ov, c.defaultLibDir)

	parsed, configDiags, err := compiler.ParseConfig(ov, c.basePath, configFileName, host)
	if err != nil {
		return nil, err
	}
	configDiags = dropNoInputs(configDiags)
	if parsed == nil {
		return nil, fmt.Errorf("could not parse configuration")
	}

	program, err := compiler.BuildProgram(parsed, host)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if !parseOnly {
		program.BindSourceFiles()
		// Emission goes through the host's filesystem, so every write lands
		// in the overlay and reaches onWrite through its sink.
		compiler.Emit(ctx, program, nil)
	}

	declaration := parsed.CompilerOptions().Declaration == core.TSTrue
	diagnostics := compiler.CollectDiagnostics(ctx, program, parseOnly, declaration, configDiags)

	return &Result{
		Program:     program,
		Diagnostics: diagnostics,
		basePath:    c.basePath,
	}, nil
}

// trimBase turns a path under the base directory back into its logical name.
func (c *Compiler) trimBase(path string) string {
	if rest, ok := strings.CutPrefix(tspath.NormalizePath(path), c.basePath+"/"); ok {
		return rest
	}
	return path
}

func dropNoInputs(diags []*ast.Diagnostic) []*ast.Diagnostic {
	kept := diags[:0:0]
	for _, d := range diags {
		if d.Code() == noInputsCode {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// normalizeConfig copies the caller's configuration object, filling in
// defaults. When the caller sets neither paths nor baseUrl, a catch-all
// paths mapping is injected so in-memory sources can import one another by
// bare logical name.
func normalizeConfig(config map[string]any) map[string]any {
	out := make(map[string]any, len(config)+1)
	maps.Copy(out, config)

	opts := make(map[string]any)
	if raw, ok := out["compilerOptions"].(map[string]any); ok {
		maps.Copy(opts, raw)
	}
	if len(opts) == 0 {
		opts["target"] = "esnext"
		opts["module"] = "preserve"
		opts["moduleResolution"] = "bundler"
	}
	if _, hasPaths := opts["paths"]; !hasPaths {
		if _, hasBaseURL := opts["baseUrl"]; !hasBaseURL {
			opts["paths"] = map[string]any{"*": []any{"./*"}}
		}
	}
	out["compilerOptions"] = opts
	return out
}
