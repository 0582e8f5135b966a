// Command tsc-simple compiles or syntax-checks a single TypeScript file (or
// stdin) entirely in memory and prints the resulting diagnostics. Nothing is
// written to disk unless -write is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsonexp "github.com/go-json-experiment/json"

	tscsimple "github.com/fictitious/tsc-simple"
	"github.com/fictitious/tsc-simple/internal/compiler"
	"github.com/fictitious/tsc-simple/internal/writecache"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("tsc-simple", flag.ExitOnError)

	var (
		configPath string
		parseOnly  bool
		write      bool
		outDir     string
	)

	flags.StringVar(&configPath, "config", "", "Path to a tsconfig-shaped JSON file")
	flags.BoolVar(&parseOnly, "parse", false, "Syntax-check only; skip type checking and emit")
	flags.BoolVar(&write, "write", false, "Write captured compiler output to disk")
	flags.StringVar(&outDir, "out", ".", "Directory for -write output")

	flags.Usage = func() {
		fmt.Println("Usage: tsc-simple [flags] [file]")
		fmt.Println()
		fmt.Println("Compiles the given file (or stdin when no file is named) in memory")
		fmt.Println("and prints diagnostics. Output is discarded unless -write is set.")
		fmt.Println()
		fmt.Println("Flags:")
		flags.PrintDefaults()
	}

	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v":
			fmt.Println("tsc-simple", version)
			return 0
		}
	}
	flags.Parse(args)

	source, err := readSource(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var config map[string]any
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		if err := jsonexp.Unmarshal(data, &config); err != nil {
			fmt.Fprintf(os.Stderr, "error: parsing %s: %v\n", configPath, err)
			return 1
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not get working directory: %v\n", err)
		return 1
	}

	tsc, err := tscsimple.New(tscsimple.Options{Config: config, BasePath: cwd})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var result *tscsimple.Result
	if parseOnly {
		result, err = tsc.Parse(source)
	} else {
		var onWrite tscsimple.WriteCallback
		if write {
			cache := writecache.New()
			onWrite = func(name, text string) {
				if err := writeOutput(outDir, name, text, cache); err != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
			}
		}
		result, err = tsc.Compile(source, onWrite)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	pretty := compiler.IsPrettyOutput()
	report := compiler.NewDiagnosticReporter(os.Stderr, cwd, pretty)
	for _, d := range result.Diagnostics {
		report(d)
	}
	if pretty {
		compiler.WriteErrorSummary(os.Stderr, result.Diagnostics, cwd)
	}

	if compiler.CountErrors(result.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// readSource reads the named file, or stdin when name is empty or "-".
func readSource(name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput persists one captured compiler output under outDir, skipping
// rewrites whose content and on-disk state are unchanged.
func writeOutput(outDir, name, text string, cache *writecache.Cache) error {
	if strings.Contains(name, "..") {
		return fmt.Errorf("refusing to write outside output directory: %s", name)
	}
	path := filepath.Join(outDir, filepath.FromSlash(name))

	bom := strings.HasPrefix(text, "\uFEFF")
	if cache.ShouldSkip(path, text, bom) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cache.Record(path, text, bom)
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
