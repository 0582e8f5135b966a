package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/microsoft/typescript-go/shim/ast"
	shimscanner "github.com/microsoft/typescript-go/shim/scanner"
)

// DiagnosticCategory mirrors the engine's diagnostics.Category.
// Redeclared here to avoid importing the internal diagnostics package.
type DiagnosticCategory int

const (
	CategoryWarning    DiagnosticCategory = 0
	CategoryError      DiagnosticCategory = 1
	CategorySuggestion DiagnosticCategory = 2
	CategoryMessage    DiagnosticCategory = 3
)

func (c DiagnosticCategory) Name() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategorySuggestion:
		return "suggestion"
	case CategoryMessage:
		return "message"
	}
	return "unknown"
}

// Title returns the category name the way the engine's enum spells it.
func (c DiagnosticCategory) Title() string {
	switch c {
	case CategoryError:
		return "Error"
	case CategoryWarning:
		return "Warning"
	case CategorySuggestion:
		return "Suggestion"
	case CategoryMessage:
		return "Message"
	}
	return "Unknown"
}

// ANSI color constants matching the engine's diagnostic writer.
const (
	colorReset  = "\u001b[0m"
	colorRed    = "\u001b[91m"
	colorYellow = "\u001b[93m"
	colorCyan   = "\u001b[96m"
	colorGrey   = "\u001b[90m"
	colorGutter = "\u001b[7m" // reverse video
)

func categoryColor(cat DiagnosticCategory) string {
	switch cat {
	case CategoryError:
		return colorRed
	case CategoryWarning:
		return colorYellow
	case CategorySuggestion:
		return colorGrey
	case CategoryMessage:
		return "\u001b[94m" // blue
	}
	return ""
}

// DiagnosticReporter formats and writes a single diagnostic to a writer.
type DiagnosticReporter func(d Diagnostic)

// IsPrettyOutput decides whether to use colored output with code snippets:
// NO_COLOR, FORCE_COLOR, then whether stderr is a terminal.
func IsPrettyOutput() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// NewDiagnosticReporter creates a reporter that formats diagnostics in tsc
// style. When pretty=true, output is colored with code snippets; otherwise
// plain: file(line,col): category TScode: message
func NewDiagnosticReporter(w io.Writer, cwd string, pretty bool) DiagnosticReporter {
	if pretty {
		return func(d Diagnostic) {
			writePrettyDiagnostic(w, d, cwd)
			fmt.Fprint(w, "\n")
		}
	}
	return func(d Diagnostic) {
		writePlainDiagnostic(w, d, cwd)
	}
}

func writePlainDiagnostic(w io.Writer, d Diagnostic, cwd string) {
	if d.File() != nil {
		line, char := shimscanner.GetECMALineAndCharacterOfPosition(d.File(), d.Pos())
		fileName := relativePath(d.File().FileName(), cwd)
		fmt.Fprintf(w, "%s(%d,%d): ", fileName, line+1, char+1)
	}
	fmt.Fprintf(w, "%s TS%d: %s\n", d.Category().Name(), d.Code(), d.Message())
}

// writePrettyDiagnostic writes a diagnostic in the engine's pretty format:
// file:line:col - error TS2322: message
// <code snippet with squiggles>
func writePrettyDiagnostic(w io.Writer, d Diagnostic, cwd string) {
	cat := d.Category()

	if d.File() != nil {
		line, char := shimscanner.GetECMALineAndCharacterOfPosition(d.File(), d.Pos())
		fileName := relativePath(d.File().FileName(), cwd)
		fmt.Fprintf(w, "%s%s%s:%s%d%s:%s%d%s",
			colorCyan, fileName, colorReset,
			colorYellow, line+1, colorReset,
			colorYellow, char+1, colorReset)
		fmt.Fprint(w, " - ")
	}

	fmt.Fprintf(w, "%s%s%s %sTS%d:%s %s",
		categoryColor(cat), cat.Name(), colorReset,
		colorGrey, d.Code(), colorReset,
		d.Message())

	if d.File() != nil && d.Diag.Len() > 0 {
		fmt.Fprint(w, "\n")
		writeCodeSnippet(w, d.File(), d.Pos(), d.Diag.Len(), categoryColor(cat))
		fmt.Fprint(w, "\n")
	}
}

// writeCodeSnippet writes source context with gutter line numbers and
// squiggles. Squiggle columns are display-width aware so wide runes do not
// skew the underline.
func writeCodeSnippet(w io.Writer, file *ast.SourceFile, start int, length int, squiggleColor string) {
	firstLine, firstLineChar := shimscanner.GetECMALineAndCharacterOfPosition(file, start)
	lastLine, lastLineChar := shimscanner.GetECMALineAndCharacterOfPosition(file, start+length)
	if length == 0 {
		lastLineChar++
	}

	text := file.Text()
	lastLineOfFile := shimscanner.GetECMALineOfPosition(file, len(text))

	hasMoreThanFiveLines := lastLine-firstLine >= 4
	gutterWidth := len(strconv.Itoa(lastLine + 1))
	if hasMoreThanFiveLines && len("...") > gutterWidth {
		gutterWidth = len("...")
	}

	for i := firstLine; i <= lastLine; i++ {
		if hasMoreThanFiveLines && firstLine+1 < i && i < lastLine-1 {
			fmt.Fprintf(w, "%s%*s%s %s\n",
				colorGutter, gutterWidth, "...", colorReset, "")
			i = lastLine - 1
		}

		lineStart := shimscanner.GetECMAPositionOfLineAndCharacter(file, i, 0)
		var lineEnd int
		if i < lastLineOfFile {
			lineEnd = shimscanner.GetECMAPositionOfLineAndCharacter(file, i+1, 0)
		} else {
			lineEnd = len(text)
		}

		lineContent := strings.TrimRightFunc(text[lineStart:lineEnd], unicode.IsSpace)
		lineContent = strings.ReplaceAll(lineContent, "\t", " ")

		fmt.Fprintf(w, "%s%*d%s %s\n",
			colorGutter, gutterWidth, i+1, colorReset, lineContent)

		fmt.Fprintf(w, "%s%*s%s ", colorGutter, gutterWidth, "", colorReset)
		fmt.Fprint(w, squiggleColor)

		runes := []rune(lineContent)
		switch i {
		case firstLine:
			lastCharForLine := lastLineChar
			if i != lastLine {
				lastCharForLine = len(runes)
			}
			fmt.Fprint(w, strings.Repeat(" ", displayWidth(runes, 0, firstLineChar)))
			squiggleLen := displayWidth(runes, firstLineChar, lastCharForLine)
			if squiggleLen < 1 {
				squiggleLen = 1
			}
			fmt.Fprint(w, strings.Repeat("~", squiggleLen))
		case lastLine:
			if lastLineChar > 0 {
				fmt.Fprint(w, strings.Repeat("~", displayWidth(runes, 0, lastLineChar)))
			}
		default:
			fmt.Fprint(w, strings.Repeat("~", runewidth.StringWidth(lineContent)))
		}
		fmt.Fprint(w, colorReset)
	}
}

// displayWidth returns the terminal width of runes[from:to], clamped to the
// slice bounds.
func displayWidth(runes []rune, from, to int) int {
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	width := 0
	for _, r := range runes[from:to] {
		width += runewidth.RuneWidth(r)
	}
	return width
}

// WriteErrorSummary writes the "Found N errors" summary (pretty mode only).
// Only CategoryError diagnostics count.
func WriteErrorSummary(w io.Writer, diags []Diagnostic, cwd string) {
	errorCount := 0
	var firstErrorFile *ast.SourceFile
	var firstErrorPos int
	fileErrors := make(map[string]int)

	for _, d := range diags {
		if d.Category() != CategoryError {
			continue
		}
		errorCount++
		if errorCount == 1 && d.File() != nil {
			firstErrorFile = d.File()
			firstErrorPos = d.Pos()
		}
		if d.File() != nil {
			fileErrors[d.File().FileName()]++
		}
	}

	if errorCount == 0 {
		return
	}

	numFiles := len(fileErrors)
	fmt.Fprint(w, "\n")

	if errorCount == 1 {
		if firstErrorFile != nil {
			line := shimscanner.GetECMALineOfPosition(firstErrorFile, firstErrorPos)
			fileName := relativePath(firstErrorFile.FileName(), cwd)
			fmt.Fprintf(w, "Found 1 error in %s%s:%d%s\n",
				fileName, colorGrey, line+1, colorReset)
		} else {
			fmt.Fprintln(w, "Found 1 error.")
		}
	} else if numFiles <= 1 {
		if firstErrorFile != nil {
			line := shimscanner.GetECMALineOfPosition(firstErrorFile, firstErrorPos)
			fileName := relativePath(firstErrorFile.FileName(), cwd)
			fmt.Fprintf(w, "Found %d errors in the same file, starting at: %s%s:%d%s\n",
				errorCount, fileName, colorGrey, line+1, colorReset)
		} else {
			fmt.Fprintf(w, "Found %d errors.\n", errorCount)
		}
	} else {
		fmt.Fprintf(w, "Found %d errors in %d files.\n", errorCount, numFiles)
	}
	fmt.Fprint(w, "\n")
}

// CountErrors returns the number of CategoryError diagnostics.
func CountErrors(diags []Diagnostic) int {
	count := 0
	for _, d := range diags {
		if d.Category() == CategoryError {
			count++
		}
	}
	return count
}

// relativePath converts an absolute path to relative if possible.
func relativePath(absPath string, cwd string) string {
	if cwd == "" {
		return absPath
	}
	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
