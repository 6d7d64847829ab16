// If you are AI: This script enforces repository conventions: AI headers, function comments and a line limit.

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"
)

// main walks the given directory and reports every convention violation.
func main() {
	app := kingpin.New("lint", "Check Go sources for headers, function comments and length.")
	root := app.Arg("dir", "Directory to check.").Required().ExistingDir()
	maxLines := app.Flag("max-lines", "Maximum lines per file.").Default("300").Int()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	var failures []string
	err := filepath.Walk(*root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip the example pack, vendor and testdata directories
		if info.IsDir() {
			switch info.Name() {
			case "_examples", "vendor", "testdata":
				return filepath.SkipDir
			}
			return nil
		}

		// Only check Go source files
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		failures = append(failures, checkFile(path, string(data), *maxLines)...)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "Convention violations:\n")
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		os.Exit(1)
	}
}

// checkFile returns the violations found in a single file.
// Test files are held to the line limit only.
func checkFile(path, content string, maxLines int) []string {
	var failures []string

	if lines := strings.Count(content, "\n"); lines > maxLines {
		failures = append(failures, fmt.Sprintf("%s: %d lines (max %d)", path, lines, maxLines))
	}

	if strings.HasSuffix(path, "_test.go") {
		return failures
	}

	if !strings.Contains(content, "If you are AI:") {
		failures = append(failures, fmt.Sprintf("%s: missing 'If you are AI:' header", path))
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		// Skip files that don't parse (might be generated)
		return failures
	}

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fn.Doc == nil || len(fn.Doc.List) == 0 {
			pos := fset.Position(fn.Pos())
			failures = append(failures, fmt.Sprintf("%s:%d: function %s missing comment", path, pos.Line, fn.Name.Name))
		}
	}
	return failures
}
