package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tova-lang/tova/internal/cli/ui"
	"github.com/tova-lang/tova/internal/compiler/analyzer"
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/codegen"
	cerrors "github.com/tova-lang/tova/internal/compiler/errors"
	"github.com/tova-lang/tova/internal/compiler/lexer"
	"github.com/tova-lang/tova/internal/compiler/parser"
)

var (
	buildOutDir string
	buildNoColor bool
)

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out", "build", "Output directory for generated JavaScript")
	buildCmd.Flags().BoolVar(&buildNoColor, "no-color", false, "Disable colored output")
}

var buildCmd = &cobra.Command{
	Use:   "build <file.tova>",
	Short: "Compile a Tova source file to JavaScript",
	Long:  "Lex, parse, analyze, and generate JavaScript for a single .tova source file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		prog, diag, ok := compileSource(path, string(source))
		if !ok {
			printDiagnostics(diag, buildNoColor)
			return fmt.Errorf("compilation failed with %d error(s)", diag.ErrorCount())
		}
		printDiagnostics(diag, buildNoColor)

		res := codegen.New().GenerateProgram(prog)
		if err := os.MkdirAll(buildOutDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", buildOutDir, err)
		}

		written, err := writeOutputs(buildOutDir, res)
		if err != nil {
			return err
		}

		ui.WriteSuccess(os.Stdout, fmt.Sprintf("Compiled %s -> %d file(s) in %s", path, len(written), buildOutDir), buildNoColor)
		for _, f := range written {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

// writeOutputs flattens a codegen.Result into files on disk. One file per
// populated output section; named servers each get their own file under
// servers/.
func writeOutputs(dir string, res *codegen.Result) ([]string, error) {
	var written []string

	writeFile := func(name, content string) error {
		if content == "" {
			return nil
		}
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	}

	if err := writeFile("shared.js", res.Shared); err != nil {
		return nil, err
	}
	if err := writeFile("client.js", res.Client); err != nil {
		return nil, err
	}
	if res.IsCLI {
		if err := writeFile("cli.js", res.CLI); err != nil {
			return nil, err
		}
	}
	if res.MultiBlock {
		for name, content := range res.Servers {
			if err := writeFile(filepath.Join("servers", name+".js"), content); err != nil {
				return nil, err
			}
		}
	} else if err := writeFile("server.js", res.Server); err != nil {
		return nil, err
	}

	return written, nil
}

// compileSource runs the lex/parse/analyze pipeline and reports whether
// the program is clean enough to generate code for (no lex, parse, or
// analysis errors; warnings don't block generation). Diagnostics from
// every phase are collected into a single *errors.List.
func compileSource(path, source string) (*ast.Program, *cerrors.List, bool) {
	diag := cerrors.NewList()

	lx := lexer.New(source, path)
	tokens, lexErrs := lx.ScanTokens()
	for _, e := range lexErrs {
		loc := ast.SourceLocation{File: path, Line: e.Line, Column: e.Column}
		diag.Add(cerrors.Enrich(cerrors.New(cerrors.CategoryLexer, cerrors.LexInvalidCharacter, e.Message, loc, cerrors.SeverityError), source))
	}

	p := parser.New(tokens, path, source)
	prog, err := p.Parse()
	if err != nil {
		diag.Add(cerrors.New(cerrors.CategorySyntax, cerrors.SynUnexpectedToken, err.Error(), ast.SourceLocation{File: path}, cerrors.SeverityError))
		return nil, diag, false
	}

	res := analyzer.Analyze(prog, path, false)
	for _, d := range res.Errors {
		diag.Add(cerrors.Enrich(cerrors.FromDiagnostic(true, d.Message, d.Loc), source))
	}
	for _, d := range res.Warnings {
		diag.Add(cerrors.Enrich(cerrors.FromDiagnostic(false, d.Message, d.Loc), source))
	}

	return prog, diag, !diag.HasErrors()
}

func printDiagnostics(diag *cerrors.List, noColor bool) {
	for _, d := range diag.Errors() {
		fmt.Fprint(os.Stderr, d.FormatForTerminal(noColor))
	}
	for _, d := range diag.Warnings() {
		fmt.Fprint(os.Stderr, d.FormatForTerminal(noColor))
	}
}
