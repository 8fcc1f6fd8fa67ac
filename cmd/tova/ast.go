package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/tova-lang/tova/internal/compiler/lexer"
	"github.com/tova-lang/tova/internal/compiler/parser"
)

var astTolerant bool

func init() {
	astCmd.Flags().BoolVar(&astTolerant, "tolerant", false, "Parse in tolerant mode and dump whatever AST was recovered")
}

var astCmd = &cobra.Command{
	Use:   "ast <file.tova>",
	Short: "Dump the parsed AST for a file as JSON",
	Long: `Lexes and parses a file, then prints its AST as JSON, without running
analysis or code generation. Every node is tagged with its Go type name and
source location, reflected generically off the ast package's node structs
the same way go/ast.Fprint walks the standard library's own AST.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		lx := lexer.New(string(source), path)
		tokens, lexErrs := lx.ScanTokens()
		if len(lexErrs) > 0 && !astTolerant {
			return fmt.Errorf("lexing %s: %d error(s), first: %s", path, len(lexErrs), lexErrs[0].Message)
		}

		if astTolerant {
			p := parser.NewTolerant(tokens, path, string(source))
			program, perr := p.Parse()
			if program == nil {
				if fe, ok := perr.(*parser.FatalParseError); ok {
					program = fe.PartialAST
				}
			}
			return printASTJSON(program)
		}

		p := parser.New(tokens, path, string(source))
		program, err := p.Parse()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return printASTJSON(program)
	},
}

func printASTJSON(node interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dumpNode(reflect.ValueOf(node)))
}

// dumpNode reflects an AST value (a *ast.Program, or anything reachable
// from one - Stmt/Expr/Pattern/JSXNode interfaces, slices, maps, structs,
// or plain scalars) into a JSON-friendly tree. Every struct gets a "type"
// key naming its Go type, since the AST has no other built-in
// discriminator once flattened to JSON.
func dumpNode(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return dumpNode(v.Elem())
	case reflect.Struct:
		t := v.Type()
		out := map[string]interface{}{"type": t.Name()}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported
			}
			if f.Anonymous && f.Name == "Base" {
				if loc := v.Field(i).FieldByName("Location"); loc.IsValid() {
					out["loc"] = dumpNode(loc)
				}
				continue
			}
			out[f.Name] = dumpNode(v.Field(i))
		}
		return out
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return []interface{}{}
		}
		out := make([]interface{}, v.Len())
		for i := range out {
			out[i] = dumpNode(v.Index(i))
		}
		return out
	case reflect.Map:
		out := map[string]interface{}{}
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = dumpNode(iter.Value())
		}
		return out
	default:
		return v.Interface()
	}
}
