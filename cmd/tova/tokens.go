package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tova-lang/tova/internal/compiler/lexer"
)

var tokensJSON bool

func init() {
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "Print tokens as a JSON array instead of a table")
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.tova>",
	Short: "Dump the lexer's token stream for a file",
	Long: `Lexes a file and prints every token it produces, without parsing or
analysis. Useful for debugging the lexer itself or for tooling that wants
the raw token stream (e.g. an external syntax highlighter).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		lx := lexer.New(string(source), path)
		toks, lexErrs := lx.ScanTokens()

		if tokensJSON {
			return printTokensJSON(toks)
		}
		printTokensTable(toks)
		for _, e := range lexErrs {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", path, e.Line, e.Column, e.Message)
		}
		return nil
	},
}

// tokenRecord is the JSON-friendly projection of a lexer.Token.
type tokenRecord struct {
	Type        string `json:"type"`
	Lexeme      string `json:"lexeme"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	FirstOnLine bool   `json:"firstOnLine"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

func printTokensJSON(toks []lexer.Token) error {
	records := make([]tokenRecord, len(toks))
	for i, t := range toks {
		records[i] = tokenRecord{
			Type:        t.Type.String(),
			Lexeme:      t.Lexeme,
			Line:        t.Line,
			Column:      t.Column,
			FirstOnLine: t.FirstOnLine,
			Start:       t.Start,
			End:         t.End,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printTokensTable(toks []lexer.Token) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "LINE:COL\tTYPE\tLEXEME")
	for _, t := range toks {
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", t.Line, t.Column, t.Type, t.Lexeme)
	}
	w.Flush()
}
