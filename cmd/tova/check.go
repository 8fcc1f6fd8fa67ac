package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tova-lang/tova/internal/cli/ui"
	cerrors "github.com/tova-lang/tova/internal/compiler/errors"
)

var (
	checkNoColor bool
	checkJSON    bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable colored output")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Report diagnostics as JSON instead of terminal output")
}

var checkCmd = &cobra.Command{
	Use:   "check <file.tova>",
	Short: "Lex, parse, and analyze a file without generating output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		_, diag, ok := compileSource(path, string(source))

		if checkJSON {
			report, err := cerrors.NewReport(diag.All()).MarshalToString(true)
			if err != nil {
				return fmt.Errorf("marshaling report: %w", err)
			}
			fmt.Println(report)
		} else {
			printDiagnostics(diag, checkNoColor)
		}

		if !ok {
			return fmt.Errorf("check failed")
		}
		if !checkJSON {
			ui.WriteSuccess(os.Stdout, fmt.Sprintf("%s is valid", path), checkNoColor)
		}
		return nil
	},
}
