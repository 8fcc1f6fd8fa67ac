package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tova-lang/tova/internal/cli/ui"
	"github.com/tova-lang/tova/internal/compiler/codegen"
)

var (
	watchOutDir  string
	watchNoColor bool
	watchPollMs  int
)

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out", "build", "Output directory for generated JavaScript")
	watchCmd.Flags().BoolVar(&watchNoColor, "no-color", false, "Disable colored output")
	watchCmd.Flags().IntVar(&watchPollMs, "poll-ms", 300, "File modification poll interval in milliseconds")
}

var watchCmd = &cobra.Command{
	Use:   "watch <file.tova>",
	Short: "Recompile a file on every save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		rebuild := func() {
			source, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, ui.FormatError(ui.ErrorOptions{Level: ui.ErrorLevelError, Problem: err.Error(), NoColor: watchNoColor}))
				return
			}
			prog, diag, ok := compileSource(path, string(source))
			printDiagnostics(diag, watchNoColor)
			if !ok {
				return
			}
			res := codegen.New().GenerateProgram(prog)
			if _, err := writeOutputs(watchOutDir, res); err != nil {
				fmt.Fprintln(os.Stderr, ui.FormatError(ui.ErrorOptions{Level: ui.ErrorLevelError, Problem: err.Error(), NoColor: watchNoColor}))
				return
			}
			ui.WriteSuccess(os.Stdout, fmt.Sprintf("rebuilt %s", filepath.Base(path)), watchNoColor)
		}

		rebuild()

		var lastMod time.Time
		if info, err := os.Stat(path); err == nil {
			lastMod = info.ModTime()
		}

		ticker := time.NewTicker(time.Duration(watchPollMs) * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)
		for {
			select {
			case <-sigChan:
				fmt.Println("\nStopped.")
				return nil
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				if info.ModTime().After(lastMod) {
					lastMod = info.ModTime()
					rebuild()
				}
			}
		}
	},
}
