package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tova-lang/tova/internal/cli/config"
	"github.com/tova-lang/tova/internal/compiler/errors"
	"github.com/tova-lang/tova/internal/devserver"
	"github.com/tova-lang/tova/internal/watch"
)

var (
	servePort  int
	serveHost  string
	serveWatch bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides tova.yml server.port)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides tova.yml server.host)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Watch project files and push reload notifications over GET /reload")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dev-tooling server (POST /compile, GET /watch, GET /reload)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if serveHost != "" {
			cfg.Server.Host = serveHost
		}

		dsConfig := devserver.DefaultConfig()
		dsConfig.Address = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

		srv := devserver.New(dsConfig)

		var fw *watch.FileWatcher
		if serveWatch {
			rs := watch.NewReloadServer()
			srv.AttachReload(rs)

			assets := watch.NewAssetWatcher(rs)
			compiler := devserver.NewCompiler()

			fw, err = watch.NewFileWatcher(nil, []string{"*.tova~", "*.swp"}, func(files []string) error {
				impact := watch.AnalyzeImpact(files)
				if !impact.RequiresRebuild {
					return assets.HandleAssetChange(files)
				}

				rs.NotifyBuilding(impact.AffectedResources)
				start := time.Now()
				var errs []*watch.ErrorInfo
				for _, f := range impact.AffectedResources {
					source, readErr := os.ReadFile(f)
					if readErr != nil {
						continue
					}
					result := compiler.Compile(f, string(source))
					for _, d := range result.Diagnostics.Errors {
						errs = append(errs, &watch.ErrorInfo{
							Message:  d.Message,
							File:     d.Location.File,
							Line:     d.Location.Line,
							Severity: errors.SeverityError.String(),
						})
					}
				}
				if len(errs) > 0 {
					rs.NotifyErrors(errs)
					return nil
				}
				rs.NotifySuccess(time.Since(start))
				rs.NotifyReload("backend")
				return nil
			})
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			if err := fw.Start(); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer fw.Stop()
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			mode := ""
			if serveWatch {
				mode = " (watching for changes)"
			}
			fmt.Printf("tova serve listening on %s%s\n", dsConfig.Address, mode)
			errChan <- srv.ListenAndServe()
		}()

		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-sigChan:
			fmt.Println("\nShutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}
