package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/sdml/loader"
	"github.com/c360studio/sdml/watch"
)

func watchCmd(global *globalFlags) *cobra.Command {
	var (
		flags       outputFlags
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch MODULE_NAME",
		Short: "Re-convert a module whenever its documents change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stream, err := connectStream(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if stream != nil {
				defer stream.Close()
			}
			app := NewApp(cfg, logger, streamOrNil(stream))

			if metricsAddr != "" {
				shutdown := serveMetrics(app, metricsAddr, logger)
				defer shutdown()
			}

			w, err := watch.New(watch.Config{
				Patterns: cfg.Modules.Paths,
				Debounce: cfg.Watch.Debounce,
			}, logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			if files, err := loader.Discover(cfg.Modules.Paths); err == nil {
				w.Seed(files)
			}

			convert := func() {
				if err := convertOnce(ctx, cmd, app, &flags, cfg, args[0]); err != nil {
					logger.Error("Conversion failed", "module", args[0], "error", err)
				}
			}
			convert()

			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			for {
				select {
				case <-ctx.Done():
					logger.Info("Watch stopped")
					return nil
				case batch, ok := <-w.Events():
					if !ok {
						return nil
					}
					for _, e := range batch {
						logger.Info("Module document changed", "path", e.Path, "op", e.Operation)
					}
					convert()
				}
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// serveMetrics exposes the app's lowering metrics and returns a shutdown func.
func serveMetrics(app *App, addr string, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
