package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/facesconfig/pkg/cli"
	"mercator-hq/facesconfig/pkg/config"
	"mercator-hq/facesconfig/pkg/history"
	"mercator-hq/facesconfig/pkg/manager"
	"mercator-hq/facesconfig/pkg/telemetry/health"
	"mercator-hq/facesconfig/pkg/telemetry/metrics"
	"mercator-hq/facesconfig/pkg/telemetry/tracing"
)

const (
	healthCheckTimeout = 2 * time.Second
	shutdownTimeout    = 5 * time.Second
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		listen   string
		noReload bool
	)

	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Load documents and reload them on change",
		Long: `Load the documents, then reload them whenever one changes on disk. A
failed reload keeps the last good graph. With --no-reload the documents are
loaded once.

While running, an HTTP listener serves metrics, /health, /ready and /version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.config
			cfg.Documents = a.documentsConfig(args)
			if err := a.requirePaths(cfg.Documents); err != nil {
				return cli.NewCommandError("watch", err)
			}
			if listen != "" {
				cfg.Watch.ListenAddress = listen
			}

			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()
			return a.watch(ctx, &cfg, !noReload, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "metrics and health listen address (overrides watch.listen_address)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "load once and serve without watching for changes")
	return cmd
}

func (a *app) watch(ctx context.Context, cfg *config.Config, reload bool, out io.Writer) error {
	logger := a.logger

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	checker := health.New(healthCheckTimeout)

	opts := []manager.Option{
		manager.WithLogger(logger),
		manager.WithReporter(collector),
	}

	if cfg.History.Enabled {
		store, err := history.Open(&cfg.History, logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
		opts = append(opts, manager.WithHistory(store))
		checker.Register("history", store.Ping)

		scheduler := history.NewScheduler(history.NewPruner(store, cfg.History.Retention, logger))
		if err := scheduler.Start(ctx); err != nil {
			logger.Warn("Failed to start history retention", "error", err)
		} else {
			defer scheduler.Stop()
			if next := scheduler.NextRun(); !next.IsZero() {
				logger.Debug("History retention scheduled", "next_run", next)
			}
		}
	}

	p := a.newParser(pipelineOptions{tracer: tracer.Tracer(), collector: collector})
	m, err := manager.New(cfg, p, opts...)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer m.Close()
	checker.Register("graph", m.Ready)

	if err := m.Load(ctx); err != nil {
		logger.Error("Initial load failed, waiting for changes", "error", err)
	}

	mux := http.NewServeMux()
	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	}
	health.Mount(mux, checker, Version, GitCommit, BuildDate)
	srv := &http.Server{
		Addr:              cfg.Watch.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Serving health and metrics", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		defer srv.Close()
		if !reload {
			<-gctx.Done()
			return nil
		}
		if err := m.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if gctx.Err() == nil {
			return errors.New("document watcher stopped")
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-m.Events():
				if ev.Err != nil {
					fmt.Fprintf(out, "✗ %s failed: %v\n", ev.Trigger, ev.Err)
					continue
				}
				fmt.Fprintf(out, "✓ %s %s (%s)\n", ev.Trigger, ev.Version, ev.Duration.Round(time.Millisecond))
			}
		}
	})

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("watch", err)
	}
	logger.Info("Watch stopped")
	return nil
}
