package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole"
	httpAdapter "github.com/aretw0/devconsole/pkg/adapters/http"
	"github.com/aretw0/devconsole/pkg/runner"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the console over HTTP",
		Long: `Exposes the console as a JSON API:

  POST /execute   {"line": "..."}  evaluates a line
  POST /complete  {"line": "..."}  returns autocomplete candidates
  GET  /commands                   lists the root commands
  GET  /events                     streams evaluated lines and reloads (SSE)
  GET  /metrics                    prometheus metrics, unless disabled`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := runner.NewSignalManager(cmd.Context())
			defer sm.Stop()
			return a.serve(sm.Context(), cmd)
		},
	}
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().Bool("metrics", true, "Expose prometheus metrics on /metrics")
	_ = a.v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("metrics.enabled", cmd.Flags().Lookup("metrics"))
	return cmd
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s, err := a.newSession(cmd.OutOrStdout(), reg)
	if err != nil {
		return err
	}
	defer s.close()
	s.follow(ctx, a)

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(a.logger),
		httpAdapter.WithVersion(strings.TrimSpace(devconsole.Version)),
		httpAdapter.WithMaxInputSize(a.cfg.MaxInputSize),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}
	if s.watch != nil {
		opts = append(opts, httpAdapter.WithWatch(s.watch))
	}

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           httpAdapter.NewHandler(s.console, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		a.logger.Info("HTTP server stopped gracefully")
		return nil
	}
}
