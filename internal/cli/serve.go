package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/api"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/render"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

type serveOpts struct {
	addr    string
	metrics bool
	timeout time.Duration
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    defaultAddr,
		metrics: true,
		timeout: api.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compositions over HTTP",
		Long: `Serve compositions over HTTP.

  GET  /compose.{svg,png,pdf,json}?seed=42&palette=pastel
  POST /compose                      {"seed": 42, "formats": ["svg", "png"]}
  GET  /compositions/{id}
  GET  /palettes, /version, /healthz, /metrics

Use --cache-url to share a Redis or MongoDB cache between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics at /metrics")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe serves the API until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	serverOpts := []api.Option{api.WithLogger(c.Logger), api.WithTimeout(opts.timeout)}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if _, err := observability.RegisterPrometheus(reg); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		defer observability.Reset()
		serverOpts = append(serverOpts, api.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}

	srv := &http.Server{
		Handler:           api.New(runner, serverOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Listening on %s", ln.Addr())
	printKeyValue("metrics", fmt.Sprintf("%t", opts.metrics))
	printKeyValue("cache", cacheLabel(c.CacheURL, opts.noCache))
	if !render.Available() {
		printWarning("rsvg-convert not found, /compose.pdf will return 501")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	prog := newProgress(c.Logger)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	prog.done("server stopped")
	return nil
}

// cacheLabel describes the configured cache backend without credentials.
func cacheLabel(rawURL string, noCache bool) string {
	switch {
	case noCache || rawURL == "none":
		return "disabled"
	case rawURL == "":
		dir, err := cacheDir()
		if err != nil {
			return "disabled"
		}
		return dir
	}
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		return u.Scheme
	}
	return "custom"
}
