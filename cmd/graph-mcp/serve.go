package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/graph-mcp/graph-mcp/internal/config"
	"github.com/graph-mcp/graph-mcp/internal/directory"
	"github.com/graph-mcp/graph-mcp/internal/graph"
	"github.com/graph-mcp/graph-mcp/internal/mcpserver"
	"github.com/graph-mcp/graph-mcp/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := graph.NewWithOptions(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, graph.Options{
		HTTPClient:       &http.Client{Timeout: cfg.HTTPTimeout},
		GraphBaseURL:     cfg.GraphBaseURL,
		AuthorityBaseURL: cfg.AuthorityBaseURL,
	})
	if err != nil {
		return err
	}

	srv := mcpserver.New(directory.NewService(client), version)

	group, ctx := errgroup.WithContext(ctx)

	if metricsErr := metrics.StartServer(ctx, cfg.MetricsAddr); metricsErr != nil {
		group.Go(func() error {
			select {
			case err := <-metricsErr:
				return err
			case <-ctx.Done():
				return nil
			}
		})
	}

	group.Go(func() error {
		slog.Info("mcp server listening on stdio", "version", version)
		return mcpserver.ServeStdio(ctx, srv)
	})

	return mapServeError(group.Wait())
}

// mapServeError maps a serve failure onto the process exit contract:
// signal-driven cancellation exits 130 without duplicate output, anything
// else exits 1 and is reported.
func mapServeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return &exitError{code: 130, err: err, silent: true}
	}
	return &exitError{code: 1, err: err, silent: false}
}
