package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/somesh-bagadiya/sb-omnicore/internal/api"
	"github.com/somesh-bagadiya/sb-omnicore/internal/config"
	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
	"github.com/somesh-bagadiya/sb-omnicore/internal/upstream"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Run the MCP server over stdin/stdout (for IDE integration)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStdio()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST-style HTTP server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the upstream portfolio API endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

// setup loads configuration, initializes logging, and builds the
// dispatcher shared by every command.
func setup() (config.Config, *dispatch.Dispatcher, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	// Logs go to stderr: stdout belongs to the MCP stdio transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	client := upstream.New(cfg.Portfolio.BaseURL)
	d := dispatch.New(client, dispatch.WithLogger(logger))
	return cfg, d, logger, nil
}

func runStdio() error {
	_, d, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mcpSrv := api.NewMCPServer(d)
	stdioSrv := server.NewStdioServer(mcpSrv)

	logger.Info("MCP server started (stdio transport)", "version", version)
	if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runServe() error {
	cfg, d, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewRESTHandler(d, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "sb-omnicore listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runCheck() error {
	cfg, _, _, err := setup()
	if err != nil {
		return err
	}

	client := upstream.New(cfg.Portfolio.BaseURL)
	printStatus("Upstream", "%s", cfg.Portfolio.BaseURL)

	probes := []struct {
		name  string
		fetch func(ctx context.Context) error
	}{
		{"profile", func(ctx context.Context) error { _, err := client.GetProfile(ctx); return err }},
		{"projects", func(ctx context.Context) error { _, err := client.GetProjects(ctx); return err }},
		{"experience", func(ctx context.Context) error { _, err := client.GetExperience(ctx); return err }},
		{"education", func(ctx context.Context) error { _, err := client.GetEducation(ctx); return err }},
	}

	results := make([]error, len(probes))
	g, ctx := errgroup.WithContext(context.Background())
	for i, probe := range probes {
		i, probe := i, probe
		g.Go(func() error {
			results[i] = probe.fetch(ctx)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, probe := range probes {
		if results[i] != nil {
			printError("%s: %v", probe.name, results[i])
			failed++
		} else {
			printSuccess("%s endpoint reachable", probe.name)
		}
	}

	if failed > 0 {
		printWarning("%d of %d endpoints failed", failed, len(probes))
		return fmt.Errorf("%d upstream endpoints unreachable", failed)
	}
	printSuccess("all portfolio endpoints reachable")
	return nil
}
