// Lambda entrypoint for the JSON-RPC MCP surface.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/somesh-bagadiya/sb-omnicore/internal/config"
	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
	"github.com/somesh-bagadiya/sb-omnicore/internal/transport"
	"github.com/somesh-bagadiya/sb-omnicore/internal/upstream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client := upstream.New(cfg.Portfolio.BaseURL)
	d := dispatch.New(client, dispatch.WithLogger(logger))

	adapter := transport.NewRPCAdapter(d, logger)
	lambda.Start(adapter.Handle)
}
