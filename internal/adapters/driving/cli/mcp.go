package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/watch"
	"github.com/clearday-labs/nextact-cli/internal/adapters/driving/mcp"
	"github.com/clearday-labs/nextact-cli/internal/core/domain"
	"github.com/clearday-labs/nextact-cli/internal/core/services"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

While serving, nextact keeps its search indexes current: a filesystem
watcher rebuilds them when the data directory changes, and a background
scheduler reindexes periodically and scans for projects due review.

Examples:
  # Stdio mode (default, for Claude Desktop)
  nextact mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  nextact mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "nextact": {
        "command": "/path/to/nextact",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ports := &mcp.Ports{
		Search:   searchService,
		History:  historyService,
		Forecast: forecastService,
		Entities: entityStore,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	stopBackground := startBackground(cmd.Context())
	defer stopBackground()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// startBackground launches the maintenance scheduler and the data
// directory watcher for the lifetime of the server. Returns a stop
// function; failures degrade to a foreground-only server.
func startBackground(ctx context.Context) func() {
	var stops []func()

	if store != nil && entityStore != nil && reviewService != nil {
		scheduler := services.NewScheduler(
			domain.DefaultSchedulerConfig(),
			store.SchedulerStore(),
			entityStore,
			searchService,
			reviewService,
		)
		go func() {
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Scheduler stopped: %v", err)
			}
		}()
		stops = append(stops, func() { _ = scheduler.Stop() })
	}

	if store != nil {
		watcher, err := watch.NewWatcher(filepath.Dir(store.Path()), reindexOnChange)
		if err != nil {
			logger.Warn("Watcher unavailable: %v", err)
		} else if err := watcher.Start(ctx); err != nil {
			logger.Warn("Watcher failed to start: %v", err)
		} else {
			stops = append(stops, func() { _ = watcher.Stop() })
		}
	}

	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// reindexOnChange rebuilds every index from the entity store.
func reindexOnChange(ctx context.Context) {
	collections, err := entityStore.Collections(ctx)
	if err != nil {
		logger.Warn("Reindex failed: %v", err)
		return
	}
	searchService.InitializeIndexes(*collections)
}
