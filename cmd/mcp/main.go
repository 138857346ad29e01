package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/palettelab/color-agent/internal/mcpadapter"
	"github.com/palettelab/color-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "color-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_color",
		Description: "Resolve one free-form color description into a canonical name, hex code and short description",
	}, mcpadapter.NewLookupHandler(deps.Resolver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_colors",
		Description: "Split free-form text naming several colors (lines, bullets, commas, optional 'Category:' labels) and resolve each one",
	}, mcpadapter.NewResolveHandler(deps.Resolver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_palette",
		Description: "Suggest a categorized palette of 3-8 colors for an open-ended context such as a room, mood or theme",
	}, mcpadapter.NewSuggestHandler(deps.Resolver))

	return server
}
