package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"desksweep/internal/adapters/cloud"
	"desksweep/internal/adapters/filesystem"
	mcpadapter "desksweep/internal/adapters/mcp"
	"desksweep/internal/adapters/trash"
	"desksweep/internal/application"
	"desksweep/internal/config"
)

func main() {
	locationFlag := flag.String("location", "", "folder to sweep (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("desksweep-mcp: %v", err)
	}
	if *locationFlag != "" {
		cfg.Location = *locationFlag
	}

	svc := application.NewService(cfg, filesystem.NewSource(), trash.NewMover(), cloud.NewMover(), nil)
	defer svc.Close()
	guard := mcpadapter.NewGuard(svc)

	mcpServer := server.NewMCPServer(
		"desksweep-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, guard)
	mcpadapter.RegisterWriteTools(mcpServer, guard)
	mcpadapter.RegisterReviewTools(mcpServer, guard)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("desksweep-mcp: %v", err)
	}
}
