package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "vartree/internal/adapters/mcp"
	"vartree/internal/adapters/opener"
	"vartree/internal/application/commands"
	"vartree/internal/config"
	"vartree/internal/logger"
)

func main() {
	cfg := config.Load()
	sourceFlag := flag.String("source", cfg.Source, "document to serve: file, sqlite://path?table=name or s3://bucket/key")
	langFlag := flag.String("lang", cfg.Language, "language of the column titles")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	// stdout carries the protocol, so logs only ever go to a file
	if err := logger.Init(logger.Options{Enabled: cfg.Log, LogDir: cfg.LogDir, Level: level}); err != nil {
		log.Fatalf("vartree-mcp: %v", err)
	}

	ctx := context.Background()

	opened, err := commands.NewOpenSourceCommand(opener.New(cfg), *sourceFlag).Execute(ctx)
	if err != nil {
		log.Fatalf("vartree-mcp: %v", err)
	}
	defer opened.Close()

	loaded, err := commands.NewLoadModelCommand(opened.Source, *langFlag).Execute(ctx)
	if err != nil {
		log.Fatalf("vartree-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"vartree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	session := mcpadapter.NewSession(opened.Source, loaded.Model)
	mcpadapter.RegisterReadTools(mcpServer, session)
	mcpadapter.RegisterSessionTools(mcpServer, session)

	logger.Info("serving document over mcp", "source", loaded.Source)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("mcp server stopped", "err", err)
		log.Fatalf("vartree-mcp: %v", err)
	}
}
