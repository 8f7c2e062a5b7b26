package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"asistente/app/service/engine"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// MCPService exposes the assistant as a single "preguntar" tool over stdio,
// for clients that speak MCP instead of the console or the web form.
type MCPService struct {
	responder Responder
	srv       *mcpserver.MCPServer
}

func NewMCP(di *do.Injector) (*MCPService, error) {
	return NewMCPService(do.MustInvoke[*engine.Service](di)), nil
}

func NewMCPService(responder Responder) *MCPService {
	s := &MCPService{
		responder: responder,
	}

	srv := mcpserver.NewMCPServer("asistente", "1.0.0",
		mcpserver.WithToolCapabilities(false))

	tool := mcp.NewTool("preguntar",
		mcp.WithDescription("Responde una pregunta en español: conversión de monedas, cuánto falta para una fecha o conocimiento general."),
		mcp.WithString("pregunta",
			mcp.Required(),
			mcp.Description("La pregunta en texto libre."),
		),
	)

	srv.AddTool(tool, s.handleAsk)

	s.srv = srv

	return s
}

func (s *MCPService) Run(ctx context.Context) error {
	slog.Info("Serving MCP over stdio")

	stdio := mcpserver.NewStdioServer(s.srv)

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}

	return nil
}

func (s *MCPService) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("pregunta")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.responder.Respond(ctx, question)), nil
}
