package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Pipeline defines what the MCP server needs from the orchestrator.
// *pipeline.Pipeline satisfies it.
type Pipeline interface {
	Run(ctx context.Context, op domain.Operation) error
	Stages(op domain.Operation) ([]domain.Stage, error)
}

// Server exposes the pipeline operations as MCP tools.
// Calls are serialized: two agents can never run tools on the same board at once.
type Server struct {
	pipeline  Pipeline
	mcpServer *server.MCPServer
	mu        sync.Mutex
}

// NewServer creates a new MCP Server instance.
func NewServer(p Pipeline) *Server {
	s := &Server{
		pipeline:  p,
		mcpServer: server.NewMCPServer("fpgaflow-mcp", strings.TrimSpace(fpgaflow.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
// Tool output must not be written to Stdout while it runs.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("build",
		mcp.WithDescription("Synthesize, place and route, and pack the FPGA bitstreams. Stops at the first failing stage."),
	), s.handleOperation(domain.OperationBuild))

	s.mcpServer.AddTool(mcp.NewTool("upload",
		mcp.WithDescription("Program the attached device with the programmer tool."),
	), s.handleOperation(domain.OperationUpload))

	s.mcpServer.AddTool(mcp.NewTool("clean",
		mcp.WithDescription("Delete generated intermediate and transient files. Idempotent."),
	), s.handleOperation(domain.OperationClean))

	s.mcpServer.AddTool(mcp.NewTool("plan",
		mcp.WithDescription("List the tool invocations of an operation without running them."),
		mcp.WithString("operation", mcp.Required(), mcp.Description("build, upload or clean")),
	), s.handlePlan)
}

func (s *Server) handleOperation(op domain.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.pipeline.Run(ctx, op); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s succeeded", op)), nil
	}
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("operation", string(domain.DefaultOperation))
	op, err := domain.ParseOperation(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stages, err := s.pipeline.Stages(op)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, _ := json.Marshal(stages)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
