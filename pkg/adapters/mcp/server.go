package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/runner"
)

const (
	// CommandsURI lists the registered command words.
	CommandsURI = "devconsole://commands"
	// HelpURI is the help page of the console.
	HelpURI = "devconsole://help"
)

// Console is the part of devconsole.Console the server needs.
type Console interface {
	Capture(ctx context.Context, line string) (*domain.Result, string, error)
	Complete(ctx context.Context, line string) domain.Suggestions
	Commands() []string
	HelpMarkdown() string
}

// Server exposes a console as an MCP server.
type Server struct {
	console   Console
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server named devconsole-mcp.
func NewServer(console Console, version string, opts ...Option) *Server {
	s := &Server{
		console:   console,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("devconsole-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("execute_command",
		mcp.WithDescription("Execute one console line, such as \"hand add Strike_R 2\". Returns the command output, or the error with a did-you-mean hint."),
		mcp.WithString("line", mcp.Required(), mcp.Description("The command line, tokens separated by spaces")),
		mcp.WithOutputSchema[runner.JSONReport](),
	), s.handleExecute)

	s.mcpServer.AddTool(mcp.NewTool("complete_command",
		mcp.WithDescription("List the candidates for the last token of a partial line. End the line with a space to ask for the next token."),
		mcp.WithString("line", mcp.Required(), mcp.Description("The partial command line")),
		mcp.WithOutputSchema[domain.Suggestions](),
	), s.handleComplete)
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := sanitize(request.GetString("line", ""))
	if err != nil {
		s.logger.Warn("MCP execute: input rejected", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}

	res, output, err := s.console.Capture(ctx, line)
	report := runner.NewJSONReport(runner.Report{Line: line, Result: res, Output: output, Err: err})
	result, mErr := structured(report)
	if mErr != nil {
		return nil, mErr
	}
	result.IsError = err != nil
	return result, nil
}

func (s *Server) handleComplete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := sanitize(request.GetString("line", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}
	return structured(s.console.Complete(ctx, line))
}

func sanitize(line string) (string, error) {
	return runner.SanitizeInput(line)
}

func structured(v any) (*mcp.CallToolResult, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultStructured(v, string(text)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CommandsURI, "Registered commands",
		mcp.WithMIMEType("application/json"),
	), s.readCommands)

	s.mcpServer.AddResource(mcp.NewResource(HelpURI, "Console help",
		mcp.WithMIMEType("text/markdown"),
	), s.readHelp)
}

func (s *Server) readCommands(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := json.Marshal(s.console.Commands())
	if err != nil {
		return nil, fmt.Errorf("failed to encode commands: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: CommandsURI, MIMEType: "application/json", Text: string(text)},
	}, nil
}

func (s *Server) readHelp(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: HelpURI, MIMEType: "text/markdown", Text: s.console.HelpMarkdown()},
	}, nil
}
