package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/pkg/adapters/mcp"
	"github.com/aretw0/devconsole/pkg/runner"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the console to MCP clients through the execute_command and
complete_command tools and the devconsole://commands resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			addr, _ := cmd.Flags().GetString("addr")
			baseURL, _ := cmd.Flags().GetString("base-url")

			// Command output only travels inside tool results.
			s, err := a.newSession(io.Discard, nil)
			if err != nil {
				return err
			}
			defer s.close()

			srv := mcp.NewServer(s.console, strings.TrimSpace(devconsole.Version), mcp.WithLogger(a.logger))

			switch transport {
			case "stdio":
				a.logger.Info("starting MCP server (stdio)")
				return srv.ServeStdio()
			case "sse":
				sm := runner.NewSignalManager(cmd.Context())
				defer sm.Stop()
				s.follow(sm.Context(), a)
				if baseURL == "" {
					baseURL = "http://localhost" + addr
				}
				err := srv.ServeSSE(sm.Context(), addr, baseURL)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				a.logger.Info("MCP server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	cmd.Flags().String("base-url", "", "Public base URL of the SSE endpoint")
	return cmd
}
