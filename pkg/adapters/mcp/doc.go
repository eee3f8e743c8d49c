// Package mcp exposes a console to MCP clients: tools execute_command and
// complete_command, resources devconsole://commands and devconsole://help.
package mcp
