// Package mcpserver exposes the converters as Model Context Protocol tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpenTraceLab/easyeda2kicad/internal/version"
)

// Name is the implementation name announced to clients
const Name = "easyeda2kicad"

// New creates a server with the convert_footprint and convert_symbol tools
func New() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version.Version}, nil)
	mcp.AddTool(server, MetadataConvertFootprint, ConvertFootprint)
	mcp.AddTool(server, MetadataConvertSymbol, ConvertSymbol)
	return server
}

// Run serves the tools over stdin/stdout until the client disconnects or ctx is done
func Run(ctx context.Context) error {
	return New().Run(ctx, &mcp.StdioTransport{})
}
