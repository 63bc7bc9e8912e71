package mcp

import (
	"net/http"

	"github.com/cwsplatform/ecom-assist/internal/rag"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "1.0.0"

// Server exposes the knowledge base to MCP clients alongside the REST API.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "ecom-assist",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// HTTPHandler returns the streamable-HTTP transport for mounting on the
// main router.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
