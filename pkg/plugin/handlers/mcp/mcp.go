package mcp

import (
	"net/http"

	"github.com/Fl0rencess720/repoaccess/pkg/plugin/config"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func NewMCPHandler(cfg *config.Config, svc *handlers.RepoService) http.Handler {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.ServiceName,
		Version: cfg.ServiceVersion,
	}, nil)
	registerRepoTools(server, svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return server },
		&mcp.StreamableHTTPOptions{
			Stateless:    true,
			JSONResponse: true,
		},
	)

	return handler
}
