package plugin

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Fl0rencess720/repoaccess/pkg/common/observability"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/config"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/handlers"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/handlers/mcp"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/pkgs/ghclient"
	"github.com/gin-contrib/cors"
	ginZap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
}

// NewServer builds the GitHub client from cfg and wires it into the routes.
func NewServer(cfg *config.Config) (*Server, error) {
	client, err := ghclient.New(ghclient.Config{
		Token:   cfg.GitHubToken,
		BaseURL: cfg.GitHubBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init github client failed: %w", err)
	}
	if cfg.GitHubToken == "" {
		zap.L().Warn("GITHUB_TOKEN is empty, using unauthenticated GitHub access")
	}

	return NewServerWithClient(cfg, client), nil
}

func NewServerWithClient(cfg *config.Config, client handlers.RepoClient) *Server {
	e := gin.New()
	e.Use(tracingMiddleware())
	e.Use(gin.Recovery(), ginZap.Ginzap(zap.L(), time.RFC3339, true), ginZap.RecoveryWithZap(zap.L(), false))
	e.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{observability.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	svc := handlers.NewRepoService(client)

	handlers.InitHealthApi(e, cfg.ServiceName)
	handlers.InitManifestApi(e, cfg.ManifestPath)

	app := e.Group("/api")
	{
		handlers.InitRepoApi(app.Group("/repos"), svc)
	}

	mcpHandler := gin.WrapH(mcp.NewMCPHandler(cfg, svc))
	e.GET("/mcp", mcpHandler)
	e.POST("/mcp", mcpHandler)
	e.DELETE("/mcp", mcpHandler)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpServer}
}

func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Server shutdown error", zap.Error(err))
		}
	}()

	zap.S().Infof("Plugin server listening on %s", s.httpServer.Addr)

	return s.httpServer.ListenAndServe()
}
