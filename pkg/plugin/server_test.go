package plugin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/Fl0rencess720/repoaccess/pkg/common/observability"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type stubRepoClient struct{}

func (stubRepoClient) GetRepositoryStructure(_ context.Context, _, _, path, _ string) (*models.RepositoryStructure, error) {
	return &models.RepositoryStructure{Path: path, Items: []models.RepositoryItem{}}, nil
}

func (stubRepoClient) GetFileContent(_ context.Context, _, _, filePath, _ string) (*models.FileContent, error) {
	return &models.FileContent{Path: filePath, Content: "x", Size: 1, Encoding: models.EncodingUTF8}, nil
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, &ServerSuite{})
}

type ServerSuite struct {
	suite.Suite
	testConfig *config.Config
}

func (s *ServerSuite) SetupSuite() {
	gin.SetMode(gin.ReleaseMode)
	zap.ReplaceGlobals(zap.NewNop())

	manifestPath := filepath.Join(s.T().TempDir(), "manifest.json")
	s.Require().NoError(os.WriteFile(manifestPath, []byte(`{"identifier":"github-repo-access"}`), 0o644))

	s.testConfig = &config.Config{
		Port:           "18883",
		ServiceName:    "github-repo-access-plugin",
		ServiceVersion: "test",
		ManifestPath:   manifestPath,
	}
}

func (s *ServerSuite) serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)
	return w
}

// 测试 NewServer 是否正确初始化
func (s *ServerSuite) TestNewServer() {
	srv, err := NewServer(s.testConfig)

	s.NoError(err)
	s.NotNil(srv)
	s.Equal(":"+s.testConfig.Port, srv.httpServer.Addr)
	s.NotNil(srv.httpServer.Handler)
}

func (s *ServerSuite) TestNewServer_BadGitHubBaseURL() {
	cfg := *s.testConfig
	cfg.GitHubBaseURL = "http://[::1"

	_, err := NewServer(&cfg)
	s.Error(err)
}

func (s *ServerSuite) TestRoutes() {
	srv := NewServerWithClient(s.testConfig, stubRepoClient{})

	cases := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/manifest.json", "", http.StatusOK},
		{http.MethodPost, "/api/repos/structure", `{"owner":"o","repo":"r"}`, http.StatusOK},
		{http.MethodGet, "/api/repos/o/r/structure", "", http.StatusOK},
		{http.MethodPost, "/api/repos/files", `{"owner":"o","repo":"r","file_path":"a.txt"}`, http.StatusOK},
		{http.MethodGet, "/api/repos/o/r/files/a.txt", "", http.StatusOK},
		{http.MethodGet, "/api/not-exist-route", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tc.method, tc.target, nil)
		}
		w := s.serve(srv, req)
		s.Equal(tc.status, w.Code, "%s %s", tc.method, tc.target)
		s.NotEmpty(w.Header().Get(observability.RequestIDHeader), "%s %s", tc.method, tc.target)
	}
}

func (s *ServerSuite) TestRequestIDIsEchoed() {
	srv := NewServerWithClient(s.testConfig, stubRepoClient{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(observability.RequestIDHeader, "req-42")
	w := s.serve(srv, req)

	s.Equal("req-42", w.Header().Get(observability.RequestIDHeader))
}

func (s *ServerSuite) TestCORS() {
	srv := NewServerWithClient(s.testConfig, stubRepoClient{})

	preflight := httptest.NewRequest(http.MethodOptions, "/api/repos/structure", nil)
	preflight.Header.Set("Origin", "https://chat.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "content-type")
	w := s.serve(srv, preflight)

	s.Less(w.Code, 300)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	s.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	w = s.serve(srv, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *ServerSuite) TestHealthBody() {
	srv := NewServerWithClient(s.testConfig, stubRepoClient{})

	w := s.serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

	var out models.HealthResp
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.Equal("healthy", out.Status)
	s.Equal("github-repo-access-plugin", out.Service)
}

// 测试 Serve 方法的生命周期
func (s *ServerSuite) TestServe_Lifecycle() {
	srv := NewServerWithClient(s.testConfig, stubRepoClient{})

	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error)
	go func() {
		errChan <- srv.Serve(ctx)
	}()

	time.Sleep(500 * time.Millisecond)

	resp, err := http.Get("http://localhost:" + s.testConfig.Port + "/health")
	if err == nil {
		defer resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	} else {
		s.Fail("Failed to connect to test server", err)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != http.ErrServerClosed && err != nil {
			s.NoError(err, "Server should shutdown gracefully")
		}
	case <-time.After(2 * time.Second):
		s.Fail("Server did not shutdown within timeout")
	}
}
