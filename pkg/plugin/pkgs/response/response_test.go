package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

func TestResponseSuite(t *testing.T) {
	suite.Run(t, &ResponseSuite{})
}

type ResponseSuite struct {
	suite.Suite
	recorder *httptest.ResponseRecorder
	ctx      *gin.Context
}

func (s *ResponseSuite) SetupSuite() {
	gin.SetMode(gin.ReleaseMode)
	zap.ReplaceGlobals(zap.NewNop())
}

func (s *ResponseSuite) SetupTest() {
	s.recorder = httptest.NewRecorder()
	s.ctx, _ = gin.CreateTestContext(s.recorder)
}

// 成功响应直接返回数据本身，不包裹 envelope
func (s *ResponseSuite) TestSuccessResponse() {
	data := gin.H{
		"path":  "src",
		"items": []any{},
	}

	SuccessResponse(s.ctx, data)

	s.Equal(200, s.recorder.Code)

	expectedJSON, _ := json.Marshal(data)
	s.JSONEq(string(expectedJSON), s.recorder.Body.String())
}

func (s *ResponseSuite) TestErrorResponse_KnownKinds() {
	cases := map[ErrorKind]int{
		RepositoryNotFound: 404,
		FileNotFound:       404,
		GitHubAPIError:     500,
		ManifestNotFound:   404,
		InvalidManifest:    500,
		InvalidRequest:     400,
	}

	for kind, status := range cases {
		recorder := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(recorder)

		ErrorResponse(ctx, kind, "boom")

		s.Equal(status, recorder.Code, kind)
		s.JSONEq(`{"error":"`+string(kind)+`","message":"boom"}`, recorder.Body.String())
	}
}

// 测试未定义的错误
func (s *ResponseSuite) TestErrorResponse_Unknown() {
	ErrorResponse(s.ctx, ErrorKind("Teapot"), "")

	s.Equal(500, s.recorder.Code)
	s.JSONEq(`{"error":"Teapot","message":"Unknown Error"}`, s.recorder.Body.String())
}
