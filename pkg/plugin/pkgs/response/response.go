package response

import (
	"net/http"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/gin-gonic/gin"
)

type ErrorKind string

const (
	RepositoryNotFound ErrorKind = "RepositoryNotFound"
	FileNotFound       ErrorKind = "FileNotFound"
	GitHubAPIError     ErrorKind = "GitHubAPIError"
	ManifestNotFound   ErrorKind = "ManifestNotFound"
	InvalidManifest    ErrorKind = "InvalidManifest"
	InvalidRequest     ErrorKind = "InvalidRequest"
)

var HttpCode = map[ErrorKind]int{
	RepositoryNotFound: http.StatusNotFound,
	FileNotFound:       http.StatusNotFound,
	GitHubAPIError:     http.StatusInternalServerError,
	ManifestNotFound:   http.StatusNotFound,
	InvalidManifest:    http.StatusInternalServerError,
	InvalidRequest:     http.StatusBadRequest,
}

// StatusOf returns the HTTP status for kind, 500 for unknown kinds.
func StatusOf(kind ErrorKind) int {
	if status, ok := HttpCode[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func ErrorResponse(c *gin.Context, kind ErrorKind, message string) {
	if message == "" {
		message = "Unknown Error"
	}
	c.JSON(StatusOf(kind), models.ErrorResp{
		Error:   string(kind),
		Message: message,
	})
}
