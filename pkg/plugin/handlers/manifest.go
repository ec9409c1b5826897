package handlers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/Fl0rencess720/repoaccess/pkg/plugin/pkgs/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ManifestHandler struct {
	path string
}

func InitManifestApi(r gin.IRoutes, manifestPath string) {
	h := &ManifestHandler{path: manifestPath}
	r.GET("/manifest.json", h.GetManifest)
}

// GetManifest serves the manifest file byte for byte. The file is read on
// every request so edits on disk show up without a restart.
func (h *ManifestHandler) GetManifest(ctx *gin.Context) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("Manifest file not found", zap.String("path", h.path))
			response.ErrorResponse(ctx, response.ManifestNotFound, "manifest.json file not found")
			return
		}
		zap.L().Error("Read manifest failed", zap.String("path", h.path), zap.Error(err))
		response.ErrorResponse(ctx, response.InvalidManifest, "Read manifest failed: "+err.Error())
		return
	}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		zap.L().Error("Manifest is not valid JSON", zap.String("path", h.path), zap.Error(err))
		response.ErrorResponse(ctx, response.InvalidManifest, "Invalid JSON in manifest: "+err.Error())
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
