package handlers

import (
	"errors"
	"strings"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/pkgs/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RepoHandler struct {
	svc *RepoService
}

// InitRepoApi registers both route shapes: the JSON body POST routes the
// plugin manifest points at, and the REST style GET routes.
func InitRepoApi(group *gin.RouterGroup, svc *RepoService) {
	h := &RepoHandler{svc: svc}

	group.POST("/structure", h.PostStructure)
	group.POST("/files", h.PostFile)

	group.GET("/:owner/:repo/structure", h.GetStructure)
	group.GET("/:owner/:repo/files/*file_path", h.GetFile)
}

func (h *RepoHandler) PostStructure(ctx *gin.Context) {
	var req models.RepoStructureReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Bind repository structure request failed", zap.Error(err))
		response.ErrorResponse(ctx, response.InvalidRequest, err.Error())
		return
	}
	h.structure(ctx, req)
}

func (h *RepoHandler) GetStructure(ctx *gin.Context) {
	h.structure(ctx, models.RepoStructureReq{
		Owner:  ctx.Param("owner"),
		Repo:   ctx.Param("repo"),
		Path:   ctx.Query("path"),
		Branch: ctx.Query("branch"),
	})
}

func (h *RepoHandler) PostFile(ctx *gin.Context) {
	var req models.ReadFileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Bind read file request failed", zap.Error(err))
		response.ErrorResponse(ctx, response.InvalidRequest, err.Error())
		return
	}
	h.file(ctx, req)
}

func (h *RepoHandler) GetFile(ctx *gin.Context) {
	h.file(ctx, models.ReadFileReq{
		Owner:    ctx.Param("owner"),
		Repo:     ctx.Param("repo"),
		FilePath: strings.TrimPrefix(ctx.Param("file_path"), "/"),
		Branch:   ctx.Query("branch"),
	})
}

func (h *RepoHandler) structure(ctx *gin.Context, req models.RepoStructureReq) {
	out, err := h.svc.Structure(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	response.SuccessResponse(ctx, out)
}

func (h *RepoHandler) file(ctx *gin.Context, req models.ReadFileReq) {
	out, err := h.svc.File(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	response.SuccessResponse(ctx, out)
}

func writeError(ctx *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Err != nil {
			_ = ctx.Error(apiErr.Err)
		}
		response.ErrorResponse(ctx, apiErr.Kind, apiErr.Message)
		return
	}
	_ = ctx.Error(err)
	response.ErrorResponse(ctx, response.GitHubAPIError, "Error accessing GitHub API: "+err.Error())
}
