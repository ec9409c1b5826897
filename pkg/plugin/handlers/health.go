package handlers

import (
	"net/http"
	"time"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service string
	now     func() time.Time
}

func InitHealthApi(r gin.IRoutes, service string) {
	h := &HealthHandler{
		service: service,
		now:     time.Now,
	}
	r.GET("/health", h.Health)
}

func (h *HealthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.HealthResp{
		Status:    "healthy",
		Service:   h.service,
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}
