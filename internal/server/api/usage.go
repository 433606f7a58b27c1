package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

type UsageHandlersParams struct {
	fx.In

	UsageService *biz.UsageService
}

func NewUsageHandlers(params UsageHandlersParams) *UsageHandlers {
	return &UsageHandlers{
		UsageService: params.UsageService,
	}
}

type UsageHandlers struct {
	UsageService *biz.UsageService
}

// Stats handles GET /api/usage-stats: last-hour call volume per minute.
func (h *UsageHandlers) Stats(c *gin.Context) {
	stats, err := h.UsageService.Stats(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
