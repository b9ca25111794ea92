// internal/handlers/metrics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopyangu/backend/internal/services"
	"github.com/shopyangu/backend/internal/utils"
)

type MetricsHandler struct {
	metricsService *services.MetricsService
}

func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GET /metrics
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	snapshot, err := h.metricsService.ComputeMetrics(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
