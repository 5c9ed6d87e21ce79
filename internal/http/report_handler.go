package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vp-madrs/internal/service"
)

// ReportHandler expone el reporte estadistico de perfiles almacenados.
type ReportHandler struct {
	logger  *zap.Logger
	reports *service.ReportService
}

func NewReportHandler(logger *zap.Logger, reports *service.ReportService) *ReportHandler {
	return &ReportHandler{logger: logger, reports: reports}
}

// Summary maneja GET /reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	limit := queryInt(c, "limit", 500, 5000)
	report, err := h.reports.Summary(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("summary report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
