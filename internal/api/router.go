// Package api exposes industries, reports and the live audit and advisory
// streams over HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/metrics"
)

// NewRouter builds the gin engine. gatherer backs /metrics.
func NewRouter(h *Handler, m *metrics.Metrics, gatherer prometheus.Gatherer, log logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(MetricsMiddleware(m))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	industries := v1.Group("/industries")
	industries.GET("", h.ListIndustries)
	industries.POST("", h.CreateIndustry)
	industries.GET("/:slug", h.GetIndustry)
	industries.PUT("/:slug", h.UpdateIndustry)
	industries.DELETE("/:slug", h.DeleteIndustry)

	v1.GET("/targets", h.ListTargets)

	reports := v1.Group("/reports")
	reports.GET("", h.ListReports)
	reports.GET("/:slug/:file", h.GetReport)
	reports.GET("/:slug/:file/download", h.DownloadReport)

	stream := v1.Group("/stream")
	stream.GET("/audit", h.StreamAudit)
	stream.GET("/advise", h.StreamAdvise)

	return router
}
