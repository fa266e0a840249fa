// Package http serves the read-only dataset API, probes and metrics.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// RouterConfig collects the handlers and middleware of the route tree.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	HealthHandler  *handlers.HealthHandler
	DatasetHandler *handlers.DatasetHandler

	CORS    *middleware.CORSConfig
	Logging middleware.LoggingConfig

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.FeaturizeMetrics
}

// NewRouter builds the gin engine:
//
//	GET /healthz                        liveness
//	GET /readyz                         readiness of MinIO, Redis and Neo4j
//	GET /metrics                        Prometheus scrape
//	GET /api/v1/dataset                 dataset summary
//	GET /api/v1/dataset/records         manifest page
//	GET /api/v1/dataset/records/:idx    one sample
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	registerDatasetRoutes(api, cfg.DatasetHandler)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorDetail{Code: string(pkgerrors.ErrCodeNotFound), Message: "route not found"})
	})
	return r
}

func registerDatasetRoutes(r *gin.RouterGroup, h *handlers.DatasetHandler) {
	if h == nil {
		return
	}
	ds := r.Group("/dataset")
	ds.GET("", h.Describe)
	ds.GET("/records", h.ListRecords)
	ds.GET("/records/:idx", h.GetRecord)
}

//Personal.AI order the ending
