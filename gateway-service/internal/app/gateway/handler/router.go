package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"
)

const serviceName = "gateway-service"

type RouterConfig struct {
	AllowedOrigins []string
	Tracing        bool
}

func SetupRoutes(
	cfg RouterConfig,
	ratingHandler *RatingHandler,
	commentHandler *CommentHandler,
	healthHandler *HealthCheckHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	if cfg.Tracing {
		router.Use(otelgin.Middleware(serviceName))
	}

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// без списка origin cors.New паникует
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler.RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	workspaces := router.Group("/api/workspaces/:workspaceId")
	{
		workspaces.GET("/ratings/average", ratingHandler.GetAverageRatings)
		workspaces.GET("/comments", commentHandler.GetComments)
		workspaces.POST("/comments", authMiddleware.Authenticate(), commentHandler.AddComment)
	}

	return router
}
