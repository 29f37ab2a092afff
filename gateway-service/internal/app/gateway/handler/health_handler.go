package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck именованная проверка зависимости (mongodb, redis)
type HealthCheck struct {
	Name     string
	Check    func(ctx context.Context) error
	Optional bool // сбой опциональной проверки не делает сервис unhealthy
}

type HealthCheckHandler struct {
	service string
	checks  []HealthCheck
}

func NewHealthCheckHandler(service string, checks ...HealthCheck) *HealthCheckHandler {
	return &HealthCheckHandler{
		service: service,
		checks:  checks,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	overallStatus := "healthy"

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			if check.Optional {
				checks[check.Name] = "warning: " + err.Error()
				continue
			}
			checks[check.Name] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
			continue
		}
		checks[check.Name] = "healthy"
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:    overallStatus,
		Service:   h.service,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

func (h *HealthCheckHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if check.Optional {
			continue
		}
		if err := check.Check(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, check.Name+" not ready")
			return
		}
	}

	c.String(http.StatusOK, "ready")
}

func (h *HealthCheckHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}

func (h *HealthCheckHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.HealthCheck)
	router.GET("/health/readiness", h.Readiness)
	router.GET("/health/liveness", h.Liveness)
}
