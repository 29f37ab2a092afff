package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxPathLabel = 100

// GinPrometheusMiddleware собирает http_requests_total, http_request_duration_seconds
// и http_requests_in_flight. Служебные маршруты (/metrics, /health*) не учитываются.
func GinPrometheusMiddleware(serviceName string) gin.HandlerFunc {
	inFlight := HttpRequestsInFlight.WithLabelValues(serviceName)

	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		inFlight.Inc()
		defer inFlight.Dec()

		c.Next()

		// шаблон маршрута вместо пути с идентификаторами
		route := c.FullPath()
		if route == "" {
			route = normalizePath(c.Request.URL.Path)
		}
		method := c.Request.Method

		HttpRequestsTotal.WithLabelValues(serviceName, method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(serviceName, method, route).Observe(time.Since(start).Seconds())
	}
}

func skipPath(path string) bool {
	return path == "/metrics" || path == "/health" || strings.HasPrefix(path, "/health/")
}

// normalizePath для запросов без маршрута (404) ограничивает длину метки
func normalizePath(path string) string {
	if len(path) > maxPathLabel {
		return path[:maxPathLabel]
	}
	return path
}
