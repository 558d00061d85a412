package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/zomujo/telemed-api/pkg/metrics"
)

// Logger logs each request and feeds the HTTP metrics.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		route := c.FullPath()
		if route == "" {
			route = path
		}

		m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())
		m.RequestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		if status >= 500 {
			m.ErrorTotal.WithLabelValues(method, route, "server").Inc()
		} else if status >= 400 {
			m.ErrorTotal.WithLabelValues(method, route, "client").Inc()
		}

		if raw != "" {
			path = path + "?" + raw
		}

		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}

		event.
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(ContextRequestID)).
			Msg("request")
	}
}
