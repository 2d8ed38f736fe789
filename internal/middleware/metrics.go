package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"secret-draw-api/internal/metrics"
)

// Metrics returns a middleware that records request counts and latencies.
// Scrape and probe endpoints are excluded, and so are websocket upgrades:
// an event feed stays open for as long as the draw page is on screen, and
// that lifetime is not a request latency.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) || c.IsWebsocket() {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		m.RecordHTTPRequest(
			c.Request.Method,
			c.FullPath(), // route pattern, so draw ids never become label values
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
