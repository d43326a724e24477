package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-audit/backend/stats"
)

// Stats records audit request outcomes into the usage counters. Only
// the analyze endpoint is tracked; reads are cheap and uninteresting.
func Stats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/api/analyze" {
			storage.RecordAudit(time.Since(start), c.Writer.Status() >= 400)
		}
	}
}
