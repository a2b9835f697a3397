// SPDX-License-Identifier: MIT

package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
// The path label is the route template, so /v1/matrix/:op stays one series
// per method regardless of the op requested.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures operation duration.
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
	cells   int
}

// NewTimer starts timing op on an operand of the given cell count.
func NewTimer(metrics *Metrics, op string, cells int) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		op:      op,
		cells:   cells,
	}
}

// Stop records the duration; kind is the error class or "" on success.
func (t *Timer) Stop(kind string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordOp(t.op, kind, t.cells, time.Since(t.start))
}
