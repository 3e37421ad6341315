// Package metrics provides the request-observation middleware.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Recorder receives one observation per completed request.
type Recorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Middleware times every request and reports it under the matched
// route template, so path parameters do not explode label cardinality.
func Middleware(recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
