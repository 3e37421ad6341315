// Package apikey gates requests behind a static X-API-Key header.
package apikey

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/plastron-io/plastron-api/pkg/config"
	appErrors "github.com/plastron-io/plastron-api/pkg/errors"
	"github.com/plastron-io/plastron-api/pkg/response"
)

const Header = "X-API-Key"

// Middleware rejects requests whose X-API-Key header does not match the
// configured key. A no-op when the gate is disabled or no key is set.
func Middleware(cfg config.APIConfig) gin.HandlerFunc {
	enabled := cfg.KeyRequired && cfg.Key != ""
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		supplied := c.GetHeader(Header)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.Key)) != 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or invalid API key"))
			c.Abort()
			return
		}
		c.Next()
	}
}
