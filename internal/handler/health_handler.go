package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plastron-io/plastron-api/pkg/response"
)

// ReadinessCheck probes one dependency.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	env     string
	started time.Time
	checks  map[string]ReadinessCheck
}

// NewHealthHandler wires the handler. checks may be nil.
func NewHealthHandler(env string, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{env: env, started: time.Now(), checks: checks}
}

// Health godoc
// @Summary  Liveness probe
// @Tags     ops
// @Produce  json
// @Success  200  {object}  response.Envelope
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{
		"status": "ok",
		"env":    h.env,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready godoc
// @Summary  Readiness probe
// @Tags     ops
// @Produce  json
// @Success  200  {object}  response.Envelope
// @Failure  503  {object}  response.Envelope
// @Router   /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	results := gin.H{}
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, gin.H{"ready": healthy, "checks": results})
}
