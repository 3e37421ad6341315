// Package handler exposes the HTTP surface of the API.
package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plastron-io/plastron-api/internal/dto"
	"github.com/plastron-io/plastron-api/internal/schedule"
	"github.com/plastron-io/plastron-api/internal/visual"
	appErrors "github.com/plastron-io/plastron-api/pkg/errors"
	"github.com/plastron-io/plastron-api/pkg/export"
	"github.com/plastron-io/plastron-api/pkg/response"
)

// ScheduleGenerator is the service contract the handler depends on.
type ScheduleGenerator interface {
	Generate(ctx context.Context, req dto.ScheduleRequest) (schedule.SearchResult, error)
}

// ScheduleHandler serves the schedule-generation endpoints.
type ScheduleHandler struct {
	service ScheduleGenerator
	logger  *zap.Logger
}

// NewScheduleHandler wires the handler.
func NewScheduleHandler(service ScheduleGenerator, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{service: service, logger: logger}
}

// Generate godoc
// @Summary      Generate ranked schedules
// @Description  Enumerates conflict-free one-section-per-course combinations and returns the top-N by total gap minutes.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ScheduleRequest  true  "Courses, filters and result count"
// @Success      200      {object}  response.Envelope{data=dto.ScheduleResponse}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      422      {object}  response.Envelope
// @Failure      502      {object}  response.Envelope
// @Router       /schedules [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewScheduleResponse(result))
}

// Visualize godoc
// @Summary      Generate schedules with a week-grid rendering
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ScheduleRequest  true  "Courses, filters and result count"
// @Param        colored  query     bool                 false "Include ANSI colors in the rendering"
// @Success      200      {object}  response.Envelope{data=dto.VisualizedResponse}
// @Router       /schedules/visualized [post]
func (h *ScheduleHandler) Visualize(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	opts := visual.Options{Colored: c.Query("colored") == "true"}
	response.OK(c, dto.VisualizedResponse{
		ScheduleResponse: dto.NewScheduleResponse(result),
		Rendered:         visual.RenderAll(result.Schedules, opts),
	})
}

// Export godoc
// @Summary      Generate schedules as a downloadable document
// @Tags         schedules
// @Accept       json
// @Produce      text/csv
// @Produce      application/pdf
// @Param        request  body   dto.ScheduleRequest  true  "Courses, filters and result count"
// @Param        format   query  string               false "csv (default) or pdf"
// @Success      200  {file}  file
// @Router       /schedules/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case "csv":
		contentType = "text/csv"
		err = export.CSV(&buf, result.Schedules)
	case "pdf":
		contentType = "application/pdf"
		err = export.PDF(&buf, result.Schedules)
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "export failed"))
		return
	}

	filename := fmt.Sprintf("schedules-%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ScheduleHandler) bind(c *gin.Context) (dto.ScheduleRequest, bool) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return req, false
	}
	return req, true
}
