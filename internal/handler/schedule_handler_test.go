package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plastron-io/plastron-api/internal/dto"
	"github.com/plastron-io/plastron-api/internal/schedule"
	appErrors "github.com/plastron-io/plastron-api/pkg/errors"
	"github.com/plastron-io/plastron-api/pkg/response"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidations(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeService struct {
	result  schedule.SearchResult
	err     error
	lastReq dto.ScheduleRequest
}

func (f *fakeService) Generate(_ context.Context, req dto.ScheduleRequest) (schedule.SearchResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func sampleResult() schedule.SearchResult {
	return schedule.SearchResult{
		Schedules: []schedule.Schedule{{
			Sections: []schedule.Section{{
				ID: "CMSC351-0101", CourseID: "CMSC351", SeatsOpen: 5, SeatsTotal: 30,
				Blocks: []schedule.TimeBlock{{Day: time.Monday, Start: 9 * 60, End: 9*60 + 50}},
			}},
			Weight:          0,
			DaysWithClasses: 1,
		}},
		Expanded: 7,
	}
}

func newRouter(svc *fakeService) *gin.Engine {
	h := NewScheduleHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/schedules", h.Generate)
	r.POST("/schedules/visualized", h.Visualize)
	r.POST("/schedules/export", h.Export)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateOK(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules", `{"courses":["CMSC351"],"top":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.lastReq.Top)

	var envelope struct {
		Data dto.ScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Schedules, 1)
	assert.Equal(t, 1, envelope.Data.Schedules[0].Rank)
	assert.Equal(t, 7, envelope.Data.ExpandedNodes)
	assert.Equal(t, "CMSC351-0101", envelope.Data.Schedules[0].Sections[0].SectionID)
}

func TestGenerateRejectsBadBody(t *testing.T) {
	cases := map[string]string{
		"empty courses":  `{"courses":[]}`,
		"bad course id":  `{"courses":["not a course"]}`,
		"too many":       `{"courses":["AAAA101","AAAA102","AAAA103","AAAA104","AAAA105","AAAA106","AAAA107","AAAA108","AAAA109","AAAA110","AAAA111"]}`,
		"malformed json": `{"courses":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{result: sampleResult()}
			w := post(newRouter(svc), "/schedules", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
		})
	}
}

func TestGeneratePropagatesServiceErrors(t *testing.T) {
	svc := &fakeService{err: appErrors.Clone(appErrors.ErrInfeasibleSchedule, "")}
	w := post(newRouter(svc), "/schedules", `{"courses":["CMSC351"]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInfeasibleSchedule.Code, envelope.Error.Code)
}

func TestVisualizeIncludesRendering(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules/visualized", `{"courses":["CMSC351"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.VisualizedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.Rendered, "9:00AM")
	assert.NotContains(t, envelope.Data.Rendered, "\033[")
}

func TestVisualizeColored(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules/visualized?colored=true", `{"courses":["CMSC351"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.VisualizedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.Rendered, "\033[91m")
}

func TestExportCSV(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules/export", `{"courses":["CMSC351"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "CMSC351-0101")
}

func TestExportPDF(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules/export?format=pdf", `{"courses":["CMSC351"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := &fakeService{result: sampleResult()}
	w := post(newRouter(svc), "/schedules/export?format=docx", `{"courses":["CMSC351"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
