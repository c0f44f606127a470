package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/application/usecases"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/beta-attribution-api/internal/interfaces/http/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReportUseCase implementa usecases.ReportUseCase para os handlers
type fakeReportUseCase struct {
	GenerateFn  func(ctx context.Context, input usecases.ReportInput) (*entities.AttributionReport, error)
	GetFn       func(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error)
	lastInput   usecases.ReportInput
	asyncCalled bool
}

func (f *fakeReportUseCase) GenerateReport(ctx context.Context, input usecases.ReportInput) (*entities.AttributionReport, error) {
	f.lastInput = input
	if f.GenerateFn != nil {
		return f.GenerateFn(ctx, input)
	}
	return &entities.AttributionReport{ID: uuid.New(), Status: entities.ReportStatusCompleted}, nil
}

func (f *fakeReportUseCase) GenerateReportAsync(ctx context.Context, input usecases.ReportInput) (*entities.AttributionReport, error) {
	f.asyncCalled = true
	f.lastInput = input
	return &entities.AttributionReport{ID: uuid.New(), Status: entities.ReportStatusProcessing}, nil
}

func (f *fakeReportUseCase) GetReport(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, reportID)
	}
	return nil, usecases.ErrReportNotFound
}

func (f *fakeReportUseCase) GetReports(ctx context.Context, projectID uuid.UUID, page, limit int, orderBy string) ([]entities.AttributionReport, int64, error) {
	return nil, 0, nil
}

func httptestRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func setupReportApp(uc usecases.ReportUseCase) *fiber.App {
	app := fiber.New()
	h := handlers.NewReportHandler(uc, cache.New(time.Minute))
	app.Post("/attribution/reports", h.CreateReport)
	app.Get("/attribution/reports/:id", h.GetReport)
	app.Get("/attribution/reports/:id/csv", h.GetReportCSV)
	return app
}

func TestCreateReportParsesInput(t *testing.T) {
	uc := &fakeReportUseCase{}
	app := setupReportApp(uc)

	body := `{
		"project_id": "` + uuid.New().String() + `",
		"report_type": "channel_performance",
		"attribution_model": "time_decay",
		"start_date": "2025-04-01",
		"end_date": "2025-04-30",
		"lookback_days": 60
	}`

	req := httptestRequest("POST", "/attribution/reports", body)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, entities.ModelTimeDecay, uc.lastInput.AttributionModel)
	assert.Equal(t, entities.ReportTypeChannelPerformance, uc.lastInput.ReportType)
	assert.Equal(t, 60, uc.lastInput.LookbackDays)
	// Datas normalizadas para o início e o fim do dia
	assert.Equal(t, 0, uc.lastInput.StartDate.Hour())
	assert.Equal(t, 23, uc.lastInput.EndDate.Hour())
}

func TestCreateReportInvalidModel(t *testing.T) {
	uc := &fakeReportUseCase{}
	app := setupReportApp(uc)

	body := `{
		"project_id": "` + uuid.New().String() + `",
		"report_type": "channel_performance",
		"attribution_model": "markov_chain",
		"start_date": "2025-04-01",
		"end_date": "2025-04-30"
	}`

	resp, err := app.Test(httptestRequest("POST", "/attribution/reports", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateReportAsync(t *testing.T) {
	uc := &fakeReportUseCase{}
	app := setupReportApp(uc)

	body := `{
		"project_id": "` + uuid.New().String() + `",
		"report_type": "roi",
		"attribution_model": "linear",
		"start_date": "2025-01-01",
		"end_date": "2025-04-30",
		"async": true
	}`

	resp, err := app.Test(httptestRequest("POST", "/attribution/reports", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, uc.asyncCalled)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, string(entities.ReportStatusProcessing), payload["status"])
}

func TestGetReportNotFound(t *testing.T) {
	uc := &fakeReportUseCase{}
	app := setupReportApp(uc)

	resp, err := app.Test(httptestRequest("GET", "/attribution/reports/"+uuid.New().String(), ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetReportCSVNotCompleted(t *testing.T) {
	uc := &fakeReportUseCase{
		GetFn: func(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error) {
			return &entities.AttributionReport{ID: reportID, Status: entities.ReportStatusProcessing}, nil
		},
	}
	app := setupReportApp(uc)

	resp, err := app.Test(httptestRequest("GET", "/attribution/reports/"+uuid.New().String()+"/csv", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetReportCSV(t *testing.T) {
	uc := &fakeReportUseCase{
		GetFn: func(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error) {
			return &entities.AttributionReport{
				ID:     reportID,
				Status: entities.ReportStatusCompleted,
				ChannelBreakdown: []entities.ChannelPerformance{
					{ChannelName: "Email", Conversions: 2, Revenue: 150, AvgValuePerConversion: 75},
				},
			}, nil
		},
	}
	app := setupReportApp(uc)

	resp, err := app.Test(httptestRequest("GET", "/attribution/reports/"+uuid.New().String()+"/csv", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}
