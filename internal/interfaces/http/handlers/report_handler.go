package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/PavaniTiago/beta-attribution-api/internal/application/usecases"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/PavaniTiago/beta-attribution-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/beta-attribution-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportUseCase usecases.ReportUseCase
	reportCache   *cache.ReportCache
}

func NewReportHandler(reportUseCase usecases.ReportUseCase, reportCache *cache.ReportCache) *ReportHandler {
	return &ReportHandler{reportUseCase, reportCache}
}

type createReportRequest struct {
	ProjectID        string `json:"project_id"`
	ReportType       string `json:"report_type"`
	AttributionModel string `json:"attribution_model"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	LookbackDays     int    `json:"lookback_days"`
	Async            bool   `json:"async"`
}

// CreateReport gera um relatório de atribuição. Com async=true o relatório é
// gravado com status processing e o cálculo roda em background - o cliente
// consulta GET /attribution/reports/:id até concluir.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req createReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	input, err := h.buildReportInput(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if req.Async {
		report, err := h.reportUseCase.GenerateReportAsync(c.UserContext(), input)
		if err != nil {
			return h.reportError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"report_id": report.ID,
			"status":    report.Status,
		})
	}

	report, err := h.reportUseCase.GenerateReport(c.UserContext(), input)
	if err != nil {
		return h.reportError(c, err)
	}

	h.reportCache.Set(report)
	return c.JSON(report)
}

// GetReport retorna um relatório gerado anteriormente
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid report id",
		})
	}

	if report, found := h.reportCache.Get(reportID); found {
		return c.JSON(report)
	}

	report, err := h.reportUseCase.GetReport(c.UserContext(), reportID)
	if err != nil {
		return h.reportError(c, err)
	}

	h.reportCache.Set(report)
	return c.JSON(report)
}

// GetReportCSV exporta o channel_breakdown de um relatório como CSV
func (h *ReportHandler) GetReportCSV(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid report id",
		})
	}

	report, found := h.reportCache.Get(reportID)
	if !found {
		report, err = h.reportUseCase.GetReport(c.UserContext(), reportID)
		if err != nil {
			return h.reportError(c, err)
		}
		h.reportCache.Set(report)
	}

	if report.Status != entities.ReportStatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "report is not completed",
			"status": report.Status,
		})
	}

	csvData, err := utils.ChannelBreakdownCSV(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=attribution_report_%s.csv", report.ID))
	return c.Send(csvData)
}

// GetReports lista os relatórios de um projeto com paginação
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid project_id",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	reports, total, err := h.reportUseCase.GetReports(c.UserContext(), projectID, page, limit, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (h *ReportHandler) buildReportInput(req createReportRequest) (usecases.ReportInput, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return usecases.ReportInput{}, fmt.Errorf("invalid project_id")
	}

	reportType, ok := entities.ParseReportType(req.ReportType)
	if !ok {
		return usecases.ReportInput{}, fmt.Errorf("invalid report_type %q", req.ReportType)
	}

	model, ok := entities.ParseAttributionModel(req.AttributionModel)
	if !ok {
		return usecases.ReportInput{}, fmt.Errorf("invalid attribution_model %q", req.AttributionModel)
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return usecases.ReportInput{}, fmt.Errorf("invalid start_date %q", req.StartDate)
	}

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return usecases.ReportInput{}, fmt.Errorf("invalid end_date %q", req.EndDate)
	}

	return usecases.ReportInput{
		ProjectID:        projectID,
		ReportType:       reportType,
		AttributionModel: model,
		StartDate:        utils.StartOfDay(startDate),
		EndDate:          utils.EndOfDay(endDate),
		LookbackDays:     req.LookbackDays,
	}, nil
}

// reportError mapeia os erros do domínio para status HTTP
func (h *ReportHandler) reportError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecases.ErrReportNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecases.ErrInvalidDateRange),
		errors.Is(err, usecases.ErrInvalidJourney),
		errors.Is(err, usecases.ErrInvalidValue),
		errors.Is(err, usecases.ErrInvalidModel):
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
