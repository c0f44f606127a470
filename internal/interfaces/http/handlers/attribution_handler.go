package handlers

import (
	"github.com/PavaniTiago/beta-attribution-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttributionHandler struct {
	channelUseCase usecases.ChannelUseCase
}

func NewAttributionHandler(channelUseCase usecases.ChannelUseCase) *AttributionHandler {
	return &AttributionHandler{channelUseCase}
}

type initializeRequest struct {
	ProjectID string `json:"project_id"`
}

// Initialize cria os canais padrão do projeto. Idempotente - chamadas
// repetidas retornam o mesmo conjunto de canais.
func (h *AttributionHandler) Initialize(c *fiber.Ctx) error {
	var req initializeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid project_id",
		})
	}

	channels, err := h.channelUseCase.CreateDefaultChannels(c.UserContext(), projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"channels": channels,
		"total":    len(channels),
	})
}

// GetChannels lista os canais do projeto
func (h *AttributionHandler) GetChannels(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid project_id",
		})
	}

	channels, err := h.channelUseCase.GetChannels(c.UserContext(), projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"channels": channels,
		"total":    len(channels),
	})
}
