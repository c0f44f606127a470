package routes

import (
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/application/usecases"
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/repositories"
	"github.com/PavaniTiago/beta-attribution-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/beta-attribution-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/beta-attribution-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

func authMiddleware(c *fiber.Ctx) error {
	// TODO: Implementar autenticação
	return c.Next()
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Repositories
	channelRepo := repositories.NewChannelRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Use Cases
	journeyUseCase := usecases.NewJourneyUseCase(eventRepo)
	attributionUseCase := usecases.NewAttributionUseCase()
	useCases := &usecases.UseCases{
		Channel:     usecases.NewChannelUseCase(channelRepo),
		Journey:     journeyUseCase,
		Attribution: attributionUseCase,
		Report:      usecases.NewReportUseCase(eventRepo, channelRepo, reportRepo, journeyUseCase, attributionUseCase),
	}

	// Cache de relatórios concluídos (imutáveis depois de gerados)
	reportCache := cache.New(15 * time.Minute)

	// Handlers
	attributionHandler := handlers.NewAttributionHandler(useCases.Channel)
	reportHandler := handlers.NewReportHandler(useCases.Report, reportCache)

	// Routes
	groups := middleware.SetupRouteGroups(app, authMiddleware)

	// Rotas de atribuição
	groups.Attribution.Post("/initialize", attributionHandler.Initialize)
	groups.Attribution.Get("/channels", attributionHandler.GetChannels)
	groups.Attribution.Post("/reports", reportHandler.CreateReport)
	groups.Attribution.Get("/reports", reportHandler.GetReports)
	groups.Attribution.Get("/reports/:id", reportHandler.GetReport)
	groups.Attribution.Get("/reports/:id/csv", reportHandler.GetReportCSV)
}
