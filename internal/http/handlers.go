package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/service"
)

// AnalyzeRequest is the POST /analyze body. The caller supplies the already
// fetched points; this layer does no storage access of its own.
type AnalyzeRequest struct {
	Points  []domain.TimeSeriesPoint `json:"points"`
	Window  domain.AnalysisWindow    `json:"window"`
	Context domain.EquipmentContext  `json:"equipment_context"`
}

func Register(app *fiber.App, svcs *service.Services) {
	g := app.Group("/")

	g.Post("analyze", func(c *fiber.Ctx) error {
		var req AnalyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		result, payloads := svcs.Analysis.Analyze(c.Context(), req.Points, req.Window, req.Context)
		if !result.Detection.Success {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
		}
		return c.JSON(fiber.Map{"result": result, "notifications": payloads})
	})

	g.Get("runs", func(c *fiber.Ctx) error {
		if svcs.Repos == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "persistence not configured"})
		}
		runs, err := svcs.Repos.ListRuns(50)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(runs)
	})

	g.Get("runs/:id/patterns", func(c *fiber.Ctx) error {
		if svcs.Repos == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "persistence not configured"})
		}
		patterns, err := svcs.Repos.ListPatternsForRun(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(patterns)
	})
}
