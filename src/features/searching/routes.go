package searching

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the searching feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	external := app.Group("/audio/search/external")
	external.Get("/", handler.SearchExternal)
	external.Get("/cache/stats", handler.GetCacheStats)
	external.Delete("/cache", handler.ClearCache)
}
