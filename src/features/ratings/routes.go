package ratings

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the ratings feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	audio := app.Group("/audio")
	audio.Post("/:id/rate", handler.RateTrack)
	audio.Delete("/:id/rate", handler.RemoveRating)
	audio.Get("/:id/ratings", handler.GetTrackRatings)

	app.Get("/users/:id/ratings", handler.GetUserRatings)
}
