package favourites

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the favourites feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	audio := app.Group("/audio")
	audio.Post("/:id/favorite", handler.ToggleFavourite)
	audio.Get("/:id/favourites", handler.GetTrackFavourites)

	app.Get("/users/:id/favourites", handler.GetUserFavourites)
}
