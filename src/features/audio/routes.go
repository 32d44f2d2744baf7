package audio

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the audio feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	group := app.Group("/audio")
	group.Post("/", handler.UploadTrack)
	group.Get("/", handler.GetTracks)
	group.Get("/search/title", handler.SearchByTitle)
	group.Get("/search/artist", handler.SearchByArtist)
	group.Get("/:id", handler.GetTrack)
}
