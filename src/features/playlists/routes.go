package playlists

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the playlists feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	group := app.Group("/playlists")
	group.Post("/", handler.CreatePlaylist)
	group.Get("/", handler.GetPlaylists)
	group.Get("/:id", handler.GetPlaylist)
	group.Put("/:id", handler.UpdatePlaylist)
	group.Delete("/:id", handler.DeletePlaylist)
	group.Post("/:id/tracks", handler.AddTracks)
	group.Delete("/:id/tracks", handler.RemoveTracks)
	group.Get("/:id/tracks", handler.ListTracks)
}
