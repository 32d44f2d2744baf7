package chat

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the chat feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	group := app.Group("/chat")
	group.Post("/messages", handler.SendMessage)
	group.Get("/messages", handler.GetConversation)
}
