package hosting

import (
	"errors"
	"fmt"
	"log/slog"

	"musicchat/src/features/audio"
	"musicchat/src/features/chat"
	"musicchat/src/features/config"
	"musicchat/src/features/favourites"
	"musicchat/src/features/playlists"
	"musicchat/src/features/ratings"
	"musicchat/src/features/searching"
	"musicchat/src/music"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// Services bundles the feature services the server exposes.
type Services struct {
	Audio      *audio.Service
	Playlists  *playlists.Service
	Ratings    *ratings.Service
	Favourites *favourites.Service
	Searching  *searching.Service
	Chat       *chat.Service
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, svc Services) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		AppName:               "MusicChat",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(RequestIDMiddleware())
	app.Use(LogAllRequestsMiddleware())
	app.Use(MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	audio.RegisterRoutes(app, svc.Audio)
	searching.RegisterRoutes(app, svc.Searching)
	playlists.RegisterRoutes(app, svc.Playlists)
	ratings.RegisterRoutes(app, svc.Ratings)
	favourites.RegisterRoutes(app, svc.Favourites)
	chat.RegisterRoutes(app, svc.Chat)
	config.RegisterRoutes(app, cfg)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// errorHandler maps domain errors onto HTTP statuses with a uniform JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	label := "Internal Server Error"

	switch {
	case errors.Is(err, music.ErrValidation):
		status = fiber.StatusBadRequest
		label = "Bad Request"
	case errors.Is(err, music.ErrNotFound):
		status = fiber.StatusNotFound
		label = "Not Found"
	case errors.Is(err, music.ErrConflict):
		status = fiber.StatusConflict
		label = "Conflict"
	case errors.Is(err, music.ErrExternalService):
		status = fiber.StatusBadGateway
		label = "Bad Gateway"
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		label = fiberErr.Message
	}

	if status >= 500 {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   label,
		"message": err.Error(),
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
