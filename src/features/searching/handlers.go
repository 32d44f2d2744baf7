package searching

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for external metadata search.
type Handler struct {
	service *Service
}

// NewHandler creates a new searching handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SearchExternal searches the upstream metadata provider, serving repeats from
// the cache.
func (h *Handler) SearchExternal(c *fiber.Ctx) error {
	query := c.Query("query")

	results, err := h.service.Search(c.Context(), query)
	if err != nil {
		return err
	}
	if results == nil {
		results = []Metadata{}
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// GetCacheStats returns the entry count and cached queries.
func (h *Handler) GetCacheStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// ClearCache drops every cached query.
func (h *Handler) ClearCache(c *fiber.Ctx) error {
	h.service.Clear()
	slog.Info("Cache cleared via API")
	return c.JSON(fiber.Map{
		"message": "cache cleared",
	})
}
