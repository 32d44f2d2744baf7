package favourites

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musicchat/src/music"
)

// Handler handles HTTP requests for favourites.
type Handler struct {
	service *Service
}

// NewHandler creates a new favourites handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type favouriteRequest struct {
	UserID int64 `json:"userId"`
}

func parseTrackID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: track id must be a number", music.ErrValidation)
	}
	return id, nil
}

// ToggleFavourite flips the favourite state for the caller and returns the
// resulting state plus the track's favourite count.
func (h *Handler) ToggleFavourite(c *fiber.Ctx) error {
	trackID, err := parseTrackID(c)
	if err != nil {
		return err
	}

	var req favouriteRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}
	if req.UserID == 0 {
		return fmt.Errorf("%w: userId is required", music.ErrValidation)
	}

	favourited, err := h.service.Toggle(c.Context(), req.UserID, trackID)
	if err != nil {
		return err
	}

	count, err := h.service.Count(c.Context(), trackID)
	if err != nil {
		return err
	}

	slog.Info("Favourite toggled", "trackID", trackID, "userID", req.UserID, "favourited", favourited)
	return c.JSON(fiber.Map{
		"isFavourited":   favourited,
		"favouriteCount": count,
	})
}

// GetTrackFavourites returns favourite statistics for a track.
func (h *Handler) GetTrackFavourites(c *fiber.Ctx) error {
	trackID, err := parseTrackID(c)
	if err != nil {
		return err
	}

	favourites, err := h.service.TrackFavourites(c.Context(), trackID)
	if err != nil {
		return err
	}
	if favourites == nil {
		favourites = []*music.Favourite{}
	}
	return c.JSON(fiber.Map{
		"favourites":     favourites,
		"favouriteCount": len(favourites),
	})
}

// GetUserFavourites returns all favourites for a user.
func (h *Handler) GetUserFavourites(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id must be a number", music.ErrValidation)
	}

	favourites, err := h.service.ListForUser(c.Context(), userID)
	if err != nil {
		return err
	}
	if favourites == nil {
		favourites = []*music.Favourite{}
	}
	return c.JSON(fiber.Map{"favourites": favourites})
}
