package ratings

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musicchat/src/music"
)

// Handler handles HTTP requests for ratings.
type Handler struct {
	service *Service
}

// NewHandler creates a new ratings handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type rateRequest struct {
	UserID int64 `json:"userId"`
	Rating int   `json:"rating"`
}

type removeRatingRequest struct {
	UserID int64 `json:"userId"`
}

func parseTrackID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: track id must be a number", music.ErrValidation)
	}
	return id, nil
}

// RateTrack records a rating and returns the refreshed aggregate stats.
func (h *Handler) RateTrack(c *fiber.Ctx) error {
	trackID, err := parseTrackID(c)
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}
	if req.UserID == 0 {
		return fmt.Errorf("%w: userId is required", music.ErrValidation)
	}

	rating, err := h.service.Rate(c.Context(), req.UserID, trackID, req.Rating)
	if err != nil {
		return err
	}

	avg, _, err := h.service.AverageRating(c.Context(), trackID)
	if err != nil {
		return err
	}
	count, err := h.service.RatingCount(c.Context(), trackID)
	if err != nil {
		return err
	}

	slog.Info("Track rated", "trackID", trackID, "userID", req.UserID, "value", req.Rating)
	return c.JSON(fiber.Map{
		"rating":        rating,
		"averageRating": avg,
		"ratingCount":   count,
	})
}

// GetTrackRatings returns a track's ratings and aggregate stats. The average
// is null when the track has no ratings at all.
func (h *Handler) GetTrackRatings(c *fiber.Ctx) error {
	trackID, err := parseTrackID(c)
	if err != nil {
		return err
	}

	ratings, err := h.service.TrackRatings(c.Context(), trackID)
	if err != nil {
		return err
	}
	if ratings == nil {
		ratings = []*music.Rating{}
	}

	avg, rated, err := h.service.AverageRating(c.Context(), trackID)
	if err != nil {
		return err
	}

	var avgJSON any
	if rated {
		avgJSON = avg
	}
	return c.JSON(fiber.Map{
		"ratings":       ratings,
		"averageRating": avgJSON,
		"ratingCount":   len(ratings),
	})
}

// RemoveRating deletes the caller's rating for a track.
func (h *Handler) RemoveRating(c *fiber.Ctx) error {
	trackID, err := parseTrackID(c)
	if err != nil {
		return err
	}

	var req removeRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}
	if req.UserID == 0 {
		return fmt.Errorf("%w: userId is required", music.ErrValidation)
	}

	removed, err := h.service.RemoveRating(c.Context(), req.UserID, trackID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// GetUserRatings returns all ratings a user has created.
func (h *Handler) GetUserRatings(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id must be a number", music.ErrValidation)
	}

	ratings, err := h.service.UserRatings(c.Context(), userID)
	if err != nil {
		return err
	}
	if ratings == nil {
		ratings = []*music.Rating{}
	}
	return c.JSON(fiber.Map{"ratings": ratings})
}
