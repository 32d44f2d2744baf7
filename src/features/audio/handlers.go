package audio

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musicchat/src/music"
)

// Handler handles HTTP requests for the track catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new audio handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type uploadRequest struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Genre      string `json:"genre"`
	Duration   int    `json:"duration"`
	PreviewURL string `json:"previewUrl"`
	UploaderID int64  `json:"uploaderId"`
}

// UploadTrack registers a new track's metadata.
func (h *Handler) UploadTrack(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}
	if req.UploaderID == 0 {
		return fmt.Errorf("%w: uploaderId is required", music.ErrValidation)
	}

	track, err := h.service.Upload(c.Context(), &music.Track{
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		Genre:      req.Genre,
		Duration:   req.Duration,
		PreviewURL: req.PreviewURL,
		UploaderID: req.UploaderID,
	})
	if err != nil {
		return err
	}

	slog.Info("Track uploaded", "id", track.ID, "title", track.Title)
	return c.Status(fiber.StatusCreated).JSON(track)
}

// GetTracks returns the whole catalog, newest first.
func (h *Handler) GetTracks(c *fiber.Ctx) error {
	tracks, err := h.service.GetTracks(c.Context())
	if err != nil {
		return err
	}
	if tracks == nil {
		tracks = []*music.Track{}
	}
	return c.JSON(fiber.Map{"tracks": tracks, "count": len(tracks)})
}

// GetTrack returns a single track.
func (h *Handler) GetTrack(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: track id must be a number", music.ErrValidation)
	}

	track, err := h.service.GetTrack(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(track)
}

// SearchByTitle searches catalog tracks by title substring.
func (h *Handler) SearchByTitle(c *fiber.Ctx) error {
	tracks, err := h.service.SearchByTitle(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	if tracks == nil {
		tracks = []*music.Track{}
	}
	return c.JSON(fiber.Map{"tracks": tracks, "count": len(tracks)})
}

// SearchByArtist searches catalog tracks by artist substring.
func (h *Handler) SearchByArtist(c *fiber.Ctx) error {
	tracks, err := h.service.SearchByArtist(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	if tracks == nil {
		tracks = []*music.Track{}
	}
	return c.JSON(fiber.Map{"tracks": tracks, "count": len(tracks)})
}
