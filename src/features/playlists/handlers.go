package playlists

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musicchat/src/music"
)

// Handler handles HTTP requests for playlists.
type Handler struct {
	service *Service
}

// NewHandler creates a new playlists handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createPlaylistRequest struct {
	OwnerID     int64   `json:"ownerId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TrackIDs    []int64 `json:"trackIds"`
}

type updatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type trackIDsRequest struct {
	TrackIDs []int64 `json:"trackIds"`
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", music.ErrValidation, param)
	}
	return id, nil
}

// CreatePlaylist creates a new playlist, optionally with seed tracks.
func (h *Handler) CreatePlaylist(c *fiber.Ctx) error {
	var req createPlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}

	playlist, err := h.service.CreatePlaylist(c.Context(), req.OwnerID, req.Name, req.Description, req.TrackIDs)
	if err != nil {
		return err
	}

	slog.Info("Playlist created", "id", playlist.ID, "name", playlist.Name)
	return c.Status(fiber.StatusCreated).JSON(playlist)
}

// GetPlaylists returns all playlists, or a single owner's when ?ownerId= is set.
func (h *Handler) GetPlaylists(c *fiber.Ctx) error {
	if owner := c.Query("ownerId"); owner != "" {
		ownerID, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: ownerId must be a number", music.ErrValidation)
		}
		playlists, err := h.service.GetPlaylistsByOwner(c.Context(), ownerID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"playlists": playlists})
	}

	if name := c.Query("name"); name != "" {
		playlists, err := h.service.SearchPlaylistsByName(c.Context(), name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"playlists": playlists})
	}

	playlists, err := h.service.GetAllPlaylists(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"playlists": playlists})
}

// GetPlaylist returns a playlist with its ordered tracks.
func (h *Handler) GetPlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	playlist, err := h.service.GetPlaylist(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(playlist)
}

// UpdatePlaylist updates a playlist's name and description.
func (h *Handler) UpdatePlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}

	playlist, err := h.service.UpdatePlaylist(c.Context(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(playlist)
}

// DeletePlaylist deletes a playlist and its entries.
func (h *Handler) DeletePlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeletePlaylist(c.Context(), id); err != nil {
		return err
	}
	slog.Info("Playlist deleted", "id", id)
	return c.JSON(fiber.Map{"success": true})
}

// AddTracks appends tracks to a playlist.
func (h *Handler) AddTracks(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req trackIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}
	if len(req.TrackIDs) == 0 {
		return fmt.Errorf("%w: trackIds cannot be empty", music.ErrValidation)
	}

	playlist, err := h.service.AddTracks(c.Context(), id, req.TrackIDs)
	if err != nil {
		return err
	}
	return c.JSON(playlist)
}

// RemoveTracks removes tracks from a playlist and reindexes the rest.
func (h *Handler) RemoveTracks(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req trackIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}

	playlist, err := h.service.RemoveTracks(c.Context(), id, req.TrackIDs)
	if err != nil {
		return err
	}
	return c.JSON(playlist)
}

// ListTracks returns a playlist's entries ordered by position.
func (h *Handler) ListTracks(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.service.ListTracks(c.Context(), id)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []music.PlaylistEntry{}
	}
	return c.JSON(fiber.Map{"tracks": entries})
}
