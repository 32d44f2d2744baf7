package chat

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musicchat/src/music"
)

// Handler handles HTTP requests for chat history.
type Handler struct {
	service *Service
}

// NewHandler creates a new chat handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type sendMessageRequest struct {
	Sender     string `json:"sender"`
	Text       string `json:"text"`
	PreviousID *int64 `json:"previousId"`
}

// SendMessage persists a chat message.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", music.ErrValidation)
	}

	message, err := h.service.Send(c.Context(), req.Sender, req.Text, req.PreviousID)
	if err != nil {
		return err
	}

	slog.Info("Chat message stored", "id", message.ID)
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversation returns the message history, optionally limited to the most
// recent ?limit= messages.
func (h *Handler) GetConversation(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return fmt.Errorf("%w: limit must be a non-negative number", music.ErrValidation)
		}
		limit = parsed
	}

	messages, err := h.service.Conversation(c.Context(), limit)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*Message{}
	}
	return c.JSON(fiber.Map{"messages": messages, "count": len(messages)})
}
