package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/repository"
)

// AdminMessageHandler serves the contact-message inbox.
type AdminMessageHandler struct {
	Messages *repository.MessageRepo
}

func NewAdminMessageHandler(m *repository.MessageRepo) *AdminMessageHandler {
	return &AdminMessageHandler{Messages: m}
}

type messageResp struct {
	ID          uint64    `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// List returns all contact messages, newest first.
func (h *AdminMessageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResp{
			ID:          m.ID,
			SenderName:  m.SenderName,
			SenderEmail: m.SenderEmail,
			Body:        m.Body,
			Read:        m.Read,
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type setReadReq struct {
	Read bool `json:"read"`
}

// SetRead toggles a message's read flag from the inbox.
func (h *AdminMessageHandler) SetRead(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	req := setReadReq{Read: true}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.SetRead(ctx, id, req.Read); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
