package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/queue"
	"github.com/estudiocobogo/catalogo-api/internal/service"
)

// MessageCreator persists submitted messages.  *repository.MessageRepo
// satisfies it.
type MessageCreator interface {
	Create(ctx context.Context, m *model.ContactMessage) error
}

// ContactHandler accepts contact-form submissions from the public site.
type ContactHandler struct {
	Messages MessageCreator
	Notifier service.ContactNotifier
}

func NewContactHandler(m MessageCreator, n service.ContactNotifier) *ContactHandler {
	return &ContactHandler{Messages: m, Notifier: n}
}

type contactReq struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Submit validates and stores a contact message, then notifies the
// owner in the background.  The submitter gets a 201 as soon as the
// message is persisted; notification delivery never delays or fails the
// request.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	body := strings.TrimSpace(req.Message)
	switch {
	case name == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required", "field": "name"})
	case email == "" || !strings.Contains(email, "@"):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required", "field": "email"})
	case body == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required", "field": "message"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &model.ContactMessage{SenderName: name, SenderEmail: email, Body: body}
	if err := h.Messages.Create(ctx, m); err != nil {
		return writeError(c, err)
	}

	if h.Notifier != nil {
		ev := queue.ContactReceivedEvent{
			MessageID:   m.ID,
			SenderName:  m.SenderName,
			SenderEmail: m.SenderEmail,
			Body:        m.Body,
			ReceivedAt:  m.CreatedAt,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Notifier.NotifyContactReceived(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID, "created_at": m.CreatedAt})
}
