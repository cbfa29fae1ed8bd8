package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

// Chat runs one chat turn and returns the normalized response.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		verr := &domain.ValidationError{Field: "message"}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	}

	resp, err := h.service.RunTurn(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

type clearRequest struct {
	SessionID string `json:"sessionId"`
}

// Clear drops the session's thread mapping. Always 200, even for unknown
// sessions.
// POST /api/clear
func (h *Handler) Clear(c echo.Context) error {
	var req clearRequest
	// An empty or malformed body clears the default session.
	_ = c.Bind(&req)

	h.service.ClearSession(req.SessionID)
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
