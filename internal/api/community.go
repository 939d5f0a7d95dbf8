package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recipehub/internal/community"
	"recipehub/internal/metrics"
)

// GetMessages returns recent chat messages, oldest first, with flagged text
// masked.
func (h *Handler) GetMessages(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	msgs, err := h.ChatStore.ListMessages(ctx, community.ClampLimit(limit))
	if err != nil {
		h.storeError(c, "query", err)
		return
	}

	out := make([]community.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Public())
	}

	c.JSON(http.StatusOK, out)
}

type postMessageRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message" binding:"required"`
}

// PostMessage moderates a chat message and stores it. Flagged messages are
// kept but shown masked.
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "message is required")
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		c.String(http.StatusBadRequest, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), llmTimeout)
	defer cancel()

	flagged, err := h.Chef.ModerateMessage(ctx, text)
	if err != nil {
		h.llmError(c, err)
		return
	}

	msg := community.NewMessage(req.UserID, req.Username, text, flagged)
	if err := h.ChatStore.AddMessage(ctx, msg); err != nil {
		h.storeError(c, "save", err)
		return
	}
	metrics.CommunityMessage(flagged)

	c.JSON(http.StatusCreated, msg.Public())
}
