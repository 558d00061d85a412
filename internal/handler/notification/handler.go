package notification

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/zomujo/telemed-api/internal/middleware"
	"github.com/zomujo/telemed-api/internal/service/notification"
	"github.com/zomujo/telemed-api/pkg/errors"
	"github.com/zomujo/telemed-api/pkg/httputil"
)

type Handler struct {
	service *notification.Service
}

func NewHandler(service *notification.Service) *Handler {
	return &Handler{service: service}
}

// Stream holds an SSE connection open and writes notification frames as they
// arrive. The first frame is always the connect ack, followed by anything
// that queued up while the user was offline.
func (h *Handler) Stream(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized("not authenticated", nil))
		return
	}

	ch, err := h.service.Connect(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer h.service.Disconnect(userID, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case payload, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("message", payload)
			return true
		}
	})
}
