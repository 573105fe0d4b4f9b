package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/realtime"
)

type EventsHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewEventsHandler(log *logger.Logger, hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{
		log: log.With("handler", "EventsHandler"),
		hub: hub,
	}
}

// GET /contacts/events
// Streams contact change events as SSE until the client disconnects.
func (eh *EventsHandler) Stream(c *gin.Context) {
	client := eh.hub.Register()
	defer eh.hub.Unregister(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-client.Done():
			return false
		case ev, ok := <-client.Outbound:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		}
	})
}
