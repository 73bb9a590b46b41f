package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

const (
	eventBuffer       = 32
	heartbeatInterval = 25 * time.Second
)

// EventsHandler streams the caller's change notifications as server-sent events
type EventsHandler struct {
	bus       *events.Bus
	logger    logrus.FieldLogger
	heartbeat time.Duration
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(bus *events.Bus, logger logrus.FieldLogger) *EventsHandler {
	return &EventsHandler{
		bus:       bus,
		logger:    logger,
		heartbeat: heartbeatInterval,
	}
}

// Stream handles GET /events. Events for other sessions are never sent.
// A slow client loses events instead of blocking the publisher.
func (h *EventsHandler) Stream(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	ch := make(chan events.Event, eventBuffer)

	unsubscribe := h.bus.Subscribe(events.All, func(e events.Event) {
		if e.SessionID != sessionID {
			return
		}
		select {
		case ch <- e:
		default:
			h.logger.WithFields(logrus.Fields{
				"session_id": sessionID,
				"topic":      e.Topic,
			}).Warn("Dropping event for slow subscriber")
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{"session_id": sessionID})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-ch:
			c.SSEvent(string(e.Topic), e)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"time": time.Now().UTC()})
			c.Writer.Flush()
		}
	}
}
