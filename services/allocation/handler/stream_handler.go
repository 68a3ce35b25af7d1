package handler

import (
	"net/http"
	"time"

	"allocation-tracker/internal/events"
	"allocation-tracker/services/allocation/helpers"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
)

type Subscriber interface {
	Subscribe(cycleID, userID string) (*events.Subscription, error)
}

// StreamHandler pushes live events to a client as server-sent events
type StreamHandler struct {
	hub       Subscriber
	heartbeat time.Duration
}

// NewStreamHandler creates a StreamHandler that pings every heartbeat
func NewStreamHandler(hub Subscriber, heartbeat time.Duration) *StreamHandler {
	return &StreamHandler{hub: hub, heartbeat: heartbeat}
}

// StreamHandler handles GET /stream?cycleId= as Server-Sent Events.
// The first event is "hello", then live events and a "ping" every heartbeat.
func (h *StreamHandler) StreamHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	cycleID := c.Query("cycleId")

	sub, err := h.hub.Subscribe(cycleID, userID)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, err, "stream unavailable", "")
		utils.Warn("StreamHandler: subscribe failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("hello", gin.H{"cycleId": cycleID, "ts": time.Now().UTC()})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	utils.Debug("StreamHandler: viewer connected", map[string]any{"user_id": userID, "cycle_id": cycleID})
	for {
		select {
		case <-c.Request.Context().Done():
			utils.Debug("StreamHandler: viewer disconnected", map[string]any{"user_id": userID, "cycle_id": cycleID})
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			c.SSEvent(ev.Type, ev)
			c.Writer.Flush()
		case t := <-ticker.C:
			c.SSEvent("ping", gin.H{"ts": t.UTC()})
			c.Writer.Flush()
		}
	}
}
