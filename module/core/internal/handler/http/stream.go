package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

type broadcaster interface {
	Subscribe() (uint64, <-chan domain.VehicleUpdate)
	Unsubscribe(id uint64)
}

// StreamHandler serves the live vehicle update stream over SSE. Each open
// connection holds one broadcaster subscription. There is no replay and no
// backpressure: a consumer that falls behind is dropped by the broadcaster
// and its stream ends.
type StreamHandler struct {
	broadcaster broadcaster
}

func NewStreamHandler(b broadcaster) *StreamHandler {
	return &StreamHandler{broadcaster: b}
}

func (h *StreamHandler) Register(r *gin.RouterGroup) {
	r.GET("/location/live", h.Live)
}

func (h *StreamHandler) Live(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case update, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("update", update)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
