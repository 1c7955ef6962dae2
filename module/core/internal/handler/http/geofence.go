package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

const defaultEventLimit = 50

type geofenceService interface {
	ActiveGeofences(ctx context.Context) ([]domain.Geofence, error)
	RecentEvents(ctx context.Context, limit int) ([]domain.GeofenceEvent, error)
}

type GeofenceHandler struct {
	geofenceSvc geofenceService
}

func NewGeofenceHandler(geofenceSvc geofenceService) *GeofenceHandler {
	return &GeofenceHandler{geofenceSvc: geofenceSvc}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.GET("/geofences", h.ListActive)
	r.GET("/geofences/events", h.RecentEvents)
}

func (h *GeofenceHandler) ListActive(c *gin.Context) {
	fences, err := h.geofenceSvc.ActiveGeofences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geofences"})
		return
	}
	if fences == nil {
		fences = []domain.Geofence{}
	}

	c.JSON(http.StatusOK, gin.H{"geofences": fences})
}

func (h *GeofenceHandler) RecentEvents(c *gin.Context) {
	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	events, err := h.geofenceSvc.RecentEvents(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	if events == nil {
		events = []domain.GeofenceEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
