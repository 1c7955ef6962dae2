package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

type locationService interface {
	GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleLocation, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
	GetStatus(ctx context.Context, vehicleID string) (*domain.VehicleStatus, error)
	ListCurrent(ctx context.Context) ([]domain.VehicleStatus, error)
}

type trackingService interface {
	Process(ctx context.Context, vl *domain.VehicleLocation) (*domain.CheckResult, error)
}

type updateRequest struct {
	VehicleID string   `json:"vehicle_id" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Speed     *float64 `json:"speed" binding:"omitempty,gte=0"`
	Heading   *float64 `json:"heading" binding:"omitempty,gte=0,lt=360"`
	Timestamp int64    `json:"timestamp" binding:"omitempty,gt=0"`
}

type updateResponse struct {
	Status            string                 `json:"status"`
	Events            []domain.GeofenceEvent `json:"events"`
	FailedGeofenceIDs []int64                `json:"failed_geofence_ids,omitempty"`
}

type locationResponse struct {
	VehicleID string   `json:"vehicle_id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type VehicleHandler struct {
	locationSvc locationService
	trackingSvc trackingService
}

func NewVehicleHandler(locationSvc locationService, trackingSvc trackingService) *VehicleHandler {
	return &VehicleHandler{locationSvc: locationSvc, trackingSvc: trackingSvc}
}

func (h *VehicleHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles", h.GetAllVehicles)
	r.GET("/vehicles/:vehicle_id/location", h.GetLatestLocation)
	r.GET("/vehicles/:vehicle_id/history", h.GetHistory)
	r.GET("/location/all", h.ListCurrent)
	r.GET("/location/bus/:vehicle_id", h.GetStatus)
	r.POST("/location/update", h.UpdateLocation)
}

// UpdateLocation ingests one position sample over HTTP. The response names
// any geofences that could not be evaluated so the caller can retry just
// those by resubmitting the sample.
func (h *VehicleHandler) UpdateLocation(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ts := time.Now()
	if req.Timestamp > 0 {
		ts = time.Unix(req.Timestamp, 0)
	}

	vl := &domain.VehicleLocation{
		VehicleID: req.VehicleID,
		Location: domain.Location{
			Lat:       *req.Latitude,
			Lon:       *req.Longitude,
			Timestamp: ts,
		},
		Speed:   req.Speed,
		Heading: req.Heading,
	}

	result, err := h.trackingSvc.Process(c.Request.Context(), vl)
	if result == nil && err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to process location update"})
		return
	}

	resp := updateResponse{
		Status: "ok",
		Events: result.Events,
	}
	if resp.Events == nil {
		resp.Events = []domain.GeofenceEvent{}
	}
	if len(result.Failed) > 0 || err != nil {
		resp.Status = "partial"
		resp.FailedGeofenceIDs = result.FailedIDs()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.locationSvc.GetAllVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetLatestLocation(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	vl, err := h.locationSvc.GetLatest(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(vl))
}

func (h *VehicleHandler) GetHistory(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		VehicleID: vehicleID,
		Start:     time.Unix(start, 0),
		End:       time.Unix(end, 0),
	}

	locations, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(locations))
	for i, vl := range locations {
		results[i] = toLocationResponse(&vl)
	}
	c.JSON(http.StatusOK, results)
}

func (h *VehicleHandler) GetStatus(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	status, err := h.locationSvc.GetStatus(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bus location not found"})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *VehicleHandler) ListCurrent(c *gin.Context) {
	statuses, err := h.locationSvc.ListCurrent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations"})
		return
	}
	if statuses == nil {
		statuses = []domain.VehicleStatus{}
	}

	c.JSON(http.StatusOK, gin.H{"locations": statuses})
}

func toLocationResponse(vl *domain.VehicleLocation) locationResponse {
	return locationResponse{
		VehicleID: vl.VehicleID,
		Latitude:  vl.Location.Lat,
		Longitude: vl.Location.Lon,
		Speed:     vl.Speed,
		Heading:   vl.Heading,
		Timestamp: vl.Location.Timestamp.Unix(),
	}
}
