package database

import (
	"context"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, loc *domain.VehicleLocation) error
	UpsertStatus(ctx context.Context, status *domain.VehicleStatus) error
	GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleLocation, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
	GetStatus(ctx context.Context, vehicleID string) (*domain.VehicleStatus, error)
	ListCurrent(ctx context.Context) ([]domain.VehicleStatus, error)
}

// GeofenceRepository is the read-only view of the geofence catalog.
// Geofence administration lives outside this core.
type GeofenceRepository interface {
	ListActive(ctx context.Context) ([]domain.Geofence, error)
}

// EventRepository is the durable transition event log. GetLast returns
// (nil, nil) when the pair has no recorded event yet.
type EventRepository interface {
	GetLast(ctx context.Context, vehicleID string, geofenceID int64) (*domain.GeofenceEvent, error)
	Insert(ctx context.Context, event *domain.GeofenceEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.GeofenceEvent, error)
}
