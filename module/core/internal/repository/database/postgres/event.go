package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/database"
)

var _ database.EventRepository = (*EventRepo)(nil)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// GetLast returns the most recent event for the (vehicle, geofence) pair,
// or (nil, nil) when none exists. Served by the index on
// (vehicle_id, geofence_id, timestamp DESC).
func (r *EventRepo) GetLast(ctx context.Context, vehicleID string, geofenceID int64) (*domain.GeofenceEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp FROM geofence_events WHERE vehicle_id = $1 AND geofence_id = $2 ORDER BY timestamp DESC LIMIT 1`,
		vehicleID, geofenceID,
	)

	var ev domain.GeofenceEvent
	if err := row.Scan(&ev.ID, &ev.VehicleID, &ev.GeofenceID, &ev.GeofenceName, &ev.Event, &ev.Lat, &ev.Lon, &ev.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepo) Insert(ctx context.Context, event *domain.GeofenceEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO geofence_events (id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.VehicleID, event.GeofenceID, event.GeofenceName, event.Event, event.Lat, event.Lon, event.Timestamp,
	)
	return err
}

func (r *EventRepo) ListRecent(ctx context.Context, limit int) ([]domain.GeofenceEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp FROM geofence_events ORDER BY timestamp DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.GeofenceEvent
	for rows.Next() {
		var ev domain.GeofenceEvent
		if err := rows.Scan(&ev.ID, &ev.VehicleID, &ev.GeofenceID, &ev.GeofenceName, &ev.Event, &ev.Lat, &ev.Lon, &ev.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, ev)
	}
	return results, rows.Err()
}
