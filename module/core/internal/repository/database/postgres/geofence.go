package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/database"
)

var _ database.GeofenceRepository = (*GeofenceRepo)(nil)

type GeofenceRepo struct {
	db *sql.DB
}

func NewGeofenceRepo(db *sql.DB) *GeofenceRepo {
	return &GeofenceRepo{db: db}
}

func (r *GeofenceRepo) ListActive(ctx context.Context) ([]domain.Geofence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, latitude, longitude, radius_meters, is_polygon, polygon_coordinates, is_active, created_at, updated_at FROM geofences WHERE is_active = true`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Geofence
	for rows.Next() {
		var gf domain.Geofence
		var polygonJSON []byte
		if err := rows.Scan(&gf.ID, &gf.Name, &gf.Type, &gf.Lat, &gf.Lon, &gf.RadiusMeters, &gf.IsPolygon, &polygonJSON, &gf.IsActive, &gf.CreatedAt, &gf.UpdatedAt); err != nil {
			return nil, err
		}
		if len(polygonJSON) > 0 {
			ring, err := decodeRing(polygonJSON)
			if err != nil {
				return nil, fmt.Errorf("geofence %d polygon: %w", gf.ID, err)
			}
			gf.Polygon = ring
		}
		results = append(results, gf)
	}
	return results, rows.Err()
}

// decodeRing parses the jsonb polygon column: an array of [lat, lon] pairs.
func decodeRing(raw []byte) ([]domain.LatLon, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}
	ring := make([]domain.LatLon, len(pairs))
	for i, p := range pairs {
		ring[i] = domain.LatLon{Lat: p[0], Lon: p[1]}
	}
	return ring, nil
}
