package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/geo"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/database"
)

// GeofenceService detects enter/exit transitions. The last known state of a
// (vehicle, geofence) pair is derived from the most recent event in the
// log, so the detector itself is stateless: no prior event means the
// vehicle is outside.
type GeofenceService struct {
	geofences database.GeofenceRepository
	events    database.EventRepository
}

func NewGeofenceService(geofences database.GeofenceRepository, events database.EventRepository) *GeofenceService {
	return &GeofenceService{geofences: geofences, events: events}
}

// Check evaluates one sample against every active geofence and records each
// transition. A lookup or insert failure for one geofence is collected in
// the result and does not stop the remaining geofences; only a catalog
// listing failure aborts the sample.
func (s *GeofenceService) Check(ctx context.Context, vl *domain.VehicleLocation) (*domain.CheckResult, error) {
	fences, err := s.geofences.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active geofences: %w", err)
	}

	result := &domain.CheckResult{}
	point := geo.Point{Lat: vl.Location.Lat, Lon: vl.Location.Lon}

	for _, gf := range fences {
		isInside := contains(point, &gf)

		last, err := s.events.GetLast(ctx, vl.VehicleID, gf.ID)
		if err != nil {
			result.Failed = append(result.Failed, domain.CheckFailure{GeofenceID: gf.ID, Err: fmt.Errorf("last event: %w", err)})
			continue
		}
		wasInside := last != nil && last.Event == domain.GeofenceEnter

		var kind domain.GeofenceEventType
		switch {
		case isInside && !wasInside:
			kind = domain.GeofenceEnter
		case !isInside && wasInside:
			kind = domain.GeofenceExit
		default:
			continue
		}

		event := domain.GeofenceEvent{
			ID:           uuid.NewString(),
			VehicleID:    vl.VehicleID,
			GeofenceID:   gf.ID,
			GeofenceName: gf.Name,
			Event:        kind,
			Lat:          vl.Location.Lat,
			Lon:          vl.Location.Lon,
			Timestamp:    vl.Location.Timestamp,
		}
		if err := s.events.Insert(ctx, &event); err != nil {
			result.Failed = append(result.Failed, domain.CheckFailure{GeofenceID: gf.ID, Err: fmt.Errorf("record event: %w", err)})
			continue
		}
		result.Events = append(result.Events, event)
	}

	return result, nil
}

func (s *GeofenceService) RecentEvents(ctx context.Context, limit int) ([]domain.GeofenceEvent, error) {
	return s.events.ListRecent(ctx, limit)
}

func (s *GeofenceService) ActiveGeofences(ctx context.Context) ([]domain.Geofence, error) {
	return s.geofences.ListActive(ctx)
}

func contains(p geo.Point, gf *domain.Geofence) bool {
	if gf.IsPolygon && len(gf.Polygon) >= 3 {
		ring := make([]geo.Point, len(gf.Polygon))
		for i, v := range gf.Polygon {
			ring[i] = geo.Point{Lat: v.Lat, Lon: v.Lon}
		}
		return geo.PolygonContains(p, ring)
	}
	return geo.CircleContains(p, geo.Point{Lat: gf.Lat, Lon: gf.Lon}, gf.RadiusMeters)
}
