package service

import (
	"context"
	"fmt"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/publisher"
)

type locationSaver interface {
	SaveLocation(ctx context.Context, vl *domain.VehicleLocation) error
}

type transitionChecker interface {
	Check(ctx context.Context, vl *domain.VehicleLocation) (*domain.CheckResult, error)
}

// TrackingService runs the full pipeline for one sample: persist it, detect
// geofence transitions, and publish the resulting update on the bus. Both
// the MQTT subscriber and the HTTP update endpoint go through here.
type TrackingService struct {
	locations locationSaver
	geofences transitionChecker
	publisher publisher.UpdatePublisher
}

func NewTrackingService(locations locationSaver, geofences transitionChecker, pub publisher.UpdatePublisher) *TrackingService {
	return &TrackingService{locations: locations, geofences: geofences, publisher: pub}
}

// Process handles one sample. A save failure rejects the sample outright.
// Transition detection may partially fail per geofence; those failures ride
// along in the returned result so the caller can report or retry them. A
// publish failure is returned after the result: the transitions are already
// recorded, and a retried publish only produces duplicates the bus contract
// permits.
func (s *TrackingService) Process(ctx context.Context, vl *domain.VehicleLocation) (*domain.CheckResult, error) {
	if err := s.locations.SaveLocation(ctx, vl); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}

	result, err := s.geofences.Check(ctx, vl)
	if err != nil {
		return nil, fmt.Errorf("check geofences: %w", err)
	}

	update := buildUpdate(vl, result.Events)
	if err := s.publisher.PublishUpdate(ctx, update); err != nil {
		return result, fmt.Errorf("publish update: %w", err)
	}
	return result, nil
}

func buildUpdate(vl *domain.VehicleLocation, events []domain.GeofenceEvent) *domain.VehicleUpdate {
	update := &domain.VehicleUpdate{
		VehicleID: vl.VehicleID,
		Latitude:  vl.Location.Lat,
		Longitude: vl.Location.Lon,
		Speed:     vl.Speed,
		Heading:   vl.Heading,
		Status:    StatusFor(vl),
		Timestamp: vl.Location.Timestamp.Unix(),
	}
	for _, ev := range events {
		update.GeofenceEvents = append(update.GeofenceEvents, domain.GeofenceEventRef{
			GeofenceName: ev.GeofenceName,
			EventType:    ev.Event,
		})
	}
	return update
}
