package service

import (
	"context"
	"fmt"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/database"
)

// samples with a reported speed below this are considered stopped
const stoppedSpeedMetersPerSec = 0.5

type LocationService struct {
	repo database.LocationRepository
}

func NewLocationService(repo database.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// SaveLocation appends the sample to the history and upserts the vehicle's
// current-status row.
func (s *LocationService) SaveLocation(ctx context.Context, vl *domain.VehicleLocation) error {
	if err := s.repo.Insert(ctx, vl); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}

	status := &domain.VehicleStatus{
		VehicleID:   vl.VehicleID,
		Lat:         vl.Location.Lat,
		Lon:         vl.Location.Lon,
		Speed:       vl.Speed,
		Heading:     vl.Heading,
		Status:      StatusFor(vl),
		LastUpdated: vl.Location.Timestamp,
	}
	if err := s.repo.UpsertStatus(ctx, status); err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

// StatusFor derives the vehicle status from the sample. Delayed and
// off-route judgements belong to the scheduling services and are never
// produced here.
func StatusFor(vl *domain.VehicleLocation) domain.VehicleStatusKind {
	if vl.Speed != nil && *vl.Speed < stoppedSpeedMetersPerSec {
		return domain.StatusStopped
	}
	return domain.StatusMoving
}

func (s *LocationService) GetLatest(ctx context.Context, vehicleID string) (*domain.VehicleLocation, error) {
	return s.repo.GetLatest(ctx, vehicleID)
}

func (s *LocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.VehicleLocation, error) {
	return s.repo.GetHistory(ctx, query)
}

func (s *LocationService) GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.GetAllVehicles(ctx)
}

func (s *LocationService) GetStatus(ctx context.Context, vehicleID string) (*domain.VehicleStatus, error) {
	return s.repo.GetStatus(ctx, vehicleID)
}

func (s *LocationService) ListCurrent(ctx context.Context) ([]domain.VehicleStatus, error) {
	return s.repo.ListCurrent(ctx)
}
