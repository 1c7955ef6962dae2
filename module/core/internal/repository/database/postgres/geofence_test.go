package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

func geofenceColumns() []string {
	return []string{"id", "name", "type", "latitude", "longitude", "radius_meters", "is_polygon", "polygon_coordinates", "is_active", "created_at", "updated_at"}
}

func TestListActive_CircleGeofence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Unix(1715000000, 0)
	rows := sqlmock.NewRows(geofenceColumns()).
		AddRow(int64(1), "Fourth Street Stop", "bus_stop", -17.8047, 31.0669, 50.0, false, nil, true, now, now)
	mock.ExpectQuery(`SELECT id, name, type, latitude, longitude, radius_meters, is_polygon, polygon_coordinates, is_active, created_at, updated_at FROM geofences`).
		WillReturnRows(rows)

	repo := NewGeofenceRepo(db)
	fences, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fences) != 1 {
		t.Fatalf("expected 1 geofence, got %d", len(fences))
	}
	gf := fences[0]
	if gf.Type != domain.GeofenceBusStop {
		t.Errorf("expected bus_stop, got %s", gf.Type)
	}
	if gf.IsPolygon || gf.Polygon != nil {
		t.Errorf("circle geofence should carry no ring")
	}
	if gf.RadiusMeters != 50.0 {
		t.Errorf("expected radius 50, got %f", gf.RadiusMeters)
	}
}

func TestListActive_PolygonRingDecoded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Unix(1715000000, 0)
	ring := []byte(`[[-17.80, 31.06], [-17.80, 31.08], [-17.82, 31.08], [-17.82, 31.06]]`)
	rows := sqlmock.NewRows(geofenceColumns()).
		AddRow(int64(2), "Depot Yard", "depot", -17.81, 31.07, 0.0, true, ring, true, now, now)
	mock.ExpectQuery(`SELECT id, name, type, latitude, longitude, radius_meters, is_polygon, polygon_coordinates, is_active, created_at, updated_at FROM geofences`).
		WillReturnRows(rows)

	repo := NewGeofenceRepo(db)
	fences, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fences) != 1 {
		t.Fatalf("expected 1 geofence, got %d", len(fences))
	}
	gf := fences[0]
	if !gf.IsPolygon {
		t.Fatal("expected polygon geofence")
	}
	if len(gf.Polygon) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(gf.Polygon))
	}
	if gf.Polygon[1].Lat != -17.80 || gf.Polygon[1].Lon != 31.08 {
		t.Errorf("vertex order must be [lat, lon], got %+v", gf.Polygon[1])
	}
}

func TestListActive_MalformedRing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Unix(1715000000, 0)
	rows := sqlmock.NewRows(geofenceColumns()).
		AddRow(int64(2), "Depot Yard", "depot", -17.81, 31.07, 0.0, true, []byte(`{"not": "a ring"}`), true, now, now)
	mock.ExpectQuery(`SELECT id, name, type, latitude, longitude, radius_meters, is_polygon, polygon_coordinates, is_active, created_at, updated_at FROM geofences`).
		WillReturnRows(rows)

	repo := NewGeofenceRepo(db)
	if _, err := repo.ListActive(context.Background()); err == nil {
		t.Fatal("expected error for malformed polygon json")
	}
}

func TestListActive_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT id, name, type, latitude, longitude, radius_meters, is_polygon, polygon_coordinates, is_active, created_at, updated_at FROM geofences`).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewGeofenceRepo(db)
	if _, err := repo.ListActive(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
