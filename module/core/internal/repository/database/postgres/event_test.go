package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

func TestGetLast_ReturnsNewestEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "geofence_id", "geofence_name", "event_type", "latitude", "longitude", "timestamp"}).
		AddRow("6a1f0c2e-0000-4000-8000-000000000001", "ZSB001", int64(1), "Fourth Street Stop", "enter", -17.8047, 31.0669, ts)
	mock.ExpectQuery(`SELECT id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp FROM geofence_events`).
		WithArgs("ZSB001", int64(1)).
		WillReturnRows(rows)

	repo := NewEventRepo(db)
	ev, err := repo.GetLast(context.Background(), "ZSB001", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.Event != domain.GeofenceEnter {
		t.Errorf("expected enter, got %s", ev.Event)
	}
}

func TestGetLast_NoHistoryMeansNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp FROM geofence_events`).
		WithArgs("ZSB001", int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "geofence_id", "geofence_name", "event_type", "latitude", "longitude", "timestamp"}))

	repo := NewEventRepo(db)
	ev, err := repo.GetLast(context.Background(), "ZSB001", 99)
	if err != nil {
		t.Fatalf("no prior event is not an error, got: %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event, got %+v", ev)
	}
}

func TestEventInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	mock.ExpectExec(`INSERT INTO geofence_events`).
		WithArgs("6a1f0c2e-0000-4000-8000-000000000001", "ZSB001", int64(1), "Fourth Street Stop", "enter", -17.8047, 31.0669, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewEventRepo(db)
	err = repo.Insert(context.Background(), &domain.GeofenceEvent{
		ID:           "6a1f0c2e-0000-4000-8000-000000000001",
		VehicleID:    "ZSB001",
		GeofenceID:   1,
		GeofenceName: "Fourth Street Stop",
		Event:        domain.GeofenceEnter,
		Lat:          -17.8047,
		Lon:          31.0669,
		Timestamp:    ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEventInsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO geofence_events`).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewEventRepo(db)
	err = repo.Insert(context.Background(), &domain.GeofenceEvent{ID: "x", VehicleID: "ZSB001"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestListRecent_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "geofence_id", "geofence_name", "event_type", "latitude", "longitude", "timestamp"}).
		AddRow("id-2", "ZSB001", int64(1), "Fourth Street Stop", "exit", -17.8047, 31.0669, time.Unix(1715000200, 0)).
		AddRow("id-1", "ZSB001", int64(1), "Fourth Street Stop", "enter", -17.8047, 31.0669, time.Unix(1715000100, 0))
	mock.ExpectQuery(`SELECT id, vehicle_id, geofence_id, geofence_name, event_type, latitude, longitude, timestamp FROM geofence_events`).
		WithArgs(50).
		WillReturnRows(rows)

	repo := NewEventRepo(db)
	events, err := repo.ListRecent(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Event != domain.GeofenceExit {
		t.Errorf("expected newest first, got %s", events[0].Event)
	}
}
