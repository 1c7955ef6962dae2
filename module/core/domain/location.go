package domain

import "time"

type Location struct {
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// VehicleLocation is one GPS observation for a vehicle. Speed (m/s) and
// Heading (degrees) are optional telemetry fields; nil when the device did
// not report them.
type VehicleLocation struct {
	VehicleID string   `json:"vehicle_id"`
	Location  Location `json:"location"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
}

type Vehicle struct {
	VehicleID string `json:"vehicle_id"`
}

type VehicleStatusKind string

const (
	StatusMoving   VehicleStatusKind = "moving"
	StatusStopped  VehicleStatusKind = "stopped"
	StatusDelayed  VehicleStatusKind = "delayed"
	StatusOffRoute VehicleStatusKind = "off_route"
)

// VehicleStatus is the current-position row kept per vehicle, upserted on
// every accepted sample.
type VehicleStatus struct {
	VehicleID   string            `json:"vehicle_id"`
	Lat         float64           `json:"latitude"`
	Lon         float64           `json:"longitude"`
	Speed       *float64          `json:"speed,omitempty"`
	Heading     *float64          `json:"heading,omitempty"`
	Status      VehicleStatusKind `json:"status"`
	LastUpdated time.Time         `json:"last_updated"`
}

type HistoryQuery struct {
	VehicleID string
	Start     time.Time
	End       time.Time
}
