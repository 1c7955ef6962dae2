package domain

import "time"

type GeofenceEventType string

const (
	GeofenceEnter GeofenceEventType = "enter"
	GeofenceExit  GeofenceEventType = "exit"
)

// GeofenceEvent records one enter/exit transition for a (vehicle, geofence)
// pair. Events for a pair strictly alternate in timestamp order, starting
// with enter. Immutable once persisted; ID is a uuid consumers use to
// deduplicate re-deliveries.
type GeofenceEvent struct {
	ID           string            `json:"id"`
	VehicleID    string            `json:"vehicle_id"`
	GeofenceID   int64             `json:"geofence_id"`
	GeofenceName string            `json:"geofence_name"`
	Event        GeofenceEventType `json:"event_type"`
	Lat          float64           `json:"latitude"`
	Lon          float64           `json:"longitude"`
	Timestamp    time.Time         `json:"timestamp"`
}

// CheckFailure names a geofence that could not be evaluated or recorded for
// a sample, with the cause. The caller may retry just those geofences by
// resubmitting the sample.
type CheckFailure struct {
	GeofenceID int64
	Err        error
}

// CheckResult is the outcome of evaluating one sample against the active
// geofence set. Events holds the transitions recorded; Failed the geofences
// whose bookkeeping failed. Both may be empty.
type CheckResult struct {
	Events []GeofenceEvent
	Failed []CheckFailure
}

// FailedIDs returns the geofence ids that could not be evaluated.
func (r *CheckResult) FailedIDs() []int64 {
	if len(r.Failed) == 0 {
		return nil
	}
	ids := make([]int64, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.GeofenceID
	}
	return ids
}

// GeofenceEventRef is the compact form embedded in a VehicleUpdate.
type GeofenceEventRef struct {
	GeofenceName string            `json:"geofence_name"`
	EventType    GeofenceEventType `json:"event_type"`
}

// VehicleUpdate is the wire message live subscribers receive for every
// sample. GeofenceEvents is present only when the sample produced at least
// one transition. Delivery over the bus is at-least-once; consumers must
// tolerate duplicates.
type VehicleUpdate struct {
	VehicleID      string             `json:"vehicle_id"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Speed          *float64           `json:"speed,omitempty"`
	Heading        *float64           `json:"heading,omitempty"`
	Status         VehicleStatusKind  `json:"status"`
	Timestamp      int64              `json:"timestamp"`
	GeofenceEvents []GeofenceEventRef `json:"geofence_events,omitempty"`
}
