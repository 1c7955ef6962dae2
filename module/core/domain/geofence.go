package domain

import "time"

type GeofenceType string

const (
	GeofenceBusStop GeofenceType = "bus_stop"
	GeofenceSchool  GeofenceType = "school"
	GeofenceDepot   GeofenceType = "depot"
	GeofenceCustom  GeofenceType = "custom"
)

// LatLon is a bare WGS84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Geofence is a named region of interest: a circle (Lat/Lon center plus
// RadiusMeters) or, when IsPolygon is set, the ring in Polygon. Inactive
// geofences are excluded from evaluation; geofences are deactivated rather
// than deleted.
type Geofence struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Type         GeofenceType `json:"type"`
	Lat          float64      `json:"latitude"`
	Lon          float64      `json:"longitude"`
	RadiusMeters float64      `json:"radius_meters"`
	IsPolygon    bool         `json:"is_polygon"`
	Polygon      []LatLon     `json:"polygon_coordinates,omitempty"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
