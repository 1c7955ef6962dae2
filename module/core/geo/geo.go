// Package geo holds the pure geometry used by geofence evaluation. All
// functions are side-effect free and safe for concurrent use.
package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the great-circle (haversine) distance between two
// points using the mean Earth radius. Symmetric; 0 for identical points.
func DistanceMeters(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CircleContains reports whether p lies within radiusMeters of center.
// Boundary-inclusive: a point at exactly the radius is inside.
func CircleContains(p, center Point, radiusMeters float64) bool {
	return DistanceMeters(p, center) <= radiusMeters
}

// PolygonContains runs the even-odd ray-casting test over the ordered ring,
// treating (lat, lon) as planar (x, y). Accurate at metro scale; not valid
// near the poles or across the antimeridian.
func PolygonContains(p Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	x, y := p.Lat, p.Lon
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Lat, ring[i].Lon
		xj, yj := ring[j].Lat, ring[j].Lon
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
