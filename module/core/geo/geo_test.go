package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	p := Point{Lat: -17.8047, Lon: 31.0669}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := Point{Lat: 10, Lon: 20}
	b := Point{Lat: -5, Lon: 80}
	d1 := DistanceMeters(a, b)
	d2 := DistanceMeters(b, a)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("expected symmetric distance, got %f vs %f", d1, d2)
	}
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	d := DistanceMeters(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	if d <= 110000 || d >= 112500 {
		t.Errorf("expected one degree of latitude in (110000, 112500), got %f", d)
	}
}

func TestCircleContains_BoundaryInclusive(t *testing.T) {
	center := Point{Lat: 0, Lon: 0}
	p := Point{Lat: 0, Lon: 0.001}
	r := DistanceMeters(p, center)

	if !CircleContains(p, center, r) {
		t.Error("point at exactly the radius should be inside")
	}
	if CircleContains(p, center, r-0.01) {
		t.Error("point just beyond the radius should be outside")
	}
}

func TestPolygonContains(t *testing.T) {
	// unit square around the origin in (lat, lon) space
	ring := []Point{
		{Lat: -0.5, Lon: -0.5},
		{Lat: -0.5, Lon: 0.5},
		{Lat: 0.5, Lon: 0.5},
		{Lat: 0.5, Lon: -0.5},
	}

	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{Lat: 0, Lon: 0}, true},
		{"near corner inside", Point{Lat: 0.49, Lon: 0.49}, true},
		{"outside east", Point{Lat: 0, Lon: 0.6}, false},
		{"outside north", Point{Lat: 0.6, Lon: 0}, false},
		{"far away", Point{Lat: 40, Lon: -70}, false},
	}

	for _, tc := range cases {
		if got := PolygonContains(tc.p, ring); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPolygonContains_Concave(t *testing.T) {
	// L-shape: the notch at the top right is outside
	ring := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 2},
		{Lat: 1, Lon: 2},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 1},
		{Lat: 2, Lon: 0},
	}

	if !PolygonContains(Point{Lat: 0.5, Lon: 0.5}, ring) {
		t.Error("point in the body should be inside")
	}
	if PolygonContains(Point{Lat: 1.5, Lon: 1.5}, ring) {
		t.Error("point in the notch should be outside")
	}
}

func TestPolygonContains_DegenerateRing(t *testing.T) {
	ring := []Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}
	if PolygonContains(Point{Lat: 0.5, Lon: 0.5}, ring) {
		t.Error("fewer than 3 vertices can contain nothing")
	}
}
