// ABOUTME: Tests for Haversine distance calculations
// ABOUTME: Covers known distances, symmetry, and path summation

package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	if d := Haversine(0, 0, 0, 0); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
	if d := Haversine(41.8902, 12.4922, 41.8902, 12.4922); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestHaversineOneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is about 111.19 km.
	d := Haversine(0, 0, 0, 1)
	if math.Abs(d-111.19) > 0.01 {
		t.Errorf("expected ~111.19 km, got %f", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Rome to Milan is roughly 477 km.
	d := Haversine(41.9028, 12.4964, 45.4642, 9.1900)
	if d < 470 || d > 485 {
		t.Errorf("Rome-Milan distance out of range: %f", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	cases := [][4]float64{
		{41.8902, 12.4922, 41.9000, 12.5000},
		{0, 0, 0, 1},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{89.9, 0, -89.9, 180},
	}
	for _, c := range cases {
		ab := Haversine(c[0], c[1], c[2], c[3])
		ba := Haversine(c[2], c[3], c[0], c[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("asymmetric distance: %f vs %f for %v", ab, ba, c)
		}
	}
}

func TestPathDistanceShortSequences(t *testing.T) {
	if d := PathDistance(nil); d != 0 {
		t.Errorf("expected 0 for nil path, got %f", d)
	}
	if d := PathDistance([]Point{{41.89, 12.49}}); d != 0 {
		t.Errorf("expected 0 for single point, got %f", d)
	}
}

func TestPathDistanceSumsSegments(t *testing.T) {
	points := []Point{
		{41.8902, 12.4922},
		{41.9000, 12.5000},
		{41.9100, 12.5100},
	}
	want := Distance(points[0], points[1]) + Distance(points[1], points[2])
	got := PathDistance(points)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("path distance %f != segment sum %f", got, want)
	}
	// The three Rome fixes cover roughly 2.4 km.
	if got < 2.0 || got > 2.8 {
		t.Errorf("expected ~2.4 km for Rome sequence, got %f", got)
	}
}

func TestPathDistanceMonotonicExtension(t *testing.T) {
	points := []Point{
		{41.8902, 12.4922},
		{41.9000, 12.5000},
	}
	base := PathDistance(points)
	extended := PathDistance(append(points, Point{41.9100, 12.5100}))
	if extended < base {
		t.Errorf("extending a path shrank its distance: %f < %f", extended, base)
	}
}
