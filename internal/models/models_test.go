// ABOUTME: Tests for model validation and constructors
// ABOUTME: Covers trip type parsing and coordinate/rating/budget bounds

package models

import (
	"math"
	"testing"
	"time"
)

func TestParseTripType(t *testing.T) {
	tests := []struct {
		input   string
		want    TripType
		wantErr bool
	}{
		{"local", TypeLocal, false},
		{"day-trip", TypeDayTrip, false},
		{"DAY_TRIP", TypeDayTrip, false},
		{"Multi-Day", TypeMultiDay, false},
		{"  weekend  ", TypeWeekend, false},
		{"business", TypeBusiness, false},
		{"adventure", TypeAdventure, false},
		{"cruise", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTripType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTripType(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTripType(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTripType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTripTypesCoversAll(t *testing.T) {
	types := TripTypes()
	if len(types) != 6 {
		t.Fatalf("expected 6 trip types, got %d", len(types))
	}
	seen := make(map[TripType]bool)
	for _, tt := range types {
		if seen[tt] {
			t.Errorf("duplicate trip type %q", tt)
		}
		seen[tt] = true
	}
}

func TestValidateCoordinates(t *testing.T) {
	valid := [][2]float64{
		{0, 0},
		{41.8902, 12.4922},
		{-90, -180},
		{90, 180},
	}
	for _, c := range valid {
		if err := ValidateCoordinates(c[0], c[1]); err != nil {
			t.Errorf("ValidateCoordinates(%v, %v) unexpected error: %v", c[0], c[1], err)
		}
	}

	invalid := [][2]float64{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
	}
	for _, c := range invalid {
		if err := ValidateCoordinates(c[0], c[1]); err == nil {
			t.Errorf("ValidateCoordinates(%v, %v) expected error", c[0], c[1])
		}
	}
}

func TestValidateDestination(t *testing.T) {
	if err := ValidateDestination("Rome"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDestination(""); err == nil {
		t.Error("empty destination should be rejected")
	}
	if err := ValidateDestination("   "); err == nil {
		t.Error("whitespace destination should be rejected")
	}
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateDestination(string(long)); err == nil {
		t.Error("over-long destination should be rejected")
	}
}

func TestValidateRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		if err := ValidateRating(r); err != nil {
			t.Errorf("ValidateRating(%d) unexpected error: %v", r, err)
		}
	}
	for _, r := range []int{0, 6, -1} {
		if err := ValidateRating(r); err == nil {
			t.Errorf("ValidateRating(%d) expected error", r)
		}
	}
}

func TestValidateBudget(t *testing.T) {
	if err := ValidateBudget(0); err != nil {
		t.Errorf("zero budget should be valid: %v", err)
	}
	if err := ValidateBudget(1500.50); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateBudget(-1); err == nil {
		t.Error("negative budget should be rejected")
	}
	if err := ValidateBudget(math.NaN()); err == nil {
		t.Error("NaN budget should be rejected")
	}
}

func TestNewTrip(t *testing.T) {
	startedAt := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	trip := NewTrip("Rome", TypeMultiDay, startedAt)

	if trip.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated id")
	}
	if trip.Destination != "Rome" {
		t.Errorf("destination = %q", trip.Destination)
	}
	if trip.Type != TypeMultiDay {
		t.Errorf("type = %q", trip.Type)
	}
	if !trip.StartedAt.Equal(startedAt) {
		t.Errorf("started_at = %v", trip.StartedAt)
	}
	if trip.Active {
		t.Error("new trips must be inactive until the store activates them")
	}
	if trip.EndedAt != nil {
		t.Error("new trips must not have an end time")
	}
	if trip.DistanceKM != 0 {
		t.Errorf("distance = %v, want 0", trip.DistanceKM)
	}
}

func TestNewLocationPointAt(t *testing.T) {
	trip := NewTrip("Rome", TypeLocal, time.Now())
	recordedAt := time.Date(2026, 8, 30, 9, 5, 0, 0, time.UTC)
	point := NewLocationPointAt(trip.ID, 41.8902, 12.4922, recordedAt)

	if point.TripID != trip.ID {
		t.Error("point not bound to trip")
	}
	if point.Latitude != 41.8902 || point.Longitude != 12.4922 {
		t.Errorf("coordinates = (%v, %v)", point.Latitude, point.Longitude)
	}
	if !point.RecordedAt.Equal(recordedAt) {
		t.Errorf("recorded_at = %v", point.RecordedAt)
	}
}
