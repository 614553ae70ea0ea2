// ABOUTME: Core data models for trips, waypoints, photos, and notes
// ABOUTME: Provides validation and constructor functions for all entities

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripType categorizes a trip. Display names and icons live in internal/ui;
// the core only cares about the tag.
type TripType string

// Known trip types.
const (
	TypeLocal     TripType = "local"
	TypeDayTrip   TripType = "day-trip"
	TypeMultiDay  TripType = "multi-day"
	TypeWeekend   TripType = "weekend"
	TypeBusiness  TripType = "business"
	TypeAdventure TripType = "adventure"
)

// TripTypes lists every known trip type in display order.
func TripTypes() []TripType {
	return []TripType{TypeLocal, TypeDayTrip, TypeMultiDay, TypeWeekend, TypeBusiness, TypeAdventure}
}

// ParseTripType converts user input into a TripType.
// Accepts the canonical form plus underscore and case variants.
func ParseTripType(s string) (TripType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for _, t := range TripTypes() {
		if normalized == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trip type %q", s)
}

// Trip represents one journey. At most one trip is active at a time;
// that invariant is enforced by the storage layer, not here.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	Destination string     `json:"destination"`
	Type        TripType   `json:"type"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Active      bool       `json:"active"`
	DistanceKM  float64    `json:"distance_km"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LocationPoint is one GPS fix belonging to a trip.
// Immutable once written; ordered by RecordedAt, which matches insertion order.
type LocationPoint struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"trip_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Photo is a trip photo reference. The file itself lives outside the store.
type Photo struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	URI       string    `json:"uri"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Caption   *string   `json:"caption,omitempty"`
	TakenAt   time.Time `json:"taken_at"`
}

// Note is a free-text note attached to a trip, optionally geotagged.
type Note struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Content   string    `json:"content"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateDestination checks if a destination is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("destination cannot be empty or whitespace")
	}
	if len(destination) > 255 {
		return fmt.Errorf("destination too long (max 255 characters)")
	}
	return nil
}

// ValidateRating checks that a rating is in the 1-5 range.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// ValidateBudget checks that a budget is a non-negative finite amount.
func ValidateBudget(budget float64) error {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("budget must be a finite number")
	}
	if budget < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}

// NewTrip creates a new trip with generated UUID and timestamps.
// The trip is created inactive; the storage layer's CreateTrip flips it
// active inside the deactivate-then-insert transaction.
func NewTrip(destination string, tripType TripType, startedAt time.Time) *Trip {
	now := time.Now()
	return &Trip{
		ID:          uuid.New(),
		Destination: destination,
		Type:        tripType,
		StartedAt:   startedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewLocationPoint creates a waypoint for a trip with the current timestamp.
func NewLocationPoint(tripID uuid.UUID, lat, lng float64) *LocationPoint {
	return &LocationPoint{
		ID:         uuid.New(),
		TripID:     tripID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: time.Now(),
	}
}

// NewLocationPointAt creates a waypoint with a specific recorded time.
func NewLocationPointAt(tripID uuid.UUID, lat, lng float64, recordedAt time.Time) *LocationPoint {
	return &LocationPoint{
		ID:         uuid.New(),
		TripID:     tripID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: recordedAt,
	}
}

// NewPhoto creates a photo record for a trip.
func NewPhoto(tripID uuid.UUID, uri string, caption *string) *Photo {
	return &Photo{
		ID:      uuid.New(),
		TripID:  tripID,
		URI:     uri,
		Caption: caption,
		TakenAt: time.Now(),
	}
}

// NewNote creates a note for a trip.
func NewNote(tripID uuid.UUID, content string) *Note {
	return &Note{
		ID:        uuid.New(),
		TripID:    tripID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
