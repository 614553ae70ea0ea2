// ABOUTME: Repository interfaces for trip tracking storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/google/uuid"
)

// TripRepository defines operations for managing trips. All mutations of the
// active flag go through CreateTrip, ActivateTrip, and FinalizeTrip so the
// single-active-trip invariant holds under concurrent access.
type TripRepository interface {
	CreateTrip(trip *models.Trip) error
	GetTrip(id uuid.UUID) (*models.Trip, error)
	ActiveTrip() (*models.Trip, error)
	ListTrips() ([]*models.Trip, error)
	TripsByType(t models.TripType) ([]*models.Trip, error)
	TripsInRange(from, to time.Time) ([]*models.Trip, error)
	UpdateTrip(trip *models.Trip) error
	ActivateTrip(id uuid.UUID) error
	DeactivateAll() error
	FinalizeTrip(id uuid.UUID, endedAt time.Time, distanceKM float64) error
	DeleteTrip(id uuid.UUID) error
}

// LocationRepository defines operations for trip waypoints.
type LocationRepository interface {
	AppendLocation(point *models.LocationPoint) error
	LocationsByTrip(tripID uuid.UUID) ([]*models.LocationPoint, error)
	LocationCount(tripID uuid.UUID) (int, error)
}

// PhotoRepository defines operations for trip photo references.
type PhotoRepository interface {
	AddPhoto(photo *models.Photo) error
	PhotosByTrip(tripID uuid.UUID) ([]*models.Photo, error)
	DeletePhoto(id uuid.UUID) error
}

// NoteRepository defines operations for trip notes.
type NoteRepository interface {
	AddNote(note *models.Note) error
	NotesByTrip(tripID uuid.UUID) ([]*models.Note, error)
	DeleteNote(id uuid.UUID) error
}

// StatsReader defines the read-only aggregate projections over the store.
type StatsReader interface {
	TripCount() (int, error)
	TotalDistance() (float64, error)
	TripCountByType(t models.TripType) (int, error)
	DistanceByType(t models.TripType) (float64, error)
	AverageDistanceByType(t models.TripType) (float64, error)
	PhotoCount() (int, error)
	AverageRating() (float64, error)
}

// Repository combines all repository operations with lifecycle management.
type Repository interface {
	TripRepository
	LocationRepository
	PhotoRepository
	NoteRepository
	StatsReader
	Close() error
	Reset() error
}
