// ABOUTME: Backup and restore functionality for trip data
// ABOUTME: Round-trips the whole store through a versioned YAML document

package storage

import (
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string           `yaml:"version"`
	ExportedAt time.Time        `yaml:"exported_at"`
	Tool       string           `yaml:"tool"`
	Trips      []TripBackup     `yaml:"trips"`
	Locations  []LocationBackup `yaml:"locations"`
	Photos     []PhotoBackup    `yaml:"photos"`
	Notes      []NoteBackup     `yaml:"notes"`
}

// TripBackup represents a trip in the backup format.
type TripBackup struct {
	ID          string     `yaml:"id"`
	Destination string     `yaml:"destination"`
	Type        string     `yaml:"type"`
	StartedAt   time.Time  `yaml:"started_at"`
	EndedAt     *time.Time `yaml:"ended_at,omitempty"`
	Active      bool       `yaml:"active"`
	DistanceKM  float64    `yaml:"distance_km"`
	Description *string    `yaml:"description,omitempty"`
	Category    *string    `yaml:"category,omitempty"`
	Budget      *float64   `yaml:"budget,omitempty"`
	Rating      *int       `yaml:"rating,omitempty"`
	CreatedAt   time.Time  `yaml:"created_at"`
	UpdatedAt   time.Time  `yaml:"updated_at"`
}

// LocationBackup represents a waypoint in the backup format.
type LocationBackup struct {
	ID         string    `yaml:"id"`
	TripID     string    `yaml:"trip_id"`
	Latitude   float64   `yaml:"latitude"`
	Longitude  float64   `yaml:"longitude"`
	Altitude   *float64  `yaml:"altitude,omitempty"`
	Accuracy   *float64  `yaml:"accuracy,omitempty"`
	Speed      *float64  `yaml:"speed,omitempty"`
	RecordedAt time.Time `yaml:"recorded_at"`
}

// PhotoBackup represents a photo record in the backup format.
type PhotoBackup struct {
	ID        string    `yaml:"id"`
	TripID    string    `yaml:"trip_id"`
	URI       string    `yaml:"uri"`
	Latitude  *float64  `yaml:"latitude,omitempty"`
	Longitude *float64  `yaml:"longitude,omitempty"`
	Caption   *string   `yaml:"caption,omitempty"`
	TakenAt   time.Time `yaml:"taken_at"`
}

// NoteBackup represents a note in the backup format.
type NoteBackup struct {
	ID        string    `yaml:"id"`
	TripID    string    `yaml:"trip_id"`
	Content   string    `yaml:"content"`
	Latitude  *float64  `yaml:"latitude,omitempty"`
	Longitude *float64  `yaml:"longitude,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
}

// ExportToYAML exports all data to YAML format.
func ExportToYAML(repo Repository) ([]byte, error) {
	trips, err := repo.ListTrips()
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "viaggio",
		Trips:      make([]TripBackup, len(trips)),
	}

	for i, trip := range trips {
		backup.Trips[i] = TripBackup{
			ID:          trip.ID.String(),
			Destination: trip.Destination,
			Type:        string(trip.Type),
			StartedAt:   trip.StartedAt,
			EndedAt:     trip.EndedAt,
			Active:      trip.Active,
			DistanceKM:  trip.DistanceKM,
			Description: trip.Description,
			Category:    trip.Category,
			Budget:      trip.Budget,
			Rating:      trip.Rating,
			CreatedAt:   trip.CreatedAt,
			UpdatedAt:   trip.UpdatedAt,
		}

		locations, err := repo.LocationsByTrip(trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		for _, p := range locations {
			backup.Locations = append(backup.Locations, LocationBackup{
				ID:         p.ID.String(),
				TripID:     p.TripID.String(),
				Latitude:   p.Latitude,
				Longitude:  p.Longitude,
				Altitude:   p.Altitude,
				Accuracy:   p.Accuracy,
				Speed:      p.Speed,
				RecordedAt: p.RecordedAt,
			})
		}

		photos, err := repo.PhotosByTrip(trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list photos: %w", err)
		}
		for _, p := range photos {
			backup.Photos = append(backup.Photos, PhotoBackup{
				ID:        p.ID.String(),
				TripID:    p.TripID.String(),
				URI:       p.URI,
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Caption:   p.Caption,
				TakenAt:   p.TakenAt,
			})
		}

		notes, err := repo.NotesByTrip(trip.ID)
		if err != nil {
			return nil, fmt.Errorf("list notes: %w", err)
		}
		for _, n := range notes {
			backup.Notes = append(backup.Notes, NoteBackup{
				ID:        n.ID.String(),
				TripID:    n.TripID.String(),
				Content:   n.Content,
				Latitude:  n.Latitude,
				Longitude: n.Longitude,
				CreatedAt: n.CreatedAt,
			})
		}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML restores trips, waypoints, photos and notes from a dump and
// returns how many trips were restored. It does NOT deduplicate rows;
// restoring into a non-empty store can duplicate trips. Whichever trip was
// active in the dump ends up active afterwards, and only that one.
func ImportFromYAML(repo Repository, data []byte) (int, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("parse backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	// CreateTrip activates every inserted trip, so restore the rows first,
	// then clear all flags and re-activate the dumped active trip.
	var activeID *uuid.UUID
	for _, t := range backup.Trips {
		id, err := uuid.Parse(t.ID)
		if err != nil {
			return 0, fmt.Errorf("invalid trip id %q: %w", t.ID, err)
		}
		tripType, err := models.ParseTripType(t.Type)
		if err != nil {
			return 0, fmt.Errorf("trip %s: %w", t.ID, err)
		}

		trip := &models.Trip{
			ID:          id,
			Destination: t.Destination,
			Type:        tripType,
			StartedAt:   t.StartedAt,
			EndedAt:     t.EndedAt,
			DistanceKM:  t.DistanceKM,
			Description: t.Description,
			Category:    t.Category,
			Budget:      t.Budget,
			Rating:      t.Rating,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if err := repo.CreateTrip(trip); err != nil {
			return 0, fmt.Errorf("restore trip %s: %w", t.ID, err)
		}
		if t.Active {
			activeID = &id
		}
	}
	if err := repo.DeactivateAll(); err != nil {
		return 0, fmt.Errorf("restore trips: %w", err)
	}
	if activeID != nil {
		if err := repo.ActivateTrip(*activeID); err != nil {
			return 0, fmt.Errorf("restore active trip: %w", err)
		}
	}

	for _, l := range backup.Locations {
		id, err := uuid.Parse(l.ID)
		if err != nil {
			return 0, fmt.Errorf("invalid location id %q: %w", l.ID, err)
		}
		tripID, err := uuid.Parse(l.TripID)
		if err != nil {
			return 0, fmt.Errorf("invalid trip id %q: %w", l.TripID, err)
		}
		point := &models.LocationPoint{
			ID:         id,
			TripID:     tripID,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
			Altitude:   l.Altitude,
			Accuracy:   l.Accuracy,
			Speed:      l.Speed,
			RecordedAt: l.RecordedAt,
		}
		if err := repo.AppendLocation(point); err != nil {
			return 0, fmt.Errorf("restore location %s: %w", l.ID, err)
		}
	}

	for _, p := range backup.Photos {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return 0, fmt.Errorf("invalid photo id %q: %w", p.ID, err)
		}
		tripID, err := uuid.Parse(p.TripID)
		if err != nil {
			return 0, fmt.Errorf("invalid trip id %q: %w", p.TripID, err)
		}
		photo := &models.Photo{
			ID:        id,
			TripID:    tripID,
			URI:       p.URI,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Caption:   p.Caption,
			TakenAt:   p.TakenAt,
		}
		if err := repo.AddPhoto(photo); err != nil {
			return 0, fmt.Errorf("restore photo %s: %w", p.ID, err)
		}
	}

	for _, n := range backup.Notes {
		id, err := uuid.Parse(n.ID)
		if err != nil {
			return 0, fmt.Errorf("invalid note id %q: %w", n.ID, err)
		}
		tripID, err := uuid.Parse(n.TripID)
		if err != nil {
			return 0, fmt.Errorf("invalid trip id %q: %w", n.TripID, err)
		}
		note := &models.Note{
			ID:        id,
			TripID:    tripID,
			Content:   n.Content,
			Latitude:  n.Latitude,
			Longitude: n.Longitude,
			CreatedAt: n.CreatedAt,
		}
		if err := repo.AddNote(note); err != nil {
			return 0, fmt.Errorf("restore note %s: %w", n.ID, err)
		}
	}

	return len(backup.Trips), nil
}
