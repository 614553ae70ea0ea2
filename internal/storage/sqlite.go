// ABOUTME: SQLite storage implementation for trip data
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository with a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteStore implements Repository.
var _ Repository = (*SQLiteStore)(nil)

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "viaggio", "viaggio.db")
}

// NewSQLiteStore creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
// The partial unique index on trips(active) backs the single-active-trip
// invariant at the schema level; the guarded operations never rely on it,
// but a bug that would violate the invariant fails loudly instead of
// corrupting the store.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trips (
			id TEXT PRIMARY KEY,
			destination TEXT NOT NULL,
			trip_type TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			active INTEGER NOT NULL DEFAULT 0,
			distance_km REAL NOT NULL DEFAULT 0,
			description TEXT,
			category TEXT,
			budget REAL,
			rating INTEGER,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS trip_locations (
			id TEXT PRIMARY KEY,
			trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			altitude REAL,
			accuracy REAL,
			speed REAL,
			recorded_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trip_photos (
			id TEXT PRIMARY KEY,
			trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			uri TEXT NOT NULL,
			latitude REAL,
			longitude REAL,
			caption TEXT,
			taken_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trip_notes (
			id TEXT PRIMARY KEY,
			trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			latitude REAL,
			longitude REAL,
			created_at DATETIME NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_trips_single_active ON trips(active) WHERE active = 1;
		CREATE INDEX IF NOT EXISTS idx_trip_locations_trip_id ON trip_locations(trip_id);
		CREATE INDEX IF NOT EXISTS idx_trip_locations_recorded_at ON trip_locations(recorded_at);
		CREATE INDEX IF NOT EXISTS idx_trip_photos_trip_id ON trip_photos(trip_id);
		CREATE INDEX IF NOT EXISTS idx_trip_notes_trip_id ON trip_notes(trip_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteStore) Reset() error {
	_, err := s.db.Exec("DELETE FROM trip_locations; DELETE FROM trip_photos; DELETE FROM trip_notes; DELETE FROM trips;")
	return err
}

// CreateTrip deactivates any currently active trip and inserts the new trip
// as active, in one transaction. A concurrent reader never observes two
// active trips. On success the passed trip is marked active.
func (s *SQLiteStore) CreateTrip(trip *models.Trip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("UPDATE trips SET active = 0, updated_at = ? WHERE active = 1", time.Now()); err != nil {
		return fmt.Errorf("deactivate trips: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO trips (id, destination, trip_type, started_at, ended_at, active, distance_km,
			description, category, budget, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID.String(), trip.Destination, string(trip.Type), trip.StartedAt, trip.EndedAt,
		trip.DistanceKM, trip.Description, trip.Category, trip.Budget, trip.Rating,
		trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	trip.Active = true
	return nil
}

// GetTrip retrieves a trip by its UUID.
func (s *SQLiteStore) GetTrip(id uuid.UUID) (*models.Trip, error) {
	row := s.db.QueryRow(selectTrip+" WHERE id = ?", id.String())
	return scanTrip(row)
}

// ActiveTrip returns the single active trip, or ErrNotFound when no trip is
// active. Finding more than one active row returns ErrActiveConflict rather
// than silently picking one: it signals out-of-band corruption.
func (s *SQLiteStore) ActiveTrip() (*models.Trip, error) {
	rows, err := s.db.Query(selectTrip + " WHERE active = 1 LIMIT 2")
	if err != nil {
		return nil, fmt.Errorf("query active trip: %w", err)
	}
	defer func() { _ = rows.Close() }()

	trips, err := scanTrips(rows)
	if err != nil {
		return nil, err
	}
	switch len(trips) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return trips[0], nil
	default:
		return nil, ErrActiveConflict
	}
}

// ListTrips returns all trips, newest start date first.
func (s *SQLiteStore) ListTrips() ([]*models.Trip, error) {
	rows, err := s.db.Query(selectTrip + " ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTrips(rows)
}

// TripsByType returns trips of the given type, newest start date first.
func (s *SQLiteStore) TripsByType(t models.TripType) ([]*models.Trip, error) {
	rows, err := s.db.Query(selectTrip+" WHERE trip_type = ? ORDER BY started_at DESC", string(t))
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTrips(rows)
}

// TripsInRange returns trips whose start date falls within [from, to].
func (s *SQLiteStore) TripsInRange(from, to time.Time) ([]*models.Trip, error) {
	rows, err := s.db.Query(
		selectTrip+" WHERE started_at >= ? AND started_at <= ? ORDER BY started_at DESC",
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTrips(rows)
}

// UpdateTrip overwrites the editable fields of a trip and touches updated_at.
// The active flag is deliberately not writable here; use CreateTrip,
// ActivateTrip, or FinalizeTrip for lifecycle changes.
func (s *SQLiteStore) UpdateTrip(trip *models.Trip) error {
	now := time.Now()
	res, err := s.db.Exec(
		`UPDATE trips SET destination = ?, trip_type = ?, started_at = ?, description = ?,
			category = ?, budget = ?, rating = ?, updated_at = ?
		 WHERE id = ?`,
		trip.Destination, string(trip.Type), trip.StartedAt, trip.Description,
		trip.Category, trip.Budget, trip.Rating, now, trip.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	trip.UpdatedAt = now
	return nil
}

// ActivateTrip deactivates all trips and marks the given trip active, in one
// transaction. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) ActivateTrip(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	if _, err := tx.Exec("UPDATE trips SET active = 0, updated_at = ? WHERE active = 1", now); err != nil {
		return fmt.Errorf("deactivate trips: %w", err)
	}

	res, err := tx.Exec("UPDATE trips SET active = 1, updated_at = ? WHERE id = ?", now, id.String())
	if err != nil {
		return fmt.Errorf("activate trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate trip: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DeactivateAll clears the active flag on every trip. End timestamps and
// distances are untouched; use FinalizeTrip to close out a tracked trip.
func (s *SQLiteStore) DeactivateAll() error {
	_, err := s.db.Exec("UPDATE trips SET active = 0, updated_at = ? WHERE active = 1", time.Now())
	if err != nil {
		return fmt.Errorf("deactivate trips: %w", err)
	}
	return nil
}

// FinalizeTrip deactivates a trip, stamps its end time, and writes the final
// reconciled distance. Idempotent: repeating the call with the same values
// leaves the row unchanged. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) FinalizeTrip(id uuid.UUID, endedAt time.Time, distanceKM float64) error {
	res, err := s.db.Exec(
		"UPDATE trips SET active = 0, ended_at = ?, distance_km = ?, updated_at = ? WHERE id = ?",
		endedAt, distanceKM, time.Now(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("finalize trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finalize trip: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrip removes a trip and everything it owns - locations, photos, and
// notes - as a single transaction, so a crash mid-delete never leaves
// orphaned children. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) DeleteTrip(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	idStr := id.String()
	if _, err := tx.Exec("DELETE FROM trip_locations WHERE trip_id = ?", idStr); err != nil {
		return fmt.Errorf("delete locations: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM trip_photos WHERE trip_id = ?", idStr); err != nil {
		return fmt.Errorf("delete photos: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM trip_notes WHERE trip_id = ?", idStr); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}

	res, err := tx.Exec("DELETE FROM trips WHERE id = ?", idStr)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// AppendLocation inserts one waypoint for a trip. No deduplication: the
// session controller decides what counts toward distance, the store keeps
// every fix it is handed. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) AppendLocation(point *models.LocationPoint) error {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM trips WHERE id = ?)", point.TripID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check trip: %w", err)
	}
	if !exists {
		return fmt.Errorf("trip %s: %w", point.TripID, ErrNotFound)
	}

	_, err = s.db.Exec(
		`INSERT INTO trip_locations (id, trip_id, latitude, longitude, altitude, accuracy, speed, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		point.ID.String(), point.TripID.String(), point.Latitude, point.Longitude,
		point.Altitude, point.Accuracy, point.Speed, point.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// LocationsByTrip returns all waypoints for a trip in chronological order.
func (s *SQLiteStore) LocationsByTrip(tripID uuid.UUID) ([]*models.LocationPoint, error) {
	rows, err := s.db.Query(
		`SELECT id, trip_id, latitude, longitude, altitude, accuracy, speed, recorded_at
		 FROM trip_locations WHERE trip_id = ? ORDER BY recorded_at ASC`,
		tripID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []*models.LocationPoint
	for rows.Next() {
		var idStr, tripIDStr string
		var p models.LocationPoint
		err := rows.Scan(&idStr, &tripIDStr, &p.Latitude, &p.Longitude,
			&p.Altitude, &p.Accuracy, &p.Speed, &p.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		p.ID, _ = uuid.Parse(idStr)
		p.TripID, _ = uuid.Parse(tripIDStr)
		points = append(points, &p)
	}
	return points, rows.Err()
}

// LocationCount returns the number of waypoints recorded for a trip.
func (s *SQLiteStore) LocationCount(tripID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trip_locations WHERE trip_id = ?", tripID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return count, nil
}

// AddPhoto inserts a photo record. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) AddPhoto(photo *models.Photo) error {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM trips WHERE id = ?)", photo.TripID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check trip: %w", err)
	}
	if !exists {
		return fmt.Errorf("trip %s: %w", photo.TripID, ErrNotFound)
	}

	_, err = s.db.Exec(
		`INSERT INTO trip_photos (id, trip_id, uri, latitude, longitude, caption, taken_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		photo.ID.String(), photo.TripID.String(), photo.URI,
		photo.Latitude, photo.Longitude, photo.Caption, photo.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// PhotosByTrip returns a trip's photos, newest first.
func (s *SQLiteStore) PhotosByTrip(tripID uuid.UUID) ([]*models.Photo, error) {
	rows, err := s.db.Query(
		`SELECT id, trip_id, uri, latitude, longitude, caption, taken_at
		 FROM trip_photos WHERE trip_id = ? ORDER BY taken_at DESC`,
		tripID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var photos []*models.Photo
	for rows.Next() {
		var idStr, tripIDStr string
		var p models.Photo
		err := rows.Scan(&idStr, &tripIDStr, &p.URI, &p.Latitude, &p.Longitude, &p.Caption, &p.TakenAt)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.ID, _ = uuid.Parse(idStr)
		p.TripID, _ = uuid.Parse(tripIDStr)
		photos = append(photos, &p)
	}
	return photos, rows.Err()
}

// DeletePhoto removes a single photo record.
func (s *SQLiteStore) DeletePhoto(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM trip_photos WHERE id = ?", id.String())
	return err
}

// AddNote inserts a note. Returns ErrNotFound if the trip does not exist.
func (s *SQLiteStore) AddNote(note *models.Note) error {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM trips WHERE id = ?)", note.TripID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check trip: %w", err)
	}
	if !exists {
		return fmt.Errorf("trip %s: %w", note.TripID, ErrNotFound)
	}

	_, err = s.db.Exec(
		`INSERT INTO trip_notes (id, trip_id, content, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID.String(), note.TripID.String(), note.Content,
		note.Latitude, note.Longitude, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// NotesByTrip returns a trip's notes, newest first.
func (s *SQLiteStore) NotesByTrip(tripID uuid.UUID) ([]*models.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, trip_id, content, latitude, longitude, created_at
		 FROM trip_notes WHERE trip_id = ? ORDER BY created_at DESC`,
		tripID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []*models.Note
	for rows.Next() {
		var idStr, tripIDStr string
		var n models.Note
		err := rows.Scan(&idStr, &tripIDStr, &n.Content, &n.Latitude, &n.Longitude, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.ID, _ = uuid.Parse(idStr)
		n.TripID, _ = uuid.Parse(tripIDStr)
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a single note.
func (s *SQLiteStore) DeleteNote(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM trip_notes WHERE id = ?", id.String())
	return err
}

// TripCount returns the total number of trips.
func (s *SQLiteStore) TripCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM trips").Scan(&count); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return count, nil
}

// TotalDistance returns the sum of every trip's recorded distance in km.
func (s *SQLiteStore) TotalDistance() (float64, error) {
	var total sql.NullFloat64
	if err := s.db.QueryRow("SELECT SUM(distance_km) FROM trips").Scan(&total); err != nil {
		return 0, fmt.Errorf("sum distance: %w", err)
	}
	return total.Float64, nil
}

// TripCountByType returns the number of trips of the given type.
func (s *SQLiteStore) TripCountByType(t models.TripType) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trips WHERE trip_type = ?", string(t)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return count, nil
}

// DistanceByType returns the total recorded distance for trips of the given type.
func (s *SQLiteStore) DistanceByType(t models.TripType) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRow("SELECT SUM(distance_km) FROM trips WHERE trip_type = ?", string(t)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum distance: %w", err)
	}
	return total.Float64, nil
}

// AverageDistanceByType returns the mean recorded distance for trips of the
// given type, or 0 when there are none.
func (s *SQLiteStore) AverageDistanceByType(t models.TripType) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow("SELECT AVG(distance_km) FROM trips WHERE trip_type = ?", string(t)).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average distance: %w", err)
	}
	return avg.Float64, nil
}

// PhotoCount returns the total number of photos across all trips.
func (s *SQLiteStore) PhotoCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM trip_photos").Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// AverageRating returns the mean rating over rated trips, or 0 when no trip
// has a rating.
func (s *SQLiteStore) AverageRating() (float64, error) {
	var avg sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(rating) FROM trips WHERE rating IS NOT NULL").Scan(&avg); err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg.Float64, nil
}

const selectTrip = `SELECT id, destination, trip_type, started_at, ended_at, active, distance_km,
	description, category, budget, rating, created_at, updated_at FROM trips`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (*models.Trip, error) {
	var idStr, typeStr string
	var trip models.Trip
	err := row.Scan(&idStr, &trip.Destination, &typeStr, &trip.StartedAt, &trip.EndedAt,
		&trip.Active, &trip.DistanceKM, &trip.Description, &trip.Category,
		&trip.Budget, &trip.Rating, &trip.CreatedAt, &trip.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan trip: %w", err)
	}
	trip.ID, _ = uuid.Parse(idStr)
	trip.Type = models.TripType(typeStr)
	return &trip, nil
}

func scanTrips(rows *sql.Rows) ([]*models.Trip, error) {
	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}
