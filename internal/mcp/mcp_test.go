// ABOUTME: Tests for MCP server, tools, and resources
// ABOUTME: Runs handlers directly against a temporary SQLite store

package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/dmarchetti/viaggio/internal/storage"
	"github.com/google/uuid"
)

func testServer(t *testing.T) (*Server, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "mcp.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, store
}

func addTrip(t *testing.T, store *storage.SQLiteStore, destination string) *models.Trip {
	t.Helper()
	trip := models.NewTrip(destination, models.TypeMultiDay, time.Now())
	if err := store.CreateTrip(trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	return trip
}

func TestNewServer(t *testing.T) {
	server, _ := testServer(t)
	if server.mcp == nil {
		t.Error("MCP server not initialized")
	}
}

func TestNewServer_NilStore(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestHandleListTrips(t *testing.T) {
	server, store := testServer(t)
	addTrip(t, store, "Rome")
	addTrip(t, store, "Milan")

	result, output, err := server.handleListTrips(context.Background(), nil, ListTripsInput{})
	if err != nil {
		t.Fatalf("handleListTrips failed: %v", err)
	}
	if output.Count != 2 {
		t.Errorf("count = %d, want 2", output.Count)
	}
	if result == nil || len(result.Content) == 0 {
		t.Error("missing text content")
	}
}

func TestHandleGetTrip(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")

	_, output, err := server.handleGetTrip(context.Background(), nil, GetTripInput{TripID: trip.ID.String()})
	if err != nil {
		t.Fatalf("handleGetTrip failed: %v", err)
	}
	if output.Destination != "Rome" {
		t.Errorf("destination = %q", output.Destination)
	}
}

func TestHandleGetTrip_InvalidID(t *testing.T) {
	server, _ := testServer(t)
	_, _, err := server.handleGetTrip(context.Background(), nil, GetTripInput{TripID: "not-a-uuid"})
	if err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestHandleGetTrip_NotFound(t *testing.T) {
	server, _ := testServer(t)
	_, _, err := server.handleGetTrip(context.Background(), nil, GetTripInput{TripID: uuid.New().String()})
	if err == nil {
		t.Error("expected error for missing trip")
	}
}

func TestHandleGetActiveTrip(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")
	if err := store.AppendLocation(models.NewLocationPoint(trip.ID, 41.8902, 12.4922)); err != nil {
		t.Fatalf("AppendLocation: %v", err)
	}

	_, output, err := server.handleGetActiveTrip(context.Background(), nil, GetActiveTripInput{})
	if err != nil {
		t.Fatalf("handleGetActiveTrip failed: %v", err)
	}
	if output.Trip == nil || output.Trip.Destination != "Rome" {
		t.Fatalf("active trip = %+v", output.Trip)
	}
	if output.Waypoints != 1 {
		t.Errorf("waypoints = %d, want 1", output.Waypoints)
	}
}

func TestHandleGetActiveTrip_NoneActive(t *testing.T) {
	server, _ := testServer(t)

	// No active trip is a normal answer, not a tool error.
	_, output, err := server.handleGetActiveTrip(context.Background(), nil, GetActiveTripInput{})
	if err != nil {
		t.Fatalf("handleGetActiveTrip failed: %v", err)
	}
	if output.Trip != nil {
		t.Error("expected no trip")
	}
	if output.Message == "" {
		t.Error("expected explanatory message")
	}
}

func TestHandleGetTripTrack(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")
	base := time.Now()
	if err := store.AppendLocation(models.NewLocationPointAt(trip.ID, 41.8902, 12.4922, base)); err != nil {
		t.Fatalf("AppendLocation: %v", err)
	}
	if err := store.AppendLocation(models.NewLocationPointAt(trip.ID, 41.9000, 12.5000, base.Add(time.Minute))); err != nil {
		t.Fatalf("AppendLocation: %v", err)
	}

	_, output, err := server.handleGetTripTrack(context.Background(), nil, GetTripInput{TripID: trip.ID.String()})
	if err != nil {
		t.Fatalf("handleGetTripTrack failed: %v", err)
	}
	if output.Count != 2 {
		t.Fatalf("count = %d, want 2", output.Count)
	}
	if output.Waypoints[0].Latitude != 41.8902 {
		t.Error("waypoints out of order")
	}
}

func TestHandleGetStats(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")
	if err := store.FinalizeTrip(trip.ID, time.Now(), 2.4); err != nil {
		t.Fatalf("FinalizeTrip: %v", err)
	}

	_, output, err := server.handleGetStats(context.Background(), nil, GetStatsInput{})
	if err != nil {
		t.Fatalf("handleGetStats failed: %v", err)
	}
	if output.Summary.TripCount != 1 {
		t.Errorf("trip count = %d", output.Summary.TripCount)
	}
	if len(output.ByType) != len(models.TripTypes()) {
		t.Errorf("by_type has %d entries", len(output.ByType))
	}
}

func TestHandleAddNote(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")

	lat, lng := 41.8902, 12.4922
	_, output, err := server.handleAddNote(context.Background(), nil, AddNoteInput{
		TripID:    trip.ID.String(),
		Content:   "Espresso stop",
		Latitude:  &lat,
		Longitude: &lng,
	})
	if err != nil {
		t.Fatalf("handleAddNote failed: %v", err)
	}
	if output.NoteID == "" {
		t.Error("missing note id")
	}

	notes, err := store.NotesByTrip(trip.ID)
	if err != nil {
		t.Fatalf("NotesByTrip: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "Espresso stop" {
		t.Error("note not persisted")
	}
}

func TestHandleAddNote_Invalid(t *testing.T) {
	server, store := testServer(t)
	trip := addTrip(t, store, "Rome")

	if _, _, err := server.handleAddNote(context.Background(), nil, AddNoteInput{
		TripID: trip.ID.String(),
	}); err == nil {
		t.Error("expected error for empty content")
	}

	lat, lng := 99.0, 0.0
	if _, _, err := server.handleAddNote(context.Background(), nil, AddNoteInput{
		TripID:    trip.ID.String(),
		Content:   "bad coords",
		Latitude:  &lat,
		Longitude: &lng,
	}); err == nil {
		t.Error("expected error for out-of-range latitude")
	}

	if _, _, err := server.handleAddNote(context.Background(), nil, AddNoteInput{
		TripID:  uuid.New().String(),
		Content: "orphan",
	}); err == nil {
		t.Error("expected error for missing trip")
	}
}

func TestTripsResource(t *testing.T) {
	server, store := testServer(t)
	addTrip(t, store, "Rome")

	result, err := server.handleTripsResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleTripsResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("got %d contents", len(result.Contents))
	}
	if !strings.Contains(result.Contents[0].Text, "Rome") {
		t.Error("resource text missing trip data")
	}
}
