// ABOUTME: Tests for YAML backup and restore
// ABOUTME: Round-trips a populated store and checks the active flag survives

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
)

func TestBackupRoundTrip(t *testing.T) {
	src := testStore(t)

	ended := mustCreateTrip(t, src, "Milan", models.TypeDayTrip)
	if err := src.FinalizeTrip(ended.ID, time.Now(), 12.5); err != nil {
		t.Fatalf("FinalizeTrip: %v", err)
	}

	active := mustCreateTrip(t, src, "Rome", models.TypeMultiDay)
	if err := src.AppendLocation(models.NewLocationPoint(active.ID, 41.8902, 12.4922)); err != nil {
		t.Fatalf("AppendLocation: %v", err)
	}
	caption := "Sunset over the Duomo"
	if err := src.AddPhoto(models.NewPhoto(ended.ID, "file:///photos/duomo.jpg", &caption)); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	if err := src.AddNote(models.NewNote(active.ID, "Espresso stop")); err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	data, err := ExportToYAML(src)
	if err != nil {
		t.Fatalf("ExportToYAML: %v", err)
	}

	dst, err := NewSQLiteStore(filepath.Join(t.TempDir(), "restore.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = dst.Close() })

	restored, err := ImportFromYAML(dst, data)
	if err != nil {
		t.Fatalf("ImportFromYAML: %v", err)
	}
	if restored != 2 {
		t.Errorf("restored %d trips, want 2", restored)
	}

	// The dump's active trip is active again, and only that one.
	gotActive, err := dst.ActiveTrip()
	if err != nil {
		t.Fatalf("ActiveTrip after restore: %v", err)
	}
	if gotActive.ID != active.ID {
		t.Errorf("active trip = %s, want %s", gotActive.ID, active.ID)
	}

	gotEnded, err := dst.GetTrip(ended.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if gotEnded.Active {
		t.Error("ended trip restored as active")
	}
	if gotEnded.EndedAt == nil || gotEnded.DistanceKM != 12.5 {
		t.Error("ended trip lost its end time or distance")
	}

	points, err := dst.LocationsByTrip(active.ID)
	if err != nil {
		t.Fatalf("LocationsByTrip: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("restored %d locations, want 1", len(points))
	}
	photos, err := dst.PhotosByTrip(ended.ID)
	if err != nil {
		t.Fatalf("PhotosByTrip: %v", err)
	}
	if len(photos) != 1 || photos[0].Caption == nil || *photos[0].Caption != caption {
		t.Error("photo not restored intact")
	}
	notes, err := dst.NotesByTrip(active.ID)
	if err != nil {
		t.Fatalf("NotesByTrip: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "Espresso stop" {
		t.Error("note not restored intact")
	}
}

func TestBackupRoundTripNoActiveTrip(t *testing.T) {
	src := testStore(t)
	trip := mustCreateTrip(t, src, "Rome", models.TypeLocal)
	if err := src.FinalizeTrip(trip.ID, time.Now(), 3.2); err != nil {
		t.Fatalf("FinalizeTrip: %v", err)
	}

	data, err := ExportToYAML(src)
	if err != nil {
		t.Fatalf("ExportToYAML: %v", err)
	}

	dst, err := NewSQLiteStore(filepath.Join(t.TempDir(), "restore.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = dst.Close() })

	if _, err := ImportFromYAML(dst, data); err != nil {
		t.Fatalf("ImportFromYAML: %v", err)
	}
	if _, err := dst.ActiveTrip(); err == nil {
		t.Error("restore invented an active trip")
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	store := testStore(t)
	if _, err := ImportFromYAML(store, []byte("version: \"99.0\"\n")); err == nil {
		t.Error("expected version error")
	}
}
