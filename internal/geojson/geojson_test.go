// ABOUTME: Tests for GeoJSON generation
// ABOUTME: Verifies track geometry, coordinate order, and annotation filtering

package geojson

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
)

func testTrip() *models.Trip {
	trip := models.NewTrip("Rome", models.TypeMultiDay, time.Now())
	trip.DistanceKM = 2.4
	return trip
}

func TestTripTrackLineString(t *testing.T) {
	trip := testTrip()
	points := []*models.LocationPoint{
		models.NewLocationPoint(trip.ID, 41.8902, 12.4922),
		models.NewLocationPoint(trip.ID, 41.9000, 12.5000),
		models.NewLocationPoint(trip.ID, 41.9100, 12.5100),
	}

	fc := TripTrack(trip, points)
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	// One LineString plus one Point per waypoint.
	if len(fc.Features) != 4 {
		t.Fatalf("got %d features, want 4", len(fc.Features))
	}

	line := fc.Features[0]
	if line.Geometry.Type != "LineString" {
		t.Fatalf("first feature geometry = %q", line.Geometry.Type)
	}
	coords, ok := line.Geometry.Coordinates.(LineCoordinates)
	if !ok {
		t.Fatalf("unexpected coordinates type %T", line.Geometry.Coordinates)
	}
	// GeoJSON is [longitude, latitude].
	if coords[0][0] != 12.4922 || coords[0][1] != 41.8902 {
		t.Errorf("coordinate order wrong: %v", coords[0])
	}
	if line.Properties["destination"] != "Rome" {
		t.Errorf("destination = %v", line.Properties["destination"])
	}
	if line.Properties["point_count"] != 3 {
		t.Errorf("point_count = %v", line.Properties["point_count"])
	}

	for i, f := range fc.Features[1:] {
		if f.Geometry.Type != "Point" {
			t.Errorf("feature %d geometry = %q", i+1, f.Geometry.Type)
		}
	}
}

func TestTripTrackSinglePointNoLine(t *testing.T) {
	trip := testTrip()
	points := []*models.LocationPoint{
		models.NewLocationPoint(trip.ID, 41.8902, 12.4922),
	}

	fc := TripTrack(trip, points)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	if fc.Features[0].Geometry.Type != "Point" {
		t.Error("single waypoint must not produce a LineString")
	}
}

func TestTripTrackEmpty(t *testing.T) {
	fc := TripTrack(testTrip(), nil)
	if len(fc.Features) != 0 {
		t.Errorf("got %d features, want 0", len(fc.Features))
	}

	// An empty collection still marshals with a features array, not null.
	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) == `{"type":"FeatureCollection","features":null}` {
		t.Error("features should marshal as an empty array")
	}
}

func TestTripAnnotationsSkipsUntagged(t *testing.T) {
	trip := testTrip()
	lat, lng := 41.8902, 12.4922
	caption := "Colosseum at dawn"

	tagged := models.NewPhoto(trip.ID, "file:///a.jpg", &caption)
	tagged.Latitude = &lat
	tagged.Longitude = &lng
	untagged := models.NewPhoto(trip.ID, "file:///b.jpg", nil)

	note := models.NewNote(trip.ID, "Gelato here")
	note.Latitude = &lat
	note.Longitude = &lng
	floating := models.NewNote(trip.ID, "Remember to book train")

	fc := TripAnnotations(
		[]*models.Photo{tagged, untagged},
		[]*models.Note{note, floating},
	)
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2 (untagged skipped)", len(fc.Features))
	}

	photo := fc.Features[0]
	if photo.Properties["kind"] != "photo" || photo.Properties["caption"] != caption {
		t.Errorf("photo properties = %v", photo.Properties)
	}
	got := fc.Features[1]
	if got.Properties["kind"] != "note" || got.Properties["content"] != "Gelato here" {
		t.Errorf("note properties = %v", got.Properties)
	}
}
