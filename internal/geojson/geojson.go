// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts trip tracks, photos, and notes to GeoJSON FeatureCollections

package geojson

import (
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude] for a Point.
type PointCoordinates [2]float64

// LineCoordinates represents [[lng, lat], [lng, lat], ...] for a LineString.
type LineCoordinates []PointCoordinates

// TripTrack converts a trip and its waypoints into a FeatureCollection with
// one LineString for the track (when at least two points exist) plus a Point
// per waypoint. Waypoints are assumed chronological, as stored.
func TripTrack(trip *models.Trip, points []*models.LocationPoint) *FeatureCollection {
	features := make([]Feature, 0, len(points)+1)

	if len(points) >= 2 {
		coords := make(LineCoordinates, len(points))
		for i, p := range points {
			coords[i] = PointCoordinates{p.Longitude, p.Latitude}
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"destination": trip.Destination,
				"trip_type":   string(trip.Type),
				"distance_km": trip.DistanceKM,
				"point_count": len(points),
			},
		})
	}

	for _, p := range points {
		props := map[string]interface{}{
			"recorded_at": p.RecordedAt.Format(time.RFC3339),
		}
		if p.Altitude != nil {
			props["altitude"] = *p.Altitude
		}
		if p.Speed != nil {
			props["speed"] = *p.Speed
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{p.Longitude, p.Latitude},
			},
			Properties: props,
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// TripAnnotations converts a trip's geotagged photos and notes into Point
// features. Photos and notes without coordinates are skipped: GeoJSON has
// nowhere to put them.
func TripAnnotations(photos []*models.Photo, notes []*models.Note) *FeatureCollection {
	features := make([]Feature, 0, len(photos)+len(notes))

	for _, p := range photos {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		props := map[string]interface{}{
			"kind":     "photo",
			"uri":      p.URI,
			"taken_at": p.TakenAt.Format(time.RFC3339),
		}
		if p.Caption != nil {
			props["caption"] = *p.Caption
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{*p.Longitude, *p.Latitude},
			},
			Properties: props,
		})
	}

	for _, n := range notes {
		if n.Latitude == nil || n.Longitude == nil {
			continue
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{*n.Longitude, *n.Latitude},
			},
			Properties: map[string]interface{}{
				"kind":       "note",
				"content":    n.Content,
				"created_at": n.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
