// ABOUTME: Read-only statistics projections over the trip store
// ABOUTME: Derives counts, sums, and averages with no state of its own

package stats

import (
	"fmt"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/dmarchetti/viaggio/internal/storage"
)

// Summary aggregates the headline numbers across all trips.
type Summary struct {
	TripCount     int     `json:"trip_count"`
	TotalKM       float64 `json:"total_km"`
	AverageKM     float64 `json:"average_km"`
	PhotoCount    int     `json:"photo_count"`
	AverageRating float64 `json:"average_rating"`
}

// TypeStats aggregates trips of one type.
type TypeStats struct {
	Type      models.TripType `json:"type"`
	Count     int             `json:"count"`
	TotalKM   float64         `json:"total_km"`
	AverageKM float64         `json:"average_km"`
}

// Aggregator computes statistics by querying the store live on every call.
// No caching, no invalidation: results are as fresh as the latest committed
// write and go stale the moment one lands.
type Aggregator struct {
	store storage.StatsReader
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(store storage.StatsReader) *Aggregator {
	return &Aggregator{store: store}
}

// Summary returns the overall trip statistics.
func (a *Aggregator) Summary() (*Summary, error) {
	count, err := a.store.TripCount()
	if err != nil {
		return nil, fmt.Errorf("trip count: %w", err)
	}
	totalKM, err := a.store.TotalDistance()
	if err != nil {
		return nil, fmt.Errorf("total distance: %w", err)
	}
	photos, err := a.store.PhotoCount()
	if err != nil {
		return nil, fmt.Errorf("photo count: %w", err)
	}
	rating, err := a.store.AverageRating()
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	s := &Summary{
		TripCount:     count,
		TotalKM:       totalKM,
		PhotoCount:    photos,
		AverageRating: rating,
	}
	if count > 0 {
		s.AverageKM = totalKM / float64(count)
	}
	return s, nil
}

// ByType returns per-type statistics for every known trip type, in display
// order, including types with zero trips.
func (a *Aggregator) ByType() ([]TypeStats, error) {
	types := models.TripTypes()
	result := make([]TypeStats, 0, len(types))
	for _, t := range types {
		count, err := a.store.TripCountByType(t)
		if err != nil {
			return nil, fmt.Errorf("count for %s: %w", t, err)
		}
		totalKM, err := a.store.DistanceByType(t)
		if err != nil {
			return nil, fmt.Errorf("distance for %s: %w", t, err)
		}
		avgKM, err := a.store.AverageDistanceByType(t)
		if err != nil {
			return nil, fmt.Errorf("average for %s: %w", t, err)
		}
		result = append(result, TypeStats{
			Type:      t,
			Count:     count,
			TotalKM:   totalKM,
			AverageKM: avgKM,
		})
	}
	return result, nil
}
