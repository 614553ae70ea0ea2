// ABOUTME: Shared helpers for command implementations
// ABOUTME: Trip lookup by id prefix and flag parsing utilities

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/google/uuid"
)

// resolveTrip finds a trip by full id or unique id prefix.
func resolveTrip(ref string) (*models.Trip, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return store.GetTrip(id)
	}

	trips, err := store.ListTrips()
	if err != nil {
		return nil, err
	}
	var match *models.Trip
	for _, trip := range trips {
		if strings.HasPrefix(trip.ID.String(), strings.ToLower(ref)) {
			if match != nil {
				return nil, fmt.Errorf("trip id prefix %q is ambiguous", ref)
			}
			match = trip
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no trip matches %q", ref)
	}
	return match, nil
}

// requireActiveTrip returns the active trip or a friendly error.
func requireActiveTrip() (*models.Trip, error) {
	trip, err := store.ActiveTrip()
	if err != nil {
		return nil, fmt.Errorf("no active trip (start one with 'viaggio create' or 'viaggio start')")
	}
	return trip, nil
}

// tripFromArgs resolves args[0] if given, otherwise falls back to the
// active trip.
func tripFromArgs(args []string) (*models.Trip, error) {
	if len(args) > 0 {
		return resolveTrip(args[0])
	}
	return requireActiveTrip()
}

// parseID parses a full UUID, with a clearer message than uuid.Parse gives.
func parseID(ref string) (uuid.UUID, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", ref)
	}
	return id, nil
}

// parseTimeFlag accepts RFC 3339 or a plain date.
func parseTimeFlag(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD)", value)
}
