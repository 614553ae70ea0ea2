// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Human-readable output for trips, waypoints, and statistics

package ui

import (
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/fatih/color"
)

// typeDisplay maps trip types to their presentation. Kept here so the core
// models stay free of display concerns.
var typeDisplay = map[models.TripType]struct {
	Name string
	Icon string
}{
	models.TypeLocal:     {"Local Trip", "🏘️"},
	models.TypeDayTrip:   {"Day Trip", "🌅"},
	models.TypeMultiDay:  {"Multi-Day Trip", "🗺️"},
	models.TypeWeekend:   {"Weekend Getaway", "🎒"},
	models.TypeBusiness:  {"Business Trip", "💼"},
	models.TypeAdventure: {"Adventure", "⛰️"},
}

// TypeName returns the display name for a trip type.
func TypeName(t models.TripType) string {
	if d, ok := typeDisplay[t]; ok {
		return d.Name
	}
	return string(t)
}

// TypeIcon returns the icon for a trip type.
func TypeIcon(t models.TripType) string {
	if d, ok := typeDisplay[t]; ok {
		return d.Icon
	}
	return "🧭"
}

// FormatTrip formats a trip for list display.
func FormatTrip(trip *models.Trip) string {
	status := color.New(color.Faint).Sprint("ended")
	if trip.Active {
		status = color.GreenString("active")
	}
	return fmt.Sprintf("%s %s %s [%s] %s - %s",
		color.New(color.Faint).Sprint(trip.ID.String()[:8]),
		TypeIcon(trip.Type),
		color.CyanString(trip.Destination),
		TypeName(trip.Type),
		FormatDistance(trip.DistanceKM),
		status)
}

// FormatDistance formats kilometers for display.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.2f km", km)
}

// FormatDuration formats an elapsed duration as h/m/s.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatWaypoint formats a location point for track display.
func FormatWaypoint(p *models.LocationPoint) string {
	coords := fmt.Sprintf("(%.4f, %.4f)", p.Latitude, p.Longitude)
	return fmt.Sprintf("  %s - %s",
		color.CyanString(coords),
		p.RecordedAt.Format("Jan 2, 3:04:05 PM"))
}

// FormatRelativeTime formats a time relative to now (e.g., "2 hours ago").
func FormatRelativeTime(t time.Time) string {
	elapsed := time.Since(t)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		mins := int(elapsed.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := int(elapsed.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
