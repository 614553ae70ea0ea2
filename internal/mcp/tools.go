// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides trip query and annotation operations for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmarchetti/viaggio/internal/models"
	"github.com/dmarchetti/viaggio/internal/stats"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListTripsTool()
	s.registerGetTripTool()
	s.registerGetActiveTripTool()
	s.registerGetTripTrackTool()
	s.registerGetStatsTool()
	s.registerAddNoteTool()
}

// TripOutput defines output for trip tools.
type TripOutput struct {
	ID          string     `json:"id"`
	Destination string     `json:"destination"`
	Type        string     `json:"type"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Active      bool       `json:"active"`
	DistanceKM  float64    `json:"distance_km"`
	Description *string    `json:"description,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
}

func tripOutput(trip *models.Trip) TripOutput {
	return TripOutput{
		ID:          trip.ID.String(),
		Destination: trip.Destination,
		Type:        string(trip.Type),
		StartedAt:   trip.StartedAt,
		EndedAt:     trip.EndedAt,
		Active:      trip.Active,
		DistanceKM:  trip.DistanceKM,
		Description: trip.Description,
		Rating:      trip.Rating,
	}
}

func textResult(output interface{}) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// ListTripsInput is empty but required for type.
type ListTripsInput struct{}

// ListTripsOutput defines output for list_trips tool.
type ListTripsOutput struct {
	Trips []TripOutput `json:"trips"`
	Count int          `json:"count"`
}

func (s *Server) registerListTripsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_trips",
		Description: "List all trips, newest first, with their destinations, types, and distances.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListTrips)
}

func (s *Server) handleListTrips(_ context.Context, req *mcp.CallToolRequest, input ListTripsInput) (*mcp.CallToolResult, ListTripsOutput, error) {
	trips, err := s.store.ListTrips()
	if err != nil {
		return nil, ListTripsOutput{}, fmt.Errorf("failed to list trips: %w", err)
	}

	outputs := make([]TripOutput, len(trips))
	for i, trip := range trips {
		outputs[i] = tripOutput(trip)
	}

	output := ListTripsOutput{Trips: outputs, Count: len(outputs)}
	return textResult(output), output, nil
}

// GetTripInput defines input for tools addressing one trip.
type GetTripInput struct {
	TripID string `json:"trip_id"`
}

func (s *Server) registerGetTripTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_trip",
		Description: "Get one trip by its id.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"trip_id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the trip",
				},
			},
			"required": []string{"trip_id"},
		},
	}, s.handleGetTrip)
}

func (s *Server) handleGetTrip(_ context.Context, req *mcp.CallToolRequest, input GetTripInput) (*mcp.CallToolResult, TripOutput, error) {
	id, err := uuid.Parse(input.TripID)
	if err != nil {
		return nil, TripOutput{}, fmt.Errorf("invalid trip id: %w", err)
	}

	trip, err := s.store.GetTrip(id)
	if err != nil {
		return nil, TripOutput{}, fmt.Errorf("trip '%s' not found", input.TripID)
	}

	output := tripOutput(trip)
	return textResult(output), output, nil
}

// GetActiveTripInput is empty but required for type.
type GetActiveTripInput struct{}

// ActiveTripOutput defines output for get_active_trip tool.
type ActiveTripOutput struct {
	Trip      *TripOutput `json:"trip,omitempty"`
	Waypoints int         `json:"waypoints"`
	Message   string      `json:"message,omitempty"`
}

func (s *Server) registerGetActiveTripTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_active_trip",
		Description: "Get the currently active trip, if any, with its live waypoint count.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleGetActiveTrip)
}

func (s *Server) handleGetActiveTrip(_ context.Context, req *mcp.CallToolRequest, input GetActiveTripInput) (*mcp.CallToolResult, ActiveTripOutput, error) {
	trip, err := s.store.ActiveTrip()
	if err != nil {
		// No active trip is a normal state, not a tool failure.
		output := ActiveTripOutput{Message: "no active trip"}
		return textResult(output), output, nil
	}

	count, err := s.store.LocationCount(trip.ID)
	if err != nil {
		return nil, ActiveTripOutput{}, fmt.Errorf("failed to count waypoints: %w", err)
	}

	t := tripOutput(trip)
	output := ActiveTripOutput{Trip: &t, Waypoints: count}
	return textResult(output), output, nil
}

// WaypointOutput defines one waypoint in track output.
type WaypointOutput struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackOutput defines output for get_trip_track tool.
type TrackOutput struct {
	TripID    string           `json:"trip_id"`
	Waypoints []WaypointOutput `json:"waypoints"`
	Count     int              `json:"count"`
}

func (s *Server) registerGetTripTrackTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_trip_track",
		Description: "Get the recorded GPS track of a trip in chronological order.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"trip_id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the trip",
				},
			},
			"required": []string{"trip_id"},
		},
	}, s.handleGetTripTrack)
}

func (s *Server) handleGetTripTrack(_ context.Context, req *mcp.CallToolRequest, input GetTripInput) (*mcp.CallToolResult, TrackOutput, error) {
	id, err := uuid.Parse(input.TripID)
	if err != nil {
		return nil, TrackOutput{}, fmt.Errorf("invalid trip id: %w", err)
	}

	points, err := s.store.LocationsByTrip(id)
	if err != nil {
		return nil, TrackOutput{}, fmt.Errorf("failed to get track: %w", err)
	}

	waypoints := make([]WaypointOutput, len(points))
	for i, p := range points {
		waypoints[i] = WaypointOutput{
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			Altitude:   p.Altitude,
			RecordedAt: p.RecordedAt,
		}
	}

	output := TrackOutput{TripID: input.TripID, Waypoints: waypoints, Count: len(waypoints)}
	return textResult(output), output, nil
}

// GetStatsInput is empty but required for type.
type GetStatsInput struct{}

// StatsOutput defines output for get_stats tool.
type StatsOutput struct {
	Summary *stats.Summary    `json:"summary"`
	ByType  []stats.TypeStats `json:"by_type"`
}

func (s *Server) registerGetStatsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get aggregate travel statistics: trip counts, distances, and per-type breakdowns.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleGetStats)
}

func (s *Server) handleGetStats(_ context.Context, req *mcp.CallToolRequest, input GetStatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	agg := stats.NewAggregator(s.store)

	summary, err := agg.Summary()
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	byType, err := agg.ByType()
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("failed to compute stats: %w", err)
	}

	output := StatsOutput{Summary: summary, ByType: byType}
	return textResult(output), output, nil
}

// AddNoteInput defines input for add_note tool.
type AddNoteInput struct {
	TripID    string   `json:"trip_id"`
	Content   string   `json:"content"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AddNoteOutput defines output for add_note tool.
type AddNoteOutput struct {
	NoteID  string `json:"note_id"`
	Message string `json:"message"`
}

func (s *Server) registerAddNoteTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_note",
		Description: "Attach a free-text note to a trip, optionally geotagged.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"trip_id": map[string]interface{}{
					"type":        "string",
					"description": "UUID of the trip",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Note text",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Optional latitude (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Optional longitude (-180 to 180)",
				},
			},
			"required": []string{"trip_id", "content"},
		},
	}, s.handleAddNote)
}

func (s *Server) handleAddNote(_ context.Context, req *mcp.CallToolRequest, input AddNoteInput) (*mcp.CallToolResult, AddNoteOutput, error) {
	id, err := uuid.Parse(input.TripID)
	if err != nil {
		return nil, AddNoteOutput{}, fmt.Errorf("invalid trip id: %w", err)
	}
	if input.Content == "" {
		return nil, AddNoteOutput{}, fmt.Errorf("content is required")
	}
	if input.Latitude != nil && input.Longitude != nil {
		if err := models.ValidateCoordinates(*input.Latitude, *input.Longitude); err != nil {
			return nil, AddNoteOutput{}, err
		}
	}

	note := models.NewNote(id, input.Content)
	note.Latitude = input.Latitude
	note.Longitude = input.Longitude

	if err := s.store.AddNote(note); err != nil {
		return nil, AddNoteOutput{}, fmt.Errorf("failed to add note: %w", err)
	}

	output := AddNoteOutput{
		NoteID:  note.ID.String(),
		Message: fmt.Sprintf("Note added to trip %s", input.TripID),
	}
	return textResult(output), output, nil
}
