// ABOUTME: MCP resource definitions
// ABOUTME: Read-only trip log views for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "viaggio://trips",
		Description: "All recorded trips with destinations, types, and distances",
		URI:         "viaggio://trips",
		MIMEType:    "application/json",
	}, s.handleTripsResource)
}

func (s *Server) handleTripsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	trips, err := s.store.ListTrips()
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	outputs := make([]TripOutput, len(trips))
	for i, trip := range trips {
		outputs[i] = tripOutput(trip)
	}

	output := ListTripsOutput{
		Trips: outputs,
		Count: len(outputs),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "viaggio://trips",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
