package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Wayfinder resources.
	uriScheme = "wayfinder://"

	// historyLimit caps the routes listed by the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing saved routes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Saved routes, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for a single saved route.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{routeId}",
		Name:        "saved-route",
		Description: "A saved route with its share link",
		MIMEType:    "application/json",
	}, s.handleSavedRouteResource)
}

// historyEntry is the JSON shape of a saved route.
type historyEntry struct {
	ID              string      `json:"id"`
	Summary         string      `json:"summary"`
	Origin          PlaceOutput `json:"origin"`
	Destination     PlaceOutput `json:"destination"`
	Profile         string      `json:"profile"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
	CreatedAt       string      `json:"created_at"`
	Link            string      `json:"link,omitempty"`
}

// handleHistoryResource returns the saved routes.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	routes, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	entries := make([]historyEntry, len(routes))
	for i := range routes {
		entries[i] = s.entry(routes[i])
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleSavedRouteResource returns one saved route.
func (s *Server) handleSavedRouteResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract routeId from URI: wayfinder://history/{routeId}
	id := extractRouteID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	route, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting route: %w", err)
	}

	data, err := json.MarshalIndent(s.entry(*route), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling route: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) entry(r domain.SavedRoute) historyEntry {
	e := historyEntry{
		ID:              r.ID,
		Summary:         r.Summary,
		Origin:          placeOutput(r.Origin),
		Destination:     placeOutput(r.Destination),
		Profile:         r.Profile.String(),
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		CreatedAt:       r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if s.ports.Share != nil {
		if link, err := s.ports.Share.Link(r.Selection()); err == nil {
			e.Link = link
		}
	}
	return e
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractRouteID extracts the route ID from a URI like wayfinder://history/{routeId}.
func extractRouteID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
