package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/services"
)

// EndpointsInput names the two ends of a route.
type EndpointsInput struct {
	From string `json:"from" jsonschema:"origin as lat,lng or a place name"`
	To   string `json:"to" jsonschema:"destination as lat,lng or a place name"`
}

// OpenLinkInput is the input schema for the open_link tool.
type OpenLinkInput struct {
	Link string `json:"link" jsonschema:"share link, query string or ?-prefixed query"`
}

// PlaceOutput is a resolved place.
type PlaceOutput struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// RouteOutput is the output schema for the route tools.
type RouteOutput struct {
	Origin          PlaceOutput `json:"origin"`
	Destination     PlaceOutput `json:"destination"`
	Summary         string      `json:"summary"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
	Distance        string      `json:"distance"`
	Duration        string      `json:"duration"`
	Instructions    []string    `json:"instructions"`
	Link            string      `json:"link,omitempty"`
	SavedID         string      `json:"saved_id,omitempty"`
}

// ShareOutput is the output schema for the share_link tool.
type ShareOutput struct {
	Link        string      `json:"link"`
	Origin      PlaceOutput `json:"origin"`
	Destination PlaceOutput `json:"destination"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_route",
		Description: "Plan a route between two places and return turn-by-turn instructions",
	}, s.handlePlanRoute)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "share_link",
		Description: "Build a shareable link for a route between two places",
	}, s.handleShareLink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_link",
		Description: "Open a shared route link and plan the route it describes",
	}, s.handleOpenLink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_route",
		Description: "Plan a route and save it to history",
	}, s.handleSaveRoute)
}

// handlePlanRoute handles the plan_route tool invocation.
func (s *Server) handlePlanRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EndpointsInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	selection, err := s.resolve(ctx, input)
	if err != nil {
		return nil, RouteOutput{}, err
	}
	output, _, err := s.plan(ctx, selection)
	return nil, output, err
}

// handleShareLink handles the share_link tool invocation.
func (s *Server) handleShareLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EndpointsInput,
) (*mcp.CallToolResult, ShareOutput, error) {
	if s.ports.Share == nil {
		return nil, ShareOutput{}, errShareNotConfigured
	}
	selection, err := s.resolve(ctx, input)
	if err != nil {
		return nil, ShareOutput{}, err
	}
	link, err := s.ports.Share.Link(selection)
	if err != nil {
		return nil, ShareOutput{}, fmt.Errorf("building link: %w", err)
	}
	return nil, ShareOutput{
		Link:        link,
		Origin:      placeOutput(*selection.Origin),
		Destination: placeOutput(*selection.Destination),
	}, nil
}

// handleOpenLink handles the open_link tool invocation.
func (s *Server) handleOpenLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenLinkInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	if s.ports.Share == nil {
		return nil, RouteOutput{}, errShareNotConfigured
	}
	selection, ok := s.ports.Share.Decode(input.Link)
	if !ok {
		return nil, RouteOutput{}, fmt.Errorf("%w: %s", domain.ErrShareDecode, input.Link)
	}
	output, _, err := s.plan(ctx, selection)
	return nil, output, err
}

// handleSaveRoute handles the save_route tool invocation.
func (s *Server) handleSaveRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EndpointsInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	if s.ports.History == nil {
		return nil, RouteOutput{}, errHistoryNotConfigured
	}
	selection, err := s.resolve(ctx, input)
	if err != nil {
		return nil, RouteOutput{}, err
	}
	output, result, err := s.plan(ctx, selection)
	if err != nil {
		return nil, RouteOutput{}, err
	}

	saved, err := s.ports.History.Save(ctx, selection, *result)
	if err != nil {
		return nil, RouteOutput{}, fmt.Errorf("saving route: %w", err)
	}
	output.SavedID = saved.ID
	return nil, output, nil
}

// resolve parses both endpoints concurrently.
func (s *Server) resolve(ctx context.Context, input EndpointsInput) (domain.RouteSelection, error) {
	if input.From == "" || input.To == "" {
		return domain.RouteSelection{}, fmt.Errorf("%w: from and to are required", domain.ErrInvalidInput)
	}

	var origin, destination domain.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		origin, err = s.ports.Resolver.ParsePlace(gctx, input.From)
		if err != nil {
			return fmt.Errorf("origin %q: %w", input.From, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		destination, err = s.ports.Resolver.ParsePlace(gctx, input.To)
		if err != nil {
			return fmt.Errorf("destination %q: %w", input.To, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.RouteSelection{}, err
	}
	return domain.RouteSelection{Origin: &origin, Destination: &destination}, nil
}

// plan computes the route and instructions for a complete selection.
func (s *Server) plan(ctx context.Context, selection domain.RouteSelection) (RouteOutput, *domain.RouteResult, error) {
	if !selection.Complete() {
		return RouteOutput{}, nil, domain.ErrIncompleteSelection
	}

	result, err := s.ports.Routes.ComputeRoute(ctx, *selection.Origin, *selection.Destination)
	if err != nil {
		var routeErr *domain.RouteError
		if errors.As(err, &routeErr) {
			return RouteOutput{}, nil, fmt.Errorf("%s: %w", routeErr.Reason(), err)
		}
		return RouteOutput{}, nil, err
	}

	instructions, err := services.GenerateInstructions(result.Geometry, result.DistanceMeters)
	if err != nil {
		return RouteOutput{}, nil, fmt.Errorf("generating instructions: %w", err)
	}

	output := RouteOutput{
		Origin:          placeOutput(*selection.Origin),
		Destination:     placeOutput(*selection.Destination),
		Summary:         result.Summary,
		DistanceMeters:  result.DistanceMeters,
		DurationSeconds: result.DurationSeconds,
		Distance:        domain.FormatDistance(result.DistanceMeters),
		Duration:        domain.FormatDuration(result.DurationSeconds),
		Instructions:    make([]string, len(instructions)),
	}
	for i, instr := range instructions {
		output.Instructions[i] = instr.Text
	}
	if s.ports.Share != nil {
		if link, err := s.ports.Share.Link(selection); err == nil {
			output.Link = link
		}
	}
	return output, result, nil
}

func placeOutput(p domain.Place) PlaceOutput {
	return PlaceOutput{Address: p.Address, Lat: p.Coordinate.Lat, Lng: p.Coordinate.Lng}
}
