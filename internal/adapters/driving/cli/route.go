package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/services"
)

var (
	routeFrom string
	routeTo   string
	routeSave bool
	routeJSON bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan a route between two places",
	Long: `Plans a route and prints its summary and turn-by-turn instructions.

Places are "lat,lng" pairs or free text, which is searched and the best
match used.

Examples:
  wayfinder route --from "40.7128,-74.0060" --to "40.7580,-73.9855"
  wayfinder route --from "Union Square, San Francisco" --to "Golden Gate Park" --save`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeFrom, "from", "f", "", "origin (lat,lng or place name)")
	routeCmd.Flags().StringVarP(&routeTo, "to", "t", "", "destination (lat,lng or place name)")
	routeCmd.Flags().BoolVar(&routeSave, "save", false, "save the route to history")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "output the route as JSON")
	_ = routeCmd.MarkFlagRequired("from")
	_ = routeCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(routeCmd)
}

// plannedRoute is a computed route with its guidance and share link.
type plannedRoute struct {
	Origin       domain.Place         `json:"origin"`
	Destination  domain.Place         `json:"destination"`
	Result       *domain.RouteResult  `json:"route"`
	Instructions []domain.Instruction `json:"instructions"`
	Link         string               `json:"link,omitempty"`
	SavedID      string               `json:"saved_id,omitempty"`
}

func runRoute(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	selection, err := resolveSelection(ctx, routeFrom, routeTo)
	if err != nil {
		return err
	}

	planned, err := planRoute(ctx, selection)
	if err != nil {
		return err
	}

	if routeSave {
		if historyService == nil {
			return errHistoryNotConfigured
		}
		saved, err := historyService.Save(ctx, selection, *planned.Result)
		if err != nil {
			return fmt.Errorf("failed to save route: %w", err)
		}
		planned.SavedID = saved.ID
	}

	if routeJSON {
		return outputJSON(cmd, planned)
	}
	printRoute(cmd, planned)
	return nil
}

// resolveSelection parses both endpoints concurrently.
func resolveSelection(ctx context.Context, from, to string) (domain.RouteSelection, error) {
	if addressResolver == nil {
		return domain.RouteSelection{}, errResolverNotConfigured
	}

	var origin, destination domain.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := addressResolver.ParsePlace(gctx, from)
		if err != nil {
			return fmt.Errorf("origin %q: %w", from, err)
		}
		origin = p
		return nil
	})
	g.Go(func() error {
		p, err := addressResolver.ParsePlace(gctx, to)
		if err != nil {
			return fmt.Errorf("destination %q: %w", to, err)
		}
		destination = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.RouteSelection{}, err
	}

	return domain.RouteSelection{Origin: &origin, Destination: &destination}, nil
}

// planRoute computes the route and guidance for a complete selection.
func planRoute(ctx context.Context, selection domain.RouteSelection) (*plannedRoute, error) {
	if routeProvider == nil {
		return nil, errRoutesNotConfigured
	}
	if !selection.Complete() {
		return nil, domain.ErrIncompleteSelection
	}

	result, err := routeProvider.ComputeRoute(ctx, *selection.Origin, *selection.Destination)
	if err != nil {
		var routeErr *domain.RouteError
		if errors.As(err, &routeErr) {
			return nil, fmt.Errorf("%s: %w", routeErr.Reason(), err)
		}
		return nil, err
	}

	instructions, err := services.GenerateInstructions(result.Geometry, result.DistanceMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate instructions: %w", err)
	}

	planned := &plannedRoute{
		Origin:       *selection.Origin,
		Destination:  *selection.Destination,
		Result:       result,
		Instructions: instructions,
	}
	if shareCodec != nil {
		if link, err := shareCodec.Link(selection); err == nil {
			planned.Link = link
		}
	}
	return planned, nil
}

func printRoute(cmd *cobra.Command, p *plannedRoute) {
	cmd.Println(p.Result.Summary)
	cmd.Printf("  Distance: %s\n", domain.FormatDistance(p.Result.DistanceMeters))
	cmd.Printf("  Duration: %s\n", domain.FormatDuration(p.Result.DurationSeconds))
	cmd.Println()

	cmd.Println("Instructions:")
	for i, instr := range p.Instructions {
		cmd.Printf("  %d. %s\n", i+1, instr.Text)
	}

	if p.Link != "" {
		cmd.Println()
		cmd.Printf("Share: %s\n", p.Link)
	}
	if p.SavedID != "" {
		cmd.Printf("Saved: %s\n", p.SavedID)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
