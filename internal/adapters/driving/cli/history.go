package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/services"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved routes",
	Long:  `List, inspect and delete routes saved with "wayfinder route --save".`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved routes, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved route with its instructions",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved route",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of routes (0 for all)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}

	routes, err := historyService.List(commandContext(cmd), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, routes)
	}

	if len(routes) == 0 {
		cmd.Println("No saved routes.")
		return nil
	}

	for i := range routes {
		r := &routes[i]
		cmd.Printf("%s  %s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		cmd.Printf("  %s\n", r.Summary)
		cmd.Printf("  %s, %s (%s)\n",
			domain.FormatDistance(r.DistanceMeters), domain.FormatDuration(r.DurationSeconds), r.Profile)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	ctx := commandContext(cmd)

	saved, err := historyService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get route: %w", err)
	}

	planned, err := plannedFromSaved(saved)
	if err != nil {
		return err
	}
	planned.SavedID = saved.ID

	if historyJSON {
		return outputJSON(cmd, planned)
	}
	printRoute(cmd, planned)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}

	if err := historyService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

// plannedFromSaved rebuilds guidance from a saved route's geometry without
// calling the routing provider.
func plannedFromSaved(saved *domain.SavedRoute) (*plannedRoute, error) {
	result := &domain.RouteResult{
		Geometry:        saved.Geometry,
		DistanceMeters:  saved.DistanceMeters,
		DurationSeconds: saved.DurationSeconds,
		Summary:         saved.Summary,
	}

	instructions, err := services.GenerateInstructions(result.Geometry, result.DistanceMeters)
	if err != nil {
		return nil, fmt.Errorf("saved route %s: %w", saved.ID, err)
	}

	planned := &plannedRoute{
		Origin:       saved.Origin,
		Destination:  saved.Destination,
		Result:       result,
		Instructions: instructions,
	}
	if shareCodec != nil {
		if link, err := shareCodec.Link(saved.Selection()); err == nil {
			planned.Link = link
		}
	}
	return planned, nil
}
