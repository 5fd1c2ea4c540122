package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

var (
	shareFrom string
	shareTo   string
	shareCopy bool
	shareText bool
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Create a shareable link for a route",
	Long: `Creates a link that reopens the same origin and destination.

Use --text to compute the route and print a message suitable for chat or
email. Use --copy to put the link on the clipboard.`,
	Args: cobra.NoArgs,
	RunE: runShare,
}

var openBrowser bool
var openJSON bool

var openCmd = &cobra.Command{
	Use:   "open <link>",
	Short: "Open a shared route link",
	Long: `Decodes a shared link (full URL or query string) and plans its route.

Use --browser to open the link in the default browser instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	shareCmd.Flags().StringVarP(&shareFrom, "from", "f", "", "origin (lat,lng or place name)")
	shareCmd.Flags().StringVarP(&shareTo, "to", "t", "", "destination (lat,lng or place name)")
	shareCmd.Flags().BoolVarP(&shareCopy, "copy", "c", false, "copy the link to the clipboard")
	shareCmd.Flags().BoolVar(&shareText, "text", false, "print a share message with route details")
	_ = shareCmd.MarkFlagRequired("from")
	_ = shareCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(shareCmd)

	openCmd.Flags().BoolVarP(&openBrowser, "browser", "b", false, "open the link in the default browser")
	openCmd.Flags().BoolVar(&openJSON, "json", false, "output the route as JSON")
	rootCmd.AddCommand(openCmd)
}

func runShare(cmd *cobra.Command, _ []string) error {
	if shareCodec == nil {
		return errShareNotConfigured
	}
	ctx := commandContext(cmd)

	selection, err := resolveSelection(ctx, shareFrom, shareTo)
	if err != nil {
		return err
	}

	link, err := shareCodec.Link(selection)
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	if shareText {
		planned, err := planRoute(ctx, selection)
		if err != nil {
			return err
		}
		cmd.Println(shareCodec.ShareText(selection, *planned.Result, link))
	} else {
		cmd.Println(link)
	}

	if shareCopy {
		if shareActions == nil {
			return fmt.Errorf("clipboard not available")
		}
		if _, err := shareActions.CopyLink(ctx, selection); err != nil {
			return err
		}
		cmd.PrintErrln("Link copied to clipboard.")
	}
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	selection, err := decodeLink(args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if openBrowser {
		if shareActions == nil {
			return fmt.Errorf("browser not available")
		}
		link, err := shareActions.OpenLink(ctx, selection)
		if err != nil {
			return err
		}
		cmd.Printf("Opened %s\n", link)
		return nil
	}

	planned, err := planRoute(ctx, selection)
	if err != nil {
		return err
	}
	if openJSON {
		return outputJSON(cmd, planned)
	}
	printRoute(cmd, planned)
	return nil
}

// decodeLink parses a shared link into a complete selection.
func decodeLink(link string) (domain.RouteSelection, error) {
	if shareCodec == nil {
		return domain.RouteSelection{}, errShareNotConfigured
	}
	selection, ok := shareCodec.Decode(link)
	if !ok {
		return domain.RouteSelection{}, fmt.Errorf("%w: %s", domain.ErrShareDecode, link)
	}
	return selection, nil
}
