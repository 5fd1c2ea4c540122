package driving

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// ShareActionService acts on shareable route links for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ShareActionService interface {
	// CopyLink copies the selection's share link to the system clipboard
	// and returns the link.
	CopyLink(ctx context.Context, selection domain.RouteSelection) (string, error)

	// OpenLink opens the selection's share link in the default browser
	// and returns the link.
	OpenLink(ctx context.Context, selection domain.RouteSelection) (string, error)
}
