package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ShareActionService implements the interface.
var _ driving.ShareActionService = (*ShareActionService)(nil)

// ShareActionService copies and opens share links.
type ShareActionService struct {
	codec driving.ShareCodec
	copy  func(text string) error
	open  func(url string) error
}

// NewShareActionService creates a new share action service.
func NewShareActionService(codec driving.ShareCodec) *ShareActionService {
	return &ShareActionService{
		codec: codec,
		copy:  clipboard.WriteAll,
		open:  openURL,
	}
}

// CopyLink copies the selection's share link to the system clipboard.
func (s *ShareActionService) CopyLink(_ context.Context, selection domain.RouteSelection) (string, error) {
	link, err := s.codec.Link(selection)
	if err != nil {
		return "", err
	}
	if clipboard.Unsupported {
		return link, fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	if err := s.copy(link); err != nil {
		return link, fmt.Errorf("copy to clipboard: %w", err)
	}
	return link, nil
}

// OpenLink opens the selection's share link in the default browser.
func (s *ShareActionService) OpenLink(_ context.Context, selection domain.RouteSelection) (string, error) {
	link, err := s.codec.Link(selection)
	if err != nil {
		return "", err
	}
	if err := s.open(link); err != nil {
		return link, fmt.Errorf("open link: %w", err)
	}
	return link, nil
}

// openURL opens a URL in the default browser using OS-specific commands.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", url)
	case osLinux:
		cmd = exec.Command("xdg-open", url)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
