// Package mcp provides an MCP (Model Context Protocol) server adapter for Wayfinder.
// It lets AI assistants plan routes, build share links and read saved routes.
package mcp

import "errors"

// ErrMissingRouteProvider is returned when the route provider is not provided.
var ErrMissingRouteProvider = errors.New("mcp: route provider is required")

// ErrMissingResolver is returned when the address resolver is not provided.
var ErrMissingResolver = errors.New("mcp: address resolver is required")

// errShareNotConfigured is returned by share tools without a codec.
var errShareNotConfigured = errors.New("sharing is not configured")

// errHistoryNotConfigured is returned by history tools without a store.
var errHistoryNotConfigured = errors.New("history is not configured")
