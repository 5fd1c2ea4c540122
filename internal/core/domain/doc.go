// Package domain defines the core business entities for Wayfinder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Coordinate and Place: points on the globe and their addresses
//   - RouteSelection: the origin/destination pair a user has picked
//   - RouteResult and Instruction: a computed route and its guidance
//   - SessionState: the navigation session's observable state
//   - SavedRoute: a route kept in history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
