// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RoutingEngine: Computes routes (OSRM)
//   - Geocoder: Address lookup (Nominatim)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SpeechSink: Narration output. Without it, voice guidance is silent.
//   - SpeechRecognizer: Voice command input. Without it, Listen reports failure.
//   - LocationSource: Device position. Without it, "use my location" and tracking are disabled.
//   - RouteHistoryStore: Saved routes. Without it, history commands are unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
