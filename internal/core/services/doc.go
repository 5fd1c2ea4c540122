// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The navigation session is the only stateful service; the others are
// safe for concurrent use without coordination.
package services
