package domain

import (
	"fmt"
	"math"
)

// RouteSelection is the origin/destination pair chosen by the user.
// A route is computable only when both endpoints are set.
type RouteSelection struct {
	Origin      *Place `json:"origin,omitempty"`
	Destination *Place `json:"destination,omitempty"`
}

// Complete reports whether both endpoints are set.
func (s RouteSelection) Complete() bool {
	return s.Origin != nil && s.Destination != nil
}

// Equal reports whether both selections hold the same endpoints.
func (s RouteSelection) Equal(other RouteSelection) bool {
	return samePlace(s.Origin, other.Origin) && samePlace(s.Destination, other.Destination)
}

// Clone returns a deep copy so callers cannot mutate shared endpoints.
func (s RouteSelection) Clone() RouteSelection {
	var out RouteSelection
	if s.Origin != nil {
		o := *s.Origin
		out.Origin = &o
	}
	if s.Destination != nil {
		d := *s.Destination
		out.Destination = &d
	}
	return out
}

func samePlace(a, b *Place) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// RouteGeometry is an ordered polyline of coordinates.
type RouteGeometry []Coordinate

// RouteResult is a computed route between two places.
// Results are replaced, never mutated, by later computations.
type RouteResult struct {
	Geometry        RouteGeometry `json:"geometry"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
	Summary         string        `json:"summary"`
}

// RouteSummary formats the summary line for a route between two places.
func RouteSummary(origin, destination Place) string {
	return origin.Address + " → " + destination.Address
}

// InstructionKind classifies a guidance instruction.
type InstructionKind string

// Instruction kinds.
const (
	InstructionHead     InstructionKind = "head"
	InstructionContinue InstructionKind = "continue"
	InstructionArrive   InstructionKind = "arrive"
)

// ArrivalText is the text of the final instruction of every route.
const ArrivalText = "You have arrived at your destination"

// Instruction is one step of turn-by-turn guidance.
type Instruction struct {
	Text string          `json:"text"`
	Kind InstructionKind `json:"kind"`
}

// TravelProfile selects the routing provider's travel mode.
type TravelProfile string

// Available travel profiles.
const (
	ProfileDriving TravelProfile = "driving"
	ProfileWalking TravelProfile = "walking"
	ProfileCycling TravelProfile = "cycling"
)

// IsValid returns true if the profile is recognised.
func (p TravelProfile) IsValid() bool {
	switch p {
	case ProfileDriving, ProfileWalking, ProfileCycling:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p TravelProfile) String() string {
	return string(p)
}

// FormatDistance renders a distance for display, e.g. "850 m" or "14.2 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders a travel time for display, e.g. "15 min" or "1 h 5 min".
func FormatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	switch {
	case minutes < 1:
		return "<1 min"
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%d h", minutes/60)
	default:
		return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
	}
}
