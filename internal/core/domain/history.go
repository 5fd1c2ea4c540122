package domain

import "time"

// SavedRoute is a computed route kept in history.
type SavedRoute struct {
	ID              string        `json:"id"`
	Origin          Place         `json:"origin"`
	Destination     Place         `json:"destination"`
	Profile         TravelProfile `json:"profile"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
	Summary         string        `json:"summary"`
	Geometry        RouteGeometry `json:"geometry,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Selection returns the saved endpoints as a route selection.
func (r SavedRoute) Selection() RouteSelection {
	o, d := r.Origin, r.Destination
	return RouteSelection{Origin: &o, Destination: &d}
}
