package domain

import (
	"fmt"
	"math"
)

// Coordinate is a point on the globe in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is finite and in range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// String formats the coordinate as "lat,lng".
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}

// FallbackAddress is the address used when no human-readable one is known.
func FallbackAddress(c Coordinate) string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// Place is a coordinate paired with a human-readable address.
type Place struct {
	Coordinate Coordinate `json:"coordinate"`
	Address    string     `json:"address"`
}

// NewPlace creates a place, substituting the coordinate fallback for an empty address.
func NewPlace(c Coordinate, address string) Place {
	if address == "" {
		address = FallbackAddress(c)
	}
	return Place{Coordinate: c, Address: address}
}

// compassPoints are the eight labels in clockwise order from north.
var compassPoints = [8]string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

// Bearing returns the initial great-circle bearing from a to b in [0,360).
func Bearing(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// CompassDirection maps a bearing in degrees to one of eight compass labels.
func CompassDirection(bearing float64) string {
	idx := int(math.Round(bearing/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
