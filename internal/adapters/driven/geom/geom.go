// Package geom converts between domain coordinates and orb geometries.
// orb orders points as [lng, lat], matching GeoJSON.
package geom

import (
	"github.com/paulmach/orb"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// Point converts a coordinate to an orb point.
func Point(c domain.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// Coordinate converts an orb point to a coordinate.
func Coordinate(p orb.Point) domain.Coordinate {
	return domain.Coordinate{Lat: p.Lat(), Lng: p.Lon()}
}

// LineString converts route geometry to an orb line string.
func LineString(g domain.RouteGeometry) orb.LineString {
	ls := make(orb.LineString, len(g))
	for i, c := range g {
		ls[i] = Point(c)
	}
	return ls
}

// RouteGeometry converts an orb line string to route geometry.
func RouteGeometry(ls orb.LineString) domain.RouteGeometry {
	g := make(domain.RouteGeometry, len(ls))
	for i, p := range ls {
		g[i] = Coordinate(p)
	}
	return g
}
