// Package location provides device position sources.
//
// FileSource reads fixes from a small JSON file that a GPS daemon, a
// phone bridge or a script keeps up to date:
//
//	{"lat": 40.7128, "lng": -74.0060}
//
// StaticSource reports a single fixed position.
package location
