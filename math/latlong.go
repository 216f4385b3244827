// math/latlong.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// NMPerLatitude is the number of nautical miles per degree of latitude.
	NMPerLatitude = 60

	MetersPerNM = 1852

	// The 1/cos(latitude) longitude expansion used when approximating a
	// radius with a degree box is clamped to this multiplier so that
	// queries near the poles stay finite.
	maxLongitudeScale = 100
)

// Coordinate is a WGS-84 latitude/longitude pair in degrees. Equality is
// on the raw float64 values, so Coordinates can be used as map keys;
// there is no tolerance-based comparison.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Point returns the coordinate as an orb.Point, which stores longitude
// first (x=longitude, y=latitude); all of the planar geometry routines
// work in that order.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// CoordinateFromPoint is the inverse of Coordinate.Point.
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// String returns the position in decimal degrees, e.g. (53.630, 9.990).
func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.Latitude, c.Longitude)
}

// DistanceNM returns the geodesic distance from c to d in nautical miles.
func (c Coordinate) DistanceNM(d Coordinate) float64 {
	return geo.Distance(c.Point(), d.Point()) / MetersPerNM
}

// BearingTo returns the initial geodesic bearing from c to d in degrees,
// normalized to [0, 360).
func (c Coordinate) BearingTo(d Coordinate) float64 {
	return NormalizeHeading(geo.Bearing(c.Point(), d.Point()))
}

// Destination returns the point reached by traveling distanceNM nautical
// miles from c on the given initial bearing (degrees).
func (c Coordinate) Destination(bearing, distanceNM float64) Coordinate {
	p := geo.PointAtBearingAndDistance(c.Point(), bearing, distanceNM*MetersPerNM)
	return CoordinateFromPoint(p)
}

// NormalizeHeading wraps a heading in degrees to [0, 360).
func NormalizeHeading(h float64) float64 {
	h = gomath.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HeadingDifference returns the absolute difference between two headings,
// in [0, 180].
func HeadingDifference(a, b float64) float64 {
	d := gomath.Abs(NormalizeHeading(a) - NormalizeHeading(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DegreeBound returns an axis-aligned lat-long bound that conservatively
// contains every point within radiusNM of center: one degree of latitude
// is 60nm everywhere, while a degree of longitude shrinks with
// cos(latitude). There is no closed-form axis-aligned bound for geodesic
// distance, so callers must follow up with an exact distance check.
func DegreeBound(center Coordinate, radiusNM float64) orb.Bound {
	dlat := radiusNM / NMPerLatitude
	scale := 1 / gomath.Cos(Radians(center.Latitude))
	scale = gomath.Min(gomath.Abs(scale), maxLongitudeScale)
	dlon := dlat * scale
	return orb.Bound{
		Min: orb.Point{center.Longitude - dlon, center.Latitude - dlat},
		Max: orb.Point{center.Longitude + dlon, center.Latitude + dlat},
	}
}

func Radians(d float64) float64 { return d / 180 * gomath.Pi }

func Degrees(r float64) float64 { return r * 180 / gomath.Pi }
