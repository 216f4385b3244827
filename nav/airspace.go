// nav/airspace.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/brunoga/deep"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/skyroute/navcore/math"
)

// Airspace is a named volume of controlled or special-use airspace: a
// closed horizontal ring plus a floor and ceiling. The vertical limits
// keep their original reference (GND, AGL, MSL, FL, ...) rather than
// being resolved to a common datum. Airspaces are immutable once built
// and shared by pointer.
type Airspace struct {
	Name    string
	Class   string
	Ceiling VerticalDistance
	Floor   VerticalDistance

	// Closed exterior ring, first point == last point, in orb's
	// (longitude, latitude) order.
	ring     orb.Ring
	segments []BoundarySegment
}

// NewAirspace builds an airspace directly from a horizontal ring, closing
// it if the first and last points differ. Boundaries described segment by
// segment go through BoundaryBuilder instead.
func NewAirspace(name, class string, ceiling, floor VerticalDistance, ring orb.Ring) *Airspace {
	if len(ring) < 3 {
		panic("airspace ring with fewer than 3 points: " + name)
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return &Airspace{
		Name:    name,
		Class:   class,
		Ceiling: ceiling,
		Floor:   floor,
		ring:    ring,
	}
}

// Ring returns a copy of the closed exterior ring; the airspace's own
// ring is never handed out since callers must not be able to mutate a
// shared airspace.
func (a *Airspace) Ring() orb.Ring {
	return deep.MustCopy(a.ring)
}

// Segments returns the boundary segments the ring was built from, or nil
// for airspaces constructed directly from a ring.
func (a *Airspace) Segments() []BoundarySegment {
	return a.segments
}

// Contains reports whether the point lies within the horizontal ring.
// Vertical limits are not checked; callers compare against Floor and
// Ceiling separately if they care.
func (a *Airspace) Contains(c math.Coordinate) bool {
	return planar.RingContains(a.ring, c.Point())
}

func (a *Airspace) Bound() orb.Bound {
	return a.ring.Bound()
}

// Crossings returns the points where the planar segment [p, q] crosses
// the airspace's ring, edge by edge. A collinear overlap with a ring edge
// contributes both overlap endpoints.
func (a *Airspace) Crossings(p, q orb.Point) []orb.Point {
	var pts []orb.Point
	for i := 1; i < len(a.ring); i++ {
		pts = append(pts, math.SegmentCrossings(p, q, a.ring[i-1], a.ring[i])...)
	}
	return pts
}
