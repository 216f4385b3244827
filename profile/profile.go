// profile/profile.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package profile computes, for a decoded route, which airspaces the
// route traverses and at what along-route distances, plus the route's
// altitude profile.
package profile

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/nav"
	"github.com/skyroute/navcore/route"
)

// AirspaceIntersection is one traversal of an airspace: where the route
// enters and exits it, as along-route distances and coordinates. Entry
// is never beyond exit.
type AirspaceIntersection struct {
	Airspace        *nav.Airspace
	EntryDistanceNM float64
	ExitDistanceNM  float64
	Entry           math.Coordinate
	Exit            math.Coordinate
}

type VerticalPointKind int

const (
	// PointAtNavAid is a level over a route fix; the only kind the
	// current derivation produces.
	PointAtNavAid VerticalPointKind = iota
	// Top-of-climb, top-of-descent, and generic level changes are part
	// of the model but are not yet derived from a route.
	PointTopOfClimb
	PointTopOfDescent
	PointLevelChange
)

// VerticalPoint is one altitude event along the route.
type VerticalPoint struct {
	Kind       VerticalPointKind
	Level      nav.VerticalDistance
	DistanceNM float64
	Fix        nav.NavAid
}

type VerticalProfile struct {
	Intersections   []AirspaceIntersection
	Points          []VerticalPoint
	TotalDistanceNM float64
}

// Crossings closer together than this are treated as the same boundary
// transition; a route touching a polygon vertex otherwise yields one
// crossing per adjoining edge.
const dedupeDistanceNM = 1.0 / math.MetersPerNM

// New computes the vertical profile of a decoded route against the
// store's airspaces. Candidate airspaces come from a bounding-box
// pre-filter over the route's envelope; each is then intersected exactly,
// segment by segment, against the airspace ring.
func New(r *route.Route, store *nav.Store) *VerticalProfile {
	p := &VerticalProfile{}

	legs := r.Legs()
	if len(legs) == 0 {
		return p
	}

	// Route polyline with per-vertex cumulative geodesic distance.
	points := make([]orb.Point, 0, len(legs)+1)
	points = append(points, legs[0].From.FixLocation().Point())
	for _, l := range legs {
		points = append(points, l.To.FixLocation().Point())
	}
	segLen := make([]float64, len(points)-1)
	cum := make([]float64, len(points))
	for i := range segLen {
		a := math.CoordinateFromPoint(points[i])
		b := math.CoordinateFromPoint(points[i+1])
		segLen[i] = a.DistanceNM(b)
		cum[i+1] = cum[i] + segLen[i]
	}
	p.TotalDistanceNM = cum[len(cum)-1]

	for _, a := range store.AirspacesIntersecting(orb.LineString(points).Bound()) {
		p.intersect(a, points, segLen, cum)
	}
	sort.Slice(p.Intersections, func(i, j int) bool {
		return p.Intersections[i].EntryDistanceNM < p.Intersections[j].EntryDistanceNM
	})

	p.derivePoints(r, legs, cum)
	return p
}

// transition is one boundary crossing along the route.
type transition struct {
	distanceNM float64
	location   orb.Point
}

func (p *VerticalProfile) intersect(a *nav.Airspace, points []orb.Point, segLen, cum []float64) {
	var ts []transition
	for i := 0; i < len(points)-1; i++ {
		for _, pt := range a.Crossings(points[i], points[i+1]) {
			// Along-route distance: all the segments before this one,
			// plus the planar fraction of this segment scaled by its
			// geodesic length. The planar fraction is fine at the
			// real-world lengths of individual route segments.
			t := math.SegmentT(pt, points[i], points[i+1])
			ts = append(ts, transition{distanceNM: cum[i] + t*segLen[i], location: pt})
		}
	}

	start := math.CoordinateFromPoint(points[0])
	end := math.CoordinateFromPoint(points[len(points)-1])
	if len(ts) == 0 && !a.Contains(start) {
		// Bounding boxes overlapped but the geometry never touches.
		return
	}

	sort.Slice(ts, func(i, j int) bool { return ts[i].distanceNM < ts[j].distanceNM })

	deduped := ts[:0]
	for _, t := range ts {
		if n := len(deduped); n > 0 && t.distanceNM-deduped[n-1].distanceNM < dedupeDistanceNM {
			continue
		}
		deduped = append(deduped, t)
	}
	ts = deduped

	// A route that starts or ends inside the airspace crosses the
	// boundary an odd number of times; synthesize the missing
	// transitions at the route's ends.
	if a.Contains(start) {
		ts = append([]transition{{distanceNM: 0, location: points[0]}}, ts...)
	}
	if a.Contains(end) {
		ts = append(ts, transition{distanceNM: cum[len(cum)-1], location: points[len(points)-1]})
	}

	// Pair entries with exits in order. A final unpaired transition is a
	// tangential touch and is dropped.
	for i := 0; i+1 < len(ts); i += 2 {
		p.Intersections = append(p.Intersections, AirspaceIntersection{
			Airspace:        a,
			EntryDistanceNM: ts[i].distanceNM,
			ExitDistanceNM:  ts[i+1].distanceNM,
			Entry:           math.CoordinateFromPoint(ts[i].location),
			Exit:            math.CoordinateFromPoint(ts[i+1].location),
		})
	}
}

// derivePoints builds the altitude profile: the origin's field elevation,
// each leg's level at the leg's end fix, and the destination's field
// elevation. Climb and descent points are not derived.
func (p *VerticalProfile) derivePoints(r *route.Route, legs []route.Leg, cum []float64) {
	if ap := r.Origin(); ap != nil {
		p.Points = append(p.Points, VerticalPoint{
			Kind:  PointAtNavAid,
			Level: ap.Elevation,
			Fix:   ap,
		})
	}
	for i, l := range legs {
		p.Points = append(p.Points, VerticalPoint{
			Kind:       PointAtNavAid,
			Level:      l.Level,
			DistanceNM: cum[i+1],
			Fix:        l.To,
		})
	}
	if ap := r.Destination(); ap != nil {
		p.Points = append(p.Points, VerticalPoint{
			Kind:       PointAtNavAid,
			Level:      ap.Elevation,
			DistanceNM: p.TotalDistanceNM,
			Fix:        ap,
		})
	}
}

// MaxLevel reduces the altitude profile to its highest point. Vertical
// references only order partially: AGL and pressure-altitude values are
// skipped, since they cannot be compared to the others without resolving
// terrain or the pressure datum. The second return is false if no point
// was comparable.
func (p *VerticalProfile) MaxLevel() (nav.VerticalDistance, bool) {
	var best nav.VerticalDistance
	bestFeet, found := 0.0, false
	for _, pt := range p.Points {
		if feet, ok := pt.Level.ComparableFeet(); ok && (!found || feet > bestFeet) {
			best, bestFeet, found = pt.Level, feet, true
		}
	}
	return best, found
}
