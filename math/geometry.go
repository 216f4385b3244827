// math/geometry.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"github.com/paulmach/orb"
)

// SegmentCrossings returns the points where segment [p1,p2] crosses
// segment [p3,p4], treating both as planar. A transversal crossing
// yields one point. If the segments are collinear and overlap, both
// endpoints of the shared span are returned so that the caller sees the
// start and the end of the overlap. Segments that merely touch at a
// shared endpoint count as a crossing at that point.
func SegmentCrossings(p1, p2, p3, p4 orb.Point) []orb.Point {
	d1 := orb.Point{p2[0] - p1[0], p2[1] - p1[1]}
	d2 := orb.Point{p4[0] - p3[0], p4[1] - p3[1]}

	denom := d1[0]*d2[1] - d1[1]*d2[0]
	if gomath.Abs(denom) < 1e-12 {
		return collinearOverlap(p1, p2, p3, p4, d1)
	}

	// Solve p1 + t*d1 == p3 + u*d2 for t, u.
	dx, dy := p3[0]-p1[0], p3[1]-p1[1]
	t := (dx*d2[1] - dy*d2[0]) / denom
	u := (dx*d1[1] - dy*d1[0]) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return nil
	}
	return []orb.Point{{p1[0] + t*d1[0], p1[1] + t*d1[1]}}
}

func collinearOverlap(p1, p2, p3, p4, d1 orb.Point) []orb.Point {
	// Parallel segments only intersect if they lie on the same line.
	cross := (p3[0]-p1[0])*d1[1] - (p3[1]-p1[1])*d1[0]
	if gomath.Abs(cross) > 1e-12 {
		return nil
	}
	len2 := d1[0]*d1[0] + d1[1]*d1[1]
	if len2 == 0 {
		return nil
	}

	proj := func(p orb.Point) float64 {
		return ((p[0]-p1[0])*d1[0] + (p[1]-p1[1])*d1[1]) / len2
	}
	t3, t4 := proj(p3), proj(p4)
	lo, hi := gomath.Min(t3, t4), gomath.Max(t3, t4)
	lo, hi = gomath.Max(lo, 0), gomath.Min(hi, 1)
	if lo > hi {
		return nil
	}

	at := func(t float64) orb.Point {
		return orb.Point{p1[0] + t*d1[0], p1[1] + t*d1[1]}
	}
	if hi-lo < 1e-12 {
		return []orb.Point{at(lo)}
	}
	return []orb.Point{at(lo), at(hi)}
}

// SegmentT returns the parameter in [0,1] of the planar projection of p
// onto segment [a,b]; 0 corresponds to a and 1 to b.
func SegmentT(p, a, b orb.Point) float64 {
	d := orb.Point{b[0] - a[0], b[1] - a[1]}
	len2 := d[0]*d[0] + d[1]*d[1]
	if len2 == 0 {
		return 0
	}
	t := ((p[0]-a[0])*d[0] + (p[1]-a[1])*d[1]) / len2
	return gomath.Min(gomath.Max(t, 0), 1)
}
