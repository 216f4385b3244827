// math/geometry_test.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"

	"github.com/paulmach/orb"
)

func TestSegmentCrossings(t *testing.T) {
	near := func(a, b orb.Point) bool {
		return gomath.Abs(a[0]-b[0]) < 1e-9 && gomath.Abs(a[1]-b[1]) < 1e-9
	}

	// Transversal crossing at the midpoint.
	pts := SegmentCrossings(orb.Point{0, 0}, orb.Point{2, 2}, orb.Point{0, 2}, orb.Point{2, 0})
	if len(pts) != 1 || !near(pts[0], orb.Point{1, 1}) {
		t.Errorf("transversal crossing: got %v", pts)
	}

	// Disjoint segments.
	if pts := SegmentCrossings(orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 1}, orb.Point{1, 1}); len(pts) != 0 {
		t.Errorf("disjoint segments: got %v", pts)
	}

	// Parallel but offset.
	if pts := SegmentCrossings(orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{0, 1}, orb.Point{2, 1}); len(pts) != 0 {
		t.Errorf("parallel segments: got %v", pts)
	}

	// Collinear overlap yields both endpoints of the shared span.
	pts = SegmentCrossings(orb.Point{0, 0}, orb.Point{3, 0}, orb.Point{1, 0}, orb.Point{5, 0})
	if len(pts) != 2 || !near(pts[0], orb.Point{1, 0}) || !near(pts[1], orb.Point{3, 0}) {
		t.Errorf("collinear overlap: got %v", pts)
	}

	// Touching at a shared endpoint.
	pts = SegmentCrossings(orb.Point{0, 0}, orb.Point{1, 1}, orb.Point{1, 1}, orb.Point{2, 0})
	if len(pts) != 1 || !near(pts[0], orb.Point{1, 1}) {
		t.Errorf("shared endpoint: got %v", pts)
	}
}

func TestSegmentT(t *testing.T) {
	a, b := orb.Point{0, 0}, orb.Point{10, 0}
	for _, tc := range []struct {
		p orb.Point
		t float64
	}{
		{orb.Point{0, 0}, 0},
		{orb.Point{10, 0}, 1},
		{orb.Point{2.5, 0}, 0.25},
		{orb.Point{5, 3}, 0.5},   // off-segment point projects onto it
		{orb.Point{-5, 0}, 0},    // clamped below
		{orb.Point{20, 0}, 1},    // clamped above
	} {
		if got := SegmentT(tc.p, a, b); gomath.Abs(got-tc.t) > 1e-9 {
			t.Errorf("SegmentT(%v) = %f, expected %f", tc.p, got, tc.t)
		}
	}

	// Degenerate zero-length segment.
	if got := SegmentT(orb.Point{1, 1}, a, a); got != 0 {
		t.Errorf("degenerate segment: got %f", got)
	}
}
