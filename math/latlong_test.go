// math/latlong_test.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestDistanceNM(t *testing.T) {
	// One degree of latitude is 60nm, give or take the spherical model.
	a := Coordinate{Latitude: 53, Longitude: 10}
	b := Coordinate{Latitude: 54, Longitude: 10}
	if d := a.DistanceNM(b); d < 59.5 || d > 60.5 {
		t.Errorf("one degree of latitude: got %f nm", d)
	}
	if d := a.DistanceNM(a); d != 0 {
		t.Errorf("distance to self: got %f nm", d)
	}
}

func TestBearingTo(t *testing.T) {
	origin := Coordinate{Latitude: 0, Longitude: 0}
	for _, tc := range []struct {
		to      Coordinate
		bearing float64
	}{
		{Coordinate{Latitude: 1, Longitude: 0}, 0},
		{Coordinate{Latitude: 0, Longitude: 1}, 90},
		{Coordinate{Latitude: -1, Longitude: 0}, 180},
		{Coordinate{Latitude: 0, Longitude: -1}, 270},
	} {
		if b := origin.BearingTo(tc.to); gomath.Abs(b-tc.bearing) > 0.1 {
			t.Errorf("bearing to %v: got %f, expected %f", tc.to, b, tc.bearing)
		}
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	c := Coordinate{Latitude: 53.63, Longitude: 9.99}
	for _, bearing := range []float64{0, 45, 135, 250} {
		d := c.Destination(bearing, 25)
		if dist := c.DistanceNM(d); gomath.Abs(dist-25) > 0.1 {
			t.Errorf("bearing %f: destination at %f nm, expected 25", bearing, dist)
		}
		if b := c.BearingTo(d); gomath.Abs(b-bearing) > 0.5 {
			t.Errorf("bearing %f: destination bears %f", bearing, b)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, tc := range []struct{ in, out float64 }{
		{0, 0}, {360, 0}, {365, 5}, {-10, 350}, {720, 0}, {-350, 10},
	} {
		if h := NormalizeHeading(tc.in); gomath.Abs(h-tc.out) > 1e-9 {
			t.Errorf("NormalizeHeading(%f) = %f, expected %f", tc.in, h, tc.out)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	for _, tc := range []struct{ a, b, diff float64 }{
		{0, 90, 90}, {350, 10, 20}, {180, 0, 180}, {90, 90, 0},
	} {
		if d := HeadingDifference(tc.a, tc.b); gomath.Abs(d-tc.diff) > 1e-9 {
			t.Errorf("HeadingDifference(%f, %f) = %f, expected %f", tc.a, tc.b, d, tc.diff)
		}
	}
}

func TestDegreeBound(t *testing.T) {
	// At 60N a degree of longitude covers half the distance it does at
	// the equator, so the box must be twice as wide as it is tall.
	b := DegreeBound(Coordinate{Latitude: 60, Longitude: 10}, 60)
	if dlat := b.Max[1] - b.Min[1]; gomath.Abs(dlat-2) > 1e-6 {
		t.Errorf("latitude extent %f, expected 2", dlat)
	}
	if dlon := b.Max[0] - b.Min[0]; gomath.Abs(dlon-4) > 1e-3 {
		t.Errorf("longitude extent %f, expected 4", dlon)
	}

	// Near the pole the longitude expansion must stay clamped.
	b = DegreeBound(Coordinate{Latitude: 89.9999, Longitude: 0}, 6)
	if dlon := b.Max[0] - b.Min[0]; gomath.IsInf(dlon, 1) || dlon > 2*0.1*maxLongitudeScale+1e-6 {
		t.Errorf("polar longitude extent %f not clamped", dlon)
	}
}
