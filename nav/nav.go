// nav/nav.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package nav holds the canonical aeronautical entities (airports,
// runways, waypoints, airspaces) and the partitioned store and spatial
// indices over them. Entities are immutable once their partition has been
// built and are shared by pointer wherever they are referenced.
package nav

import (
	"time"

	"github.com/skyroute/navcore/math"
)

// Cycle identifies the AIRAC data cycle an entity was loaded from. AIRAC
// cycles are effective for 28 days; data past that window is expired.
const CycleDuration = 28 * 24 * time.Hour

type Cycle struct {
	Ident     string
	Effective time.Time
}

func (c Cycle) ExpiresAt() time.Time {
	return c.Effective.Add(CycleDuration)
}

func (c Cycle) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt())
}

// NavAid is the fix capability shared by airports and waypoints: anything
// with an identifier, a position, and a local magnetic variation. It is a
// closed union; *Airport and *Waypoint are the only implementations, and
// consumers that care about the concrete kind type-switch over exactly
// those two.
type NavAid interface {
	FixIdent() string
	FixLocation() math.Coordinate
	FixVariation() float64
}

type Airport struct {
	ICAO      string
	IATA      string
	Name      string
	Location  math.Coordinate
	Elevation VerticalDistance
	// Magnetic variation in degrees, east positive.
	Variation float64
	Runways   []Runway
	Cycle     *Cycle
}

func (ap *Airport) FixIdent() string { return ap.ICAO }

func (ap *Airport) FixLocation() math.Coordinate { return ap.Location }

func (ap *Airport) FixVariation() float64 { return ap.Variation }

// Runway returns the airport's runway with the given designator, if any.
func (ap *Airport) Runway(designator string) (Runway, bool) {
	for _, rw := range ap.Runways {
		if rw.Designator == designator {
			return rw, true
		}
	}
	return Runway{}, false
}

type Runway struct {
	// Airport the runway belongs to; set when the partition is built.
	Airport            string
	Designator         string
	TrueBearing        float64
	MagneticBearing    float64
	LengthFeet         float64
	UsableLengthFeet   float64
	Surface            string
	SlopePercent       float64
	ThresholdElevation VerticalDistance
}

// Region scopes a waypoint: either enroute or local to one airport's
// terminal area. Terminal waypoints with the same identifier may exist
// under many different airports.
type Region struct {
	// Airport is the owning airport's identifier; empty means enroute.
	Airport string
}

func Enroute() Region { return Region{} }

func TerminalArea(icao string) Region { return Region{Airport: icao} }

func (r Region) IsTerminal() bool { return r.Airport != "" }

func (r Region) String() string {
	if r.Airport == "" {
		return "enroute"
	}
	return "terminal area " + r.Airport
}

type Waypoint struct {
	Ident       string
	Description string
	// VFROnly marks VFR reporting points, which are only meaningful
	// inside their terminal area and need scope resolution when they
	// appear in a route string.
	VFROnly   bool
	Location  math.Coordinate
	Variation float64
	Region    Region
	Cycle     *Cycle
}

func (wp *Waypoint) FixIdent() string { return wp.Ident }

func (wp *Waypoint) FixLocation() math.Coordinate { return wp.Location }

func (wp *Waypoint) FixVariation() float64 { return wp.Variation }
