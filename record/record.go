// record/record.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package record defines the typed values produced by the two upstream
// aeronautical data readers (a streaming XML feature reader and a
// fixed-width column record reader) and converts them into nav entities.
// The readers themselves live outside this module; this package only
// consumes their already-typed output.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyroute/navcore/nav"
)

// Feature is a typed value from the XML-based source. It is a closed
// union over the concrete feature types below.
type Feature interface {
	feature()
}

type AirportFeature struct {
	ICAO          string
	IATA          string
	Name          string
	Latitude      float64
	Longitude     float64
	ElevationFeet float64
	// Magnetic variation in degrees, east positive.
	Variation float64
}

// RunwayFeature describes the physical runway strip (e.g. "05/23");
// per-direction data arrives separately in RunwayDirectionFeature.
type RunwayFeature struct {
	Airport          string
	Designator       string
	LengthFeet       float64
	UsableLengthFeet float64
	Surface          string
}

type RunwayDirectionFeature struct {
	Airport                string
	Designator             string
	TrueBearing            float64
	MagneticBearing        float64
	SlopePercent           float64
	ThresholdElevationFeet float64
}

// DesignatedPointFeature is a published point: an enroute fix or a
// VFR reporting point scoped to one airport's terminal area.
type DesignatedPointFeature struct {
	Ident       string
	Description string
	VFROnly     bool
	// Airport is the owning terminal area; empty for enroute points.
	Airport   string
	Latitude  float64
	Longitude float64
	Variation float64
}

type NavaidFeature struct {
	Ident     string
	Name      string
	Type      string
	Latitude  float64
	Longitude float64
	Variation float64
}

// AirspaceFeature carries an airspace with one or more vertical volumes,
// each with its own limits and horizontal projection.
type AirspaceFeature struct {
	Name    string
	Class   string
	Volumes []AirspaceVolume
}

type AirspaceVolume struct {
	UpperLimit string
	LowerLimit string
	// Ring is the horizontal projection as (latitude, longitude) pairs.
	Ring [][2]float64
}

func (AirportFeature) feature()         {}
func (RunwayFeature) feature()          {}
func (RunwayDirectionFeature) feature() {}
func (DesignatedPointFeature) feature() {}
func (NavaidFeature) feature()          {}
func (AirspaceFeature) feature()        {}

// Record is a typed value from the fixed-width column source.
type Record interface {
	record()
}

type AirportRecord struct {
	ICAO          string
	IATA          string
	Name          string
	Latitude      float64
	Longitude     float64
	ElevationFeet float64
	Variation     float64
}

type RunwayRecord struct {
	Airport                string
	Designator             string
	TrueBearing            float64
	MagneticBearing        float64
	LengthFeet             float64
	UsableLengthFeet       float64
	Surface                string
	SlopePercent           float64
	ThresholdElevationFeet float64
}

type WaypointRecord struct {
	Ident       string
	Description string
	VFROnly     bool
	Airport     string
	Latitude    float64
	Longitude   float64
	Variation   float64
}

// BoundarySegmentRecord is one record of a controlled-airspace boundary
// sequence. Via encodes the path from the previous point: "G" great
// circle, "H" rhumb line, "R" clockwise arc, "L" counter-clockwise arc,
// "C" circle; a trailing "E" flags the end of the sequence (return to
// origin).
type BoundarySegmentRecord struct {
	Name          string
	Class         string
	Ceiling       string
	Floor         string
	Via           string
	Latitude      *float64
	Longitude     *float64
	ArcLatitude   *float64
	ArcLongitude  *float64
	ArcDistanceNM float64
}

func (AirportRecord) record()         {}
func (RunwayRecord) record()          {}
func (WaypointRecord) record()        {}
func (BoundarySegmentRecord) record() {}

// ParseVerticalLimit maps an upstream vertical-limit string to a
// VerticalDistance, preserving its reference: "GND", "UNL", "FL195",
// "2500FT MSL", "1500FT AGL", "2500FT QNH", "4500FT STD". A bare
// "2500FT" is taken as MSL.
func ParseVerticalLimit(s string) (nav.VerticalDistance, error) {
	orig := s
	s = strings.ToUpper(strings.TrimSpace(s))

	switch s {
	case "GND", "SFC":
		return nav.GroundLevel(), nil
	case "UNL", "UNLTD", "UNLIMITED":
		return nav.Unlimited(), nil
	}

	if fl, ok := strings.CutPrefix(s, "FL"); ok {
		level, err := strconv.Atoi(strings.TrimSpace(fl))
		if err != nil {
			return nav.VerticalDistance{}, fmt.Errorf("%q: invalid flight level", orig)
		}
		return nav.FlightLevel(level), nil
	}

	num, ref, _ := strings.Cut(s, "FT")
	feet, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || !strings.Contains(s, "FT") {
		return nav.VerticalDistance{}, fmt.Errorf("%q: unrecognized vertical limit", orig)
	}

	switch strings.TrimSpace(ref) {
	case "", "MSL":
		return nav.MSL(feet), nil
	case "AGL":
		return nav.AGL(feet), nil
	case "QNH":
		return nav.QNH(feet), nil
	case "STD":
		return nav.PressureAltitude(feet), nil
	default:
		return nav.VerticalDistance{}, fmt.Errorf("%q: unrecognized vertical reference", orig)
	}
}
