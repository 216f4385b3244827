// record/record_test.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import (
	"errors"
	"iter"
	"testing"

	"github.com/skyroute/navcore/nav"
)

func TestParseVerticalLimit(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out nav.VerticalDistance
	}{
		{"GND", nav.GroundLevel()},
		{"SFC", nav.GroundLevel()},
		{"UNL", nav.Unlimited()},
		{"UNLTD", nav.Unlimited()},
		{"FL195", nav.FlightLevel(195)},
		{"FL 65", nav.FlightLevel(65)},
		{"2500FT MSL", nav.MSL(2500)},
		{"2500FT", nav.MSL(2500)},
		{"1500FT AGL", nav.AGL(1500)},
		{"3000FT QNH", nav.QNH(3000)},
		{"4500FT STD", nav.PressureAltitude(4500)},
		{"gnd", nav.GroundLevel()},
		{" fl100 ", nav.FlightLevel(100)},
	} {
		got, err := ParseVerticalLimit(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
		} else if got != tc.out {
			t.Errorf("%q: got %s, expected %s", tc.in, got, tc.out)
		}
	}

	for _, bad := range []string{"", "XYZ", "FLAB", "2500M MSL", "2500FT BLA"} {
		if _, err := ParseVerticalLimit(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

// stream builds a fallible record iterator from a mix of Records and
// errors, the way the upstream fixed-format reader delivers them.
func stream(items ...any) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for _, it := range items {
			var (
				r Record
				e error
			)
			switch v := it.(type) {
			case error:
				e = v
			case Record:
				r = v
			}
			if !yield(r, e) {
				return
			}
		}
	}
}

func fptr(f float64) *float64 { return &f }

func TestLoadRecords(t *testing.T) {
	b := nav.NewBuilder("test", nil)
	LoadRecords(stream(
		AirportRecord{ICAO: "EDDH", Name: "Hamburg", Latitude: 53.63, Longitude: 9.99},
		// Invalid coordinate: recorded as an error, skipped, load continues.
		AirportRecord{ICAO: "XBAD", Latitude: 999, Longitude: 0},
		errors.New("short record"),
		RunwayRecord{Airport: "EDDH", Designator: "23", LengthFeet: 12028},
		WaypointRecord{Ident: "N1", VFROnly: true, Airport: "EDDH", Latitude: 53.70, Longitude: 10.05},
		BoundarySegmentRecord{Name: "TEST CTR", Class: "D", Ceiling: "FL95", Floor: "GND",
			Via: "G", Latitude: fptr(53), Longitude: fptr(10)},
		BoundarySegmentRecord{Name: "TEST CTR", Via: "G", Latitude: fptr(53), Longitude: fptr(11)},
		BoundarySegmentRecord{Name: "TEST CTR", Via: "H", Latitude: fptr(54), Longitude: fptr(11)},
		BoundarySegmentRecord{Name: "TEST CTR", Via: "GE", Latitude: fptr(54), Longitude: fptr(10)},
	), nil, b)
	p := b.Build()

	if len(p.Airports) != 1 {
		t.Errorf("%d airports loaded, expected 1 (bad one skipped)", len(p.Airports))
	}
	if ap := p.Airports["EDDH"]; ap == nil {
		t.Fatalf("EDDH missing")
	} else if _, ok := ap.Runway("23"); !ok {
		t.Errorf("runway 23 not attached")
	}
	if len(p.Waypoints) != 1 || p.Waypoints[0].Region != nav.TerminalArea("EDDH") {
		t.Errorf("waypoints: %v", p.Waypoints)
	}

	if len(p.Airspaces) != 1 {
		t.Fatalf("%d airspaces built, expected 1", len(p.Airspaces))
	}
	a := p.Airspaces[0]
	if a.Name != "TEST CTR" || a.Class != "D" {
		t.Errorf("airspace metadata: %q class %q", a.Name, a.Class)
	}
	if a.Ceiling != nav.FlightLevel(95) || a.Floor != nav.GroundLevel() {
		t.Errorf("airspace limits: %s / %s", a.Ceiling, a.Floor)
	}

	// The bad coordinate and the stream error.
	if len(p.Errors) != 2 {
		t.Errorf("%d errors recorded, expected 2: %v", len(p.Errors), p.Errors)
	}
}

func TestLoadRecordsInterruptedBoundary(t *testing.T) {
	b := nav.NewBuilder("test", nil)
	LoadRecords(stream(
		BoundarySegmentRecord{Name: "HALF CTR", Via: "G", Latitude: fptr(53), Longitude: fptr(10)},
		BoundarySegmentRecord{Name: "HALF CTR", Via: "G", Latitude: fptr(53), Longitude: fptr(11)},
		// A non-boundary record interrupts the open sequence.
		WaypointRecord{Ident: "N1", Latitude: 53.7, Longitude: 10.05},
	), nil, b)
	p := b.Build()

	if len(p.Airspaces) != 0 {
		t.Errorf("partial boundary produced %d airspaces", len(p.Airspaces))
	}
	if len(p.Errors) != 1 {
		t.Errorf("%d errors recorded, expected 1: %v", len(p.Errors), p.Errors)
	}
	if len(p.Waypoints) != 1 {
		t.Errorf("waypoint after interrupted boundary not loaded")
	}
}

// featureStream mirrors stream for the XML feature reader.
func featureStream(items ...any) iter.Seq2[Feature, error] {
	return func(yield func(Feature, error) bool) {
		for _, it := range items {
			var (
				f Feature
				e error
			)
			switch v := it.(type) {
			case error:
				e = v
			case Feature:
				f = v
			}
			if !yield(f, e) {
				return
			}
		}
	}
}

func TestLoadFeatures(t *testing.T) {
	b := nav.NewBuilder("test", nil)
	LoadFeatures(featureStream(
		AirportFeature{ICAO: "EDDH", IATA: "HAM", Name: "Hamburg", Latitude: 53.63, Longitude: 9.99, ElevationFeet: 53},
		RunwayFeature{Airport: "EDDH", Designator: "05/23", LengthFeet: 12028, Surface: "ASPH"},
		RunwayDirectionFeature{Airport: "EDDH", Designator: "23", TrueBearing: 225, MagneticBearing: 228},
		RunwayDirectionFeature{Airport: "EDDH", Designator: "05", TrueBearing: 45, MagneticBearing: 48},
		// Direction without a known strip: error, skipped.
		RunwayDirectionFeature{Airport: "EDDH", Designator: "15"},
		DesignatedPointFeature{Ident: "N1", VFROnly: true, Airport: "EDDH", Latitude: 53.70, Longitude: 10.05},
		NavaidFeature{Ident: "LBE", Name: "Luebeck", Type: "VOR", Latitude: 53.95, Longitude: 10.71},
		AirspaceFeature{Name: "TEST TMA", Class: "C", Volumes: []AirspaceVolume{{
			UpperLimit: "FL245",
			LowerLimit: "2500FT MSL",
			Ring:       [][2]float64{{53.5, 9.8}, {53.5, 10.2}, {53.75, 10.2}, {53.75, 9.8}},
		}}},
	), nil, b)
	p := b.Build()

	ap := p.Airports["EDDH"]
	if ap == nil {
		t.Fatalf("EDDH missing")
	}
	if len(ap.Runways) != 2 {
		t.Errorf("%d runways attached, expected 2", len(ap.Runways))
	}
	if rw, ok := ap.Runway("23"); !ok || rw.LengthFeet != 12028 || rw.Surface != "ASPH" {
		t.Errorf("runway 23 missing strip data: %+v", rw)
	}

	if len(p.Waypoints) != 2 {
		t.Fatalf("%d waypoints loaded, expected 2", len(p.Waypoints))
	}
	if wp := p.Waypoints[1]; wp.Ident != "LBE" || wp.Description != "Luebeck (VOR)" {
		t.Errorf("navaid conversion: %+v", wp)
	}

	if len(p.Airspaces) != 1 {
		t.Fatalf("%d airspaces loaded, expected 1", len(p.Airspaces))
	}
	if a := p.Airspaces[0]; a.Floor != nav.MSL(2500) || a.Ceiling != nav.FlightLevel(245) {
		t.Errorf("airspace limits: %s / %s", a.Floor, a.Ceiling)
	}

	// Only the orphan runway direction failed.
	if len(p.Errors) != 1 {
		t.Errorf("%d errors recorded, expected 1: %v", len(p.Errors), p.Errors)
	}
}
