// route/route_test.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"errors"
	"testing"

	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/nav"
)

func testStore(t *testing.T) *nav.Store {
	t.Helper()

	b := nav.NewBuilder("test", nil)
	b.AddAirport(&nav.Airport{
		ICAO:      "EDDH",
		Name:      "Hamburg",
		Location:  math.Coordinate{Latitude: 53.63, Longitude: 9.99},
		Elevation: nav.MSL(53),
	})
	b.AddRunway("EDDH", nav.Runway{Designator: "23", MagneticBearing: 228})
	b.AddAirport(&nav.Airport{
		ICAO:      "EDHL",
		Name:      "Luebeck-Blankensee",
		Location:  math.Coordinate{Latitude: 53.81, Longitude: 10.70},
		Elevation: nav.MSL(54),
	})
	b.AddAirport(&nav.Airport{
		ICAO:      "EDAH",
		Name:      "Heringsdorf",
		Location:  math.Coordinate{Latitude: 53.88, Longitude: 13.93},
		Elevation: nav.MSL(93),
	})
	for _, wp := range []*nav.Waypoint{
		{Ident: "N1", VFROnly: true, Location: math.Coordinate{Latitude: 53.70, Longitude: 10.05}, Region: nav.TerminalArea("EDDH")},
		{Ident: "N2", VFROnly: true, Location: math.Coordinate{Latitude: 53.76, Longitude: 10.09}, Region: nav.TerminalArea("EDDH")},
		{Ident: "W", VFROnly: true, Location: math.Coordinate{Latitude: 53.81, Longitude: 10.55}, Region: nav.TerminalArea("EDHL")},
		{Ident: "W", VFROnly: true, Location: math.Coordinate{Latitude: 53.87, Longitude: 13.80}, Region: nav.TerminalArea("EDAH")},
		{Ident: "LBE", Location: math.Coordinate{Latitude: 53.95, Longitude: 10.71}},
	} {
		b.AddWaypoint(wp)
	}

	s := nav.NewStore(nil)
	s.Append(b.Build())
	return s
}

func TestDecodeEndToEnd(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.Decode("N0107 A0250 EDDH N2 N1 DCT EDHL W"); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []struct {
		kind TokenKind
		text string
	}{
		{TokenSpeed, "N0107"},
		{TokenLevel, "A0250"},
		{TokenAirport, "EDDH"},
		{TokenNavAid, "N2"},
		{TokenNavAid, "N1"},
		{TokenDirect, "DCT"},
		{TokenNavAid, "W"},
	}
	tokens := r.Tokens()
	if len(tokens) != len(want) {
		t.Fatalf("%d tokens, expected %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d: %s %q, expected %s %q", i, tokens[i].Kind, tokens[i].Text, w.kind, w.text)
		}
	}

	// EDHL was suppressed, but it must have scoped the lookup of W: the
	// resolved waypoint is EDHL's, not some other area's.
	w := tokens[6].NavAid.(*nav.Waypoint)
	if w.Region != nav.TerminalArea("EDHL") {
		t.Errorf("W resolved in %v, expected EDHL terminal area", w.Region)
	}

	if kts, ok := r.CruiseSpeedKts(); !ok || kts != 107 {
		t.Errorf("cruise speed %d, %v", kts, ok)
	}
	if level, ok := r.CruiseLevel(); !ok || level != nav.MSL(2500) {
		t.Errorf("cruise level %s, %v", level, ok)
	}
	if r.Origin() == nil || r.Origin().ICAO != "EDDH" {
		t.Errorf("origin %v", r.Origin())
	}
	if r.Destination() != nil {
		t.Errorf("destination %v, expected none (EDHL only opened a scope)", r.Destination())
	}

	// EDDH -> N2 -> N1 -> W.
	legs := r.Legs()
	if len(legs) != 3 {
		t.Fatalf("%d legs, expected 3", len(legs))
	}
	for i := range legs[:len(legs)-1] {
		if legs[i].To != legs[i+1].From {
			t.Errorf("legs %d/%d not chained: %s != %s", i, i+1,
				legs[i].To.FixIdent(), legs[i+1].From.FixIdent())
		}
	}
	for _, l := range legs {
		if l.TASKts != 107 || l.Level != nav.MSL(2500) {
			t.Errorf("leg %s-%s: TAS %f level %s", l.From.FixIdent(), l.To.FixIdent(), l.TASKts, l.Level)
		}
	}
}

func TestDecodeAmbiguousWaypoint(t *testing.T) {
	r := New(testStore(t), nil)
	err := r.Decode("EDAH W W EDHL")
	if err == nil {
		t.Fatalf("ambiguous W decoded without error")
	}

	var ambig *AmbiguousWaypointError
	if !errors.As(err, &ambig) {
		t.Fatalf("got %T (%v), expected AmbiguousWaypointError", err, err)
	}
	if ambig.Ident != "W" || ambig.AreaA != "EDAH" || ambig.AreaB != "EDHL" {
		t.Errorf("ambiguity names %q in %s/%s", ambig.Ident, ambig.AreaA, ambig.AreaB)
	}

	// A failed decode must not leave a partial route behind.
	if len(r.Tokens()) != 0 || len(r.Legs()) != 0 || r.Origin() != nil {
		t.Errorf("partial route committed after failed decode")
	}
}

func TestDecodeDestinationAndRunways(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.Decode("N0107 F055 EDDH23 LBE EDHL"); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if r.Origin().ICAO != "EDDH" || r.DepartureRunway() != "23" {
		t.Errorf("origin %v runway %q", r.Origin(), r.DepartureRunway())
	}
	if r.Destination() == nil || r.Destination().ICAO != "EDHL" {
		t.Errorf("destination %v", r.Destination())
	}
	if level, _ := r.CruiseLevel(); level != nav.FlightLevel(55) {
		t.Errorf("cruise level %s", level)
	}

	// EDDH -> LBE -> EDHL.
	if legs := r.Legs(); len(legs) != 2 {
		t.Errorf("%d legs, expected 2", len(legs))
	}
}

func TestDecodeUnknownRunway(t *testing.T) {
	r := New(testStore(t), nil)
	err := r.Decode("EDDH99 LBE EDHL")

	var unk *UnknownRunwayError
	if !errors.As(err, &unk) {
		t.Fatalf("got %T (%v), expected UnknownRunwayError", err, err)
	}
	if unk.Airport != "EDDH" || unk.Runway != "99" {
		t.Errorf("error names runway %s at %s", unk.Runway, unk.Airport)
	}
}

func TestDecodeUnresolvable(t *testing.T) {
	r := New(testStore(t), nil)
	err := r.Decode("EDDH XYZQ EDHL")

	var unres *UnresolvedTokenError
	if !errors.As(err, &unres) {
		t.Fatalf("got %T (%v), expected UnresolvedTokenError", err, err)
	}
	if unres.Text != "XYZQ" {
		t.Errorf("error names %q", unres.Text)
	}
}

func TestDecodeBestEffortWaypoint(t *testing.T) {
	// N1 exists only in EDDH's terminal area. Referenced with no scope
	// at all, the lexer's exact match is accepted as a best effort.
	r := New(testStore(t), nil)
	if err := r.Decode("N1 LBE"); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tokens := r.Tokens(); tokens[0].NavAid.FixIdent() != "N1" {
		t.Errorf("best-effort N1 missing: %v", tokens)
	}
}

func TestDecodeCruiseFirstWins(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.Decode("N0107 EDDH N0150 LBE EDHL"); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if kts, _ := r.CruiseSpeedKts(); kts != 107 {
		t.Errorf("cruise speed %d, first speed must win", kts)
	}
	// The later speed still applies to the legs that follow it.
	legs := r.Legs()
	if legs[0].TASKts != 150 || legs[1].TASKts != 150 {
		t.Errorf("leg TAS %f/%f", legs[0].TASKts, legs[1].TASKts)
	}
}

func TestDecodeWindAppliesToLegs(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.Decode("N0100 EDDH 27010KT LBE EDHL"); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	legs := r.Legs()
	if legs[0].Wind != (Wind{DirectionDeg: 270, SpeedKts: 10}) {
		t.Errorf("leg wind %+v", legs[0].Wind)
	}
}

func TestDecodeReplacesPreviousRoute(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.Decode("N0107 A0250 EDDH N2 N1 DCT EDHL W"); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if err := r.Decode("EDHL LBE EDDH"); err != nil {
		t.Fatalf("second Decode: %v", err)
	}

	if r.Origin().ICAO != "EDHL" || r.Destination().ICAO != "EDDH" {
		t.Errorf("origin/destination not replaced: %v -> %v", r.Origin(), r.Destination())
	}
	if len(r.Legs()) != 2 {
		t.Errorf("%d legs after re-decode", len(r.Legs()))
	}
	if _, ok := r.CruiseSpeedKts(); ok {
		t.Errorf("cruise speed leaked from the previous decode")
	}
}

func TestSetAlternate(t *testing.T) {
	r := New(testStore(t), nil)
	if err := r.SetAlternate("EDHL"); err != nil {
		t.Fatalf("SetAlternate: %v", err)
	}
	if r.Alternate() == nil || r.Alternate().ICAO != "EDHL" {
		t.Errorf("alternate %v", r.Alternate())
	}

	var unk *UnknownIdentifierError
	if err := r.SetAlternate("XXXX"); !errors.As(err, &unk) {
		t.Errorf("got %v, expected UnknownIdentifierError", err)
	}
}
