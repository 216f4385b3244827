// record/load.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/paulmach/orb"

	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/nav"
	"github.com/skyroute/navcore/util"
)

// LoadFeatures converts a fallible stream of XML-source features into
// entities on the builder. A record that fails conversion is skipped and
// its error recorded; loading always continues.
func LoadFeatures(features iter.Seq2[Feature, error], cycle *nav.Cycle, b *nav.Builder) {
	e := b.ErrorLog()
	e.Push("features")
	defer e.Pop()

	// Runway strips by airport; per-direction features are matched
	// against them as they arrive.
	strips := make(map[string][]RunwayFeature)

	for f, err := range features {
		if err != nil {
			e.Error(err)
			continue
		}

		switch f := f.(type) {
		case AirportFeature:
			e.Push("airport " + f.ICAO)
			if loc, err := coordinate(f.Latitude, f.Longitude); err != nil {
				e.Error(err)
			} else if f.ICAO == "" {
				e.ErrorString("missing airport identifier")
			} else {
				b.AddAirport(&nav.Airport{
					ICAO:      f.ICAO,
					IATA:      f.IATA,
					Name:      f.Name,
					Location:  loc,
					Elevation: nav.MSL(f.ElevationFeet),
					Variation: f.Variation,
					Cycle:     cycle,
				})
			}
			e.Pop()

		case RunwayFeature:
			strips[f.Airport] = append(strips[f.Airport], f)

		case RunwayDirectionFeature:
			e.Push("runway " + f.Airport + " " + f.Designator)
			if strip, ok := findStrip(strips[f.Airport], f.Designator); !ok {
				e.ErrorString("no runway strip for direction")
			} else {
				b.AddRunway(f.Airport, nav.Runway{
					Designator:         f.Designator,
					TrueBearing:        f.TrueBearing,
					MagneticBearing:    f.MagneticBearing,
					LengthFeet:         strip.LengthFeet,
					UsableLengthFeet:   strip.UsableLengthFeet,
					Surface:            strip.Surface,
					SlopePercent:       f.SlopePercent,
					ThresholdElevation: nav.MSL(f.ThresholdElevationFeet),
				})
			}
			e.Pop()

		case DesignatedPointFeature:
			e.Push("designated point " + f.Ident)
			if loc, err := coordinate(f.Latitude, f.Longitude); err != nil {
				e.Error(err)
			} else if f.Ident == "" {
				e.ErrorString("missing point identifier")
			} else {
				b.AddWaypoint(&nav.Waypoint{
					Ident:       f.Ident,
					Description: f.Description,
					VFROnly:     f.VFROnly,
					Location:    loc,
					Variation:   f.Variation,
					Region:      util.Select(f.Airport != "", nav.TerminalArea(f.Airport), nav.Enroute()),
					Cycle:       cycle,
				})
			}
			e.Pop()

		case NavaidFeature:
			e.Push("navaid " + f.Ident)
			if loc, err := coordinate(f.Latitude, f.Longitude); err != nil {
				e.Error(err)
			} else if f.Ident == "" {
				e.ErrorString("missing navaid identifier")
			} else {
				desc := f.Name
				if f.Type != "" {
					desc = strings.TrimSpace(f.Name + " (" + f.Type + ")")
				}
				b.AddWaypoint(&nav.Waypoint{
					Ident:       f.Ident,
					Description: desc,
					Location:    loc,
					Variation:   f.Variation,
					Cycle:       cycle,
				})
			}
			e.Pop()

		case AirspaceFeature:
			loadAirspaceFeature(f, b)
		}
	}
}

// loadAirspaceFeature converts one airspace-with-volumes feature; each
// volume becomes its own Airspace since the volumes carry independent
// vertical limits and horizontal projections.
func loadAirspaceFeature(f AirspaceFeature, b *nav.Builder) {
	e := b.ErrorLog()
	e.Push("airspace " + f.Name)
	defer e.Pop()

	for i, vol := range f.Volumes {
		ceiling, err := ParseVerticalLimit(vol.UpperLimit)
		if err != nil {
			e.Error(err)
			continue
		}
		floor, err := ParseVerticalLimit(vol.LowerLimit)
		if err != nil {
			e.Error(err)
			continue
		}
		if len(vol.Ring) < 3 {
			e.ErrorString("volume %d: ring with %d points", i, len(vol.Ring))
			continue
		}

		ring := make(orb.Ring, 0, len(vol.Ring)+1)
		bad := false
		for _, ll := range vol.Ring {
			loc, err := coordinate(ll[0], ll[1])
			if err != nil {
				e.Error(err)
				bad = true
				break
			}
			ring = append(ring, loc.Point())
		}
		if bad {
			continue
		}

		name := f.Name
		if len(f.Volumes) > 1 {
			name = fmt.Sprintf("%s (%d)", f.Name, i+1)
		}
		b.AddAirspace(nav.NewAirspace(name, f.Class, ceiling, floor, ring))
	}
}

// LoadRecords converts a fallible stream of fixed-format records into
// entities on the builder. Consecutive boundary-segment records form one
// airspace; any failure inside a sequence abandons that whole boundary
// (no partial polygons) but never stops the load.
func LoadRecords(recs iter.Seq2[Record, error], cycle *nav.Cycle, b *nav.Builder) {
	e := b.ErrorLog()
	e.Push("records")
	defer e.Pop()

	var boundary *boundarySequence

	for r, err := range recs {
		if err != nil {
			e.Error(err)
			boundary = boundary.abandon(b)
			continue
		}

		if seg, ok := r.(BoundarySegmentRecord); ok {
			boundary = boundary.add(seg, b)
			continue
		}
		boundary = boundary.abandon(b)

		switch r := r.(type) {
		case AirportRecord:
			e.Push("airport " + r.ICAO)
			if loc, err := coordinate(r.Latitude, r.Longitude); err != nil {
				e.Error(err)
			} else if r.ICAO == "" {
				e.ErrorString("missing airport identifier")
			} else {
				b.AddAirport(&nav.Airport{
					ICAO:      r.ICAO,
					IATA:      r.IATA,
					Name:      r.Name,
					Location:  loc,
					Elevation: nav.MSL(r.ElevationFeet),
					Variation: r.Variation,
					Cycle:     cycle,
				})
			}
			e.Pop()

		case RunwayRecord:
			b.AddRunway(r.Airport, nav.Runway{
				Designator:         r.Designator,
				TrueBearing:        r.TrueBearing,
				MagneticBearing:    r.MagneticBearing,
				LengthFeet:         r.LengthFeet,
				UsableLengthFeet:   r.UsableLengthFeet,
				Surface:            r.Surface,
				SlopePercent:       r.SlopePercent,
				ThresholdElevation: nav.MSL(r.ThresholdElevationFeet),
			})

		case WaypointRecord:
			e.Push("waypoint " + r.Ident)
			if loc, err := coordinate(r.Latitude, r.Longitude); err != nil {
				e.Error(err)
			} else if r.Ident == "" {
				e.ErrorString("missing waypoint identifier")
			} else {
				b.AddWaypoint(&nav.Waypoint{
					Ident:       r.Ident,
					Description: r.Description,
					VFROnly:     r.VFROnly,
					Location:    loc,
					Variation:   r.Variation,
					Region:      util.Select(r.Airport != "", nav.TerminalArea(r.Airport), nav.Enroute()),
					Cycle:       cycle,
				})
			}
			e.Pop()
		}
	}

	if boundary != nil {
		b.AddError(errors.New(boundary.name + ": unterminated boundary sequence"))
	}
}

// boundarySequence tracks the in-progress boundary while consecutive
// segment records stream by. A nil receiver means no sequence is active.
type boundarySequence struct {
	name    string
	builder *nav.BoundaryBuilder
	count   int
	failed  bool
}

func (s *boundarySequence) add(seg BoundarySegmentRecord, b *nav.Builder) *boundarySequence {
	if s != nil && s.failed {
		// Swallow the rest of a sequence that already failed.
		if isSequenceEnd(seg.Via) {
			return nil
		}
		return s
	}

	rec, err := convertBoundarySegment(seg)
	if err != nil {
		b.ErrorLog().ErrorString("boundary %s: %v", seg.Name, err)
		if s == nil {
			s = &boundarySequence{name: seg.Name}
		}
		s.failed = true
		if rec.SequenceEnd {
			return nil
		}
		return s
	}

	if s == nil {
		s = &boundarySequence{name: seg.Name, builder: nav.NewBoundaryBuilder(rec), count: 1}
	} else {
		if err := s.builder.Add(rec); err != nil {
			b.ErrorLog().Error(err)
			s.failed = true
		}
		s.count++
	}

	if rec.SequenceEnd && !s.failed {
		if rec.Path != nav.PathCircle && s.count < 3 {
			b.ErrorLog().ErrorString("boundary %s: only %d records", s.name, s.count)
			return nil
		}
		b.AddAirspace(s.builder.Build())
		return nil
	}
	if rec.SequenceEnd {
		return nil
	}
	return s
}

// abandon reports an interrupted sequence, if one is active.
func (s *boundarySequence) abandon(b *nav.Builder) *boundarySequence {
	if s != nil && !s.failed {
		b.AddError(errors.New(s.name + ": boundary sequence interrupted"))
	}
	return nil
}

func isSequenceEnd(via string) bool {
	via = strings.TrimSpace(strings.ToUpper(via))
	return len(via) > 1 && strings.HasSuffix(via, "E")
}

func convertBoundarySegment(seg BoundarySegmentRecord) (nav.BoundaryRecord, error) {
	rec := nav.BoundaryRecord{
		Name:        seg.Name,
		Class:       seg.Class,
		ArcRadiusNM: seg.ArcDistanceNM,
		SequenceEnd: isSequenceEnd(seg.Via),
		Ceiling:     nav.Unlimited(),
		Floor:       nav.GroundLevel(),
	}

	via := strings.TrimSpace(strings.ToUpper(seg.Via))
	if rec.SequenceEnd {
		via = strings.TrimSuffix(via, "E")
	}
	switch via {
	case "G":
		rec.Path = nav.PathGreatCircle
	case "H":
		rec.Path = nav.PathRhumbLine
	case "R":
		rec.Path = nav.PathArcClockwise
	case "L":
		rec.Path = nav.PathArcCounterClockwise
	case "C":
		rec.Path = nav.PathCircle
	default:
		return rec, fmt.Errorf("%q: unknown boundary via code", seg.Via)
	}

	if seg.Ceiling != "" {
		var err error
		if rec.Ceiling, err = ParseVerticalLimit(seg.Ceiling); err != nil {
			return rec, err
		}
	}
	if seg.Floor != "" {
		var err error
		if rec.Floor, err = ParseVerticalLimit(seg.Floor); err != nil {
			return rec, err
		}
	}

	if seg.Latitude != nil && seg.Longitude != nil {
		loc, err := coordinate(*seg.Latitude, *seg.Longitude)
		if err != nil {
			return rec, err
		}
		rec.Location = &loc
	}
	if seg.ArcLatitude != nil && seg.ArcLongitude != nil {
		ctr, err := coordinate(*seg.ArcLatitude, *seg.ArcLongitude)
		if err != nil {
			return rec, err
		}
		rec.ArcCenter = &ctr
	}
	if rec.Location == nil && rec.ArcCenter == nil {
		return rec, errors.New("record with neither point nor arc center")
	}

	return rec, nil
}

func coordinate(lat, lon float64) (math.Coordinate, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return math.Coordinate{}, fmt.Errorf("(%f, %f): coordinate out of range", lat, lon)
	}
	return math.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func findStrip(strips []RunwayFeature, direction string) (RunwayFeature, bool) {
	for _, s := range strips {
		for _, d := range strings.Split(s.Designator, "/") {
			if d == direction {
				return s, true
			}
		}
	}
	return RunwayFeature{}, false
}
