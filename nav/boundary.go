// nav/boundary.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"errors"
	gomath "math"

	"github.com/paulmach/orb"

	"github.com/skyroute/navcore/math"
)

// PathType describes how a boundary segment connects the previous
// boundary point to this one.
type PathType int

const (
	PathGreatCircle PathType = iota
	PathRhumbLine
	PathArcClockwise
	PathArcCounterClockwise
	// PathCircle is only valid as the sole segment of a boundary.
	PathCircle
)

func (p PathType) String() string {
	switch p {
	case PathGreatCircle:
		return "great circle"
	case PathRhumbLine:
		return "rhumb line"
	case PathArcClockwise:
		return "clockwise arc"
	case PathArcCounterClockwise:
		return "counter-clockwise arc"
	case PathCircle:
		return "circle"
	default:
		return "???"
	}
}

// BoundaryRecord is one record of an ordered boundary description, as
// delivered by the upstream record reader. The first record of a sequence
// carries the airspace metadata and the starting point; each following
// record describes the path from the previous point to Location. The
// last record of a sequence is flagged SequenceEnd.
type BoundaryRecord struct {
	Name    string
	Class   string
	Ceiling VerticalDistance
	Floor   VerticalDistance

	Path        PathType
	Location    *math.Coordinate
	ArcCenter   *math.Coordinate
	ArcRadiusNM float64
	SequenceEnd bool
}

// BoundarySegment is one resolved edge of an airspace boundary.
type BoundarySegment struct {
	Path        PathType
	End         math.Coordinate
	ArcCenter   math.Coordinate
	ArcRadiusNM float64
}

// Arcs are sampled at 6 points per quadrant of sweep; a full circle is
// rendered with 24 points.
const arcPointsPerQuadrant = 6

// BoundaryBuilder accumulates one boundary-record sequence into a closed
// Airspace polygon. Straight paths (great circle, rhumb line) contribute
// only their endpoint to the ring; the curvature difference between the
// two is not reflected in the polygon geometry. Arcs are interpolated
// from geodesic bearings around their center.
type BoundaryBuilder struct {
	name    string
	class   string
	ceiling VerticalDistance
	floor   VerticalDistance

	ring     orb.Ring
	segments []BoundarySegment
	prev     math.Coordinate
	done     bool
	built    bool
}

// NewBoundaryBuilder seeds a builder from the first record of a boundary
// sequence. A circle record describes the whole boundary on its own;
// every other first record just contributes the starting point.
func NewBoundaryBuilder(first BoundaryRecord) *BoundaryBuilder {
	b := &BoundaryBuilder{
		name:    first.Name,
		class:   first.Class,
		ceiling: first.Ceiling,
		floor:   first.Floor,
	}

	if first.Path == PathCircle {
		b.addCircle(first)
		b.done = true
		return b
	}

	if first.Location == nil {
		panic("boundary sequence starting without a coordinate: " + first.Name)
	}
	b.prev = *first.Location
	b.ring = append(b.ring, b.prev.Point())
	b.done = first.SequenceEnd
	return b
}

// Add appends the next record of the sequence.
func (b *BoundaryBuilder) Add(rec BoundaryRecord) error {
	if b.built {
		panic("BoundaryBuilder used after Build")
	}
	if b.done {
		return errors.New("boundary record after end of sequence: " + b.name)
	}

	switch rec.Path {
	case PathGreatCircle, PathRhumbLine:
		if rec.Location == nil {
			panic("straight boundary record without a coordinate: " + b.name)
		}
		b.prev = *rec.Location
		b.ring = append(b.ring, b.prev.Point())
		b.segments = append(b.segments, BoundarySegment{Path: rec.Path, End: b.prev})

	case PathArcClockwise, PathArcCounterClockwise:
		b.addArc(rec)

	case PathCircle:
		return errors.New("circle must be the only segment of a boundary: " + b.name)
	}

	b.done = rec.SequenceEnd
	return nil
}

// Build closes the ring and returns the finished airspace. The builder
// must not be reused afterward.
func (b *BoundaryBuilder) Build() *Airspace {
	if b.built {
		panic("BoundaryBuilder used after Build")
	}
	b.built = true

	ring := b.ring
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		panic("degenerate airspace boundary: " + b.name)
	}

	return &Airspace{
		Name:     b.name,
		Class:    b.class,
		Ceiling:  b.ceiling,
		Floor:    b.floor,
		ring:     ring,
		segments: b.segments,
	}
}

// arcSweep returns the signed angular sweep from the start bearing to the
// end bearing, positive for clockwise arcs and negative for
// counter-clockwise, wrapping at 360 degrees.
func arcSweep(start, end float64, clockwise bool) float64 {
	sweep := end - start
	if clockwise {
		if sweep <= 0 {
			sweep += 360
		}
	} else {
		if sweep >= 0 {
			sweep -= 360
		}
	}
	return sweep
}

func (b *BoundaryBuilder) addArc(rec BoundaryRecord) {
	if rec.Location == nil || rec.ArcCenter == nil {
		panic("arc boundary record without endpoint or center: " + b.name)
	}
	center, end := *rec.ArcCenter, *rec.Location

	radius := rec.ArcRadiusNM
	if radius <= 0 {
		radius = center.DistanceNM(b.prev)
	}

	startBearing := center.BearingTo(b.prev)
	endBearing := center.BearingTo(end)
	sweep := arcSweep(startBearing, endBearing, rec.Path == PathArcClockwise)

	// Interpolated points between the start (already in the ring) and
	// the recorded endpoint, which is appended exactly.
	n := int(gomath.Ceil(gomath.Abs(sweep) / 90 * arcPointsPerQuadrant))
	n = max(n, 2)
	for i := 1; i < n; i++ {
		bearing := math.NormalizeHeading(startBearing + sweep*float64(i)/float64(n))
		b.ring = append(b.ring, center.Destination(bearing, radius).Point())
	}
	b.ring = append(b.ring, end.Point())

	b.prev = end
	b.segments = append(b.segments, BoundarySegment{
		Path:        rec.Path,
		End:         end,
		ArcCenter:   center,
		ArcRadiusNM: radius,
	})
}

func (b *BoundaryBuilder) addCircle(rec BoundaryRecord) {
	if rec.ArcCenter == nil {
		panic("circle boundary record without a center: " + b.name)
	}
	center := *rec.ArcCenter

	n := 4 * arcPointsPerQuadrant
	for i := 0; i < n; i++ {
		bearing := 360 * float64(i) / float64(n)
		b.ring = append(b.ring, center.Destination(bearing, rec.ArcRadiusNM).Point())
	}

	b.segments = append(b.segments, BoundarySegment{
		Path:        PathCircle,
		End:         center,
		ArcCenter:   center,
		ArcRadiusNM: rec.ArcRadiusNM,
	})
}
