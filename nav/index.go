// nav/index.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/util"
)

// The R-tree requires rectangles with non-zero extent, so point features
// and degenerate bounds are padded to this many degrees (~11 meters at
// the equator).
const rectEpsilon = 0.0001

// rect converts an orb.Bound into an rtreego rectangle.
func rect(b orb.Bound) rtreego.Rect {
	lengths := []float64{
		max(b.Max[0]-b.Min[0], rectEpsilon),
		max(b.Max[1]-b.Min[1], rectEpsilon),
	}
	r, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		panic("malformed index rectangle: " + err.Error())
	}
	return r
}

func pointRect(c math.Coordinate) rtreego.Rect {
	return rect(orb.Bound{Min: c.Point(), Max: c.Point()})
}

// indexedAirspace and indexedNavAid wrap entities for R-tree storage;
// rtreego keys on the Bounds() rectangle, computed once at insert time.
type indexedAirspace struct {
	airspace *Airspace
	r        rtreego.Rect
}

func (a *indexedAirspace) Bounds() rtreego.Rect { return a.r }

type indexedNavAid struct {
	aid NavAid
	r   rtreego.Rect
}

func (n *indexedNavAid) Bounds() rtreego.Rect { return n.r }

// spatialIndex holds the two R-trees over the store's current entities:
// one over airspace bounding boxes, one over navaid positions. It is a
// derived cache, rebuilt in full by bulk-loading whenever the store's
// partitions change.
type spatialIndex struct {
	airspaces *rtreego.Rtree
	navaids   *rtreego.Rtree
}

func newSpatialIndex(airspaces []*Airspace, navaids []NavAid) *spatialIndex {
	as := util.MapSlice(airspaces, func(a *Airspace) rtreego.Spatial {
		return &indexedAirspace{airspace: a, r: rect(a.Bound())}
	})
	na := util.MapSlice(navaids, func(aid NavAid) rtreego.Spatial {
		return &indexedNavAid{aid: aid, r: pointRect(aid.FixLocation())}
	})

	return &spatialIndex{
		airspaces: rtreego.NewTree(2, 25, 50, as...),
		navaids:   rtreego.NewTree(2, 25, 50, na...),
	}
}

// AirspacesAt returns every airspace whose polygon contains the point.
// The R-tree gives bounding-box candidates; each is confirmed with an
// exact ring-containment test.
func (idx *spatialIndex) AirspacesAt(c math.Coordinate) []*Airspace {
	var result []*Airspace
	for _, sp := range idx.airspaces.SearchIntersect(pointRect(c)) {
		if a := sp.(*indexedAirspace).airspace; a.Contains(c) {
			result = append(result, a)
		}
	}
	return result
}

// AirspacesIntersecting returns every airspace whose bounding box
// overlaps the query bound. This is a superset: callers needing exact
// geometry must follow with their own intersection test.
func (idx *spatialIndex) AirspacesIntersecting(b orb.Bound) []*Airspace {
	var result []*Airspace
	for _, sp := range idx.airspaces.SearchIntersect(rect(b)) {
		result = append(result, sp.(*indexedAirspace).airspace)
	}
	return result
}

// NavAidsWithinRadius returns all navaids within radiusNM nautical miles
// of center by geodesic distance. The radius is first widened into a
// degree box for the R-tree query and the candidates are then filtered by
// exact distance; the box alone admits corner points beyond the radius.
func (idx *spatialIndex) NavAidsWithinRadius(center math.Coordinate, radiusNM float64) []NavAid {
	var result []NavAid
	for _, sp := range idx.navaids.SearchIntersect(rect(math.DegreeBound(center, radiusNM))) {
		if aid := sp.(*indexedNavAid).aid; center.DistanceNM(aid.FixLocation()) <= radiusNM {
			result = append(result, aid)
		}
	}
	return result
}
