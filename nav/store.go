// nav/store.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"

	"github.com/skyroute/navcore/log"
	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/util"
)

// Builder accumulates entities for one partition and finalizes them with
// Build. Runways may arrive before their airport; they are parked and
// attached when the partition is built. Per-record conversion errors are
// collected rather than aborting the load, so one bad record in a large
// dataset doesn't take the rest down with it.
type Builder struct {
	id    string
	cycle *Cycle

	airports  map[string]*Airport
	waypoints []*Waypoint
	airspaces []*Airspace

	// Runways whose airport hasn't been added yet, keyed by airport
	// identifier.
	pending map[string][]Runway

	elog  util.ErrorLogger
	built bool
}

func NewBuilder(id string, cycle *Cycle) *Builder {
	return &Builder{
		id:       id,
		cycle:    cycle,
		airports: make(map[string]*Airport),
		pending:  make(map[string][]Runway),
	}
}

// ErrorLog exposes the builder's error accumulator so that loaders can
// Push/Pop context around the records they convert.
func (b *Builder) ErrorLog() *util.ErrorLogger {
	return &b.elog
}

func (b *Builder) AddError(err error) {
	b.elog.Error(err)
}

func (b *Builder) AddAirport(ap *Airport) {
	b.checkUsable()
	if _, ok := b.airports[ap.ICAO]; ok {
		b.elog.ErrorString("%s: duplicate airport", ap.ICAO)
		return
	}
	b.airports[ap.ICAO] = ap
}

// AddRunway attaches a runway to its airport, or parks it if the airport
// hasn't been added yet.
func (b *Builder) AddRunway(icao string, rw Runway) {
	b.checkUsable()
	rw.Airport = icao
	if ap, ok := b.airports[icao]; ok {
		ap.Runways = append(ap.Runways, rw)
	} else {
		b.pending[icao] = append(b.pending[icao], rw)
	}
}

func (b *Builder) AddWaypoint(wp *Waypoint) {
	b.checkUsable()
	b.waypoints = append(b.waypoints, wp)
}

func (b *Builder) AddAirspace(a *Airspace) {
	b.checkUsable()
	b.airspaces = append(b.airspaces, a)
}

func (b *Builder) checkUsable() {
	if b.built {
		panic("nav.Builder used after Build")
	}
}

// Build attaches any parked runways to their now-known airports and
// returns the finished immutable partition. The builder must not be used
// again afterward.
func (b *Builder) Build() *Partition {
	b.checkUsable()
	b.built = true

	for _, icao := range util.SortedMapKeys(b.pending) {
		if ap, ok := b.airports[icao]; ok {
			ap.Runways = append(ap.Runways, b.pending[icao]...)
		} else {
			for _, rw := range b.pending[icao] {
				b.elog.ErrorString("runway %s: unknown airport %s", rw.Designator, icao)
			}
		}
	}

	return &Partition{
		ID:        b.id,
		Cycle:     b.cycle,
		Airports:  util.DuplicateMap(b.airports),
		Waypoints: b.waypoints,
		Airspaces: b.airspaces,
		Errors:    util.DuplicateSlice(b.elog.Errors()),
	}
}

// Partition is one unit of loaded data, typically a single source file or
// data cycle. Partitions are appended to and removed from a Store
// wholesale; their entities are never edited after Build.
type Partition struct {
	ID        string
	Cycle     *Cycle
	Airports  map[string]*Airport
	Waypoints []*Waypoint
	Airspaces []*Airspace
	Errors    []string
}

// Nearby is the result of a combined spatial query: the airspaces whose
// polygon contains the query point and the navaids within the query
// radius. Neither slice carries an ordering guarantee.
type Nearby struct {
	Airspaces []*Airspace
	NavAids   []NavAid
}

const findCacheSize = 4096

// Store owns the current set of partitions and the spatial indices and
// lookup tables derived from them. Appending or removing a partition
// rebuilds everything derived; there is no incremental index maintenance.
// Partition changes are rare (loading a new data cycle), so the simple
// full rebuild wins over update latency.
type Store struct {
	lg *log.Logger

	partitions map[string]*Partition

	// Derived from the partitions on every reindex.
	airports  map[string]*Airport
	waypoints map[string][]*Waypoint
	airspaces []*Airspace
	index     *spatialIndex

	// Identifier lookups cluster heavily on a few fixes while a route is
	// being decoded; cache them. Purged on reindex.
	cache *lru.Cache[string, NavAid]
}

func NewStore(lg *log.Logger) *Store {
	cache, err := lru.New[string, NavAid](findCacheSize)
	if err != nil {
		panic("lru.New: " + err.Error())
	}
	s := &Store{
		lg:         lg,
		partitions: make(map[string]*Partition),
		cache:      cache,
	}
	s.reindex()
	return s
}

// Append adds a partition to the store and rebuilds the derived state.
func (s *Store) Append(p *Partition) {
	if _, ok := s.partitions[p.ID]; ok {
		s.lg.Warnf("%s: replacing existing partition", p.ID)
	}
	s.partitions[p.ID] = p
	s.reindex()
}

// Remove drops the partition with the given id, returning false if no
// such partition is loaded.
func (s *Store) Remove(id string) bool {
	if _, ok := s.partitions[id]; !ok {
		return false
	}
	delete(s.partitions, id)
	s.reindex()
	return true
}

// ExpiredPartitions returns the partitions whose AIRAC cycle validity
// window has lapsed as of now. Partitions without cycle metadata are
// never considered expired.
func (s *Store) ExpiredPartitions(now time.Time) []*Partition {
	parts := util.MapSlice(util.SortedMapKeys(s.partitions),
		func(id string) *Partition { return s.partitions[id] })
	return util.FilterSlice(parts, func(p *Partition) bool {
		return p.Cycle != nil && p.Cycle.Expired(now)
	})
}

func (s *Store) reindex() {
	s.airports = make(map[string]*Airport)
	s.waypoints = make(map[string][]*Waypoint)
	s.airspaces = nil

	// Iterate partitions in sorted id order so that derived state is
	// deterministic regardless of append order.
	for _, id := range util.SortedMapKeys(s.partitions) {
		p := s.partitions[id]
		for _, icao := range util.SortedMapKeys(p.Airports) {
			if _, ok := s.airports[icao]; ok {
				s.lg.Warnf("%s: shadowed by airport in partition %s", icao, id)
			}
			s.airports[icao] = p.Airports[icao]
		}
		for _, wp := range p.Waypoints {
			s.waypoints[wp.Ident] = append(s.waypoints[wp.Ident], wp)
		}
		s.airspaces = append(s.airspaces, p.Airspaces...)
	}

	var navaids []NavAid
	for _, icao := range util.SortedMapKeys(s.airports) {
		navaids = append(navaids, s.airports[icao])
	}
	for _, ident := range util.SortedMapKeys(s.waypoints) {
		for _, wp := range s.waypoints[ident] {
			navaids = append(navaids, wp)
		}
	}
	s.index = newSpatialIndex(s.airspaces, navaids)

	s.cache.Purge()
	s.lg.Debugf("reindexed: %d airports, %d waypoint idents, %d airspaces",
		len(s.airports), len(s.waypoints), len(s.airspaces))
}

// Airport returns the airport with the given identifier.
func (s *Store) Airport(icao string) (*Airport, bool) {
	ap, ok := s.airports[icao]
	return ap, ok
}

// Find resolves an identifier to a navaid, searching waypoints before
// airports. When several waypoints share the identifier, a general-use
// waypoint is preferred over VFR-only terminal points; beyond that the
// first in partition order wins.
func (s *Store) Find(ident string) (NavAid, bool) {
	if aid, ok := s.cache.Get(ident); ok {
		return aid, true
	}

	var found NavAid
	if wps := s.waypoints[ident]; len(wps) > 0 {
		found = wps[0]
		for _, wp := range wps {
			if !wp.VFROnly {
				found = wp
				break
			}
		}
	} else if ap, ok := s.airports[ident]; ok {
		found = ap
	} else {
		return nil, false
	}

	s.cache.Add(ident, found)
	return found, true
}

// FindTerminalWaypoint resolves a fix identifier within one airport's
// terminal area.
func (s *Store) FindTerminalWaypoint(icao, ident string) (NavAid, bool) {
	for _, wp := range s.waypoints[ident] {
		if wp.Region == TerminalArea(icao) {
			return wp, true
		}
	}
	return nil, false
}

// At returns the airspaces whose polygon contains the point (vertical
// limits unchecked) and the navaids within radiusNM of it.
func (s *Store) At(c math.Coordinate, radiusNM float64) Nearby {
	return Nearby{
		Airspaces: s.index.AirspacesAt(c),
		NavAids:   s.index.NavAidsWithinRadius(c, radiusNM),
	}
}

// AirspacesIntersecting returns the airspaces whose bounding box overlaps
// b; a cheap pre-filter for exact geometry tests.
func (s *Store) AirspacesIntersecting(b orb.Bound) []*Airspace {
	return s.index.AirspacesIntersecting(b)
}
