// route/route.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route decodes compact textual route strings ("N0107 A0250 EDDH
// N2 N1 DCT EDHL W") into resolved tokens and legs. Decoding is two
// phases: a context-free lexer classifies each word, then a single
// stateful pass resolves terminal-scoped VFR waypoints, tracks cruise
// speed and level, and chains the fixes into legs.
package route

import (
	"github.com/skyroute/navcore/log"
	"github.com/skyroute/navcore/nav"
)

type Route struct {
	store *nav.Store
	lg    *log.Logger

	tokens []Token
	legs   []Leg

	origin      *nav.Airport
	destination *nav.Airport
	depRunway   string
	arrRunway   string
	alternate   *nav.Airport

	cruiseSpeedKts int
	hasCruiseSpeed bool
	cruiseLevel    nav.VerticalDistance
	hasCruiseLevel bool
}

func New(store *nav.Store, lg *log.Logger) *Route {
	return &Route{store: store, lg: lg}
}

func (r *Route) Tokens() []Token { return r.tokens }

func (r *Route) Legs() []Leg { return r.legs }

func (r *Route) Origin() *nav.Airport { return r.origin }

func (r *Route) Destination() *nav.Airport { return r.destination }

// DepartureRunway returns the origin's selected takeoff runway
// designator, empty if none was given.
func (r *Route) DepartureRunway() string { return r.depRunway }

func (r *Route) ArrivalRunway() string { return r.arrRunway }

func (r *Route) Alternate() *nav.Airport { return r.alternate }

func (r *Route) CruiseSpeedKts() (int, bool) {
	return r.cruiseSpeedKts, r.hasCruiseSpeed
}

func (r *Route) CruiseLevel() (nav.VerticalDistance, bool) {
	return r.cruiseLevel, r.hasCruiseLevel
}

// SetAlternate resolves the alternate airport by identifier.
func (r *Route) SetAlternate(ident string) error {
	ap, ok := r.store.Airport(ident)
	if !ok {
		return &UnknownIdentifierError{Ident: ident}
	}
	r.alternate = ap
	return nil
}

// decoded accumulates the result of one decode pass; it only replaces the
// route's state once the whole string has resolved, so a failed decode
// leaves no partial route behind.
type decoded struct {
	tokens []Token
	legs   []Leg

	origin      *nav.Airport
	destination *nav.Airport
	depRunway   string
	arrRunway   string

	cruiseSpeedKts int
	hasCruiseSpeed bool
	cruiseLevel    nav.VerticalDistance
	hasCruiseLevel bool
}

// Decode parses the route string and replaces the route's previous
// contents entirely. Any error aborts the decode and leaves the route
// unchanged.
func (r *Route) Decode(s string) error {
	words, err := lex(s, r.store)
	if err != nil {
		return err
	}

	d, err := r.tokenize(words)
	if err != nil {
		return err
	}
	d.buildLegs()

	r.tokens = d.tokens
	r.legs = d.legs
	r.origin = d.origin
	r.destination = d.destination
	r.depRunway = d.depRunway
	r.arrRunway = d.arrRunway
	r.cruiseSpeedKts, r.hasCruiseSpeed = d.cruiseSpeedKts, d.hasCruiseSpeed
	r.cruiseLevel, r.hasCruiseLevel = d.cruiseLevel, d.hasCruiseLevel
	r.alternate = nil

	r.lg.Debugf("decoded %q: %d tokens, %d legs", s, len(r.tokens), len(r.legs))
	return nil
}

// tokenize is the stateful second pass. The current terminal scope is the
// most recently seen airport word, whether or not that word was emitted;
// a DCT clears it, since directs are assumed to exit any ad-hoc local
// routing.
func (r *Route) tokenize(words []word) (*decoded, error) {
	d := &decoded{}
	var scope *nav.Airport

	for i, w := range words {
		switch w.kind {
		case wordDirect:
			d.emit(Token{Kind: TokenDirect, Text: w.text})
			scope = nil

		case wordSpeed:
			d.emit(Token{Kind: TokenSpeed, Text: w.text, SpeedKts: w.speedKts})
			if !d.hasCruiseSpeed {
				d.cruiseSpeedKts, d.hasCruiseSpeed = w.speedKts, true
			}

		case wordLevel:
			d.emit(Token{Kind: TokenLevel, Text: w.text, Level: w.level})
			if !d.hasCruiseLevel {
				d.cruiseLevel, d.hasCruiseLevel = w.level, true
			}

		case wordWind:
			d.emit(Token{Kind: TokenWind, Text: w.text, Wind: w.wind})

		case wordNavAid:
			d.emit(Token{Kind: TokenNavAid, Text: w.text, NavAid: w.aid})

		case wordAirport:
			d.airportWord(words, i, w)
			scope = w.airport

		case wordVFRPlaceholder, wordUnresolved:
			aid, err := r.resolveWaypoint(words, i, w, scope)
			if err != nil {
				return nil, err
			}
			d.emit(Token{Kind: TokenNavAid, Text: w.text, NavAid: aid})
		}
	}
	return d, nil
}

func (d *decoded) emit(t Token) {
	d.tokens = append(d.tokens, t)
}

// airportWord handles an airport route word. The first airport is always
// the origin. A later airport that directly follows a DCT and directly
// precedes a scope-needing waypoint only exists to scope that waypoint's
// lookup, so it is suppressed; any other later airport is a destination.
func (d *decoded) airportWord(words []word, i int, w word) {
	if d.origin == nil {
		d.origin = w.airport
		d.depRunway = w.runway
		d.emit(Token{Kind: TokenAirport, Text: w.text, Airport: w.airport, Runway: w.runway})
		return
	}

	scopeOnly := i > 0 && words[i-1].kind == wordDirect &&
		i+1 < len(words) && words[i+1].needsScope()
	if scopeOnly {
		return
	}

	d.destination = w.airport
	d.arrRunway = w.runway
	d.emit(Token{Kind: TokenAirport, Text: w.text, Airport: w.airport, Runway: w.runway})
}

// resolveWaypoint resolves a scope-needing waypoint word against the
// current terminal scope and a one-step lookahead scope (the next airport
// word before the next DCT). Unique resolution wins; resolution to two
// different waypoints is a hard ambiguity; no resolution at all falls
// back to the lexer's exact match, if it found one.
func (r *Route) resolveWaypoint(words []word, i int, w word, scope *nav.Airport) (nav.NavAid, error) {
	var lookahead *nav.Airport
	for _, next := range words[i+1:] {
		if next.kind == wordDirect {
			break
		}
		if next.kind == wordAirport {
			lookahead = next.airport
			break
		}
	}
	if lookahead == scope {
		lookahead = nil
	}

	var inScope, inLookahead nav.NavAid
	if scope != nil {
		inScope, _ = r.store.FindTerminalWaypoint(scope.ICAO, w.text)
	}
	if lookahead != nil {
		inLookahead, _ = r.store.FindTerminalWaypoint(lookahead.ICAO, w.text)
	}

	switch {
	case inScope != nil && inLookahead != nil:
		if inScope != inLookahead {
			return nil, &AmbiguousWaypointError{Ident: w.text, AreaA: scope.ICAO, AreaB: lookahead.ICAO}
		}
		return inScope, nil
	case inScope != nil:
		return inScope, nil
	case inLookahead != nil:
		return inLookahead, nil
	case w.aid != nil:
		// Best effort: the word named some waypoint somewhere in the
		// data, just not in either candidate scope. Duplicate-named
		// enroute VFR reporting points make this genuinely ambiguous;
		// the lexer's first match is accepted regardless.
		return w.aid, nil
	default:
		return nil, &UnresolvedTokenError{Text: w.text}
	}
}

// buildLegs chains the token stream's fixes into legs, carrying the
// speed, level, and wind in effect at each point along the stream.
func (d *decoded) buildLegs() {
	var from nav.NavAid
	speed := float64(d.cruiseSpeedKts)
	level := d.cruiseLevel
	var wind Wind

	for _, t := range d.tokens {
		switch t.Kind {
		case TokenSpeed:
			speed = float64(t.SpeedKts)
		case TokenLevel:
			level = t.Level
		case TokenWind:
			wind = t.Wind
		case TokenNavAid, TokenAirport:
			fix := t.fix()
			if from != nil {
				d.legs = append(d.legs, NewLeg(from, fix, level, speed, wind))
			}
			from = fix
		}
	}
}
