// route/token.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import "github.com/skyroute/navcore/nav"

// TokenKind identifies one resolved route token. Airport words that only
// open a terminal scope for the waypoint that follows are suppressed and
// never appear in the token stream.
type TokenKind int

const (
	TokenDirect TokenKind = iota
	TokenNavAid
	TokenAirport
	TokenSpeed
	TokenLevel
	TokenWind
)

func (k TokenKind) String() string {
	switch k {
	case TokenDirect:
		return "direct"
	case TokenNavAid:
		return "navaid"
	case TokenAirport:
		return "airport"
	case TokenSpeed:
		return "speed"
	case TokenLevel:
		return "level"
	case TokenWind:
		return "wind"
	default:
		return "???"
	}
}

type Token struct {
	Kind TokenKind
	// Text is the route word the token came from.
	Text string

	NavAid   nav.NavAid   // TokenNavAid
	Airport  *nav.Airport // TokenAirport
	Runway   string       // TokenAirport, optionally
	SpeedKts int          // TokenSpeed
	Level    nav.VerticalDistance
	Wind     Wind
}

// fix returns the navaid the token contributes as a leg endpoint, or nil.
func (t Token) fix() nav.NavAid {
	switch t.Kind {
	case TokenNavAid:
		return t.NavAid
	case TokenAirport:
		return t.Airport
	default:
		return nil
	}
}
