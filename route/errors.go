// route/errors.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import "fmt"

// UnknownRunwayError reports a route word of the form EDDH33 where the
// airport is known but has no runway with that designator.
type UnknownRunwayError struct {
	Airport string
	Runway  string
}

func (e *UnknownRunwayError) Error() string {
	return fmt.Sprintf("%s: unknown runway at %s", e.Runway, e.Airport)
}

// AmbiguousWaypointError reports a VFR waypoint identifier that resolves
// to different waypoints in the two candidate terminal areas.
type AmbiguousWaypointError struct {
	Ident string
	AreaA string
	AreaB string
}

func (e *AmbiguousWaypointError) Error() string {
	return fmt.Sprintf("%s: ambiguous waypoint, defined in both %s and %s terminal areas",
		e.Ident, e.AreaA, e.AreaB)
}

// UnresolvedTokenError reports a route word that matched nothing at all.
type UnresolvedTokenError struct {
	Text string
}

func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("%s: unexpected route token", e.Text)
}

// UnknownIdentifierError reports an identifier that does not name a known
// airport, e.g. when setting an alternate.
type UnknownIdentifierError struct {
	Ident string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("%s: unknown airport", e.Ident)
}
