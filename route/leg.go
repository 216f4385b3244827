// route/leg.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	gomath "math"
	"time"

	"github.com/skyroute/navcore/math"
	"github.com/skyroute/navcore/nav"
)

// Wind is the wind in effect on a leg: the true direction it blows from
// and its speed.
type Wind struct {
	DirectionDeg float64
	SpeedKts     float64
}

// Leg is one edge of a decoded route. The navigation fields (bearing,
// wind correction, ground speed, headings, time enroute) are derived once
// in NewLeg and never recomputed.
type Leg struct {
	From nav.NavAid
	To   nav.NavAid

	Level  nav.VerticalDistance
	TASKts float64
	Wind   Wind

	DistanceNM         float64
	BearingDeg         float64
	MagneticCourseDeg  float64
	WindCorrectionDeg  float64
	GroundSpeedKts     float64
	HeadingDeg         float64
	MagneticHeadingDeg float64
	ETE                time.Duration
}

// NewLeg derives the leg's navigation solution from the classic wind
// triangle: the wind correction angle offsets drift from the crosswind
// component, and the ground speed is the along-track remainder after the
// headwind component. Magnetic values apply the departure fix's variation
// (east positive, subtracted from true).
func NewLeg(from, to nav.NavAid, level nav.VerticalDistance, tasKts float64, wind Wind) Leg {
	l := Leg{From: from, To: to, Level: level, TASKts: tasKts, Wind: wind}

	l.DistanceNM = from.FixLocation().DistanceNM(to.FixLocation())
	l.BearingDeg = from.FixLocation().BearingTo(to.FixLocation())
	l.MagneticCourseDeg = math.NormalizeHeading(l.BearingDeg - from.FixVariation())

	rel := math.Radians(wind.DirectionDeg - l.BearingDeg)
	crossKts := wind.SpeedKts * gomath.Sin(rel)
	headKts := wind.SpeedKts * gomath.Cos(rel)

	if tasKts > 0 {
		sin := gomath.Min(gomath.Max(crossKts/tasKts, -1), 1)
		wca := gomath.Asin(sin)
		l.WindCorrectionDeg = math.Degrees(wca)
		l.GroundSpeedKts = tasKts*gomath.Cos(wca) - headKts
	}

	l.HeadingDeg = math.NormalizeHeading(l.BearingDeg + l.WindCorrectionDeg)
	l.MagneticHeadingDeg = math.NormalizeHeading(l.HeadingDeg - from.FixVariation())

	if l.GroundSpeedKts > 0 {
		l.ETE = time.Duration(l.DistanceNM / l.GroundSpeedKts * float64(time.Hour))
	}
	return l
}
