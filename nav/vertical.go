// nav/vertical.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	gomath "math"
)

// VerticalReference identifies the datum a vertical distance is measured
// against. Values are deliberately not resolved to a common datum when
// loaded; an airspace floor of "1500FT AGL" stays AGL.
type VerticalReference int

const (
	ReferenceGround VerticalReference = iota
	ReferenceAGL
	ReferenceMSL
	ReferenceQNH
	ReferenceFlightLevel
	ReferencePressure
	ReferenceUnlimited
)

func (r VerticalReference) String() string {
	switch r {
	case ReferenceGround:
		return "GND"
	case ReferenceAGL:
		return "AGL"
	case ReferenceMSL:
		return "MSL"
	case ReferenceQNH:
		return "QNH"
	case ReferenceFlightLevel:
		return "FL"
	case ReferencePressure:
		return "STD"
	case ReferenceUnlimited:
		return "UNL"
	default:
		return "???"
	}
}

// VerticalDistance is a vertical measurement tagged with its reference.
// Feet carries the magnitude for all references that have one; flight
// levels are stored in feet as well (FL195 -> 19500). It is zero for
// ReferenceGround and ReferenceUnlimited.
type VerticalDistance struct {
	Reference VerticalReference
	Feet      float64
}

func GroundLevel() VerticalDistance { return VerticalDistance{Reference: ReferenceGround} }

func Unlimited() VerticalDistance { return VerticalDistance{Reference: ReferenceUnlimited} }

func MSL(feet float64) VerticalDistance {
	return VerticalDistance{Reference: ReferenceMSL, Feet: feet}
}

func AGL(feet float64) VerticalDistance {
	return VerticalDistance{Reference: ReferenceAGL, Feet: feet}
}

func QNH(feet float64) VerticalDistance {
	return VerticalDistance{Reference: ReferenceQNH, Feet: feet}
}

func FlightLevel(level int) VerticalDistance {
	return VerticalDistance{Reference: ReferenceFlightLevel, Feet: float64(level) * 100}
}

func PressureAltitude(feet float64) VerticalDistance {
	return VerticalDistance{Reference: ReferencePressure, Feet: feet}
}

func (v VerticalDistance) String() string {
	switch v.Reference {
	case ReferenceGround, ReferenceUnlimited:
		return v.Reference.String()
	case ReferenceFlightLevel:
		return fmt.Sprintf("FL%03d", int(v.Feet/100))
	default:
		return fmt.Sprintf("%dFT %s", int(v.Feet), v.Reference)
	}
}

// ComparableFeet returns the distance expressed in feet on the shared
// ground/MSL ordering, with ground at 0 and unlimited at +Inf. AGL and
// pressure-altitude values cannot be ordered against the others without
// first resolving terrain elevation or the pressure datum, so for those
// the second return value is false.
func (v VerticalDistance) ComparableFeet() (float64, bool) {
	switch v.Reference {
	case ReferenceGround:
		return 0, true
	case ReferenceMSL, ReferenceQNH, ReferenceFlightLevel:
		return v.Feet, true
	case ReferenceUnlimited:
		return gomath.Inf(1), true
	default:
		return 0, false
	}
}

// Ratio returns v divided by o. Both operands must be on the comparable
// ordering and o must be nonzero; violating either is a programming error
// and panics.
func (v VerticalDistance) Ratio(o VerticalDistance) float64 {
	vf, vok := v.ComparableFeet()
	of, ook := o.ComparableFeet()
	if !vok || !ook {
		panic(fmt.Sprintf("Ratio of incompatible vertical references %s / %s", v, o))
	}
	if of == 0 {
		panic("Ratio with zero denominator " + o.String())
	}
	return vf / of
}
