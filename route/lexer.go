// route/lexer.go
// Copyright(c) 2025 navcore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"github.com/skyroute/navcore/nav"
)

// wordKind classifies one whitespace-separated word of a route string.
// Classification is context-free; resolving scope-dependent words is the
// tokenizer's job.
type wordKind int

const (
	wordDirect wordKind = iota
	// wordNavAid is an exact match on a general-use waypoint or navaid.
	wordNavAid
	// wordVFRPlaceholder is an exact match that only found VFR-only
	// waypoints; which one is meant depends on the terminal scope, so
	// the match is carried along only as a fallback.
	wordVFRPlaceholder
	wordAirport
	wordSpeed
	wordLevel
	wordWind
	// wordUnresolved matched nothing; it may still name a VFR waypoint
	// resolvable once the terminal scope is known.
	wordUnresolved
)

type word struct {
	text string
	kind wordKind

	aid     nav.NavAid   // wordNavAid, wordVFRPlaceholder
	airport *nav.Airport // wordAirport
	runway  string       // wordAirport, optionally

	speedKts int
	level    nav.VerticalDistance
	wind     Wind
}

// needsScope reports whether the word is a waypoint candidate that the
// tokenizer must resolve against a terminal scope.
func (w word) needsScope() bool {
	return w.kind == wordVFRPlaceholder || w.kind == wordUnresolved
}

func lex(s string, store *nav.Store) ([]word, error) {
	var words []word
	for _, field := range strings.Fields(s) {
		w, err := classify(strings.ToUpper(field), store)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

func classify(text string, store *nav.Store) (word, error) {
	if text == "DCT" {
		return word{text: text, kind: wordDirect}, nil
	}

	if aid, ok := store.Find(text); ok {
		switch aid := aid.(type) {
		case *nav.Waypoint:
			if aid.VFROnly {
				return word{text: text, kind: wordVFRPlaceholder, aid: aid}, nil
			}
			return word{text: text, kind: wordNavAid, aid: aid}, nil
		case *nav.Airport:
			return word{text: text, kind: wordAirport, airport: aid}, nil
		}
	}

	if kts, ok, err := parseSpeed(text); err != nil {
		return word{}, err
	} else if ok {
		return word{text: text, kind: wordSpeed, speedKts: kts}, nil
	}

	if level, ok := parseLevel(text); ok {
		return word{text: text, kind: wordLevel, level: level}, nil
	}

	if wind, ok := parseWind(text); ok {
		return word{text: text, kind: wordWind, wind: wind}, nil
	}

	// EDDH23-style airport with runway selection.
	if len(text) > 4 {
		if ap, ok := store.Airport(text[:4]); ok {
			rw := text[4:]
			if _, ok := ap.Runway(rw); !ok {
				return word{}, &UnknownRunwayError{Airport: ap.ICAO, Runway: rw}
			}
			return word{text: text, kind: wordAirport, airport: ap, runway: rw}, nil
		}
	}

	return word{text: text, kind: wordUnresolved}, nil
}

const kmhPerKnot = 1.852

// parseSpeed recognizes ICAO cruise speed groups: N0107 is 107 knots,
// K0450 is 450 km/h. Mach groups (M082) are recognized but rejected,
// since converting Mach to TAS would need a temperature model.
func parseSpeed(text string) (int, bool, error) {
	if len(text) < 4 {
		return 0, false, nil
	}
	n, err := strconv.Atoi(text[1:])
	if err != nil {
		return 0, false, nil
	}

	switch {
	case text[0] == 'N' && len(text) == 5:
		return n, true, nil
	case text[0] == 'K' && len(text) == 5:
		return int(gomath.Round(float64(n) / kmhPerKnot)), true, nil
	case text[0] == 'M' && len(text) == 4:
		return 0, false, fmt.Errorf("%s: Mach cruise speed is not supported", text)
	}
	return 0, false, nil
}

// parseLevel recognizes ICAO level groups: F085/FL085 are flight levels,
// A0250 is an altitude in tens of feet (2500 ft), A025 in hundreds.
func parseLevel(text string) (nav.VerticalDistance, bool) {
	if digits, ok := strings.CutPrefix(text, "FL"); ok && len(digits) == 3 {
		if n, err := strconv.Atoi(digits); err == nil {
			return nav.FlightLevel(n), true
		}
	}
	if len(text) == 4 && text[0] == 'F' {
		if n, err := strconv.Atoi(text[1:]); err == nil {
			return nav.FlightLevel(n), true
		}
	}
	if text != "" && text[0] == 'A' {
		digits := text[1:]
		if n, err := strconv.Atoi(digits); err == nil {
			switch len(digits) {
			case 4:
				return nav.MSL(float64(n) * 10), true
			case 3:
				return nav.MSL(float64(n) * 100), true
			}
		}
	}
	return nav.VerticalDistance{}, false
}

// parseWind recognizes METAR-style wind groups like 27010KT: wind from
// 270 degrees true at 10 knots.
func parseWind(text string) (Wind, bool) {
	digits, ok := strings.CutSuffix(text, "KT")
	if !ok || len(digits) != 5 {
		return Wind{}, false
	}
	dir, err1 := strconv.Atoi(digits[:3])
	spd, err2 := strconv.Atoi(digits[3:])
	if err1 != nil || err2 != nil || dir > 360 {
		return Wind{}, false
	}
	return Wind{DirectionDeg: float64(dir), SpeedKts: float64(spd)}, true
}
