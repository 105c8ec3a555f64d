// Package extract pulls structured identifiers out of free-form fleet queries
// using regex patterns. A query can mention a license plate, a VIN, a short
// fleet code, and a reporting time window; when candidate spans overlap, the
// more specific identifier wins (VIN over plate over fleet code).
package extract

import (
	"regexp"
	"sort"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

// Params is everything structurally extracted from one query.
type Params struct {
	Plate         string     `json:"plate,omitempty"`    // normalized, digits only
	PlateRaw      string     `json:"plate_raw,omitempty"` // as it appeared
	VIN           string     `json:"vin,omitempty"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`
	TimeRange     *TimeRange `json:"time_range,omitempty"`
	Malformed     []string   `json:"malformed,omitempty"` // near-miss identifier tokens
}

// Empty reports whether no identifier of any kind was extracted.
func (p Params) Empty() bool {
	return p.Plate == "" && p.VIN == "" && p.VehicleNumber == ""
}

// TimeRange is a half-open reporting window [From, To).
type TimeRange struct {
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Label string    `json:"label"` // e.g. "last_month", "last_3_months"
}

// Identifier patterns. VIN is checked first because a 17-char VIN contains
// digit runs that would otherwise read as plates or fleet codes.
var (
	vinRe = regexp.MustCompile(`(?i)\b[A-HJ-NPR-Z0-9]{17}\b`)

	// Israeli plate: NN-NNN-NN with dash or space separators, or 6-8 bare digits.
	plateGroupedRe = regexp.MustCompile(`\b\d{2}[- ]\d{3}[- ]\d{2}\b`)
	plateBareRe    = regexp.MustCompile(`\b\d{6,8}\b`)

	// Fleet code: 1-3 letter prefix, 3-4 digits, e.g. V001 or TRK1234.
	fleetCodeRe = regexp.MustCompile(`\b[A-Za-z]{1,3}\d{3,4}\b`)

	// Near-miss plates: grouped digits with wrong group sizes, or bare digit
	// runs just outside the 6-8 range. Years are not plates.
	malformedGroupedRe = regexp.MustCompile(`\b\d{1,3}-\d{1,4}-\d{1,3}\b`)
	malformedBareRe    = regexp.MustCompile(`\b\d{5}\b|\b\d{9,12}\b`)
)

type span struct {
	start, end int
	kind       int // higher wins on overlap
	text       string
}

const (
	kindFleetCode = iota + 1
	kindPlate
	kindVIN
)

// Identifiers extracts the plate, VIN, and fleet code mentioned in a query.
// At most one of each kind is returned; the first occurrence wins. Tokens
// that look like a mistyped plate are reported in Malformed instead of being
// silently dropped.
func Identifiers(query string) Params {
	var p Params
	if query == "" {
		return p
	}

	var spans []span
	for _, loc := range vinRe.FindAllStringIndex(query, -1) {
		spans = append(spans, span{loc[0], loc[1], kindVIN, query[loc[0]:loc[1]]})
	}
	for _, loc := range plateGroupedRe.FindAllStringIndex(query, -1) {
		spans = append(spans, span{loc[0], loc[1], kindPlate, query[loc[0]:loc[1]]})
	}
	for _, loc := range plateBareRe.FindAllStringIndex(query, -1) {
		spans = append(spans, span{loc[0], loc[1], kindPlate, query[loc[0]:loc[1]]})
	}
	for _, loc := range fleetCodeRe.FindAllStringIndex(query, -1) {
		spans = append(spans, span{loc[0], loc[1], kindFleetCode, query[loc[0]:loc[1]]})
	}

	// Higher-priority kinds claim their spans first; within a kind, earlier
	// occurrences first.
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].kind != spans[j].kind {
			return spans[i].kind > spans[j].kind
		}
		return spans[i].start < spans[j].start
	})

	var claimed []span
	for _, s := range spans {
		if overlapsAny(claimed, s) {
			continue
		}
		switch s.kind {
		case kindVIN:
			if p.VIN != "" {
				continue
			}
			p.VIN = domain.NormalizeVIN(s.text)
		case kindPlate:
			if p.Plate != "" {
				continue
			}
			p.PlateRaw = s.text
			p.Plate = domain.NormalizePlate(s.text)
		case kindFleetCode:
			if p.VehicleNumber != "" {
				continue
			}
			p.VehicleNumber = domain.NormalizeVehicleNumber(s.text)
		}
		claimed = append(claimed, s)
	}

	p.Malformed = malformedTokens(query, claimed)
	return p
}

// malformedTokens finds plate-like tokens outside claimed spans that fail the
// plate format, so callers can tell the user what went wrong.
func malformedTokens(query string, claimed []span) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(loc []int, grouped bool) {
		s := span{loc[0], loc[1], 0, query[loc[0]:loc[1]]}
		if overlapsAny(claimed, s) || seen[s.text] {
			return
		}
		// A grouped token here already failed the NN-NNN-NN form; a bare
		// digit run is only malformed when its length is off.
		if !grouped && domain.ValidPlate(domain.NormalizePlate(s.text)) {
			return
		}
		seen[s.text] = true
		out = append(out, s.text)
	}

	for _, loc := range malformedGroupedRe.FindAllStringIndex(query, -1) {
		add(loc, true)
	}
	for _, loc := range malformedBareRe.FindAllStringIndex(query, -1) {
		add(loc, false)
	}
	return out
}

func overlapsAny(claimed []span, s span) bool {
	for _, c := range claimed {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}
