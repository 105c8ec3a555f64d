// Package index holds the in-memory vehicle index. An Index is built once
// per catalog load and immutable afterwards, so concurrent readers need no
// locking. Exact lookups on plate, VIN, and fleet code are hash lookups on
// normalized keys; driver, location, and make/model searches are fuzzy.
package index

import (
	"sort"
	"strings"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

// KeyKind selects which identifier an index lookup keys on.
type KeyKind string

const (
	KindPlate     KeyKind = "plate"
	KindVIN       KeyKind = "vin"
	KindNumber    KeyKind = "vehicle_number"
	KindDriver    KeyKind = "driver"
	KindLocation  KeyKind = "location"
	KindMakeModel KeyKind = "make_model"
)

// DefaultThreshold is the similarity floor for fuzzy lookups.
const DefaultThreshold = 0.6

// Match is one fuzzy lookup hit.
type Match struct {
	Vehicle domain.Vehicle
	Score   float64
}

// Index is an immutable multi-key vehicle index. Build returns a fully
// populated Index; there is no incremental update, reload builds a new one.
type Index struct {
	vehicles   []domain.Vehicle // catalog insertion order
	byPlate    map[string]int
	byVIN      map[string]int
	byNumber   map[string]int
	byStatus   map[domain.VehicleStatus][]int
	byLocation map[string][]int
}

// Build validates every vehicle and constructs the index. Plate, VIN, and
// fleet code must each be unique across the catalog; a duplicate fails the
// whole build so a bad catalog never half-replaces a good one.
func Build(vehicles []domain.Vehicle) (*Index, error) {
	ix := &Index{
		vehicles:   make([]domain.Vehicle, 0, len(vehicles)),
		byPlate:    make(map[string]int, len(vehicles)),
		byVIN:      make(map[string]int),
		byNumber:   make(map[string]int),
		byStatus:   make(map[domain.VehicleStatus][]int),
		byLocation: make(map[string][]int),
	}

	for _, v := range vehicles {
		if err := domain.ValidateVehicle(v); err != nil {
			return nil, err
		}
		i := len(ix.vehicles)

		plate := domain.NormalizePlate(v.LicensePlate)
		if _, dup := ix.byPlate[plate]; dup {
			return nil, domain.NewValidationError("license_plate", v.LicensePlate, domain.ErrDuplicateKey)
		}
		ix.byPlate[plate] = i

		if v.VIN != "" {
			vin := domain.NormalizeVIN(v.VIN)
			if _, dup := ix.byVIN[vin]; dup {
				return nil, domain.NewValidationError("vin", v.VIN, domain.ErrDuplicateKey)
			}
			ix.byVIN[vin] = i
		}
		if v.VehicleNumber != "" {
			num := domain.NormalizeVehicleNumber(v.VehicleNumber)
			if _, dup := ix.byNumber[num]; dup {
				return nil, domain.NewValidationError("id", v.VehicleNumber, domain.ErrDuplicateKey)
			}
			ix.byNumber[num] = i
		}

		if v.Status != "" {
			ix.byStatus[v.Status] = append(ix.byStatus[v.Status], i)
		}
		if v.Location != "" {
			loc := strings.ToLower(strings.TrimSpace(v.Location))
			ix.byLocation[loc] = append(ix.byLocation[loc], i)
		}
		ix.vehicles = append(ix.vehicles, v)
	}
	return ix, nil
}

// Len returns the number of indexed vehicles.
func (ix *Index) Len() int { return len(ix.vehicles) }

// Vehicles returns all vehicles in catalog insertion order. The slice is
// shared; callers must not mutate it.
func (ix *Index) Vehicles() []domain.Vehicle { return ix.vehicles }

// LookupExact finds the single vehicle keyed by a normalized identifier.
// Only plate, VIN, and fleet code support exact lookup.
func (ix *Index) LookupExact(kind KeyKind, value string) (domain.Vehicle, bool) {
	var i int
	var ok bool
	switch kind {
	case KindPlate:
		i, ok = ix.byPlate[domain.NormalizePlate(value)]
	case KindVIN:
		i, ok = ix.byVIN[domain.NormalizeVIN(value)]
	case KindNumber:
		i, ok = ix.byNumber[domain.NormalizeVehicleNumber(value)]
	}
	if !ok {
		return domain.Vehicle{}, false
	}
	return ix.vehicles[i], true
}

// LookupFuzzy ranks vehicles by string similarity of the chosen key against
// value. Hits below threshold are dropped; ties break by higher similarity
// first, then catalog insertion order.
func (ix *Index) LookupFuzzy(kind KeyKind, value string, threshold float64) []Match {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return nil
	}

	var matches []Match
	for _, v := range ix.vehicles {
		key := fuzzyKey(kind, v)
		if key == "" {
			continue
		}
		score := Similarity(needle, key)
		if score < threshold {
			continue
		}
		matches = append(matches, Match{Vehicle: v, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func fuzzyKey(kind KeyKind, v domain.Vehicle) string {
	switch kind {
	case KindDriver:
		if v.Driver == nil {
			return ""
		}
		return strings.ToLower(v.Driver.Name)
	case KindLocation:
		return strings.ToLower(v.Location)
	case KindMakeModel:
		return strings.ToLower(strings.TrimSpace(v.Make + " " + v.Model))
	case KindPlate:
		return domain.NormalizePlate(v.LicensePlate)
	case KindVIN:
		return strings.ToLower(v.VIN)
	case KindNumber:
		return strings.ToLower(v.VehicleNumber)
	}
	return ""
}

// ByStatus returns all vehicles with the given status, in insertion order.
func (ix *Index) ByStatus(s domain.VehicleStatus) []domain.Vehicle {
	return ix.collect(ix.byStatus[s])
}

// ByLocation returns all vehicles at the given location, case-insensitive.
func (ix *Index) ByLocation(loc string) []domain.Vehicle {
	return ix.collect(ix.byLocation[strings.ToLower(strings.TrimSpace(loc))])
}

func (ix *Index) collect(idxs []int) []domain.Vehicle {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]domain.Vehicle, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, ix.vehicles[i])
	}
	return out
}

// Similarity is an edit-distance ratio in [0,1]. Equal strings score 1,
// completely different strings approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
