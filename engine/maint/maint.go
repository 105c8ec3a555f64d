// Package maint tracks per-vehicle maintenance and fault history and derives
// reports, overdue-service alerts, and fleet-wide cost statistics. A Tracker
// is an immutable snapshot keyed by normalized license plate; reload builds
// a new one alongside the vehicle index.
package maint

import (
	"sort"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/pkg/fn"
)

// Service intervals between recurring maintenance types.
var serviceIntervals = map[string]time.Duration{
	"oil_change":             90 * 24 * time.Hour,
	"brake_inspection":       180 * 24 * time.Hour,
	"tire_rotation":          120 * 24 * time.Hour,
	"engine_service":         365 * 24 * time.Hour,
	"transmission_service":   730 * 24 * time.Hour,
	"general_inspection":     180 * 24 * time.Hour,
	"preventive_maintenance": 90 * 24 * time.Hour,
}

// Typical cost per service type, used to estimate upcoming spend.
var serviceCosts = map[string]float64{
	"oil_change":             85,
	"brake_inspection":       120,
	"tire_rotation":          25,
	"engine_service":         300,
	"transmission_service":   450,
	"general_inspection":     150,
	"preventive_maintenance": 200,
}

// Tracker is a read-only view over maintenance records, grouped by vehicle.
type Tracker struct {
	byPlate map[string][]domain.MaintenanceRecord // most recent first
	total   int
}

// NewTracker groups records by normalized plate and orders each vehicle's
// history most recent first. Records without a usable plate are dropped.
func NewTracker(records []domain.MaintenanceRecord) *Tracker {
	keyed := fn.Filter(records, func(r domain.MaintenanceRecord) bool {
		return domain.NormalizePlate(r.LicensePlate) != ""
	})
	t := &Tracker{
		byPlate: fn.GroupBy(keyed, func(r domain.MaintenanceRecord) string {
			return domain.NormalizePlate(r.LicensePlate)
		}),
		total: len(keyed),
	}
	for key := range t.byPlate {
		rs := t.byPlate[key]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Date.After(rs[j].Date) })
	}
	return t
}

// Len returns the total record count across all vehicles.
func (t *Tracker) Len() int { return t.total }

// History returns a vehicle's full record list, most recent first. The slice
// is shared; callers must not mutate it.
func (t *Tracker) History(plate string) []domain.MaintenanceRecord {
	return t.byPlate[domain.NormalizePlate(plate)]
}

// Report is the derived maintenance summary for one vehicle.
type Report struct {
	Records     []domain.MaintenanceRecord `json:"records"` // most recent first
	TotalCost   float64                    `json:"total_cost"`
	NextService *NextService               `json:"next_service,omitempty"`
}

// NextService estimates the soonest upcoming service from the last time each
// recurring service type was performed.
type NextService struct {
	Type          string    `json:"type"`
	Due           time.Time `json:"due"`
	EstimatedCost float64   `json:"estimated_cost"`
}

// BuildReport filters a vehicle's history to the window [from, to] (zero
// bounds mean unbounded) and derives totals. Records at exactly the window
// bounds are included.
func (t *Tracker) BuildReport(plate string, from, to time.Time) Report {
	var rep Report
	for _, r := range t.History(plate) {
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		rep.Records = append(rep.Records, r)
		rep.TotalCost += r.Cost
	}
	rep.NextService = t.nextService(plate)
	return rep
}

// nextService looks at the last occurrence of each recurring service type in
// the vehicle's full history and returns the one due soonest.
func (t *Tracker) nextService(plate string) *NextService {
	lastByType := make(map[string]time.Time)
	for _, r := range t.History(plate) {
		if _, recurring := serviceIntervals[r.Type]; !recurring {
			continue
		}
		if cur, ok := lastByType[r.Type]; !ok || r.Date.After(cur) {
			lastByType[r.Type] = r.Date
		}
	}
	var next *NextService
	for typ, last := range lastByType {
		due := last.Add(serviceIntervals[typ])
		if next == nil || due.Before(next.Due) || (due.Equal(next.Due) && typ < next.Type) {
			next = &NextService{Type: typ, Due: due, EstimatedCost: serviceCosts[typ]}
		}
	}
	return next
}

// Alert flags a vehicle whose recurring service is due or overdue.
type Alert struct {
	LicensePlate string    `json:"license_plate"`
	ServiceType  string    `json:"service_type"`
	Due          time.Time `json:"due"`
	OverdueDays  int       `json:"overdue_days"`
	Priority     string    `json:"priority"` // high, medium, low
}

// alertHorizon is how far ahead of the due date an alert is raised.
const alertHorizon = 14 * 24 * time.Hour

// Alerts scans every vehicle for services due within the horizon or already
// overdue. Output is ordered most overdue first, then by plate for stability.
func (t *Tracker) Alerts(now time.Time) []Alert {
	var alerts []Alert
	for plate := range t.byPlate {
		ns := t.nextService(plate)
		if ns == nil || ns.Due.After(now.Add(alertHorizon)) {
			continue
		}
		overdue := 0
		if ns.Due.Before(now) {
			overdue = int(now.Sub(ns.Due).Hours() / 24)
		}
		alerts = append(alerts, Alert{
			LicensePlate: plate,
			ServiceType:  ns.Type,
			Due:          ns.Due,
			OverdueDays:  overdue,
			Priority:     priority(overdue, ns.Due, now),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].OverdueDays != alerts[j].OverdueDays {
			return alerts[i].OverdueDays > alerts[j].OverdueDays
		}
		return alerts[i].LicensePlate < alerts[j].LicensePlate
	})
	return alerts
}

func priority(overdueDays int, due, now time.Time) string {
	switch {
	case overdueDays > 30:
		return "high"
	case due.Before(now):
		return "medium"
	default:
		return "low"
	}
}

// Stats is a fleet-wide maintenance cost rollup.
type Stats struct {
	TotalRecords      int     `json:"total_records"`
	VehiclesTracked   int     `json:"vehicles_tracked"`
	Cost30Days        float64 `json:"cost_30_days"`
	Cost90Days        float64 `json:"cost_90_days"`
	Cost365Days       float64 `json:"cost_365_days"`
	MostCommonService string  `json:"most_common_service,omitempty"`
}

// FleetStats aggregates spend over trailing 30/90/365-day windows and finds
// the most frequent service type. Type ties break alphabetically.
func (t *Tracker) FleetStats(now time.Time) Stats {
	s := Stats{TotalRecords: t.total, VehiclesTracked: len(t.byPlate)}
	counts := make(map[string]int)
	for _, rs := range t.byPlate {
		for _, r := range rs {
			age := now.Sub(r.Date)
			if age < 0 {
				continue
			}
			if age <= 30*24*time.Hour {
				s.Cost30Days += r.Cost
			}
			if age <= 90*24*time.Hour {
				s.Cost90Days += r.Cost
			}
			if age <= 365*24*time.Hour {
				s.Cost365Days += r.Cost
			}
			if r.Type != "" {
				counts[r.Type]++
			}
		}
	}
	best := 0
	for typ, n := range counts {
		if n > best || (n == best && typ < s.MostCommonService) {
			best = n
			s.MostCommonService = typ
		}
	}
	return s
}

// FaultSummary groups a vehicle's fault records by type and severity. An
// empty plate summarizes the whole fleet.
type FaultSummary struct {
	Total           int            `json:"total"`
	ByType          map[string]int `json:"by_type,omitempty"`
	BySeverity      map[string]int `json:"by_severity,omitempty"`
	TotalRepairCost float64        `json:"total_repair_cost"`
}

// Faults builds a fault summary for one vehicle, or fleet-wide when plate is
// empty.
func (t *Tracker) Faults(plate string) FaultSummary {
	sum := FaultSummary{ByType: make(map[string]int), BySeverity: make(map[string]int)}
	add := func(rs []domain.MaintenanceRecord) {
		for _, r := range rs {
			if !r.IsFault() {
				continue
			}
			sum.Total++
			sum.ByType[r.FaultType]++
			if r.FaultSeverity != "" {
				sum.BySeverity[r.FaultSeverity]++
			}
			sum.TotalRepairCost += r.RepairCost
		}
	}
	if plate != "" {
		add(t.History(plate))
		return sum
	}
	for _, rs := range t.byPlate {
		add(rs)
	}
	return sum
}
