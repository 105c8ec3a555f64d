package rules

import (
	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/index"
	"github.com/FleetlyAI/fleetly-mvp/engine/intent"
	"github.com/FleetlyAI/fleetly-mvp/engine/maint"
)

// RuleResult is the uniform envelope returned for every query. Failure is
// never an error across this boundary: "nothing found" is a normal result
// with Success=false and a human-readable reasoning string.
type RuleResult struct {
	Success    bool              `json:"success"`
	Operation  intent.Operation  `json:"operation"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
	Params     map[string]string `json:"params,omitempty"`
	Payload    Payload           `json:"payload,omitempty"`
}

// Payload is the closed set of result payload variants. Callers switch on
// the concrete type to handle every shape exhaustively.
type Payload interface {
	payloadKind() string
}

// VehicleFound carries the resolved vehicle for a search. MatchedBy names
// the key that resolved it; Score is 1 for exact matches.
type VehicleFound struct {
	Vehicle   domain.Vehicle `json:"vehicle"`
	MatchedBy index.KeyKind  `json:"matched_by"`
	Score     float64        `json:"score"`
}

// MaintenanceReport carries a vehicle's filtered history and derived summary.
type MaintenanceReport struct {
	Vehicle domain.Vehicle `json:"vehicle"`
	Report  maint.Report   `json:"report"`
}

// RepairDescriptor pre-fills a downstream repair form. Producing it never
// touches stored data.
type RepairDescriptor struct {
	Vehicle  domain.Vehicle `json:"vehicle"`
	Driver   *domain.Driver `json:"driver,omitempty"`
	Location string         `json:"location,omitempty"`
}

// HelpText is the constant help payload.
type HelpText struct {
	Text string `json:"text"`
}

// StatusText is the fleet status payload.
type StatusText struct {
	Text        string      `json:"text"`
	Total       int         `json:"total"`
	Active      int         `json:"active"`
	Maintenance int         `json:"maintenance"`
	Inactive    int         `json:"inactive"`
	Retired     int         `json:"retired"`
	Stats       maint.Stats `json:"stats"`
}

func (VehicleFound) payloadKind() string      { return "vehicle_found" }
func (MaintenanceReport) payloadKind() string { return "maintenance_report" }
func (RepairDescriptor) payloadKind() string  { return "repair_descriptor" }
func (HelpText) payloadKind() string          { return "help_text" }
func (StatusText) payloadKind() string        { return "status_text" }
