// Package intent maps gazetteer tags and extracted identifiers to one of a
// fixed set of fleet operations. Classification is an ordered first-match
// walk, not parallel scoring, and the confidence values are a contract:
// callers and tests depend on the exact numbers.
package intent

import (
	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/extract"
	"github.com/FleetlyAI/fleetly-mvp/engine/gazetteer"
)

// Operation is the action a query requests.
type Operation string

const (
	OpFindVehicle  Operation = "FIND_VEHICLE"
	OpMaintReport  Operation = "GET_MAINT_REPORT"
	OpReportRepair Operation = "REPORT_REPAIR"
	OpHelp         Operation = "HELP"
	OpStatus       Operation = "STATUS"
	OpUnknown      Operation = "UNKNOWN"
)

// Confidence contract. Full pattern match with a well-formed identifier is
// 1.0, a pattern match missing its identifier is 0.5, a bare identifier with
// no intent verb is an implicit vehicle search at 0.7, and no match is 0.
const (
	ConfFull           = 1.0
	ConfBareIdentifier = 0.7
	ConfMissingID      = 0.5
	ConfNone           = 0.0
)

// Classification is the outcome of intent detection for one query.
type Classification struct {
	Operation  Operation `json:"operation"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
}

// Classify picks the operation for a tagged query. Evaluation order is the
// tie-break rule: repair beats maintenance beats search beats help/status,
// and an intent verb always beats a bare identifier.
func Classify(tags []gazetteer.Tag, params extract.Params) Classification {
	hasID := !params.Empty()
	malformed := len(params.Malformed) > 0

	switch {
	case gazetteer.HasCategory(tags, domain.CatRepairRequest):
		return withIdentifier(OpReportRepair, "matched repair phrase", hasID, malformed)

	case gazetteer.HasCategory(tags, domain.CatMaintenance):
		return withIdentifier(OpMaintReport, "matched maintenance phrase", hasID, malformed)

	case gazetteer.HasCategory(tags, domain.CatVehicleSearch):
		return withIdentifier(OpFindVehicle, "matched vehicle search phrase", hasID, malformed)

	case gazetteer.HasCategory(tags, domain.CatHelpCommands):
		return Classification{OpHelp, ConfFull, "matched help keyword"}

	case gazetteer.HasCategory(tags, domain.CatStatus):
		return Classification{OpStatus, ConfFull, "matched status keyword"}

	case hasID:
		return Classification{OpFindVehicle, ConfBareIdentifier, "bare identifier with no intent verb, implicit vehicle search"}

	case malformed:
		return Classification{OpFindVehicle, ConfMissingID, "identifier-shaped token failed normalization: " + params.Malformed[0]}

	default:
		return Classification{OpUnknown, ConfNone, "no pattern matched"}
	}
}

func withIdentifier(op Operation, reason string, hasID, malformed bool) Classification {
	switch {
	case hasID:
		return Classification{op, ConfFull, reason + " with identifier"}
	case malformed:
		return Classification{op, ConfMissingID, reason + ", identifier failed normalization"}
	default:
		return Classification{op, ConfMissingID, reason + ", no identifier"}
	}
}
