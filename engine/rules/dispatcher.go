// Package rules orchestrates gazetteer tagging, intent classification,
// identifier extraction, and index lookups into a single process() entry
// point. The dispatcher holds the current catalog snapshot behind an atomic
// pointer: readers always see a fully built index, and reload swaps in a new
// snapshot without blocking queries in flight.
package rules

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/extract"
	"github.com/FleetlyAI/fleetly-mvp/engine/gazetteer"
	"github.com/FleetlyAI/fleetly-mvp/engine/index"
	"github.com/FleetlyAI/fleetly-mvp/engine/intent"
	"github.com/FleetlyAI/fleetly-mvp/engine/maint"
	"github.com/FleetlyAI/fleetly-mvp/pkg/vehiclenlp"
)

// Options configures dispatcher behaviour.
type Options struct {
	// FuzzyThreshold is the similarity floor for fallback searches.
	FuzzyThreshold float64
	// AmbiguousLimit caps how many candidates an ambiguous-match reasoning
	// string lists.
	AmbiguousLimit int
	// Now supplies the clock; injectable for deterministic results.
	Now func() time.Time
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold: index.DefaultThreshold,
		AmbiguousLimit: 3,
		Now:            time.Now,
	}
}

// snapshot is one immutable generation of catalog state. A query resolves
// entirely against the snapshot it loaded first, never a mix of two.
type snapshot struct {
	gaz     *gazetteer.Table
	index   *index.Index
	tracker *maint.Tracker
}

// Dispatcher is the query engine entry point. Safe for concurrent use.
type Dispatcher struct {
	snap   atomic.Pointer[snapshot]
	opts   Options
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with no catalog loaded. Queries before
// the first LoadCatalog return a not-loaded failure result.
func NewDispatcher(opts Options, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FuzzyThreshold == 0 {
		opts.FuzzyThreshold = index.DefaultThreshold
	}
	if opts.AmbiguousLimit == 0 {
		opts.AmbiguousLimit = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dispatcher{opts: opts, logger: logger}
}

// LoadCatalog builds and publishes the first snapshot. On any validation
// failure nothing is published and the error is returned.
func (d *Dispatcher) LoadCatalog(vehicles []domain.Vehicle, records []domain.MaintenanceRecord, gaz *gazetteer.Table) error {
	if gaz == nil {
		gaz = gazetteer.Default()
	}
	ix, err := index.Build(vehicles)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	d.snap.Store(&snapshot{gaz: gaz, index: ix, tracker: maint.NewTracker(records)})
	d.logger.Info("catalog loaded", "vehicles", ix.Len(), "maintenance_records", len(records))
	return nil
}

// ReloadCatalog builds a new snapshot and swaps it in atomically, keeping
// the current gazetteer. If the new catalog fails validation the previous
// snapshot stays in service and the reload is rejected.
func (d *Dispatcher) ReloadCatalog(vehicles []domain.Vehicle, records []domain.MaintenanceRecord) error {
	prev := d.snap.Load()
	if prev == nil {
		return d.LoadCatalog(vehicles, records, nil)
	}
	ix, err := index.Build(vehicles)
	if err != nil {
		d.logger.Warn("catalog reload rejected, previous snapshot stays in service", "err", err)
		return fmt.Errorf("reload catalog: %w", err)
	}
	d.snap.Store(&snapshot{gaz: prev.gaz, index: ix, tracker: maint.NewTracker(records)})
	d.logger.Info("catalog reloaded", "vehicles", ix.Len(), "maintenance_records", len(records))
	return nil
}

// Loaded reports whether a catalog snapshot is in service.
func (d *Dispatcher) Loaded() bool { return d.snap.Load() != nil }

// VehicleCount returns the number of vehicles in the current snapshot.
func (d *Dispatcher) VehicleCount() int {
	snap := d.snap.Load()
	if snap == nil {
		return 0
	}
	return snap.index.Len()
}

// MaintenanceAlerts returns the due and overdue services in the current
// snapshot, or nil when no catalog is loaded.
func (d *Dispatcher) MaintenanceAlerts() []maint.Alert {
	snap := d.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.tracker.Alerts(d.opts.Now())
}

// Process answers one query. It never returns an error: every outcome,
// including "nothing found", is a RuleResult with Success=false and a
// reasoning string.
func (d *Dispatcher) Process(query string, lang domain.Language) RuleResult {
	snap := d.snap.Load()
	if snap == nil {
		return RuleResult{
			Operation:  intent.OpUnknown,
			Confidence: intent.ConfNone,
			Reasoning:  "catalog not loaded",
		}
	}

	tags := snap.gaz.Tag(query, lang)
	params := extract.Extract(query, lang, d.opts.Now())
	cls := intent.Classify(tags, params)
	d.logger.Debug("query classified",
		"operation", cls.Operation, "confidence", cls.Confidence, "tags", len(tags))

	base := RuleResult{
		Operation:  cls.Operation,
		Confidence: cls.Confidence,
		Reasoning:  cls.Reasoning,
		Params:     paramsMap(params),
	}

	switch cls.Operation {
	case intent.OpFindVehicle:
		return d.findVehicle(snap, base, query, tags, params)
	case intent.OpMaintReport:
		return d.maintReport(snap, base, query, tags, params)
	case intent.OpReportRepair:
		return d.reportRepair(snap, base, query, tags, params)
	case intent.OpHelp:
		base.Success = true
		base.Payload = HelpText{Text: helpText(lang)}
		return base
	case intent.OpStatus:
		return d.fleetStatus(snap, base)
	default:
		return base // UNKNOWN, Success=false
	}
}

// resolution is the outcome of vehicle resolution for one query.
type resolution struct {
	vehicle   domain.Vehicle
	matchedBy index.KeyKind
	score     float64
	ok        bool
	checked   []string      // lookup kinds tried, for the miss reasoning
	ambiguous []index.Match // equally-similar top candidates, when > 1
}

// resolve finds the vehicle a query refers to. Exact identifiers are tried
// in specificity order, then the untagged remainder of the query is matched
// fuzzily against driver names, locations, and finally make/model mentions.
func (d *Dispatcher) resolve(snap *snapshot, query string, tags []gazetteer.Tag, params extract.Params) resolution {
	var res resolution

	exact := []struct {
		kind  index.KeyKind
		value string
		label string
	}{
		{index.KindVIN, params.VIN, "VIN"},
		{index.KindPlate, params.Plate, "license plate"},
		{index.KindNumber, params.VehicleNumber, "vehicle number"},
	}
	for _, e := range exact {
		if e.value == "" {
			continue
		}
		res.checked = append(res.checked, e.label)
		if v, ok := snap.index.LookupExact(e.kind, e.value); ok {
			res.vehicle, res.matchedBy, res.score, res.ok = v, e.kind, 1, true
			return res
		}
	}

	needle := freeText(query, tags, params)
	if needle == "" {
		return res
	}
	type probe struct {
		kind   index.KeyKind
		label  string
		needle string
	}
	probes := []probe{
		{index.KindDriver, "driver name", needle},
		{index.KindLocation, "location", needle},
	}
	if m := vehiclenlp.ExtractBest(needle); m != nil {
		probes = append(probes, probe{index.KindMakeModel, "make and model",
			strings.TrimSpace(m.Make + " " + m.Model)})
	}
	for _, p := range probes {
		res.checked = append(res.checked, p.label)
		matches := snap.index.LookupFuzzy(p.kind, p.needle, d.opts.FuzzyThreshold)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 && matches[0].Score == matches[1].Score {
			for _, m := range matches {
				if m.Score != matches[0].Score {
					break
				}
				res.ambiguous = append(res.ambiguous, m)
			}
			return res
		}
		m := matches[0]
		res.vehicle, res.matchedBy, res.score, res.ok = m.Vehicle, p.kind, m.Score, true
		return res
	}
	return res
}

func (d *Dispatcher) findVehicle(snap *snapshot, base RuleResult, query string, tags []gazetteer.Tag, params extract.Params) RuleResult {
	if params.Empty() && freeText(query, tags, params) == "" {
		base.Reasoning = missingIdentifierReasoning(params)
		return base
	}

	res := d.resolve(snap, query, tags, params)
	if res.ok {
		base.Success = true
		base.Reasoning = fmt.Sprintf("matched by %s", res.matchedBy)
		base.Payload = VehicleFound{Vehicle: res.vehicle, MatchedBy: res.matchedBy, Score: res.score}
		return base
	}
	base.Reasoning = res.failureReasoning(d.opts.AmbiguousLimit)
	return base
}

func (d *Dispatcher) maintReport(snap *snapshot, base RuleResult, query string, tags []gazetteer.Tag, params extract.Params) RuleResult {
	res := d.resolve(snap, query, tags, params)
	if !res.ok {
		if len(res.checked) == 0 {
			base.Reasoning = missingIdentifierReasoning(params)
		} else {
			base.Reasoning = res.failureReasoning(d.opts.AmbiguousLimit)
		}
		return base
	}

	plate := res.vehicle.LicensePlate
	if len(snap.tracker.History(plate)) == 0 {
		base.Reasoning = fmt.Sprintf("no maintenance records for %s", plate)
		return base
	}

	var from, to time.Time
	if params.TimeRange != nil {
		from, to = params.TimeRange.From, params.TimeRange.To
	}
	base.Success = true
	base.Reasoning = fmt.Sprintf("maintenance report for %s", plate)
	base.Payload = MaintenanceReport{Vehicle: res.vehicle, Report: snap.tracker.BuildReport(plate, from, to)}
	return base
}

func (d *Dispatcher) reportRepair(snap *snapshot, base RuleResult, query string, tags []gazetteer.Tag, params extract.Params) RuleResult {
	res := d.resolve(snap, query, tags, params)
	if !res.ok {
		if len(res.checked) == 0 {
			base.Reasoning = missingIdentifierReasoning(params)
		} else {
			base.Reasoning = res.failureReasoning(d.opts.AmbiguousLimit)
		}
		return base
	}
	// Once a vehicle is found a repair request always succeeds; this is a
	// read-only descriptor for downstream form pre-fill.
	base.Success = true
	base.Reasoning = fmt.Sprintf("repair request for %s", res.vehicle.LicensePlate)
	base.Payload = RepairDescriptor{
		Vehicle:  res.vehicle,
		Driver:   res.vehicle.Driver,
		Location: res.vehicle.Location,
	}
	return base
}

func (d *Dispatcher) fleetStatus(snap *snapshot, base RuleResult) RuleResult {
	st := StatusText{
		Total:       snap.index.Len(),
		Active:      len(snap.index.ByStatus(domain.StatusActive)),
		Maintenance: len(snap.index.ByStatus(domain.StatusMaintenance)),
		Inactive:    len(snap.index.ByStatus(domain.StatusInactive)),
		Retired:     len(snap.index.ByStatus(domain.StatusRetired)),
		Stats:       snap.tracker.FleetStats(d.opts.Now()),
	}
	st.Text = fmt.Sprintf("%d vehicles: %d active, %d in maintenance, %d inactive, %d retired",
		st.Total, st.Active, st.Maintenance, st.Inactive, st.Retired)
	base.Success = true
	base.Payload = st
	return base
}

func (res resolution) failureReasoning(limit int) string {
	if len(res.ambiguous) > 1 {
		var names []string
		for i, m := range res.ambiguous {
			if i >= limit {
				break
			}
			names = append(names, fmt.Sprintf("%s (%.2f)", m.Vehicle.LicensePlate, m.Score))
		}
		return "ambiguous match, candidates: " + strings.Join(names, ", ")
	}
	return "no vehicle matched, checked: " + strings.Join(res.checked, ", ")
}

func missingIdentifierReasoning(params extract.Params) string {
	if len(params.Malformed) > 0 {
		return fmt.Sprintf("identifier %q failed normalization, treated as absent", params.Malformed[0])
	}
	return "vehicle resolution requires a license plate, VIN, vehicle number, or driver name"
}

// paramsMap flattens extracted parameters for the result envelope.
func paramsMap(p extract.Params) map[string]string {
	m := make(map[string]string)
	if p.Plate != "" {
		m["plate"] = p.Plate
	}
	if p.VIN != "" {
		m["vin"] = p.VIN
	}
	if p.VehicleNumber != "" {
		m["vehicle_number"] = p.VehicleNumber
	}
	if p.TimeRange != nil {
		m["time_range"] = p.TimeRange.Label
	}
	if len(p.Malformed) > 0 {
		m["malformed"] = strings.Join(p.Malformed, ",")
	}
	return m
}

// freeText is the query with tagged keywords and extracted identifiers
// removed, the residue used for fuzzy driver and location search.
func freeText(query string, tags []gazetteer.Tag, p extract.Params) string {
	masked := []byte(query)
	for _, t := range tags {
		for i := t.Start; i < t.End; i++ {
			masked[i] = ' '
		}
	}
	s := string(masked)
	for _, tok := range append([]string{p.PlateRaw, p.VIN, p.VehicleNumber}, p.Malformed...) {
		if tok != "" {
			s = removeFold(s, tok)
		}
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == '?' || r == '!' || r == ':'
	}), " ")
}

// removeFold blanks every case-insensitive occurrence of tok in s.
func removeFold(s, tok string) string {
	lower, lt := strings.ToLower(s), strings.ToLower(tok)
	for {
		i := strings.Index(lower, lt)
		if i < 0 {
			return s
		}
		s = s[:i] + strings.Repeat(" ", len(tok)) + s[i+len(tok):]
		lower = lower[:i] + strings.Repeat(" ", len(lt)) + lower[i+len(lt):]
	}
}

func helpText(lang domain.Language) string {
	if lang == domain.LangHebrew {
		return helpTextHE
	}
	return helpTextEN
}

const helpTextEN = `Available commands:
- find <plate | VIN | vehicle number | driver name>
- maintenance report <vehicle> [last month | past N months]
- report repair <vehicle>
- fleet status
- help`

const helpTextHE = `פקודות זמינות:
- חיפוש <לוחית רישוי | מספר שלדה | מספר רכב | שם נהג>
- דוח תחזוקה <רכב> [החודש האחרון | N חודשים אחרונים]
- דיווח תקלה <רכב>
- סטטוס
- עזרה`
