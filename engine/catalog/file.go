package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/pkg/fn"
)

// fileCatalog is the on-disk JSON shape. Record dates arrive as strings in
// either RFC 3339 or plain YYYY-MM-DD form.
type fileCatalog struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Records  []fileRecord     `json:"maintenance_records"`
}

type fileRecord struct {
	ID            string  `json:"id"`
	LicensePlate  string  `json:"license_plate"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	Mileage       int     `json:"mileage"`
	FaultType     string  `json:"fault_type"`
	FaultSeverity string  `json:"fault_severity"`
	RepairCost    float64 `json:"repair_cost"`
	RepairDays    int     `json:"repair_days"`
}

func (r fileRecord) toDomain() (domain.MaintenanceRecord, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return domain.MaintenanceRecord{
		ID:            r.ID,
		LicensePlate:  r.LicensePlate,
		Date:          date,
		Type:          r.Type,
		Description:   r.Description,
		Cost:          r.Cost,
		Mileage:       r.Mileage,
		FaultType:     r.FaultType,
		FaultSeverity: r.FaultSeverity,
		RepairCost:    r.RepairCost,
		RepairDays:    r.RepairDays,
	}, nil
}

// FileSource loads the catalog from a single JSON file.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{path: path, logger: logger}
}

// --- Pipeline Stages ---

// readStage slurps the catalog file.
var readStage fn.Stage[string, []byte] = func(_ context.Context, path string) fn.Result[[]byte] {
	return fn.FromPair(os.ReadFile(path))
}

// decodeStage parses the JSON document.
var decodeStage fn.Stage[[]byte, fileCatalog] = func(_ context.Context, data []byte) fn.Result[fileCatalog] {
	var fc fileCatalog
	if err := json.Unmarshal(data, &fc); err != nil {
		return fn.Err[fileCatalog](fmt.Errorf("decode: %w", err))
	}
	return fn.Ok(fc)
}

// validateStage checks every vehicle and converts records into the domain
// shape. Any bad entry fails the whole load.
var validateStage fn.Stage[fileCatalog, Snapshot] = func(_ context.Context, fc fileCatalog) fn.Result[Snapshot] {
	for _, v := range fc.Vehicles {
		if err := domain.ValidateVehicle(v); err != nil {
			return fn.Err[Snapshot](err)
		}
	}
	records, err := fn.Collect(fn.Map(fc.Records, func(r fileRecord) fn.Result[domain.MaintenanceRecord] {
		return fn.FromPair(r.toDomain())
	})).Unwrap()
	if err != nil {
		return fn.Err[Snapshot](err)
	}
	return fn.Ok(Snapshot{Vehicles: fc.Vehicles, Records: records})
}

// Load runs read, decode, validate as a traced pipeline.
func (s *FileSource) Load(ctx context.Context) (Snapshot, error) {
	pipeline := fn.Then(
		fn.Then(
			fn.TracedStage("catalog.read", readStage),
			fn.TracedStage("catalog.decode", decodeStage),
		),
		fn.TracedStage("catalog.validate", validateStage),
	)

	result := pipeline(ctx, s.path)
	snap, err := result.Unwrap()
	if err != nil {
		return Snapshot{}, fmt.Errorf("file source %s: %w", s.path, err)
	}
	s.logger.Info("catalog file loaded",
		"path", s.path, "vehicles", len(snap.Vehicles), "records", len(snap.Records))
	return snap, nil
}
