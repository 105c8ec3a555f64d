package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/pkg/repo"
)

const neo4jPageSize = 500

// Neo4jSource loads the catalog from a Neo4j graph where vehicles and
// maintenance records are nodes keyed by license plate.
type Neo4jSource struct {
	vehicles *repo.Neo4jRepo[domain.Vehicle, string]
	records  *repo.Neo4jRepo[domain.MaintenanceRecord, string]
	logger   *slog.Logger
}

// NewNeo4jSource creates a source backed by the given driver.
func NewNeo4jSource(driver neo4j.DriverWithContext, logger *slog.Logger) *Neo4jSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &Neo4jSource{
		vehicles: repo.NewNeo4jRepo[domain.Vehicle, string](
			driver, "Vehicle", vehicleToMap, vehicleFromRecord,
			repo.WithIDKey[domain.Vehicle, string]("license_plate"),
		),
		records: repo.NewNeo4jRepo[domain.MaintenanceRecord, string](
			driver, "MaintenanceRecord", recordToMap, recordFromRecord,
		),
		logger: logger,
	}
}

// Load pages through both node labels and returns a complete snapshot.
func (s *Neo4jSource) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	for offset := 0; ; offset += neo4jPageSize {
		page, err := s.vehicles.List(ctx, repo.ListOpts{Offset: offset, Limit: neo4jPageSize})
		if err != nil {
			return Snapshot{}, fmt.Errorf("neo4j source: list vehicles: %w", err)
		}
		snap.Vehicles = append(snap.Vehicles, page...)
		if len(page) < neo4jPageSize {
			break
		}
	}

	for offset := 0; ; offset += neo4jPageSize {
		page, err := s.records.List(ctx, repo.ListOpts{Offset: offset, Limit: neo4jPageSize})
		if err != nil {
			return Snapshot{}, fmt.Errorf("neo4j source: list maintenance records: %w", err)
		}
		snap.Records = append(snap.Records, page...)
		if len(page) < neo4jPageSize {
			break
		}
	}

	s.logger.Info("catalog graph loaded",
		"vehicles", len(snap.Vehicles), "records", len(snap.Records))
	return snap, nil
}

func vehicleToMap(v domain.Vehicle) map[string]any {
	m := map[string]any{
		"id":            v.VehicleNumber,
		"license_plate": v.LicensePlate,
		"vin":           v.VIN,
		"make":          v.Make,
		"model":         v.Model,
		"year":          int64(v.Year),
		"category":      v.Category,
		"status":        string(v.Status),
		"location":      v.Location,
	}
	if v.Driver != nil {
		m["driver_name"] = v.Driver.Name
		m["driver_phone"] = v.Driver.Phone
		m["driver_email"] = v.Driver.Email
	}
	return m
}

func vehicleFromRecord(rec *neo4j.Record) (domain.Vehicle, error) {
	props, err := nodeProps(rec)
	if err != nil {
		return domain.Vehicle{}, err
	}
	v := domain.Vehicle{
		VehicleNumber: propString(props, "id"),
		LicensePlate:  propString(props, "license_plate"),
		VIN:           propString(props, "vin"),
		Make:          propString(props, "make"),
		Model:         propString(props, "model"),
		Year:          int(propInt(props, "year")),
		Category:      propString(props, "category"),
		Status:        domain.VehicleStatus(propString(props, "status")),
		Location:      propString(props, "location"),
	}
	if name := propString(props, "driver_name"); name != "" {
		v.Driver = &domain.Driver{
			Name:  name,
			Phone: propString(props, "driver_phone"),
			Email: propString(props, "driver_email"),
		}
	}
	return v, nil
}

func recordToMap(r domain.MaintenanceRecord) map[string]any {
	return map[string]any{
		"id":             r.ID,
		"license_plate":  r.LicensePlate,
		"date":           r.Date.Format("2006-01-02"),
		"type":           r.Type,
		"description":    r.Description,
		"cost":           r.Cost,
		"mileage":        int64(r.Mileage),
		"fault_type":     r.FaultType,
		"fault_severity": r.FaultSeverity,
		"repair_cost":    r.RepairCost,
		"repair_days":    int64(r.RepairDays),
	}
}

func recordFromRecord(rec *neo4j.Record) (domain.MaintenanceRecord, error) {
	props, err := nodeProps(rec)
	if err != nil {
		return domain.MaintenanceRecord{}, err
	}
	date, err := parseDate(propString(props, "date"))
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("maintenance record %s: %w", propString(props, "id"), err)
	}
	return domain.MaintenanceRecord{
		ID:            propString(props, "id"),
		LicensePlate:  propString(props, "license_plate"),
		Date:          date,
		Type:          propString(props, "type"),
		Description:   propString(props, "description"),
		Cost:          propFloat(props, "cost"),
		Mileage:       int(propInt(props, "mileage")),
		FaultType:     propString(props, "fault_type"),
		FaultSeverity: propString(props, "fault_severity"),
		RepairCost:    propFloat(props, "repair_cost"),
		RepairDays:    int(propInt(props, "repair_days")),
	}, nil
}

func nodeProps(rec *neo4j.Record) (map[string]any, error) {
	val, ok := rec.Get("n")
	if !ok {
		return nil, fmt.Errorf("record missing node column")
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected column type %T", val)
	}
	return node.Props, nil
}

func propString(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func propInt(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func propFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}
