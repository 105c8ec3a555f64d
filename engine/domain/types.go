// Package domain defines core domain types, constants, and validation for the
// fleet query engine. It acts as the validation gate at catalog load time.
package domain

import "time"

// Language selects the gazetteer and response language for a query.
type Language string

const (
	LangEnglish Language = "en"
	LangHebrew  Language = "he"
)

// ValidLanguages is the set of recognised query languages.
var ValidLanguages = map[Language]bool{
	LangEnglish: true,
	LangHebrew:  true,
}

// VehicleStatus is the operational status of a vehicle in the catalog.
type VehicleStatus string

const (
	StatusActive      VehicleStatus = "active"
	StatusInactive    VehicleStatus = "inactive"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusRetired     VehicleStatus = "retired"
)

// ValidStatuses is the set of recognised vehicle statuses.
var ValidStatuses = map[VehicleStatus]bool{
	StatusActive: true, StatusInactive: true,
	StatusMaintenance: true, StatusRetired: true,
}

// Driver is the person assigned to a vehicle. A vehicle has at most one.
type Driver struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Vehicle is a single fleet vehicle. License plate is mandatory and unique;
// VIN and vehicle number are optional but unique when present. Vehicles are
// immutable value data once indexed; updates replace the whole catalog.
type Vehicle struct {
	VehicleNumber string        `json:"id,omitempty"` // short fleet code, e.g. V001
	LicensePlate  string        `json:"license_plate"`
	VIN           string        `json:"vin,omitempty"`
	Make          string        `json:"make"`
	Model         string        `json:"model"`
	Year          int           `json:"year"`
	Category      string        `json:"category,omitempty"`
	Status        VehicleStatus `json:"status"`
	Location      string        `json:"location,omitempty"`
	Driver        *Driver       `json:"driver,omitempty"`
}

// MaintenanceRecord is one service or fault entry for a vehicle, keyed by
// license plate. Records are append-only from the engine's perspective.
type MaintenanceRecord struct {
	ID            string    `json:"id,omitempty"`
	LicensePlate  string    `json:"license_plate"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	Cost          float64   `json:"cost"`
	Mileage       int       `json:"mileage,omitempty"`
	FaultType     string    `json:"fault_type,omitempty"`
	FaultSeverity string    `json:"fault_severity,omitempty"`
	RepairCost    float64   `json:"repair_cost,omitempty"`
	RepairDays    int       `json:"repair_days,omitempty"`
}

// IsFault reports whether the record describes a fault rather than routine service.
func (r MaintenanceRecord) IsFault() bool { return r.FaultType != "" }

// Category tags a gazetteer keyword with its semantic role.
type Category string

const (
	CatVehicleSearch      Category = "vehicle_search"
	CatMaintenance        Category = "maintenance"
	CatRepairRequest      Category = "repair_request"
	CatVehicleTypes       Category = "vehicle_types"
	CatVehicleIdentifiers Category = "vehicle_identifiers"
	CatStatus             Category = "status"
	CatLocations          Category = "locations"
	CatDrivers            Category = "drivers"
	CatTimePeriods        Category = "time_periods"
	CatHelpCommands       Category = "help_commands"
)

// ValidCategories is the set of recognised gazetteer categories.
var ValidCategories = map[Category]bool{
	CatVehicleSearch: true, CatMaintenance: true, CatRepairRequest: true,
	CatVehicleTypes: true, CatVehicleIdentifiers: true, CatStatus: true,
	CatLocations: true, CatDrivers: true, CatTimePeriods: true,
	CatHelpCommands: true,
}

// GazetteerEntry maps one keyword or phrase to a category and canonical form.
// Entries are immutable after load.
type GazetteerEntry struct {
	Keyword   string   `json:"keyword"`
	Language  Language `json:"language"`
	Category  Category `json:"category"`
	Canonical string   `json:"canonical"`
}
