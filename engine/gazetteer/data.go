package gazetteer

import "github.com/FleetlyAI/fleetly-mvp/engine/domain"

// defaultEntries is the built-in bilingual keyword table. Canonical forms are
// English so downstream rules never branch on the surface language.
var defaultEntries = []domain.GazetteerEntry{
	// Vehicle search verbs.
	{Keyword: "search", Language: domain.LangEnglish, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "find", Language: domain.LangEnglish, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "locate", Language: domain.LangEnglish, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "lookup", Language: domain.LangEnglish, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "show", Language: domain.LangEnglish, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "חיפוש", Language: domain.LangHebrew, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "חפש", Language: domain.LangHebrew, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "מצא", Language: domain.LangHebrew, Category: domain.CatVehicleSearch, Canonical: "search"},
	{Keyword: "איתור", Language: domain.LangHebrew, Category: domain.CatVehicleSearch, Canonical: "search"},

	// Maintenance reporting.
	{Keyword: "maintenance report", Language: domain.LangEnglish, Category: domain.CatMaintenance, Canonical: "maintenance_report"},
	{Keyword: "maintenance", Language: domain.LangEnglish, Category: domain.CatMaintenance, Canonical: "maintenance"},
	{Keyword: "service history", Language: domain.LangEnglish, Category: domain.CatMaintenance, Canonical: "maintenance_report"},
	{Keyword: "service report", Language: domain.LangEnglish, Category: domain.CatMaintenance, Canonical: "maintenance_report"},
	{Keyword: "service", Language: domain.LangEnglish, Category: domain.CatMaintenance, Canonical: "maintenance"},
	{Keyword: "דוח תחזוקה", Language: domain.LangHebrew, Category: domain.CatMaintenance, Canonical: "maintenance_report"},
	{Keyword: "דוח טיפולים", Language: domain.LangHebrew, Category: domain.CatMaintenance, Canonical: "maintenance_report"},
	{Keyword: "תחזוקה", Language: domain.LangHebrew, Category: domain.CatMaintenance, Canonical: "maintenance"},
	{Keyword: "טיפולים", Language: domain.LangHebrew, Category: domain.CatMaintenance, Canonical: "maintenance"},
	{Keyword: "טיפול", Language: domain.LangHebrew, Category: domain.CatMaintenance, Canonical: "maintenance"},

	// Repair and fault reporting.
	{Keyword: "fault report", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "fault_report"},
	{Keyword: "report repair", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "report_repair"},
	{Keyword: "repair", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "repair"},
	{Keyword: "fault", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "broken", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "malfunction", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "breakdown", Language: domain.LangEnglish, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "דוח תקלות", Language: domain.LangHebrew, Category: domain.CatRepairRequest, Canonical: "fault_report"},
	{Keyword: "דוח תקלה", Language: domain.LangHebrew, Category: domain.CatRepairRequest, Canonical: "fault_report"},
	{Keyword: "תקלות", Language: domain.LangHebrew, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "תקלה", Language: domain.LangHebrew, Category: domain.CatRepairRequest, Canonical: "fault"},
	{Keyword: "תיקון", Language: domain.LangHebrew, Category: domain.CatRepairRequest, Canonical: "repair"},

	// Help.
	{Keyword: "help", Language: domain.LangEnglish, Category: domain.CatHelpCommands, Canonical: "help"},
	{Keyword: "commands", Language: domain.LangEnglish, Category: domain.CatHelpCommands, Canonical: "help"},
	{Keyword: "עזרה", Language: domain.LangHebrew, Category: domain.CatHelpCommands, Canonical: "help"},
	{Keyword: "פקודות", Language: domain.LangHebrew, Category: domain.CatHelpCommands, Canonical: "help"},

	// Fleet status.
	{Keyword: "fleet status", Language: domain.LangEnglish, Category: domain.CatStatus, Canonical: "status"},
	{Keyword: "status", Language: domain.LangEnglish, Category: domain.CatStatus, Canonical: "status"},
	{Keyword: "סטטוס", Language: domain.LangHebrew, Category: domain.CatStatus, Canonical: "status"},
	{Keyword: "מצב הצי", Language: domain.LangHebrew, Category: domain.CatStatus, Canonical: "status"},
	{Keyword: "מצב", Language: domain.LangHebrew, Category: domain.CatStatus, Canonical: "status"},

	// Identifier phrases.
	{Keyword: "license plate", Language: domain.LangEnglish, Category: domain.CatVehicleIdentifiers, Canonical: "license_plate"},
	{Keyword: "plate", Language: domain.LangEnglish, Category: domain.CatVehicleIdentifiers, Canonical: "license_plate"},
	{Keyword: "vehicle number", Language: domain.LangEnglish, Category: domain.CatVehicleIdentifiers, Canonical: "vehicle_number"},
	{Keyword: "vin", Language: domain.LangEnglish, Category: domain.CatVehicleIdentifiers, Canonical: "vin"},
	{Keyword: "לוחית רישוי", Language: domain.LangHebrew, Category: domain.CatVehicleIdentifiers, Canonical: "license_plate"},
	{Keyword: "מספר רישוי", Language: domain.LangHebrew, Category: domain.CatVehicleIdentifiers, Canonical: "license_plate"},
	{Keyword: "מספר רכב", Language: domain.LangHebrew, Category: domain.CatVehicleIdentifiers, Canonical: "vehicle_number"},
	{Keyword: "מספר שלדה", Language: domain.LangHebrew, Category: domain.CatVehicleIdentifiers, Canonical: "vin"},

	// Vehicle types.
	{Keyword: "vehicle", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "vehicle"},
	{Keyword: "truck", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "truck"},
	{Keyword: "van", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "van"},
	{Keyword: "sedan", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "sedan"},
	{Keyword: "suv", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "suv"},
	{Keyword: "bus", Language: domain.LangEnglish, Category: domain.CatVehicleTypes, Canonical: "bus"},
	{Keyword: "רכב", Language: domain.LangHebrew, Category: domain.CatVehicleTypes, Canonical: "vehicle"},
	{Keyword: "משאית", Language: domain.LangHebrew, Category: domain.CatVehicleTypes, Canonical: "truck"},
	{Keyword: "מסחרית", Language: domain.LangHebrew, Category: domain.CatVehicleTypes, Canonical: "van"},
	{Keyword: "אוטובוס", Language: domain.LangHebrew, Category: domain.CatVehicleTypes, Canonical: "bus"},

	// Drivers and locations.
	{Keyword: "driver", Language: domain.LangEnglish, Category: domain.CatDrivers, Canonical: "driver"},
	{Keyword: "נהג", Language: domain.LangHebrew, Category: domain.CatDrivers, Canonical: "driver"},
	{Keyword: "location", Language: domain.LangEnglish, Category: domain.CatLocations, Canonical: "location"},
	{Keyword: "depot", Language: domain.LangEnglish, Category: domain.CatLocations, Canonical: "depot"},
	{Keyword: "מיקום", Language: domain.LangHebrew, Category: domain.CatLocations, Canonical: "location"},
	{Keyword: "חניון", Language: domain.LangHebrew, Category: domain.CatLocations, Canonical: "depot"},

	// Time periods.
	{Keyword: "last month", Language: domain.LangEnglish, Category: domain.CatTimePeriods, Canonical: "last_month"},
	{Keyword: "past month", Language: domain.LangEnglish, Category: domain.CatTimePeriods, Canonical: "last_month"},
	{Keyword: "this month", Language: domain.LangEnglish, Category: domain.CatTimePeriods, Canonical: "this_month"},
	{Keyword: "last year", Language: domain.LangEnglish, Category: domain.CatTimePeriods, Canonical: "last_year"},
	{Keyword: "החודש האחרון", Language: domain.LangHebrew, Category: domain.CatTimePeriods, Canonical: "last_month"},
	{Keyword: "השנה האחרונה", Language: domain.LangHebrew, Category: domain.CatTimePeriods, Canonical: "last_year"},
	{Keyword: "החודש", Language: domain.LangHebrew, Category: domain.CatTimePeriods, Canonical: "this_month"},
}

// Default returns the built-in bilingual table.
func Default() *Table {
	return MustNew(defaultEntries)
}
