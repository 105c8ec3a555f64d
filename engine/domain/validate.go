package domain

import (
	"regexp"
	"strings"
)

// VIN format: 17 alphanumeric characters, excluding I, O, Q.
var vinRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// Vehicle number format: 1-3 letter prefix followed by 3-4 digits, e.g. V001.
var vehicleNumberRegex = regexp.MustCompile(`^[A-Z]{1,3}[0-9]{3,4}$`)

// plateDigits strips every non-digit rune.
var nonDigit = regexp.MustCompile(`[^0-9]`)

// NormalizePlate reduces a license plate to its bare digits, the canonical
// index key. "56-722-64", "56 722 64" and "5672264" all normalize the same.
func NormalizePlate(plate string) string {
	return nonDigit.ReplaceAllString(plate, "")
}

// NormalizeVIN upper-cases and trims a VIN for comparison.
func NormalizeVIN(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}

// NormalizeVehicleNumber upper-cases and trims a fleet code for comparison.
func NormalizeVehicleNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}

// ValidPlate reports whether a normalized plate has an acceptable digit count.
// Plates are 6-8 digits (7 for the NN-NNN-NN form).
func ValidPlate(normalized string) bool {
	return len(normalized) >= 6 && len(normalized) <= 8
}

// ValidVIN reports whether a VIN matches the 17-character format.
func ValidVIN(vin string) bool {
	return vinRegex.MatchString(NormalizeVIN(vin))
}

// ValidVehicleNumber reports whether a fleet code matches the prefix+digits format.
func ValidVehicleNumber(n string) bool {
	return vehicleNumberRegex.MatchString(NormalizeVehicleNumber(n))
}

// ValidateVehicle validates a single catalog vehicle. A vehicle must have a
// valid license plate; VIN, vehicle number, and status are validated when present.
func ValidateVehicle(v Vehicle) error {
	if strings.TrimSpace(v.LicensePlate) == "" {
		return NewValidationError("license_plate", v.LicensePlate, ErrMissingPlate)
	}
	if !ValidPlate(NormalizePlate(v.LicensePlate)) {
		return NewValidationError("license_plate", v.LicensePlate, ErrInvalidPlate)
	}
	if v.VIN != "" && !ValidVIN(v.VIN) {
		return NewValidationError("vin", v.VIN, ErrInvalidVIN)
	}
	if v.VehicleNumber != "" && !ValidVehicleNumber(v.VehicleNumber) {
		return NewValidationError("id", v.VehicleNumber, ErrInvalidNumber)
	}
	if v.Status != "" && !ValidStatuses[v.Status] {
		return NewValidationError("status", string(v.Status), ErrInvalidStatus)
	}
	return nil
}

// ValidateGazetteerEntry validates a single gazetteer entry.
func ValidateGazetteerEntry(e GazetteerEntry) error {
	if strings.TrimSpace(e.Keyword) == "" {
		return NewValidationError("keyword", e.Keyword, ErrEmptyKeyword)
	}
	if !ValidCategories[e.Category] {
		return NewValidationError("category", string(e.Category), ErrInvalidCategory)
	}
	if !ValidLanguages[e.Language] {
		return NewValidationError("language", string(e.Language), ErrInvalidLanguage)
	}
	return nil
}
