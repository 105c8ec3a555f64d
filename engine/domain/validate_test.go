package domain

import (
	"errors"
	"testing"
)

func TestNormalizePlate(t *testing.T) {
	cases := map[string]string{
		"56-722-64": "5672264",
		"56 722 64": "5672264",
		"5672264":   "5672264",
		"21-599-58": "2159958",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizePlate(in); got != want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateVehicle_Valid(t *testing.T) {
	cases := []Vehicle{
		{LicensePlate: "56-722-64", Make: "Volvo", Model: "V90", Year: 2021},
		{LicensePlate: "2159958", VIN: "5YJ3E1EA1NF123456", Status: StatusActive},
		{LicensePlate: "10-600-42", VehicleNumber: "V001", Status: StatusMaintenance},
		{LicensePlate: "123456"},
		{LicensePlate: "12345678"},
	}
	for _, v := range cases {
		if err := ValidateVehicle(v); err != nil {
			t.Errorf("expected valid for %+v, got %v", v, err)
		}
	}
}

func TestValidateVehicle_MissingPlate(t *testing.T) {
	err := ValidateVehicle(Vehicle{Make: "Volvo", Model: "V90"})
	if !errors.Is(err, ErrMissingPlate) {
		t.Errorf("expected ErrMissingPlate, got %v", err)
	}
}

func TestValidateVehicle_InvalidPlate(t *testing.T) {
	for _, plate := range []string{"12345", "123456789", "ABC-DEF"} {
		err := ValidateVehicle(Vehicle{LicensePlate: plate})
		if plate == "ABC-DEF" {
			// No digits at all normalizes to empty, caught as invalid.
			if !errors.Is(err, ErrInvalidPlate) {
				t.Errorf("expected ErrInvalidPlate for %q, got %v", plate, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPlate) {
			t.Errorf("expected ErrInvalidPlate for %q, got %v", plate, err)
		}
	}
}

func TestValidateVehicle_InvalidVIN(t *testing.T) {
	err := ValidateVehicle(Vehicle{LicensePlate: "56-722-64", VIN: "SHORT"})
	if !errors.Is(err, ErrInvalidVIN) {
		t.Errorf("expected ErrInvalidVIN, got %v", err)
	}
	// VIN with forbidden letter I.
	err = ValidateVehicle(Vehicle{LicensePlate: "56-722-64", VIN: "5YJ3E1EA1IF123456"})
	if !errors.Is(err, ErrInvalidVIN) {
		t.Errorf("expected ErrInvalidVIN for VIN with I, got %v", err)
	}
}

func TestValidateVehicle_InvalidNumber(t *testing.T) {
	for _, n := range []string{"1234", "VVVV123", "V12", "V12345"} {
		err := ValidateVehicle(Vehicle{LicensePlate: "56-722-64", VehicleNumber: n})
		if !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("expected ErrInvalidNumber for %q, got %v", n, err)
		}
	}
}

func TestValidateVehicle_InvalidStatus(t *testing.T) {
	err := ValidateVehicle(Vehicle{LicensePlate: "56-722-64", Status: "scrapped"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestValidVehicleNumber(t *testing.T) {
	valid := []string{"V001", "v001", "AB123", "TRK1234"}
	for _, n := range valid {
		if !ValidVehicleNumber(n) {
			t.Errorf("expected %q valid", n)
		}
	}
	invalid := []string{"001", "V1", "VEHI123", "V00100"}
	for _, n := range invalid {
		if ValidVehicleNumber(n) {
			t.Errorf("expected %q invalid", n)
		}
	}
}

func TestValidateGazetteerEntry(t *testing.T) {
	ok := GazetteerEntry{Keyword: "search", Language: LangEnglish, Category: CatVehicleSearch, Canonical: "search"}
	if err := ValidateGazetteerEntry(ok); err != nil {
		t.Errorf("expected valid entry, got %v", err)
	}

	if err := ValidateGazetteerEntry(GazetteerEntry{Keyword: " ", Language: LangEnglish, Category: CatVehicleSearch}); !errors.Is(err, ErrEmptyKeyword) {
		t.Errorf("expected ErrEmptyKeyword, got %v", err)
	}
	if err := ValidateGazetteerEntry(GazetteerEntry{Keyword: "x", Language: LangEnglish, Category: "bogus"}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
	if err := ValidateGazetteerEntry(GazetteerEntry{Keyword: "x", Language: "fr", Category: CatVehicleSearch}); !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	ve := NewValidationError("vin", "SHORT", ErrInvalidVIN)
	if !errors.Is(ve, ErrInvalidVIN) {
		t.Errorf("Unwrap should expose ErrInvalidVIN")
	}
	var target *ValidationError
	if !errors.As(ve, &target) {
		t.Errorf("errors.As should work for *ValidationError")
	}
	if target.Field != "vin" {
		t.Errorf("expected field=vin, got %s", target.Field)
	}
}

func TestIsFault(t *testing.T) {
	if (MaintenanceRecord{Type: "oil_change"}).IsFault() {
		t.Error("routine service should not be a fault")
	}
	if !(MaintenanceRecord{Type: "repair", FaultType: "engine"}).IsFault() {
		t.Error("record with fault type should be a fault")
	}
}
