package extract

import (
	"testing"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

func TestIdentifiers_GroupedPlate(t *testing.T) {
	p := Identifiers("find 56-722-64 please")
	if p.Plate != "5672264" {
		t.Errorf("plate = %q, want 5672264", p.Plate)
	}
	if p.PlateRaw != "56-722-64" {
		t.Errorf("plate raw = %q", p.PlateRaw)
	}
	if p.VIN != "" || p.VehicleNumber != "" {
		t.Errorf("unexpected extra identifiers: %+v", p)
	}
}

func TestIdentifiers_BarePlate(t *testing.T) {
	for _, q := range []string{"search 5672264", "search 123456", "search 12345678"} {
		p := Identifiers(q)
		if p.Plate == "" {
			t.Errorf("no plate extracted from %q", q)
		}
		if len(p.Malformed) != 0 {
			t.Errorf("unexpected malformed for %q: %v", q, p.Malformed)
		}
	}
}

func TestIdentifiers_VIN(t *testing.T) {
	p := Identifiers("vin 5yj3e1ea1nf123456 report")
	if p.VIN != "5YJ3E1EA1NF123456" {
		t.Errorf("vin = %q", p.VIN)
	}
	if p.Plate != "" {
		t.Errorf("VIN digits must not be claimed as a plate, got %q", p.Plate)
	}
}

func TestIdentifiers_VINNotMatchedWithForbiddenLetters(t *testing.T) {
	// Contains I, so it is not a VIN; the trailing digit run reads as a plate.
	p := Identifiers("id WAUZZZ8VIA1234567")
	if p.VIN != "" {
		t.Errorf("expected no VIN, got %q", p.VIN)
	}
}

func TestIdentifiers_FleetCode(t *testing.T) {
	p := Identifiers("show vehicle number V001")
	if p.VehicleNumber != "V001" {
		t.Errorf("vehicle number = %q", p.VehicleNumber)
	}
	p = Identifiers("trk1234 status")
	if p.VehicleNumber != "TRK1234" {
		t.Errorf("vehicle number = %q", p.VehicleNumber)
	}
}

func TestIdentifiers_PrecedenceOnOverlap(t *testing.T) {
	// A full VIN must not be shredded into plate or fleet-code fragments.
	p := Identifiers("5TDZA23C13S012345")
	if p.VIN != "5TDZA23C13S012345" {
		t.Fatalf("vin = %q", p.VIN)
	}
	if p.Plate != "" || p.VehicleNumber != "" {
		t.Errorf("overlapping fragments claimed: %+v", p)
	}
}

func TestIdentifiers_MultipleKinds(t *testing.T) {
	p := Identifiers("V001 with plate 56-722-64 vin 5YJ3E1EA1NF123456")
	if p.VIN == "" || p.Plate != "5672264" || p.VehicleNumber != "V001" {
		t.Errorf("expected all three identifiers, got %+v", p)
	}
}

func TestIdentifiers_FirstOccurrenceWins(t *testing.T) {
	p := Identifiers("56-722-64 or 21-599-58")
	if p.Plate != "5672264" {
		t.Errorf("plate = %q, want first occurrence", p.Plate)
	}
}

func TestIdentifiers_Malformed(t *testing.T) {
	p := Identifiers("find 12345")
	if p.Plate != "" {
		t.Errorf("5 digits is not a plate, got %q", p.Plate)
	}
	if len(p.Malformed) != 1 || p.Malformed[0] != "12345" {
		t.Errorf("malformed = %v", p.Malformed)
	}

	p = Identifiers("find 123-45-678")
	if p.Plate != "" {
		t.Errorf("wrong grouping is not a plate, got %q", p.Plate)
	}
	if len(p.Malformed) != 1 {
		t.Errorf("malformed = %v", p.Malformed)
	}
}

func TestIdentifiers_YearNotMalformed(t *testing.T) {
	p := Identifiers("faults since 2023")
	if len(p.Malformed) != 0 {
		t.Errorf("4-digit year flagged as malformed: %v", p.Malformed)
	}
}

func TestIdentifiers_Empty(t *testing.T) {
	p := Identifiers("hello there")
	if !p.Empty() {
		t.Errorf("expected empty params, got %+v", p)
	}
}

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestWindow_English(t *testing.T) {
	cases := []struct {
		query string
		label string
		from  time.Time
	}{
		{"maintenance report last month", "last_month", testNow.AddDate(0, -1, 0)},
		{"faults past 3 months", "last_3_months", testNow.AddDate(0, -3, 0)},
		{"costs last 30 days", "last_30_days", testNow.AddDate(0, 0, -30)},
		{"report last year", "last_year", testNow.AddDate(-1, 0, 0)},
		{"spend this month", "this_month", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		tr := Window(c.query, domain.LangEnglish, testNow)
		if tr == nil {
			t.Errorf("no window for %q", c.query)
			continue
		}
		if tr.Label != c.label || !tr.From.Equal(c.from) || !tr.To.Equal(testNow) {
			t.Errorf("%q: got %+v", c.query, tr)
		}
	}
}

func TestWindow_Hebrew(t *testing.T) {
	tr := Window("דוח תחזוקה החודש האחרון", domain.LangHebrew, testNow)
	if tr == nil || tr.Label != "last_month" {
		t.Fatalf("got %+v", tr)
	}
	tr = Window("תקלות 3 חודשים אחרונים", domain.LangHebrew, testNow)
	if tr == nil || tr.Label != "last_3_months" {
		t.Fatalf("got %+v", tr)
	}
	tr = Window("דוח השנה האחרונה", domain.LangHebrew, testNow)
	if tr == nil || tr.Label != "last_year" {
		t.Fatalf("got %+v", tr)
	}
}

func TestWindow_None(t *testing.T) {
	if tr := Window("maintenance report 5672264", domain.LangEnglish, testNow); tr != nil {
		t.Errorf("expected nil window, got %+v", tr)
	}
}

func TestExtract_Combined(t *testing.T) {
	p := Extract("maintenance report 56-722-64 last month", domain.LangEnglish, testNow)
	if p.Plate != "5672264" {
		t.Errorf("plate = %q", p.Plate)
	}
	if p.TimeRange == nil || p.TimeRange.Label != "last_month" {
		t.Errorf("time range = %+v", p.TimeRange)
	}
}
