package maint

import (
	"testing"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

var now = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func day(d int) time.Time { return now.AddDate(0, 0, -d) }

func records() []domain.MaintenanceRecord {
	return []domain.MaintenanceRecord{
		{LicensePlate: "56-722-64", Date: day(200), Type: "oil_change", Cost: 85},
		{LicensePlate: "56-722-64", Date: day(20), Type: "oil_change", Cost: 90},
		{LicensePlate: "56-722-64", Date: day(100), Type: "brake_inspection", Cost: 120},
		{LicensePlate: "21-599-58", Date: day(400), Type: "engine_service", Cost: 300},
		{LicensePlate: "21-599-58", Date: day(5), Type: "repair", Cost: 250,
			FaultType: "engine", FaultSeverity: "high", RepairCost: 250},
	}
}

func TestHistory_MostRecentFirst(t *testing.T) {
	tr := NewTracker(records())
	hist := tr.History("5672264")
	if len(hist) != 3 {
		t.Fatalf("expected 3 records, got %d", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].Date.After(hist[i-1].Date) {
			t.Errorf("history not most-recent-first: %v", hist)
		}
	}
}

func TestHistory_NormalizesPlate(t *testing.T) {
	tr := NewTracker(records())
	if len(tr.History("56-722-64")) != len(tr.History("5672264")) {
		t.Error("plate forms must resolve to the same history")
	}
}

func TestBuildReport_AllTime(t *testing.T) {
	tr := NewTracker(records())
	rep := tr.BuildReport("56-722-64", time.Time{}, time.Time{})
	if len(rep.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(rep.Records))
	}
	if rep.TotalCost != 295 {
		t.Errorf("total cost = %f", rep.TotalCost)
	}
}

func TestBuildReport_Window(t *testing.T) {
	tr := NewTracker(records())
	rep := tr.BuildReport("56-722-64", day(150), now)
	if len(rep.Records) != 2 {
		t.Fatalf("expected 2 records in window, got %d", len(rep.Records))
	}
	if rep.TotalCost != 210 {
		t.Errorf("total cost = %f", rep.TotalCost)
	}
}

func TestBuildReport_InclusiveBounds(t *testing.T) {
	tr := NewTracker(records())
	rep := tr.BuildReport("56-722-64", day(20), day(20))
	if len(rep.Records) != 1 {
		t.Errorf("record at exact bound must be included, got %d", len(rep.Records))
	}
}

func TestNextService(t *testing.T) {
	tr := NewTracker(records())
	rep := tr.BuildReport("56-722-64", time.Time{}, time.Time{})
	if rep.NextService == nil {
		t.Fatal("expected a next service estimate")
	}
	// Last brake inspection 100 days ago with a 180-day interval is due in
	// 80 days; last oil change 20 days ago with 90 days is due in 70.
	if rep.NextService.Type != "oil_change" {
		t.Errorf("next service = %+v", rep.NextService)
	}
	wantDue := day(20).Add(90 * 24 * time.Hour)
	if !rep.NextService.Due.Equal(wantDue) {
		t.Errorf("due = %v, want %v", rep.NextService.Due, wantDue)
	}
	if rep.NextService.EstimatedCost != 85 {
		t.Errorf("estimated cost = %f", rep.NextService.EstimatedCost)
	}
}

func TestAlerts_Overdue(t *testing.T) {
	tr := NewTracker(records())
	alerts := tr.Alerts(now)
	// 21-599-58's engine service was 400 days ago on a 365-day interval,
	// so it is 35 days overdue. The other vehicle is not due yet.
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	a := alerts[0]
	if a.LicensePlate != "2159958" || a.ServiceType != "engine_service" {
		t.Errorf("alert = %+v", a)
	}
	if a.OverdueDays != 35 || a.Priority != "high" {
		t.Errorf("overdue=%d priority=%s", a.OverdueDays, a.Priority)
	}
}

func TestAlerts_None(t *testing.T) {
	tr := NewTracker([]domain.MaintenanceRecord{
		{LicensePlate: "56-722-64", Date: day(1), Type: "oil_change", Cost: 85},
	})
	if alerts := tr.Alerts(now); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func TestFleetStats(t *testing.T) {
	tr := NewTracker(records())
	s := tr.FleetStats(now)
	if s.TotalRecords != 5 || s.VehiclesTracked != 2 {
		t.Errorf("stats = %+v", s)
	}
	if s.Cost30Days != 340 { // oil change 20d ago + repair 5d ago
		t.Errorf("cost30 = %f", s.Cost30Days)
	}
	if s.Cost90Days != 340 {
		t.Errorf("cost90 = %f", s.Cost90Days)
	}
	if s.Cost365Days != 545 { // everything but the 400-day engine service
		t.Errorf("cost365 = %f", s.Cost365Days)
	}
	if s.MostCommonService != "oil_change" {
		t.Errorf("most common = %q", s.MostCommonService)
	}
}

func TestFaults_PerVehicle(t *testing.T) {
	tr := NewTracker(records())
	sum := tr.Faults("21-599-58")
	if sum.Total != 1 || sum.ByType["engine"] != 1 || sum.BySeverity["high"] != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.TotalRepairCost != 250 {
		t.Errorf("repair cost = %f", sum.TotalRepairCost)
	}
	if tr.Faults("56-722-64").Total != 0 {
		t.Error("vehicle without faults must summarize empty")
	}
}

func TestFaults_FleetWide(t *testing.T) {
	tr := NewTracker(records())
	if sum := tr.Faults(""); sum.Total != 1 {
		t.Errorf("fleet summary = %+v", sum)
	}
}
