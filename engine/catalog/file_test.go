package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

const sampleCatalog = `{
  "vehicles": [
    {
      "id": "V001",
      "license_plate": "56-722-64",
      "vin": "5YJ3E1EA1NF123456",
      "make": "Volvo",
      "model": "V90",
      "year": 2021,
      "status": "active",
      "location": "Tel Aviv",
      "driver": {"name": "Yossi Cohen", "phone": "050-1234567"}
    },
    {
      "id": "V002",
      "license_plate": "21-599-58",
      "make": "Ford",
      "model": "Transit",
      "year": 2019,
      "status": "maintenance"
    }
  ],
  "maintenance_records": [
    {
      "id": "M001",
      "license_plate": "21-599-58",
      "date": "2026-05-20",
      "type": "oil_change",
      "cost": 85
    },
    {
      "id": "M002",
      "license_plate": "21-599-58",
      "date": "2026-01-10T09:30:00Z",
      "type": "repair",
      "cost": 250,
      "fault_type": "engine",
      "fault_severity": "high",
      "repair_cost": 250
    }
  ]
}`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	src := NewFileSource(write(t, sampleCatalog), nil)
	snap, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Vehicles) != 2 || len(snap.Records) != 2 {
		t.Fatalf("snapshot = %d vehicles, %d records", len(snap.Vehicles), len(snap.Records))
	}
	v := snap.Vehicles[0]
	if v.VehicleNumber != "V001" || v.Driver == nil || v.Driver.Name != "Yossi Cohen" {
		t.Errorf("vehicle = %+v", v)
	}
	if snap.Records[0].Date.IsZero() || snap.Records[1].Date.IsZero() {
		t.Error("both date formats must parse")
	}
	if !snap.Records[1].IsFault() {
		t.Error("fault record lost its fault type")
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSource_BadJSON(t *testing.T) {
	src := NewFileSource(write(t, "{not json"), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileSource_InvalidVehicle(t *testing.T) {
	src := NewFileSource(write(t, `{"vehicles": [{"make": "Volvo"}]}`), nil)
	_, err := src.Load(context.Background())
	if !errors.Is(err, domain.ErrMissingPlate) {
		t.Errorf("expected ErrMissingPlate, got %v", err)
	}
}

func TestFileSource_BadDate(t *testing.T) {
	src := NewFileSource(write(t, `{
	  "vehicles": [{"license_plate": "56-722-64"}],
	  "maintenance_records": [{"id": "M001", "license_plate": "56-722-64", "date": "not-a-date"}]
	}`), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected date parse error")
	}
}

type fakeReloader struct {
	vehicles []domain.Vehicle
	records  []domain.MaintenanceRecord
	err      error
}

func (f *fakeReloader) ReloadCatalog(vs []domain.Vehicle, rs []domain.MaintenanceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.vehicles, f.records = vs, rs
	return nil
}

func TestRefresh(t *testing.T) {
	src := NewFileSource(write(t, sampleCatalog), nil)
	r := &fakeReloader{}
	if err := Refresh(context.Background(), src, r); err != nil {
		t.Fatal(err)
	}
	if len(r.vehicles) != 2 || len(r.records) != 2 {
		t.Errorf("reloader got %d vehicles, %d records", len(r.vehicles), len(r.records))
	}
}

func TestRefresh_SourceError(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), nil)
	err := Refresh(context.Background(), src, &fakeReloader{})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestRefresh_ReloaderError(t *testing.T) {
	src := NewFileSource(write(t, sampleCatalog), nil)
	err := Refresh(context.Background(), src, &fakeReloader{err: errors.New("duplicate plate")})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}
