package intent

import (
	"testing"
	"time"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
	"github.com/FleetlyAI/fleetly-mvp/engine/extract"
	"github.com/FleetlyAI/fleetly-mvp/engine/gazetteer"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func classify(t *testing.T, query string, lang domain.Language) Classification {
	t.Helper()
	tbl := gazetteer.Default()
	return Classify(tbl.Tag(query, lang), extract.Extract(query, lang, now))
}

func TestClassify_FindVehicle(t *testing.T) {
	c := classify(t, "find 56-722-64", domain.LangEnglish)
	if c.Operation != OpFindVehicle || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_FindVehicleHebrew(t *testing.T) {
	c := classify(t, "חיפוש 56-722-64", domain.LangHebrew)
	if c.Operation != OpFindVehicle || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_MaintReport(t *testing.T) {
	c := classify(t, "maintenance report for 56-722-64", domain.LangEnglish)
	if c.Operation != OpMaintReport || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_MaintReportMissingIdentifier(t *testing.T) {
	c := classify(t, "maintenance report", domain.LangEnglish)
	if c.Operation != OpMaintReport || c.Confidence != 0.5 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_RepairBeatsMaintenance(t *testing.T) {
	// Both repair and maintenance phrases present; repair is checked first.
	c := classify(t, "repair needed after maintenance 56-722-64", domain.LangEnglish)
	if c.Operation != OpReportRepair || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_IntentVerbBeatsBareIdentifier(t *testing.T) {
	// Identifier present alongside a maintenance verb: the verb wins.
	c := classify(t, "דוח תחזוקה 5672264", domain.LangHebrew)
	if c.Operation != OpMaintReport || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_BareIdentifier(t *testing.T) {
	c := classify(t, "56-722-64", domain.LangEnglish)
	if c.Operation != OpFindVehicle || c.Confidence != 0.7 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_Help(t *testing.T) {
	for _, q := range []string{"help", "commands"} {
		c := classify(t, q, domain.LangEnglish)
		if c.Operation != OpHelp || c.Confidence != 1.0 {
			t.Errorf("%q: got %+v", q, c)
		}
	}
	c := classify(t, "עזרה", domain.LangHebrew)
	if c.Operation != OpHelp || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_Status(t *testing.T) {
	c := classify(t, "fleet status", domain.LangEnglish)
	if c.Operation != OpStatus || c.Confidence != 1.0 {
		t.Errorf("got %+v", c)
	}
}

func TestClassify_Unknown(t *testing.T) {
	c := classify(t, "what is the weather", domain.LangEnglish)
	if c.Operation != OpUnknown || c.Confidence != 0 {
		t.Errorf("got %+v", c)
	}
	if c.Reasoning != "no pattern matched" {
		t.Errorf("reasoning = %q", c.Reasoning)
	}
}

func TestClassify_MalformedIdentifier(t *testing.T) {
	c := classify(t, "find 12345", domain.LangEnglish)
	if c.Operation != OpFindVehicle || c.Confidence != 0.5 {
		t.Errorf("got %+v", c)
	}
}
