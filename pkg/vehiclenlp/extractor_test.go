package vehiclenlp

import "testing"

func TestExtract_MakeAndModel(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		make_ string
		model string
		year  int
		conf  float64
	}{
		{"make model year", "the 2021 Ford Transit at the depot", "Ford", "Transit", 2021, 0.95},
		{"make model", "find the Volvo FH", "Volvo", "FH", 0, 0.80},
		{"longest model wins", "Ford Transit Custom needs service", "Ford", "Transit Custom", 0, 0.80},
		{"make year only", "a 2019 Scania in Haifa", "Scania", "", 2019, 0.70},
		{"bare make", "is the iveco back yet", "Iveco", "", 0, 0.60},
		{"alias", "the merc is leaking oil", "Mercedes-Benz", "", 0, 0.60},
		{"hebrew make with prefix", "איפה הוולוו FH", "Volvo", "FH", 0, 0.80},
		{"standalone model", "the Sprinter at the Haifa depot", "Mercedes-Benz", "Sprinter", 0, 0.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ExtractBest(tt.text)
			if m == nil {
				t.Fatalf("no mention in %q", tt.text)
			}
			if m.Make != tt.make_ || m.Model != tt.model || m.Year != tt.year {
				t.Errorf("got %s/%s/%d, want %s/%s/%d", m.Make, m.Model, m.Year, tt.make_, tt.model, tt.year)
			}
			if m.Confidence != tt.conf {
				t.Errorf("confidence = %v, want %v", m.Confidence, tt.conf)
			}
		})
	}
}

func TestExtract_NoFalsePositives(t *testing.T) {
	for _, text := range []string{
		"",
		"maintenance report for 56-722-64",
		"a mandatory inspection", // no boundary match inside "mandatory"
	} {
		if mentions := Extract(text); len(mentions) != 0 {
			t.Errorf("%q: unexpected mentions %+v", text, mentions)
		}
	}
}

func TestExtract_BareMANNeedsBoundary(t *testing.T) {
	mentions := Extract("the man at the gate said hello")
	if len(mentions) != 1 || mentions[0].Make != "MAN" || mentions[0].Confidence != 0.60 {
		t.Fatalf("got %+v", mentions)
	}
}

func TestExtract_MultipleMentions(t *testing.T) {
	mentions := Extract("swap the Ford Transit with the Renault Master")
	if len(mentions) != 2 {
		t.Fatalf("got %d mentions, want 2", len(mentions))
	}
	for _, m := range mentions {
		if m.Model == "" || m.Confidence != 0.80 {
			t.Errorf("unexpected mention %+v", m)
		}
	}
}

func TestExtract_AbbreviatedYear(t *testing.T) {
	m := ExtractBest("the '19 Toyota Hilux")
	if m == nil || m.Year != 2019 || m.Model != "Hilux" {
		t.Fatalf("got %+v", m)
	}
}
